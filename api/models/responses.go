package models

type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse lists every violated field, not just the
// first one found.
type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ChallengeEntry struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}
