package storage

import "time"

// TeamCode is the shared-secret token handed to a team at registration.
// Codes are stored lowercase and compared lowercase everywhere.
type TeamCode struct {
	Code         string    `dynamodbav:"PK"`
	IsRegistered bool      `dynamodbav:"IsRegistered"`
	TeamID       *string   `dynamodbav:"TeamID"`
	CreatedAt    time.Time `dynamodbav:"CreatedAt"`
}

type TeamMember struct {
	FullName       string `dynamodbav:"FullName"`
	Email          string `dynamodbav:"Email"`
	Gender         string `dynamodbav:"Gender"`
	FoodPreference string `dynamodbav:"FoodPreference"`
}

// Team is keyed by the lowercase team name so the conditional put
// doubles as the case-insensitive name-uniqueness guard.
type Team struct {
	NameKey          string       `dynamodbav:"PK"`
	ID               string       `dynamodbav:"ID"`
	Name             string       `dynamodbav:"Name"`
	Email            string       `dynamodbav:"Email"`
	EmailKey         string       `dynamodbav:"EmailKey"`
	ContactNumber    string       `dynamodbav:"ContactNumber"`
	University       string       `dynamodbav:"University"`
	TeamCode         string       `dynamodbav:"TeamCode"`
	Members          []TeamMember `dynamodbav:"Members"`
	RegistrationDate time.Time    `dynamodbav:"RegistrationDate"`
	Status           string       `dynamodbav:"Status"`
}

// OnboardingSession holds the time-boxed session row. StartTime stays
// nil until the team picks a question; only then does the clock run.
type OnboardingSession struct {
	TeamCode     string     `dynamodbav:"PK"`
	TeamID       string     `dynamodbav:"TeamID"`
	QuestionType *int       `dynamodbav:"QuestionType"`
	StartTime    *time.Time `dynamodbav:"StartTime"`
	EndTime      *time.Time `dynamodbav:"EndTime"`
	IsCompleted  bool       `dynamodbav:"IsCompleted"`
}

type SubmissionFile struct {
	Name         string `dynamodbav:"Name"`
	ContentType  string `dynamodbav:"ContentType"`
	Size         int64  `dynamodbav:"Size"`
	Content      string `dynamodbav:"Content"`
	LastModified int64  `dynamodbav:"LastModified"`
}

// Submission is keyed by team code; the key uniqueness enforces the
// at-most-one-submission-per-team rule. FileNames is a redundant index
// so list/check responses never have to load the file blobs.
type Submission struct {
	TeamCode     string           `dynamodbav:"PK"`
	QuestionType int              `dynamodbav:"QuestionType"`
	Explanation  string           `dynamodbav:"Explanation"`
	Files        []SubmissionFile `dynamodbav:"Files"`
	FileNames    []string         `dynamodbav:"FileNames"`
	SubmittedAt  time.Time        `dynamodbav:"SubmittedAt"`
}
