package models

import (
	"strings"
	"time"

	"github.com/z3r0n3br4instorm/duothan-onboarding/storage"
)

type TeamMemberPayload struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Gender         string `json:"gender"`
	FoodPreference string `json:"foodPreference"`
}

type TeamDataPayload struct {
	TeamName      string              `json:"teamName"`
	TeamEmail     string              `json:"teamEmail"`
	ContactNumber string              `json:"contactNumber"`
	University    string              `json:"university"`
	Members       []TeamMemberPayload `json:"members"`
}

type RegisterTeamRequest struct {
	TeamData TeamDataPayload `json:"teamData" binding:"required"`
}

type RegisterTeamResponse struct {
	Success  bool   `json:"success"`
	TeamID   string `json:"teamId"`
	TeamCode string `json:"teamCode"`
	Message  string `json:"message"`
}

// TeamListEntry is the reduced listing shape: member full names only,
// never the full member records.
type TeamListEntry struct {
	ID               string    `json:"id"`
	TeamName         string    `json:"teamName"`
	TeamEmail        string    `json:"teamEmail"`
	MemberNames      []string  `json:"memberNames"`
	RegistrationDate time.Time `json:"registrationDate"`
	Status           string    `json:"status"`
}

type TeamListResponse struct {
	Success bool            `json:"success"`
	Count   int             `json:"count"`
	Teams   []TeamListEntry `json:"teams"`
}

// IsComplete reports whether a member row carries everything the
// registration rules require of a counted member.
func (m TeamMemberPayload) IsComplete() bool {
	return strings.TrimSpace(m.FullName) != "" &&
		strings.TrimSpace(m.Email) != "" &&
		m.FoodPreference != ""
}

func TransformTeamToListEntry(t *storage.Team) TeamListEntry {
	names := make([]string, 0, len(t.Members))
	for _, m := range t.Members {
		if m.FullName != "" {
			names = append(names, m.FullName)
		}
	}
	return TeamListEntry{
		ID:               t.ID,
		TeamName:         t.Name,
		TeamEmail:        t.Email,
		MemberNames:      names,
		RegistrationDate: t.RegistrationDate,
		Status:           t.Status,
	}
}
