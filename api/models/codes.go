package models

import (
	"time"

	"github.com/z3r0n3br4instorm/duothan-onboarding/storage"
)

type ValidateTeamCodeRequest struct {
	TeamCode string `json:"teamCode" binding:"required"`
}

type TeamCodeValidationResponse struct {
	Valid        bool      `json:"valid"`
	IsRegistered bool      `json:"isRegistered"`
	TeamCode     string    `json:"teamCode"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

type TeamCodeEntry struct {
	Code         string    `json:"code"`
	IsRegistered bool      `json:"isRegistered"`
	TeamID       *string   `json:"teamId"`
	CreatedAt    time.Time `json:"createdAt"`
}

func TransformTeamCodeToValidationResponse(tc *storage.TeamCode) TeamCodeValidationResponse {
	return TeamCodeValidationResponse{
		Valid:        true,
		IsRegistered: tc.IsRegistered,
		TeamCode:     tc.Code,
		CreatedAt:    tc.CreatedAt,
	}
}

func TransformTeamCodeToEntry(tc *storage.TeamCode) TeamCodeEntry {
	return TeamCodeEntry{
		Code:         tc.Code,
		IsRegistered: tc.IsRegistered,
		TeamID:       tc.TeamID,
		CreatedAt:    tc.CreatedAt,
	}
}
