package models

import (
	"time"

	"github.com/z3r0n3br4instorm/duothan-onboarding/storage"
)

// StartSessionRequest starts or fetches a team's session. QuestionType
// is a pointer so challenge 0 is distinguishable from "not chosen yet".
type StartSessionRequest struct {
	TeamCode     string `json:"teamCode" binding:"required"`
	QuestionType *int   `json:"questionType"`
	ForceRestart bool   `json:"forceRestart"`
}

type UpdateSessionRequest struct {
	TeamCode     string `json:"teamCode" binding:"required"`
	QuestionType *int   `json:"questionType"`
	IsCompleted  *bool  `json:"isCompleted"`
}

type CompleteSessionRequest struct {
	TeamCode   string             `json:"teamCode" binding:"required"`
	Submission *SubmissionPayload `json:"submission" binding:"required"`
}

type SessionView struct {
	TeamCode        string     `json:"teamCode"`
	TeamID          string     `json:"teamId"`
	QuestionType    *int       `json:"questionType"`
	StartTime       *time.Time `json:"startTime"`
	EndTime         *time.Time `json:"endTime"`
	IsCompleted     bool       `json:"isCompleted"`
	RemainingTimeMs int64      `json:"remainingTimeMs"`
}

type SessionResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Session SessionView `json:"session"`
}

// TransformSessionFromStorage annotates the stored row with the
// remaining budget: always max(0, 12h - elapsed), and the full budget
// while the clock has not started.
func TransformSessionFromStorage(s *storage.OnboardingSession, now time.Time) SessionView {
	remaining := SessionDuration
	if s.StartTime != nil {
		remaining = SessionDuration - now.Sub(*s.StartTime)
		if remaining < 0 {
			remaining = 0
		}
	}
	return SessionView{
		TeamCode:        s.TeamCode,
		TeamID:          s.TeamID,
		QuestionType:    s.QuestionType,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
		IsCompleted:     s.IsCompleted,
		RemainingTimeMs: remaining.Milliseconds(),
	}
}
