package models

import (
	"time"

	"github.com/z3r0n3br4instorm/duothan-onboarding/storage"
)

type FilePayload struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Size         int64  `json:"size"`
	Content      string `json:"content"`
	LastModified int64  `json:"lastModified"`
}

// SubmissionPayload is the submission body carried by PATCH /session.
type SubmissionPayload struct {
	QuestionType *int          `json:"questionType"`
	Explanation  string        `json:"explanation"`
	Files        []FilePayload `json:"files"`
}

type CreateSubmissionRequest struct {
	TeamCode     string        `json:"teamCode"`
	QuestionType *int          `json:"questionType"`
	Explanation  string        `json:"explanation"`
	Files        []FilePayload `json:"files"`
	SubmittedAt  *time.Time    `json:"submittedAt"`
}

// SubmissionMetadata is the content-free shape used in listings and in
// duplicate-conflict responses.
type SubmissionMetadata struct {
	TeamCode     string    `json:"teamCode"`
	QuestionType int       `json:"questionType"`
	Explanation  string    `json:"explanation"`
	FileNames    []string  `json:"fileNames"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

type SubmissionView struct {
	SubmissionMetadata
	Files []FilePayload `json:"files,omitempty"`
}

type GetSubmissionsResponse struct {
	Success     bool             `json:"success"`
	Submissions []SubmissionView `json:"submissions"`
}

// DuplicateSubmissionResponse carries the existing submission's
// metadata so the client can reconcile without a second round trip.
type DuplicateSubmissionResponse struct {
	Success            bool               `json:"success"`
	Error              string             `json:"error"`
	ExistingSubmission SubmissionMetadata `json:"existingSubmission"`
}

type CheckSubmissionResponse struct {
	Success          bool `json:"success"`
	HasSubmission    bool `json:"hasSubmission"`
	HasFileContent   bool `json:"hasFileContent"`
	SessionCompleted bool `json:"sessionCompleted"`
	QuestionType     *int `json:"questionType"`
}

func TransformSubmissionToMetadata(s *storage.Submission) SubmissionMetadata {
	fileNames := s.FileNames
	if fileNames == nil {
		fileNames = []string{}
	}
	return SubmissionMetadata{
		TeamCode:     s.TeamCode,
		QuestionType: s.QuestionType,
		Explanation:  s.Explanation,
		FileNames:    fileNames,
		SubmittedAt:  s.SubmittedAt,
	}
}

func TransformSubmissionToView(s *storage.Submission, includeFileContent bool) SubmissionView {
	view := SubmissionView{SubmissionMetadata: TransformSubmissionToMetadata(s)}
	if includeFileContent {
		view.Files = make([]FilePayload, 0, len(s.Files))
		for _, f := range s.Files {
			view.Files = append(view.Files, FilePayload{
				Name:         f.Name,
				Type:         f.ContentType,
				Size:         f.Size,
				Content:      f.Content,
				LastModified: f.LastModified,
			})
		}
	}
	return view
}
