package controllers

import (
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/z3r0n3br4instorm/duothan-onboarding/api/models"
	"github.com/z3r0n3br4instorm/duothan-onboarding/logging"
	"github.com/z3r0n3br4instorm/duothan-onboarding/storage"
)

// SessionController owns the onboarding state machine:
// NoSession -> PendingQuestion -> Active -> Completed. Expiry stays
// advisory: the server reports the remaining budget but never rejects a
// write just for being late.
type SessionController struct {
	codesStorage       storage.TeamCodeStorage
	sessionsStorage    storage.SessionStorage
	submissionsStorage storage.SubmissionStorage

	now func() time.Time
}

func NewSessionController(codeStorage storage.TeamCodeStorage, sessionStorage storage.SessionStorage, submissionStorage storage.SubmissionStorage) *SessionController {
	return &SessionController{
		codesStorage:       codeStorage,
		sessionsStorage:    sessionStorage,
		submissionsStorage: submissionStorage,
		now:                time.Now,
	}
}

func (c *SessionController) RegisterRoutes(engine *gin.Engine) {
	engine.POST("/session", c.startSession)
	engine.PUT("/session", c.updateSession)
	engine.PATCH("/session", c.completeWithSubmission)
	engine.GET("/challenges", c.listChallenges)
}

// startSession godoc
// @Summary Start or fetch a team's onboarding session
// @Description Creates the session row if none exists; returns the existing one with its remaining budget otherwise. Stale (>12h) or force-restarted sessions are replaced.
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body models.StartSessionRequest true "Session start request"
// @Success 200 {object} models.SessionResponse
// @Failure 400 {object} models.ErrorResponse "Malformed request"
// @Failure 404 {object} models.ErrorResponse "Unknown or unregistered team code"
// @Failure 409 {object} models.ErrorResponse "Session already completed"
// @Failure 500 {object} models.ErrorResponse "Unexpected internal error"
// @Router /session [post]
func (c *SessionController) startSession(g *gin.Context) {
	var req models.StartSessionRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid team code format"})
		return
	}
	if req.QuestionType != nil && !models.IsValidQuestionType(*req.QuestionType) {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid question type"})
		return
	}

	ctx := g.Request.Context()
	code := strings.ToLower(strings.TrimSpace(req.TeamCode))

	teamCode, err := c.codesStorage.Get(ctx, code)
	if err != nil {
		if errors.Is(err, storage.ErrCodeNotFound) {
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "invalid or unregistered team code"})
			return
		}
		writeStorageError(g, err)
		return
	}
	if !teamCode.IsRegistered {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "invalid or unregistered team code"})
		return
	}

	existing, err := c.sessionsStorage.Get(ctx, code)
	if err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		writeStorageError(g, err)
		return
	}

	if existing != nil && !req.ForceRestart {
		// The clock only runs once a question was chosen; a
		// PendingQuestion row never goes stale.
		fresh := true
		if existing.StartTime != nil {
			fresh = c.now().Sub(*existing.StartTime) <= models.SessionDuration
		}
		if fresh {
			if existing.IsCompleted {
				g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "your team has already completed the onboarding"})
				return
			}
			g.JSON(http.StatusOK, &models.SessionResponse{
				Success: true,
				Session: models.TransformSessionFromStorage(existing, c.now()),
			})
			return
		}
	}

	// Stale, force-restarted or missing: exactly one row per team, so
	// the old one goes before the new one comes.
	if existing != nil {
		if err := c.sessionsStorage.Delete(ctx, code); err != nil {
			writeStorageError(g, err)
			return
		}
		logging.Log.Infof("SESSION: replaced session for %s (forceRestart=%t)", code, req.ForceRestart)
	}

	teamID := ""
	if teamCode.TeamID != nil {
		teamID = *teamCode.TeamID
	}
	session := &storage.OnboardingSession{
		TeamCode:     code,
		TeamID:       teamID,
		QuestionType: req.QuestionType,
		IsCompleted:  false,
	}
	if req.QuestionType != nil {
		start := c.now().UTC()
		session.StartTime = &start
	}

	if err := c.sessionsStorage.Create(ctx, session); err != nil {
		if errors.Is(err, storage.ErrItemAlreadyExists) {
			// Lost a create race; the winner's row is authoritative.
			g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "a session already exists for this team"})
			return
		}
		writeStorageError(g, err)
		return
	}

	g.JSON(http.StatusOK, &models.SessionResponse{
		Success: true,
		Session: models.TransformSessionFromStorage(session, c.now()),
	})
}

// updateSession godoc
// @Summary Update a team's session
// @Description Binds a question type (the sole trigger that starts the clock) and/or marks the session completed. Completion is idempotent.
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body models.UpdateSessionRequest true "Session update request"
// @Success 200 {object} models.SessionResponse
// @Failure 400 {object} models.ErrorResponse "Malformed request"
// @Failure 404 {object} models.ErrorResponse "Session not found"
// @Failure 409 {object} models.ErrorResponse "Completed session cannot be changed"
// @Failure 500 {object} models.ErrorResponse "Unexpected internal error"
// @Router /session [put]
func (c *SessionController) updateSession(g *gin.Context) {
	var req models.UpdateSessionRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request parameters"})
		return
	}
	if req.QuestionType == nil && req.IsCompleted == nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request parameters"})
		return
	}
	if req.QuestionType != nil && !models.IsValidQuestionType(*req.QuestionType) {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid question type"})
		return
	}

	ctx := g.Request.Context()
	code := strings.ToLower(strings.TrimSpace(req.TeamCode))

	session, err := c.sessionsStorage.Get(ctx, code)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "session not found"})
			return
		}
		writeStorageError(g, err)
		return
	}

	if session.IsCompleted {
		// Completion is monotonic. Replaying the completed flag is a
		// harmless no-op; any other change is a conflict.
		if req.QuestionType != nil {
			g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "session is already completed"})
			return
		}
		g.JSON(http.StatusOK, &models.SessionResponse{
			Success: true,
			Message: "session updated successfully",
			Session: models.TransformSessionFromStorage(session, c.now()),
		})
		return
	}

	if req.QuestionType != nil {
		session.QuestionType = req.QuestionType
		if session.StartTime == nil {
			start := c.now().UTC()
			session.StartTime = &start
			logging.Log.Infof("SESSION: clock started for %s on question %d", code, *req.QuestionType)
		}
	}
	if req.IsCompleted != nil && *req.IsCompleted {
		session.IsCompleted = true
		end := c.now().UTC()
		session.EndTime = &end
	}

	if err := c.sessionsStorage.Update(ctx, session); err != nil {
		writeStorageError(g, err)
		return
	}

	g.JSON(http.StatusOK, &models.SessionResponse{
		Success: true,
		Message: "session updated successfully",
		Session: models.TransformSessionFromStorage(session, c.now()),
	})
}

// completeWithSubmission godoc
// @Summary Complete a session by submitting a solution
// @Description Persists the submission (at most one per team) and marks the session completed in one request
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body models.CompleteSessionRequest true "Completion request"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse "Malformed request"
// @Failure 404 {object} models.ErrorResponse "Session not found"
// @Failure 409 {object} models.DuplicateSubmissionResponse "Session already completed or submission already exists"
// @Failure 500 {object} models.ErrorResponse "Unexpected internal error"
// @Router /session [patch]
func (c *SessionController) completeWithSubmission(g *gin.Context) {
	var req models.CompleteSessionRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request parameters"})
		return
	}

	ctx := g.Request.Context()
	code := strings.ToLower(strings.TrimSpace(req.TeamCode))

	session, err := c.sessionsStorage.Get(ctx, code)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "session not found"})
			return
		}
		writeStorageError(g, err)
		return
	}

	if session.IsCompleted {
		g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "session is already completed"})
		return
	}

	questionType := session.QuestionType
	if req.Submission.QuestionType != nil {
		questionType = req.Submission.QuestionType
	}
	if questionType == nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "question type is required"})
		return
	}

	submission := buildSubmission(code, *questionType, req.Submission.Explanation, req.Submission.Files, c.now().UTC())
	if err := c.submissionsStorage.Create(ctx, submission); err != nil {
		if errors.Is(err, storage.ErrItemAlreadyExists) {
			writeDuplicateSubmission(g, c.submissionsStorage, code)
			return
		}
		writeStorageError(g, err)
		return
	}

	session.IsCompleted = true
	end := c.now().UTC()
	session.EndTime = &end
	if err := c.sessionsStorage.Update(ctx, session); err != nil {
		writeStorageError(g, err)
		return
	}

	logging.Log.Infof("SESSION: completed via submission for %s", code)
	g.JSON(http.StatusOK, &models.MessageResponse{
		Success: true,
		Message: "submission received and session completed",
	})
}

// listChallenges godoc
// @Summary List the available challenges
// @Tags sessions
// @Produce json
// @Success 200 {array} models.ChallengeEntry
// @Router /challenges [get]
func (c *SessionController) listChallenges(g *gin.Context) {
	challenges := make([]models.ChallengeEntry, 0, len(models.Challenges))
	for id, title := range models.Challenges {
		challenges = append(challenges, models.ChallengeEntry{ID: id, Title: title})
	}
	sort.Slice(challenges, func(i, j int) bool { return challenges[i].ID < challenges[j].ID })
	g.JSON(http.StatusOK, challenges)
}

// writeDuplicateSubmission answers 409 with the winning submission's
// metadata so the losing client can reconcile without a second call.
func writeDuplicateSubmission(g *gin.Context, submissions storage.SubmissionStorage, code string) {
	existing, err := submissions.Get(g.Request.Context(), code, false)
	if err != nil {
		logging.Log.Errorf("SUBMISSION: failed to load existing submission for %s: %v", code, err)
		g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "a submission already exists for this team"})
		return
	}
	g.JSON(http.StatusConflict, &models.DuplicateSubmissionResponse{
		Success:            false,
		Error:              "a submission already exists for this team",
		ExistingSubmission: models.TransformSubmissionToMetadata(existing),
	})
}

func buildSubmission(teamCode string, questionType int, explanation string, files []models.FilePayload, submittedAt time.Time) *storage.Submission {
	stored := make([]storage.SubmissionFile, 0, len(files))
	fileNames := make([]string, 0, len(files))
	for _, f := range files {
		stored = append(stored, storage.SubmissionFile{
			Name:         f.Name,
			ContentType:  f.Type,
			Size:         f.Size,
			Content:      f.Content,
			LastModified: f.LastModified,
		})
		fileNames = append(fileNames, f.Name)
	}
	return &storage.Submission{
		TeamCode:     teamCode,
		QuestionType: questionType,
		Explanation:  explanation,
		Files:        stored,
		FileNames:    fileNames,
		SubmittedAt:  submittedAt,
	}
}
