package controllers

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/z3r0n3br4instorm/duothan-onboarding/api/models"
	"github.com/z3r0n3br4instorm/duothan-onboarding/logging"
	"github.com/z3r0n3br4instorm/duothan-onboarding/storage"
)

type SubmissionController struct {
	sessionsStorage    storage.SessionStorage
	submissionsStorage storage.SubmissionStorage

	now func() time.Time
}

func NewSubmissionController(sessionStorage storage.SessionStorage, submissionStorage storage.SubmissionStorage) *SubmissionController {
	return &SubmissionController{
		sessionsStorage:    sessionStorage,
		submissionsStorage: submissionStorage,
		now:                time.Now,
	}
}

func (c *SubmissionController) RegisterRoutes(engine *gin.Engine) {
	engine.POST("/submission", c.createSubmission)
	engine.GET("/submission", c.getSubmissions)
	engine.GET("/submission/check", c.checkSubmission)
}

// createSubmission godoc
// @Summary Create a team's solution submission
// @Description Accepts JSON or multipart/form-data; files are stored inline base64-encoded. At most one submission per team; a duplicate gets 409 with the existing submission's metadata.
// @Tags submissions
// @Accept json
// @Accept mpfd
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse "Missing required fields"
// @Failure 409 {object} models.DuplicateSubmissionResponse "Submission already exists"
// @Failure 500 {object} models.ErrorResponse "Unexpected internal error"
// @Router /submission [post]
func (c *SubmissionController) createSubmission(g *gin.Context) {
	var (
		req models.CreateSubmissionRequest
		err error
	)
	if strings.HasPrefix(g.ContentType(), "multipart/form-data") {
		req, err = c.parseMultipartSubmission(g)
	} else {
		err = g.ShouldBindJSON(&req)
	}
	if err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	if strings.TrimSpace(req.TeamCode) == "" || req.QuestionType == nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "missing required fields"})
		return
	}
	if !models.IsValidQuestionType(*req.QuestionType) {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid question type"})
		return
	}

	code := strings.ToLower(strings.TrimSpace(req.TeamCode))
	submittedAt := c.now().UTC()
	if req.SubmittedAt != nil {
		submittedAt = req.SubmittedAt.UTC()
	}

	submission := buildSubmission(code, *req.QuestionType, req.Explanation, req.Files, submittedAt)
	if err := c.submissionsStorage.Create(g.Request.Context(), submission); err != nil {
		if errors.Is(err, storage.ErrItemAlreadyExists) {
			writeDuplicateSubmission(g, c.submissionsStorage, code)
			return
		}
		writeStorageError(g, err)
		return
	}

	logging.Log.Infof("SUBMISSION: stored submission for %s with %d file(s)", code, len(submission.Files))
	g.JSON(http.StatusOK, &models.MessageResponse{Success: true, Message: "submission saved successfully"})
}

// getSubmissions godoc
// @Summary Fetch a team's submission
// @Description File content is omitted unless includeFileContent=true is passed
// @Tags submissions
// @Produce json
// @Param teamCode query string true "Team code"
// @Param includeFileContent query bool false "Include base64 file content"
// @Success 200 {object} models.GetSubmissionsResponse
// @Failure 400 {object} models.ErrorResponse "Missing team code"
// @Failure 500 {object} models.ErrorResponse "Unexpected internal error"
// @Router /submission [get]
func (c *SubmissionController) getSubmissions(g *gin.Context) {
	teamCode := g.Query("teamCode")
	if teamCode == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "team code is required"})
		return
	}
	includeFileContent := g.Query("includeFileContent") == "true"

	code := strings.ToLower(strings.TrimSpace(teamCode))
	submission, err := c.submissionsStorage.Get(g.Request.Context(), code, includeFileContent)
	if err != nil {
		if errors.Is(err, storage.ErrSubmissionNotFound) {
			g.JSON(http.StatusOK, &models.GetSubmissionsResponse{Success: true, Submissions: []models.SubmissionView{}})
			return
		}
		writeStorageError(g, err)
		return
	}

	g.JSON(http.StatusOK, &models.GetSubmissionsResponse{
		Success:     true,
		Submissions: []models.SubmissionView{models.TransformSubmissionToView(submission, includeFileContent)},
	})
}

// checkSubmission godoc
// @Summary Probe a team's submission and completion state
// @Description Lightweight check used to reconcile "submission exists but session not completed" drift
// @Tags submissions
// @Produce json
// @Param teamCode query string true "Team code"
// @Success 200 {object} models.CheckSubmissionResponse
// @Failure 400 {object} models.ErrorResponse "Missing team code"
// @Failure 404 {object} models.ErrorResponse "No session for this team"
// @Failure 500 {object} models.ErrorResponse "Unexpected internal error"
// @Router /submission/check [get]
func (c *SubmissionController) checkSubmission(g *gin.Context) {
	teamCode := g.Query("teamCode")
	if teamCode == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "team code is required"})
		return
	}

	ctx := g.Request.Context()
	code := strings.ToLower(strings.TrimSpace(teamCode))

	session, err := c.sessionsStorage.Get(ctx, code)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "no session found for this team"})
			return
		}
		writeStorageError(g, err)
		return
	}

	hasSubmission, err := c.submissionsStorage.Exists(ctx, code)
	if err != nil {
		writeStorageError(g, err)
		return
	}

	hasFileContent := false
	if hasSubmission {
		submission, err := c.submissionsStorage.Get(ctx, code, false)
		if err != nil {
			writeStorageError(g, err)
			return
		}
		hasFileContent = len(submission.FileNames) > 0
	}

	g.JSON(http.StatusOK, &models.CheckSubmissionResponse{
		Success:          true,
		HasSubmission:    hasSubmission,
		HasFileContent:   hasFileContent,
		SessionCompleted: session.IsCompleted,
		QuestionType:     session.QuestionType,
	})
}

func (c *SubmissionController) parseMultipartSubmission(g *gin.Context) (models.CreateSubmissionRequest, error) {
	var req models.CreateSubmissionRequest
	req.TeamCode = g.PostForm("teamCode")
	req.Explanation = g.PostForm("explanation")

	if qt := g.PostForm("questionType"); qt != "" {
		parsed, err := strconv.Atoi(qt)
		if err != nil {
			return req, err
		}
		req.QuestionType = &parsed
	}

	form, err := g.MultipartForm()
	if err != nil {
		return req, err
	}

	for _, header := range form.File["files"] {
		file, err := header.Open()
		if err != nil {
			return req, err
		}
		content, err := io.ReadAll(file)
		closeErr := file.Close()
		if err != nil {
			return req, err
		}
		if closeErr != nil {
			return req, closeErr
		}

		req.Files = append(req.Files, models.FilePayload{
			Name:         header.Filename,
			Type:         header.Header.Get("Content-Type"),
			Size:         header.Size,
			Content:      base64.StdEncoding.EncodeToString(content),
			LastModified: c.now().UnixMilli(),
		})
	}
	return req, nil
}
