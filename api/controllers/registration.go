package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/z3r0n3br4instorm/duothan-onboarding/api/models"
	"github.com/z3r0n3br4instorm/duothan-onboarding/logging"
	"github.com/z3r0n3br4instorm/duothan-onboarding/storage"
)

// ErrCodeGenerationExhausted means every generation attempt collided
// with an existing code within the retry bound.
var ErrCodeGenerationExhausted = errors.New("failed to generate a unique team code")

type RegistrationController struct {
	codesStorage storage.TeamCodeStorage
	teamsStorage storage.TeamStorage
	validate     *validator.Validate
}

func NewRegistrationController(codeStorage storage.TeamCodeStorage, teamStorage storage.TeamStorage) *RegistrationController {
	return &RegistrationController{
		codesStorage: codeStorage,
		teamsStorage: teamStorage,
		validate:     validator.New(),
	}
}

func (c *RegistrationController) RegisterRoutes(engine *gin.Engine) {
	engine.POST("/team-code", c.registerTeam)
	engine.POST("/validate-teamcode", c.validateTeamCode)
}

// registerTeam godoc
// @Summary Register a team and issue its team code
// @Description Validates the roster, enforces case-insensitive team name/e-mail uniqueness and returns a generated team code
// @Tags registration
// @Accept json
// @Produce json
// @Param request body models.RegisterTeamRequest true "Team roster"
// @Success 201 {object} models.RegisterTeamResponse
// @Failure 400 {object} models.ValidationErrorResponse "Missing or malformed roster fields"
// @Failure 409 {object} models.ErrorResponse "Duplicate team name or e-mail"
// @Failure 500 {object} models.ErrorResponse "Unexpected internal error"
// @Router /team-code [post]
func (c *RegistrationController) registerTeam(g *gin.Context) {
	var req models.RegisterTeamRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	if violations := c.collectViolations(req.TeamData); len(violations) > 0 {
		logging.Log.Warnf("TEAM: registration rejected, violated fields: %v", violations)
		g.JSON(http.StatusBadRequest, &models.ValidationErrorResponse{
			Error:  "validation failed",
			Fields: violations,
		})
		return
	}

	ctx := g.Request.Context()
	nameKey := strings.ToLower(strings.TrimSpace(req.TeamData.TeamName))
	emailKey := strings.ToLower(strings.TrimSpace(req.TeamData.TeamEmail))

	// Both duplicate checks are reads before the insert, not a
	// transaction with it. A narrow race window remains; the
	// conditional put on the name key is the real guard.
	if _, err := c.teamsStorage.GetByName(ctx, nameKey); err == nil {
		g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "a team with this name or email is already registered"})
		return
	} else if !errors.Is(err, storage.ErrTeamNotFound) {
		writeStorageError(g, err)
		return
	}

	existing, err := c.teamsStorage.FindByEmail(ctx, emailKey)
	if err != nil {
		writeStorageError(g, err)
		return
	}
	if existing != nil {
		g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "a team with this name or email is already registered"})
		return
	}

	code, err := c.generateUniqueTeamCode(ctx)
	if err != nil {
		if errors.Is(err, ErrCodeGenerationExhausted) {
			logging.Log.Errorf("TEAM: code generation exhausted after %d attempts", models.MaxCodeGenerationAttempts)
			g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "failed to generate unique team code"})
			return
		}
		writeStorageError(g, err)
		return
	}

	members := make([]storage.TeamMember, 0, len(req.TeamData.Members))
	for _, m := range req.TeamData.Members {
		if !m.IsComplete() {
			continue
		}
		members = append(members, storage.TeamMember{
			FullName:       strings.TrimSpace(m.FullName),
			Email:          strings.TrimSpace(m.Email),
			Gender:         m.Gender,
			FoodPreference: m.FoodPreference,
		})
	}

	team := &storage.Team{
		NameKey:          nameKey,
		ID:               uuid.NewString(),
		Name:             strings.TrimSpace(req.TeamData.TeamName),
		Email:            strings.TrimSpace(req.TeamData.TeamEmail),
		EmailKey:         emailKey,
		ContactNumber:    strings.TrimSpace(req.TeamData.ContactNumber),
		University:       strings.TrimSpace(req.TeamData.University),
		TeamCode:         code,
		Members:          members,
		RegistrationDate: time.Now().UTC(),
		Status:           models.StatusRegistered,
	}

	if err := c.teamsStorage.Create(ctx, team); err != nil {
		if errors.Is(err, storage.ErrItemAlreadyExists) {
			g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "a team with this name or email is already registered"})
			return
		}
		writeStorageError(g, err)
		return
	}

	if err := c.codesStorage.AttachTeam(ctx, code, team.ID); err != nil {
		logging.Log.Errorf("TEAM: failed to attach team %s to code: %v", team.ID, err)
		writeStorageError(g, err)
		return
	}

	logging.Log.Infof("TEAM: registered team %q with code %s", team.Name, code)
	g.JSON(http.StatusCreated, &models.RegisterTeamResponse{
		Success:  true,
		TeamID:   team.ID,
		TeamCode: code,
		Message:  "team registered successfully",
	})
}

// validateTeamCode godoc
// @Summary Validate a team code
// @Description Checks that a team code exists and whether it is registered
// @Tags registration
// @Accept json
// @Produce json
// @Param request body models.ValidateTeamCodeRequest true "Team code"
// @Success 200 {object} models.TeamCodeValidationResponse
// @Failure 400 {object} models.ErrorResponse "Missing team code"
// @Failure 404 {object} models.ErrorResponse "Unknown team code"
// @Failure 500 {object} models.ErrorResponse "Unexpected internal error"
// @Router /validate-teamcode [post]
func (c *RegistrationController) validateTeamCode(g *gin.Context) {
	var req models.ValidateTeamCodeRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid team code format"})
		return
	}

	code := strings.ToLower(strings.TrimSpace(req.TeamCode))
	teamCode, err := c.codesStorage.Get(g.Request.Context(), code)
	if err != nil {
		if errors.Is(err, storage.ErrCodeNotFound) {
			logging.Log.Warnf("CODE: unknown team code: %s", code)
			g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: fmt.Sprintf("invalid team code: %s", code)})
			return
		}
		writeStorageError(g, err)
		return
	}

	g.JSON(http.StatusOK, models.TransformTeamCodeToValidationResponse(teamCode))
}

// generateUniqueTeamCode produces a short lowercase alphanumeric token.
// The conditional insert is the collision check; it retries up to the
// attempt bound before giving up.
func (c *RegistrationController) generateUniqueTeamCode(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= models.MaxCodeGenerationAttempts; attempt++ {
		code, err := gonanoid.Generate(models.CodeAlphabet, models.CodeLength)
		if err != nil {
			return "", err
		}

		teamCode := &storage.TeamCode{
			Code:         code,
			IsRegistered: true,
			CreatedAt:    time.Now().UTC(),
		}
		err = c.codesStorage.Create(ctx, teamCode)
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, storage.ErrItemAlreadyExists) {
			return "", err
		}
		logging.Log.Warnf("CODE: collision on attempt %d, regenerating", attempt)
	}
	return "", ErrCodeGenerationExhausted
}

func (c *RegistrationController) collectViolations(td models.TeamDataPayload) []string {
	var fields []string

	if strings.TrimSpace(td.TeamName) == "" {
		fields = append(fields, "teamName")
	}
	if err := c.validate.Var(td.TeamEmail, "required,email"); err != nil {
		fields = append(fields, "teamEmail")
	}
	if strings.TrimSpace(td.ContactNumber) == "" {
		fields = append(fields, "contactNumber")
	}
	if strings.TrimSpace(td.University) == "" {
		fields = append(fields, "university")
	}

	if len(td.Members) == 0 {
		fields = append(fields, "members")
		return fields
	}

	complete := 0
	for i, m := range td.Members {
		if strings.TrimSpace(m.Email) != "" {
			if err := c.validate.Var(m.Email, "email"); err != nil {
				fields = append(fields, fmt.Sprintf("members[%d].email", i))
				continue
			}
		}
		if m.IsComplete() {
			complete++
		}
	}
	if complete < models.MinCompleteMembers {
		fields = append(fields, "members")
	}

	return fields
}
