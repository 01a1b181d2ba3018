package controllers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/z3r0n3br4instorm/duothan-onboarding/api/models"
	"github.com/z3r0n3br4instorm/duothan-onboarding/api/transport"
	"github.com/z3r0n3br4instorm/duothan-onboarding/logging"
	"github.com/z3r0n3br4instorm/duothan-onboarding/storage"
)

type AdminController struct {
	teamsStorage storage.TeamStorage
	codesStorage storage.TeamCodeStorage
}

func NewAdminController(teamStorage storage.TeamStorage, codeStorage storage.TeamCodeStorage) *AdminController {
	return &AdminController{
		teamsStorage: teamStorage,
		codesStorage: codeStorage,
	}
}

func (c *AdminController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("", transport.AdminAuthMiddleware())

	group.GET("/teams", c.listTeams)
	group.GET("/codes", c.listCodes)
}

// @Security AdminToken
// listTeams godoc
// @Summary List all registered teams
// @Description Reduced projection only: id, team name/e-mail, member full names and status
// @Tags admin
// @Produce json
// @Success 200 {object} models.TeamListResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /teams [get]
func (c *AdminController) listTeams(g *gin.Context) {
	teams, err := c.teamsStorage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to list teams: %v", err)
		writeStorageError(g, err)
		return
	}

	sort.Slice(teams, func(i, j int) bool {
		return teams[i].RegistrationDate.After(teams[j].RegistrationDate)
	})

	entries := make([]models.TeamListEntry, 0, len(teams))
	for _, t := range teams {
		entries = append(entries, models.TransformTeamToListEntry(t))
	}

	logging.Log.Infof("ADMIN: listed %d teams", len(entries))
	g.JSON(http.StatusOK, &models.TeamListResponse{
		Success: true,
		Count:   len(entries),
		Teams:   entries,
	})
}

// @Security AdminToken
// listCodes godoc
// @Summary List all issued team codes
// @Tags admin
// @Produce json
// @Success 200 {array} models.TeamCodeEntry
// @Failure 500 {object} models.ErrorResponse
// @Router /codes [get]
func (c *AdminController) listCodes(g *gin.Context) {
	codes, err := c.codesStorage.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("ADMIN: failed to list codes: %v", err)
		writeStorageError(g, err)
		return
	}

	entries := make([]models.TeamCodeEntry, 0, len(codes))
	for _, code := range codes {
		entries = append(entries, models.TransformTeamCodeToEntry(code))
	}

	logging.Log.Infof("ADMIN: listed %d codes", len(entries))
	g.JSON(http.StatusOK, entries)
}
