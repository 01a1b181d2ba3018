package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/z3r0n3br4instorm/duothan-onboarding/api/models"
	"github.com/z3r0n3br4instorm/duothan-onboarding/storage"
)

// writeStorageError translates unexpected store failures at the request
// boundary: connectivity problems are 503 so clients may retry,
// everything else is 500.
func writeStorageError(g *gin.Context, err error) {
	if errors.Is(err, storage.ErrStoreUnavailable) {
		g.JSON(http.StatusServiceUnavailable, &models.ErrorResponse{Error: "storage temporarily unavailable"})
		return
	}
	g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "unexpected internal error"})
}
