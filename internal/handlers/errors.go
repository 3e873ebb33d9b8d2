package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sigpat/sigpat/internal/repository"
	"github.com/sigpat/sigpat/internal/services"
	apperrors "github.com/sigpat/sigpat/pkg/errors"
	"github.com/sigpat/sigpat/pkg/response"
)

// respondError translates domain errors into the API envelope. Duplicate keys
// carry the colliding field, blocked deactivations carry the dependent list so
// the client can offer a cascade confirmation.
func respondError(c *gin.Context, err error) {
	var dup *repository.DuplicateKeyError
	var blocked *services.CascadeBlockedError

	switch {
	case errors.Is(err, repository.ErrNotFound):
		response.Error(c, apperrors.ErrNotFound)
	case errors.As(err, &dup):
		response.Error(c, apperrors.ErrDuplicateKey.WithField(dup.Field))
	case errors.As(err, &blocked):
		c.JSON(http.StatusConflict, response.Response{
			Success: false,
			Error: &response.ErrorInfo{
				Code:    apperrors.ErrCascadeBlocked.Code,
				Message: apperrors.ErrCascadeBlocked.Message,
			},
			Data: gin.H{"dependents": blocked.Dependents},
		})
	default:
		response.Error(c, err)
	}
}
