package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sigpat/sigpat/internal/lookup"
	apperrors "github.com/sigpat/sigpat/pkg/errors"
	"github.com/sigpat/sigpat/pkg/response"
)

// LookupHandler serves address resolution for the asset location forms.
type LookupHandler struct {
	cep *lookup.CEPClient
}

// NewLookupHandler builds the lookup handler.
func NewLookupHandler(cep *lookup.CEPClient) *LookupHandler {
	return &LookupHandler{cep: cep}
}

// CEP resolves a postal code. Unknown and timed-out codes both answer 404 so
// the form falls back to manual entry.
func (h *LookupHandler) CEP(c *gin.Context) {
	addr, err := h.cep.Resolve(c.Request.Context(), c.Param("cep"))
	switch {
	case errors.Is(err, lookup.ErrNotFound):
		response.Error(c, apperrors.ErrNotFound)
	case err != nil:
		response.Error(c, apperrors.NewBadRequest("CEP inválido"))
	default:
		response.Success(c, http.StatusOK, addr)
	}
}
