package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sigpat/sigpat/internal/entities"
	"github.com/sigpat/sigpat/internal/services"
	apperrors "github.com/sigpat/sigpat/pkg/errors"
	"github.com/sigpat/sigpat/pkg/response"
)

// EntityHandler exposes the CRUD, lifecycle, and history surface of one
// registry entity. The Orgao instance additionally routes toggles through the
// lifecycle coordinator so dependent Unidades are taken into account.
type EntityHandler[T any, PT interface {
	*T
	entities.Record
}] struct {
	svc       *services.EntityService[T, PT]
	lifecycle *services.LifecycleService
}

// NewEntityHandler builds a handler over an entity service.
func NewEntityHandler[T any, PT interface {
	*T
	entities.Record
}](svc *services.EntityService[T, PT]) *EntityHandler[T, PT] {
	return &EntityHandler[T, PT]{svc: svc}
}

// WithLifecycle routes status toggles through the lifecycle coordinator and
// enables the cascade confirmation endpoint.
func (h *EntityHandler[T, PT]) WithLifecycle(lifecycle *services.LifecycleService) *EntityHandler[T, PT] {
	h.lifecycle = lifecycle
	return h
}

// Register mounts the entity routes under the supplied group.
func (h *EntityHandler[T, PT]) Register(rg *gin.RouterGroup, path string) {
	grp := rg.Group("/" + path)
	grp.GET("", h.list)
	grp.POST("", h.create)
	grp.GET("/:id", h.get)
	grp.PUT("/:id", h.update)
	grp.POST("/:id/toggle", h.toggle)
	grp.GET("/:id/history", h.history)
	if h.lifecycle != nil {
		grp.POST("/:id/toggle-cascade", h.toggleCascade)
	}
}

func (h *EntityHandler[T, PT]) parseID(c *gin.Context) (entities.ID, bool) {
	id, err := entities.ParseID(h.svc.Descriptor().IDKind, c.Param("id"))
	if err != nil {
		response.Error(c, apperrors.NewBadRequest("Identificador inválido"))
		return entities.ID{}, false
	}
	return id, true
}

func (h *EntityHandler[T, PT]) list(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, records)
}

func (h *EntityHandler[T, PT]) get(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	rec, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

// createReservedKeys are stripped from create payloads. Identifier and
// timestamps are store-assigned, and the soft-delete pair only ever changes
// through the toggle endpoint.
var createReservedKeys = []string{"id", "is_deleted", "deleted_at", "created_at", "updated_at"}

func (h *EntityHandler[T, PT]) create(c *gin.Context) {
	var values map[string]any
	if err := c.ShouldBindJSON(&values); err != nil {
		response.Error(c, apperrors.NewBadRequest("Corpo da requisição inválido"))
		return
	}
	for _, key := range createReservedKeys {
		delete(values, key)
	}

	rec := PT(new(T))
	if err := decodeInto(values, rec); err != nil {
		response.Error(c, apperrors.NewBadRequest("Corpo da requisição inválido"))
		return
	}

	created, err := h.svc.Create(c.Request.Context(), rec)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

func (h *EntityHandler[T, PT]) update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var values map[string]any
	if err := c.ShouldBindJSON(&values); err != nil {
		response.Error(c, apperrors.NewBadRequest("Corpo da requisição inválido"))
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, values)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

func (h *EntityHandler[T, PT]) toggle(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if h.lifecycle != nil {
		rec, err := h.lifecycle.ToggleOrgao(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		response.Success(c, http.StatusOK, rec)
		return
	}

	rec, err := h.svc.Toggle(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

func (h *EntityHandler[T, PT]) toggleCascade(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.lifecycle.DeactivateOrgaoCascade(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	rec, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rec)
}

// decodeInto maps the filtered payload onto the record through a JSON round
// trip, so relation keys like orgao_id bind the same way a direct bind would.
func decodeInto(values map[string]any, rec any) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, rec)
}

func (h *EntityHandler[T, PT]) history(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, h.svc.History(c.Request.Context(), id))
}
