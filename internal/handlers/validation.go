package handlers

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sigpat/sigpat/internal/entities"
	"github.com/sigpat/sigpat/internal/models"
	"github.com/sigpat/sigpat/internal/uniqueness"
	apperrors "github.com/sigpat/sigpat/pkg/errors"
	"github.com/sigpat/sigpat/pkg/logger"
	"github.com/sigpat/sigpat/pkg/response"
)

// ValidationHandler exposes the uniqueness checker to forms: a one-shot REST
// probe and a WebSocket channel that runs a debounced validator per
// connection, disposed when the client goes away.
type ValidationHandler struct {
	checker  *uniqueness.Checker
	debounce time.Duration
	upgrader websocket.Upgrader
	log      *zap.Logger
}

// NewValidationHandler builds the handler. A non-positive debounce falls back
// to the validator default.
func NewValidationHandler(checker *uniqueness.Checker, debounce time.Duration) *ValidationHandler {
	return &ValidationHandler{
		checker:  checker,
		debounce: debounce,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: logger.WithModule("validation"),
	}
}

func descriptorFor(name string) (entities.Descriptor, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, desc := range models.Catalog {
		if desc.Table == name || strings.ToLower(desc.ItemType) == name {
			return desc, true
		}
	}
	return entities.Descriptor{}, false
}

func (h *ValidationHandler) parseTarget(c *gin.Context) (entities.Descriptor, string, entities.ID, bool) {
	desc, ok := descriptorFor(c.Query("entity"))
	if !ok {
		response.Error(c, apperrors.NewBadRequest("Entidade desconhecida"))
		return entities.Descriptor{}, "", entities.ID{}, false
	}

	field := c.Query("field")
	if _, ok := desc.UniqueFieldByName(field); !ok {
		response.Error(c, apperrors.NewBadRequest("Campo sem regra de unicidade"))
		return entities.Descriptor{}, "", entities.ID{}, false
	}

	var exclude entities.ID
	if raw := c.Query("exclude_id"); raw != "" {
		id, err := entities.ParseID(desc.IDKind, raw)
		if err != nil {
			response.Error(c, apperrors.NewBadRequest("Identificador inválido"))
			return entities.Descriptor{}, "", entities.ID{}, false
		}
		exclude = id
	}

	return desc, field, exclude, true
}

// CheckUnique answers a single uniqueness probe.
func (h *ValidationHandler) CheckUnique(c *gin.Context) {
	desc, field, exclude, ok := h.parseTarget(c)
	if !ok {
		return
	}

	dup, err := h.checker.IsDuplicate(c.Request.Context(), uniqueness.Request{
		Descriptor: desc,
		Field:      field,
		Value:      c.Query("value"),
		ExcludeID:  exclude,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"is_duplicate": dup})
}

type validationInbound struct {
	Value string `json:"value"`
}

type validationOutbound struct {
	IsDuplicate bool   `json:"is_duplicate"`
	IsChecking  bool   `json:"is_checking"`
	Error       string `json:"error,omitempty"`
}

// Stream upgrades to WebSocket and validates each received value through a
// connection-scoped debounced validator. The validator cache lives and dies
// with the connection.
func (h *ValidationHandler) Stream(c *gin.Context) {
	desc, field, exclude, ok := h.parseTarget(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	var writeMu sync.Mutex
	push := func(state uniqueness.State) {
		out := validationOutbound{
			IsDuplicate: state.IsDuplicate,
			IsChecking:  state.IsChecking,
		}
		if state.Err != nil {
			out.Error = "validation unavailable"
		}

		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteJSON(out); err != nil {
			h.log.Debug("websocket write failed", zap.Error(err))
		}
	}

	validator := uniqueness.NewDebouncedValidator(
		h.checker.Func(desc, field, exclude),
		uniqueness.Options{Debounce: h.debounce, OnChange: push},
	)
	defer validator.Close()

	for {
		var in validationInbound
		if err := conn.ReadJSON(&in); err != nil {
			return
		}
		validator.SetValue(in.Value)
	}
}
