package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sigpat/sigpat/internal/actor"
	"github.com/sigpat/sigpat/internal/models"
	"github.com/sigpat/sigpat/pkg/logger"
	"github.com/sigpat/sigpat/pkg/metrics"
)

// ActionType tags the kind of change an audit entry describes.
type ActionType string

const (
	ActionCreate     ActionType = "create"
	ActionEdit       ActionType = "edit"
	ActionActivate   ActionType = "activate"
	ActionDeactivate ActionType = "deactivate"
	ActionDelete     ActionType = "delete"
)

// Label returns the human-facing summary for the action.
func (a ActionType) Label() string {
	switch a {
	case ActionCreate:
		return "Criação"
	case ActionEdit:
		return "Edição"
	case ActionActivate:
		return "Ativação"
	case ActionDeactivate:
		return "Desativação"
	case ActionDelete:
		return "Exclusão"
	default:
		return string(a)
	}
}

// AuditEntry captures a single audit event to persist. Actor attribution is
// resolved from the context at record time.
type AuditEntry struct {
	ItemType    string
	ItemID      string
	ItemName    string
	Action      ActionType
	Label       string
	Description string
	Metadata    map[string]any
}

// AuditRecorder persists and retrieves audit log entries. Record is strictly
// fire-and-forget: it carries no error channel, and a total audit-store outage
// must never affect the business mutation that preceded it.
type AuditRecorder struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewAuditRecorder constructs an AuditRecorder using the provided database handle.
func NewAuditRecorder(db *gorm.DB) (*AuditRecorder, error) {
	if db == nil {
		return nil, errors.New("audit recorder: db is required")
	}
	return &AuditRecorder{
		db:  db,
		log: logger.WithModule("audit"),
	}, nil
}

// Record stores an audit entry. Invalid entries and store failures are logged
// and swallowed; callers must be able to treat Record as fire-and-forget.
func (r *AuditRecorder) Record(ctx context.Context, entry AuditEntry) {
	ctx = ensureContext(ctx)

	if entry.Label == "" {
		entry.Label = entry.Action.Label()
	}

	if strings.TrimSpace(entry.ItemID) == "" ||
		strings.TrimSpace(string(entry.Action)) == "" ||
		strings.TrimSpace(entry.Label) == "" {
		r.log.Warn("audit entry dropped: missing required fields",
			zap.String("item_type", entry.ItemType),
			zap.String("item_id", entry.ItemID),
			zap.String("action", string(entry.Action)),
		)
		return
	}

	performedBy, performedByName := actor.Attribution(ctx)

	record := models.AuditLog{
		ItemType:          strings.TrimSpace(entry.ItemType),
		ItemID:            strings.TrimSpace(entry.ItemID),
		ItemName:          strings.TrimSpace(entry.ItemName),
		ActionType:        string(entry.Action),
		ActionLabel:       strings.TrimSpace(entry.Label),
		ActionDescription: strings.TrimSpace(entry.Description),
		PerformedBy:       performedBy,
		PerformedByName:   performedByName,
		Metadata:          r.sanitizeMetadata(entry.Metadata),
	}

	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		metrics.AuditWriteFailures.Inc()
		r.log.Error("audit write failed",
			zap.String("item_type", record.ItemType),
			zap.String("item_id", record.ItemID),
			zap.String("action", record.ActionType),
			zap.Error(err),
		)
	}
}

// History returns the audit entries for one record, newest first. Audit history
// is supplementary UI: on storage error it returns an empty list.
func (r *AuditRecorder) History(ctx context.Context, itemType, itemID string) []models.AuditLog {
	ctx = ensureContext(ctx)

	var logs []models.AuditLog
	err := r.db.WithContext(ctx).
		Where("item_type = ? AND item_id = ?", itemType, itemID).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		r.log.Error("audit history query failed",
			zap.String("item_type", itemType),
			zap.String("item_id", itemID),
			zap.Error(err),
		)
		return []models.AuditLog{}
	}
	return logs
}

// CleanupOlderThan removes audit logs older than the supplied retention window
// (in days). Retention enforcement is the one sanctioned deletion path.
func (r *AuditRecorder) CleanupOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	ctx = ensureContext(ctx)

	if retentionDays <= 0 {
		return 0, errors.New("audit recorder: retentionDays must be positive")
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.AuditLog{})
	if result.Error != nil {
		return 0, fmt.Errorf("audit recorder: cleanup logs: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// sanitizeMetadata deep-clones the metadata through a JSON round trip, key by
// key, so one non-serializable value drops that key instead of corrupting the
// whole payload.
func (r *AuditRecorder) sanitizeMetadata(meta map[string]any) datatypes.JSON {
	if len(meta) == 0 {
		return nil
	}

	clean := make(map[string]json.RawMessage, len(meta))
	for key, value := range meta {
		encoded, err := json.Marshal(value)
		if err != nil {
			r.log.Debug("audit metadata field dropped",
				zap.String("field", key),
				zap.Error(err),
			)
			continue
		}
		clean[key] = encoded
	}

	payload, err := json.Marshal(clean)
	if err != nil {
		return nil
	}
	return datatypes.JSON(payload)
}
