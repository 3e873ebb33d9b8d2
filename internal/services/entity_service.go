package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sigpat/sigpat/internal/entities"
	"github.com/sigpat/sigpat/internal/models"
	"github.com/sigpat/sigpat/internal/repository"
	"github.com/sigpat/sigpat/internal/uniqueness"
	apperrors "github.com/sigpat/sigpat/pkg/errors"
	"github.com/sigpat/sigpat/pkg/logger"
	"github.com/sigpat/sigpat/pkg/metrics"
)

// EntityService drives the mutation flow for one entity type: repository write
// first, change diff next, audit record last. One instantiation per entity
// replaces the near-identical per-entity service files of the original system.
type EntityService[T any, PT interface {
	*T
	entities.Record
}] struct {
	repo    *repository.Repository[T, PT]
	audit   *AuditRecorder
	checker *uniqueness.Checker
	desc    entities.Descriptor
	log     *zap.Logger
}

// NewEntityService constructs the service and its repository for a descriptor.
func NewEntityService[T any, PT interface {
	*T
	entities.Record
}](db *gorm.DB, audit *AuditRecorder, desc entities.Descriptor) (*EntityService[T, PT], error) {
	if audit == nil {
		return nil, errors.New("entity service: audit recorder is required")
	}

	repo, err := repository.New[T, PT](db, desc)
	if err != nil {
		return nil, err
	}

	checker, err := uniqueness.NewChecker(db)
	if err != nil {
		return nil, err
	}

	return &EntityService[T, PT]{
		repo:    repo,
		audit:   audit,
		checker: checker,
		desc:    desc,
		log:     logger.WithModule("entity").With(zap.String("entity", desc.ItemType)),
	}, nil
}

// Descriptor exposes the entity metadata this service is bound to.
func (s *EntityService[T, PT]) Descriptor() entities.Descriptor {
	return s.desc
}

// List returns all records of the entity.
func (s *EntityService[T, PT]) List(ctx context.Context) ([]T, error) {
	return s.repo.List(ctx)
}

// Get loads a record by identifier.
func (s *EntityService[T, PT]) Get(ctx context.Context, id entities.ID) (PT, error) {
	return s.repo.GetByID(ctx, id)
}

// Create normalizes, validates, and persists a new record, then audits it with
// the full created data. The audit write happens strictly after the store
// commit and cannot fail the creation.
func (s *EntityService[T, PT]) Create(ctx context.Context, rec PT) (PT, error) {
	ctx = ensureContext(ctx)

	rec.Apply(s.desc.NormalizeValues(rec.Snapshot()))
	if err := s.checkRequired(rec.Snapshot()); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, rec.Snapshot(), entities.ID{}); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, AuditEntry{
		ItemType:    s.desc.ItemType,
		ItemID:      created.EntityID().String(),
		ItemName:    created.DisplayName(),
		Action:      ActionCreate,
		Description: "Registro criado.",
		Metadata: map[string]any{
			"created_data": created.Snapshot(),
		},
	})

	return created, nil
}

// Update fetches the pre-mutation record, applies the normalized patch, and
// audits the resulting change set. A patch that only touches bookkeeping keys
// or changes nothing after normalization produces no audit entry.
func (s *EntityService[T, PT]) Update(ctx context.Context, id entities.ID, values map[string]any) (PT, error) {
	ctx = ensureContext(ctx)

	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldValues := before.Snapshot()
	oldName := before.DisplayName()

	patch := s.desc.NormalizeValues(values)
	if len(patch) == 0 {
		return before, nil
	}
	if err := s.checkUnique(ctx, patch, id); err != nil {
		return nil, err
	}

	after, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	change := entities.Diff(oldValues, after.Snapshot(), s.desc.Tracked)
	if change.HasChanges() {
		s.audit.Record(ctx, AuditEntry{
			ItemType:    s.desc.ItemType,
			ItemID:      after.EntityID().String(),
			ItemName:    oldName,
			Action:      ActionEdit,
			Description: change.Description(),
			Metadata: map[string]any{
				"old_values": change.OldValues,
				"new_values": change.NewValues,
				"changes":    change.Labels,
			},
		})
	}

	return after, nil
}

// Toggle flips the record between Active and Inactive. The repository write
// must succeed before any audit entry is produced; on failure the error is
// propagated and nothing is logged.
func (s *EntityService[T, PT]) Toggle(ctx context.Context, id entities.ID) (PT, error) {
	ctx = ensureContext(ctx)

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	wasActive := rec.Active()

	if err := s.repo.ToggleStatus(ctx, id, wasActive); err != nil {
		return nil, err
	}

	action := ActionActivate
	if wasActive {
		action = ActionDeactivate
	}
	metrics.LifecycleTransitions.WithLabelValues(s.desc.ItemType, string(action)).Inc()

	s.audit.Record(ctx, AuditEntry{
		ItemType: s.desc.ItemType,
		ItemID:   id.String(),
		ItemName: rec.DisplayName(),
		Action:   action,
		Description: fmt.Sprintf("Status alterado de %s para %s.",
			models.StatusLabel(wasActive), models.StatusLabel(!wasActive)),
		Metadata: map[string]any{
			"previous_status": models.StatusLabel(wasActive),
			"new_status":      models.StatusLabel(!wasActive),
		},
	})

	return s.repo.GetByID(ctx, id)
}

// History returns the audit trail for one record, newest first.
func (s *EntityService[T, PT]) History(ctx context.Context, id entities.ID) []models.AuditLog {
	return s.audit.History(ctx, s.desc.ItemType, id.String())
}

// checkUnique is the pre-commit duplicate guard over the supplied values.
// The partial unique indexes re-check at commit where the store supports
// them; on MySQL this check is the only guard, so it runs on every mutation.
func (s *EntityService[T, PT]) checkUnique(ctx context.Context, values map[string]any, exclude entities.ID) error {
	for _, u := range s.desc.Unique {
		value, ok := values[u.Name].(string)
		if !ok || value == "" {
			continue
		}

		dup, err := s.checker.IsDuplicate(ctx, uniqueness.Request{
			Descriptor: s.desc,
			Field:      u.Name,
			Value:      value,
			ExcludeID:  exclude,
		})
		if err != nil {
			return err
		}
		if dup {
			return &repository.DuplicateKeyError{ItemType: s.desc.ItemType, Field: u.Name}
		}
	}
	return nil
}

func (s *EntityService[T, PT]) checkRequired(snapshot map[string]any) error {
	for _, name := range s.desc.Required {
		value, _ := snapshot[name].(string)
		if value == "" {
			field, _ := s.desc.FieldByName(name)
			return apperrors.NewBadRequest(fmt.Sprintf("%s é obrigatório", field.Label)).WithField(name)
		}
	}
	return nil
}
