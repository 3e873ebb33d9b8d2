package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sigpat/sigpat/internal/entities"
	"github.com/sigpat/sigpat/pkg/logger"
)

// Repository is the generic persistence layer instantiated once per entity
// type. Create and Update return the complete post-mutation record so callers
// can diff and audit full field values.
type Repository[T any, PT interface {
	*T
	entities.Record
}] struct {
	db   *gorm.DB
	desc entities.Descriptor
	log  *zap.Logger
}

// New constructs a repository bound to one entity descriptor.
func New[T any, PT interface {
	*T
	entities.Record
}](db *gorm.DB, desc entities.Descriptor) (*Repository[T, PT], error) {
	if db == nil {
		return nil, errors.New("repository: db is required")
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &Repository[T, PT]{
		db:   db,
		desc: desc,
		log:  logger.WithModule("repository").With(zap.String("entity", desc.ItemType)),
	}, nil
}

// Descriptor exposes the entity metadata this repository is bound to.
func (r *Repository[T, PT]) Descriptor() entities.Descriptor {
	return r.desc
}

// List returns every record, active and inactive, oldest first.
func (r *Repository[T, PT]) List(ctx context.Context) ([]T, error) {
	ctx = ensureContext(ctx)

	var records []T
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("repository: list %s: %w", r.desc.ItemType, err)
	}
	return records, nil
}

// GetByID loads a single record by its typed identifier.
func (r *Repository[T, PT]) GetByID(ctx context.Context, id entities.ID) (PT, error) {
	ctx = ensureContext(ctx)

	rec := PT(new(T))
	err := r.db.WithContext(ctx).First(rec, "id = ?", id.Value()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("repository: get %s %s: %w", r.desc.ItemType, id, err)
	}
	return rec, nil
}

// Create persists a new record and returns it with store-assigned fields
// (identifier, timestamps) populated.
func (r *Repository[T, PT]) Create(ctx context.Context, rec PT) (PT, error) {
	ctx = ensureContext(ctx)

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, translateError(r.desc, err)
	}
	return rec, nil
}

// Update applies a patch of tracked business fields and returns the complete
// post-mutation record. Lifecycle columns are stripped from the patch: only
// ToggleStatus may change them.
func (r *Repository[T, PT]) Update(ctx context.Context, id entities.ID, patch map[string]any) (PT, error) {
	ctx = ensureContext(ctx)

	patch = stripReservedColumns(patch)
	if len(patch) == 0 {
		return r.GetByID(ctx, id)
	}

	model := PT(new(T))
	result := r.db.WithContext(ctx).Model(model).Where("id = ?", id.Value()).Updates(patch)
	if result.Error != nil {
		return nil, translateError(r.desc, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// ToggleStatus is the only mutation allowed to change the soft-delete pair.
// Deactivation stamps deleted_at; reactivation clears it.
func (r *Repository[T, PT]) ToggleStatus(ctx context.Context, id entities.ID, isDeleted bool) error {
	ctx = ensureContext(ctx)

	updates := map[string]any{
		"is_deleted": isDeleted,
		"deleted_at": nil,
	}
	if isDeleted {
		updates["deleted_at"] = time.Now()
	}

	model := PT(new(T))
	result := r.db.WithContext(ctx).Model(model).Where("id = ?", id.Value()).Updates(updates)
	if result.Error != nil {
		return translateError(r.desc, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func stripReservedColumns(patch map[string]any) map[string]any {
	if patch == nil {
		return nil
	}
	out := make(map[string]any, len(patch))
	for key, value := range patch {
		switch key {
		case "id", "is_deleted", "deleted_at", "created_at", "updated_at":
			continue
		}
		out[key] = value
	}
	return out
}

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
