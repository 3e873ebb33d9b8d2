package uniqueness

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sigpat/sigpat/internal/entities"
	"github.com/sigpat/sigpat/pkg/logger"
	"github.com/sigpat/sigpat/pkg/metrics"
)

// Checker answers "is this business-key value already taken by an active
// record". Inactive (soft-deleted) records never count as conflicts; the
// partial unique indexes created at migration time back this rule at commit.
type Checker struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewChecker builds a Checker over the shared database handle.
func NewChecker(db *gorm.DB) (*Checker, error) {
	if db == nil {
		return nil, errors.New("uniqueness: database handle is required")
	}
	return &Checker{db: db, log: logger.WithModule("uniqueness")}, nil
}

// Request identifies one lookup. Field must be declared unique in the
// descriptor; arbitrary column names are rejected before any SQL is built.
type Request struct {
	Descriptor entities.Descriptor
	Field      string
	Value      string
	// ExcludeID removes the record being edited from consideration so a
	// record never conflicts with itself.
	ExcludeID entities.ID
}

// IsDuplicate reports whether an active record other than ExcludeID already
// holds the normalized value. An empty normalized value is never a duplicate
// and costs no query. Store errors are returned to the caller, not guessed at.
func (c *Checker) IsDuplicate(ctx context.Context, req Request) (bool, error) {
	field, ok := req.Descriptor.UniqueFieldByName(req.Field)
	if !ok {
		return false, fmt.Errorf("uniqueness: field %q is not a unique field of %s", req.Field, req.Descriptor.ItemType)
	}

	normalized := entities.Normalize(field.Kind, req.Value)
	if normalized == "" {
		return false, nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	query := c.db.WithContext(ctx).
		Table(req.Descriptor.Table).
		Where(fmt.Sprintf("%s = ?", field.Name), normalized).
		Where("is_deleted = ?", false)
	if !req.ExcludeID.IsZero() {
		query = query.Where("id <> ?", req.ExcludeID.Value())
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		metrics.UniquenessChecks.WithLabelValues(req.Descriptor.ItemType, field.Name, "error").Inc()
		c.log.Warn("uniqueness lookup failed",
			zap.String("entity", req.Descriptor.ItemType),
			zap.String("field", field.Name),
			zap.Error(err))
		return false, fmt.Errorf("uniqueness: lookup %s.%s: %w", req.Descriptor.Table, field.Name, err)
	}

	result := "available"
	if count > 0 {
		result = "duplicate"
	}
	metrics.UniquenessChecks.WithLabelValues(req.Descriptor.ItemType, field.Name, result).Inc()

	return count > 0, nil
}

// Func binds a descriptor, field and exclusion into a CheckFunc for the
// debounced validator, which only varies the value.
func (c *Checker) Func(desc entities.Descriptor, field string, exclude entities.ID) CheckFunc {
	return func(ctx context.Context, value string) (bool, error) {
		return c.IsDuplicate(ctx, Request{
			Descriptor: desc,
			Field:      field,
			Value:      value,
			ExcludeID:  exclude,
		})
	}
}
