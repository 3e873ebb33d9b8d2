package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sigpat/sigpat/internal/entities"
	"github.com/sigpat/sigpat/internal/models"
	"github.com/sigpat/sigpat/pkg/logger"
)

// LifecycleService coordinates the Orgao/Unidade dependency during
// deactivation. A parent with active dependents cannot be toggled directly;
// the caller must either surface the blocking list or confirm a cascade, which
// deactivates the parent and every fetched child with one audit entry each.
type LifecycleService struct {
	db       *gorm.DB
	orgaos   *EntityService[models.Orgao, *models.Orgao]
	unidades *EntityService[models.Unidade, *models.Unidade]
	log      *zap.Logger
}

// NewLifecycleService constructs the lifecycle coordinator.
func NewLifecycleService(
	db *gorm.DB,
	orgaos *EntityService[models.Orgao, *models.Orgao],
	unidades *EntityService[models.Unidade, *models.Unidade],
) (*LifecycleService, error) {
	if db == nil {
		return nil, errors.New("lifecycle service: db is required")
	}
	if orgaos == nil || unidades == nil {
		return nil, errors.New("lifecycle service: entity services are required")
	}
	return &LifecycleService{
		db:       db,
		orgaos:   orgaos,
		unidades: unidades,
		log:      logger.WithModule("lifecycle"),
	}, nil
}

// ActiveDependents lists the active Unidades linked to an Orgao.
func (s *LifecycleService) ActiveDependents(ctx context.Context, orgaoID entities.ID) ([]Dependent, error) {
	ctx = ensureContext(ctx)

	var unidades []models.Unidade
	err := s.db.WithContext(ctx).
		Where("orgao_id = ? AND is_deleted = ?", orgaoID.Value(), false).
		Order("id ASC").
		Find(&unidades).Error
	if err != nil {
		return nil, fmt.Errorf("lifecycle: list dependents of orgao %s: %w", orgaoID, err)
	}

	deps := make([]Dependent, 0, len(unidades))
	for _, u := range unidades {
		deps = append(deps, Dependent{
			ItemType: s.unidades.Descriptor().ItemType,
			ItemID:   strconv.FormatUint(uint64(u.ID), 10),
			Nome:     u.Nome,
		})
	}
	return deps, nil
}

// ToggleOrgao toggles an Orgao, refusing deactivation while active dependents
// exist. The repository toggle is never attempted in the blocked case.
func (s *LifecycleService) ToggleOrgao(ctx context.Context, id entities.ID) (*models.Orgao, error) {
	ctx = ensureContext(ctx)

	rec, err := s.orgaos.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if rec.Active() {
		deps, err := s.ActiveDependents(ctx, id)
		if err != nil {
			return nil, err
		}
		if len(deps) > 0 {
			return nil, &CascadeBlockedError{
				ItemType:   s.orgaos.Descriptor().ItemType,
				ItemID:     id.String(),
				Dependents: deps,
			}
		}
	}

	return s.orgaos.Toggle(ctx, id)
}

// DeactivateOrgaoCascade deactivates an Orgao together with every currently
// active Unidade linked to it. Each affected entity gets its own audit entry
// so its individual history stays complete.
func (s *LifecycleService) DeactivateOrgaoCascade(ctx context.Context, id entities.ID) error {
	ctx = ensureContext(ctx)

	rec, err := s.orgaos.Get(ctx, id)
	if err != nil {
		return err
	}
	if !rec.Active() {
		return fmt.Errorf("lifecycle: orgao %s is already inactive", id)
	}

	deps, err := s.ActiveDependents(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.orgaos.Toggle(ctx, id); err != nil {
		return err
	}

	var errs error
	for _, dep := range deps {
		depID, err := entities.ParseID(entities.IDNumeric, dep.ItemID)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if _, err := s.unidades.Toggle(ctx, depID); err != nil {
			s.log.Error("cascade deactivation failed for dependent",
				zap.String("orgao_id", id.String()),
				zap.String("unidade_id", dep.ItemID),
				zap.Error(err),
			)
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}
