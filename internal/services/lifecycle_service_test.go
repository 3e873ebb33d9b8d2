package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sigpat/sigpat/internal/models"
)

type lifecycleFixture struct {
	db       *gorm.DB
	orgaos   *EntityService[models.Orgao, *models.Orgao]
	unidades *EntityService[models.Unidade, *models.Unidade]
	svc      *LifecycleService
}

func newLifecycleFixture(t *testing.T) *lifecycleFixture {
	t.Helper()

	db := openServiceTestDB(t)
	audit := newAuditRecorder(t, db)

	orgaos, err := NewEntityService[models.Orgao, *models.Orgao](db, audit, models.OrgaoEntity)
	require.NoError(t, err)
	unidades, err := NewEntityService[models.Unidade, *models.Unidade](db, audit, models.UnidadeEntity)
	require.NoError(t, err)

	svc, err := NewLifecycleService(db, orgaos, unidades)
	require.NoError(t, err)

	return &lifecycleFixture{db: db, orgaos: orgaos, unidades: unidades, svc: svc}
}

func (f *lifecycleFixture) seedOrgaoWithUnits(t *testing.T, units int) *models.Orgao {
	t.Helper()
	ctx := context.Background()

	orgao, err := f.orgaos.Create(ctx, &models.Orgao{
		Nome: "Secretaria de Fazenda",
		CNPJ: "11.222.333/0001-81",
	})
	require.NoError(t, err)

	for i := 0; i < units; i++ {
		_, err := f.unidades.Create(ctx, &models.Unidade{
			OrgaoID: orgao.ID,
			Nome:    "Unidade " + string(rune('A'+i)),
			Codigo:  "U" + string(rune('A'+i)),
		})
		require.NoError(t, err)
	}
	return orgao
}

func TestDeactivateBlockedByActiveDependents(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	orgao := f.seedOrgaoWithUnits(t, 2)

	_, err := f.svc.ToggleOrgao(ctx, orgao.EntityID())
	require.Error(t, err)

	var blocked *CascadeBlockedError
	require.ErrorAs(t, err, &blocked)
	require.Len(t, blocked.Dependents, 2)
	require.Equal(t, "Orgao", blocked.ItemType)

	// the direct toggle must never have been attempted
	reloaded, err := f.orgaos.Get(ctx, orgao.EntityID())
	require.NoError(t, err)
	require.True(t, reloaded.Active())

	// and no lifecycle audit entry exists for the orgao
	logs := auditEntriesFor(t, f.db, "Orgao", orgao.EntityID().String())
	require.Len(t, logs, 1)
	require.Equal(t, "create", logs[0].ActionType)
}

func TestCascadeDeactivatesParentAndEveryChild(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	orgao := f.seedOrgaoWithUnits(t, 2)

	require.NoError(t, f.svc.DeactivateOrgaoCascade(ctx, orgao.EntityID()))

	reloaded, err := f.orgaos.Get(ctx, orgao.EntityID())
	require.NoError(t, err)
	require.False(t, reloaded.Active())

	var unidades []models.Unidade
	require.NoError(t, f.db.Where("orgao_id = ?", orgao.ID).Find(&unidades).Error)
	require.Len(t, unidades, 2)
	for _, u := range unidades {
		require.True(t, u.IsDeleted)
	}

	// one deactivation audit entry per affected entity, not a single bulk entry
	var count int64
	require.NoError(t, f.db.Model(&models.AuditLog{}).
		Where("action_type = ?", "deactivate").
		Count(&count).Error)
	require.Equal(t, int64(3), count)
}

func TestToggleOrgaoWithoutDependents(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	orgao := f.seedOrgaoWithUnits(t, 0)

	toggled, err := f.svc.ToggleOrgao(ctx, orgao.EntityID())
	require.NoError(t, err)
	require.False(t, toggled.Active())

	// reactivation skips the dependent check entirely
	toggled, err = f.svc.ToggleOrgao(ctx, orgao.EntityID())
	require.NoError(t, err)
	require.True(t, toggled.Active())
}

func TestInactiveDependentsDoNotBlock(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	orgao := f.seedOrgaoWithUnits(t, 1)

	var unidade models.Unidade
	require.NoError(t, f.db.Where("orgao_id = ?", orgao.ID).First(&unidade).Error)
	_, err := f.unidades.Toggle(ctx, unidade.EntityID())
	require.NoError(t, err)

	toggled, err := f.svc.ToggleOrgao(ctx, orgao.EntityID())
	require.NoError(t, err)
	require.False(t, toggled.Active())
}

func TestCascadeOnInactiveOrgaoFails(t *testing.T) {
	f := newLifecycleFixture(t)
	ctx := context.Background()
	orgao := f.seedOrgaoWithUnits(t, 0)

	_, err := f.svc.ToggleOrgao(ctx, orgao.EntityID())
	require.NoError(t, err)

	require.Error(t, f.svc.DeactivateOrgaoCascade(ctx, orgao.EntityID()))
}
