package uniqueness

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sigpat/sigpat/internal/entities"
	"github.com/sigpat/sigpat/internal/models"
)

func openCheckerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Orgao{}, &models.Area{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func TestIsDuplicateNormalizesBeforeComparing(t *testing.T) {
	db := openCheckerTestDB(t)
	checker, err := NewChecker(db)
	require.NoError(t, err)

	// stored values are already canonical: digits only for CNPJ
	require.NoError(t, db.Create(&models.Orgao{
		Nome: "Secretaria de Fazenda",
		CNPJ: "11222333000181",
	}).Error)

	dup, err := checker.IsDuplicate(context.Background(), Request{
		Descriptor: models.OrgaoEntity,
		Field:      "cnpj",
		Value:      "11.222.333/0001-81",
	})
	require.NoError(t, err)
	require.True(t, dup)

	dup, err = checker.IsDuplicate(context.Background(), Request{
		Descriptor: models.OrgaoEntity,
		Field:      "cnpj",
		Value:      "99.888.777/0001-66",
	})
	require.NoError(t, err)
	require.False(t, dup)
}

func TestIsDuplicateEmptyValueSkipsLookup(t *testing.T) {
	checker, err := NewChecker(openCheckerTestDB(t))
	require.NoError(t, err)

	for _, value := range []string{"", "   ", "..//-"} {
		dup, err := checker.IsDuplicate(context.Background(), Request{
			Descriptor: models.OrgaoEntity,
			Field:      "cnpj",
			Value:      value,
		})
		require.NoError(t, err)
		require.False(t, dup, "value %q normalizes to empty and must never be a duplicate", value)
	}
}

func TestIsDuplicateRejectsUnknownField(t *testing.T) {
	checker, err := NewChecker(openCheckerTestDB(t))
	require.NoError(t, err)

	_, err = checker.IsDuplicate(context.Background(), Request{
		Descriptor: models.AreaEntity,
		Field:      "nome; DROP TABLE areas",
		Value:      "x",
	})
	require.Error(t, err)
}

func TestIsDuplicateExcludesOwnRecord(t *testing.T) {
	db := openCheckerTestDB(t)
	checker, err := NewChecker(db)
	require.NoError(t, err)

	area := models.Area{Nome: "Tecnologia"}
	require.NoError(t, db.Create(&area).Error)

	dup, err := checker.IsDuplicate(context.Background(), Request{
		Descriptor: models.AreaEntity,
		Field:      "nome",
		Value:      "Tecnologia",
		ExcludeID:  area.EntityID(),
	})
	require.NoError(t, err)
	require.False(t, dup)

	dup, err = checker.IsDuplicate(context.Background(), Request{
		Descriptor: models.AreaEntity,
		Field:      "nome",
		Value:      "Tecnologia",
	})
	require.NoError(t, err)
	require.True(t, dup)
}

func TestIsDuplicateIgnoresInactiveRecords(t *testing.T) {
	db := openCheckerTestDB(t)
	checker, err := NewChecker(db)
	require.NoError(t, err)

	area := models.Area{Nome: "Tecnologia"}
	require.NoError(t, db.Create(&area).Error)
	require.NoError(t, db.Table("areas").Where("id = ?", area.ID).
		Update("is_deleted", true).Error)

	dup, err := checker.IsDuplicate(context.Background(), Request{
		Descriptor: models.AreaEntity,
		Field:      "nome",
		Value:      "Tecnologia ",
	})
	require.NoError(t, err)
	require.False(t, dup)
}

func TestIsDuplicatePropagatesStoreErrors(t *testing.T) {
	db := openCheckerTestDB(t)
	checker, err := NewChecker(db)
	require.NoError(t, err)

	require.NoError(t, db.Migrator().DropTable("areas"))

	_, err = checker.IsDuplicate(context.Background(), Request{
		Descriptor: models.AreaEntity,
		Field:      "nome",
		Value:      "Tecnologia",
	})
	require.Error(t, err)
}

func TestFuncBindsDescriptorAndExclusion(t *testing.T) {
	db := openCheckerTestDB(t)
	checker, err := NewChecker(db)
	require.NoError(t, err)

	area := models.Area{Nome: "Tecnologia"}
	require.NoError(t, db.Create(&area).Error)

	check := checker.Func(models.AreaEntity, "nome", area.EntityID())
	dup, err := check(context.Background(), "Tecnologia")
	require.NoError(t, err)
	require.False(t, dup)

	check = checker.Func(models.AreaEntity, "nome", entities.ID{})
	dup, err = check(context.Background(), "Tecnologia")
	require.NoError(t, err)
	require.True(t, dup)
}
