package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sigpat/sigpat/internal/models"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Orgao{},
		&models.Unidade{},
		&models.Area{},
		&models.FonteRecurso{},
		&models.Usuario{},
		&models.AuditLog{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func newAreaService(t *testing.T, db *gorm.DB, audit *AuditRecorder) *EntityService[models.Area, *models.Area] {
	t.Helper()
	svc, err := NewEntityService[models.Area, *models.Area](db, audit, models.AreaEntity)
	require.NoError(t, err)
	return svc
}

func newAuditRecorder(t *testing.T, db *gorm.DB) *AuditRecorder {
	t.Helper()
	rec, err := NewAuditRecorder(db)
	require.NoError(t, err)
	return rec
}

func dropAuditTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Migrator().DropTable(&models.AuditLog{}))
}
