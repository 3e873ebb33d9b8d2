package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sigpat/sigpat/internal/models"
	"github.com/sigpat/sigpat/pkg/crypto"
	"github.com/sigpat/sigpat/pkg/logger"
)

// AutoMigrate creates or updates the schema for every registry model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Orgao{},
		&models.Unidade{},
		&models.Area{},
		&models.FonteRecurso{},
		&models.Usuario{},
		&models.AuditLog{},
	)
}

// EnsureUniqueIndexes creates partial unique indexes covering only active
// rows, so a soft-deleted record never blocks reuse of its business keys and
// a reactivation race still fails at commit with a unique violation.
//
// MySQL has no partial indexes; there the application-level check in the
// uniqueness package is the only pre-commit guard.
func EnsureUniqueIndexes(db *gorm.DB) error {
	var active string
	switch db.Dialector.Name() {
	case "sqlite":
		active = "is_deleted = 0"
	case "postgres":
		active = "NOT is_deleted"
	default:
		logger.Warn("partial unique indexes unsupported, relying on application checks",
			zap.String("driver", db.Dialector.Name()))
		return nil
	}

	for _, desc := range models.Catalog {
		for _, unique := range desc.Unique {
			stmt := fmt.Sprintf(
				"CREATE UNIQUE INDEX IF NOT EXISTS uniq_%s_%s_active ON %s (%s) WHERE %s",
				desc.Table, unique.Name, desc.Table, unique.Name, active,
			)
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index %s.%s: %w", desc.Table, unique.Name, err)
			}
		}
	}
	return nil
}

// SeedData creates the root operator on first start. Subsequent starts are
// no-ops; the root account is never recreated or repassworded here.
func SeedData(db *gorm.DB, rootPassword string) error {
	var count int64
	if err := db.Model(&models.Usuario{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if rootPassword == "" {
		token, err := crypto.GenerateToken(12)
		if err != nil {
			return err
		}
		rootPassword = token
		logger.Warn("generated root password, change it after first login",
			zap.String("password", rootPassword))
	}

	hash, err := crypto.HashPassword(rootPassword)
	if err != nil {
		return err
	}

	root := models.Usuario{
		Nome:         "Administrador",
		Email:        "admin@sigpat.gov.br",
		CPF:          "00000000000",
		PasswordHash: hash,
	}
	return db.Create(&root).Error
}
