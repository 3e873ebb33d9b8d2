package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/sigpat/sigpat/internal/entities"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("repository: record not found")

// DuplicateKeyError reports a store-level uniqueness violation translated into
// domain terms. It is the commit-time guard against the race where two clients
// pass the client-side uniqueness check simultaneously.
type DuplicateKeyError struct {
	ItemType string
	Field    string
}

func (e *DuplicateKeyError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: valor duplicado para %s", e.ItemType, e.Field)
	}
	return fmt.Sprintf("%s: valor duplicado", e.ItemType)
}

// IsDuplicate reports whether err carries a duplicate-key violation.
func IsDuplicate(err error) bool {
	var dup *DuplicateKeyError
	return errors.As(err, &dup)
}

// translateError maps store errors into domain errors, attributing uniqueness
// violations to the specific unique field when the driver message names it.
func translateError(desc entities.Descriptor, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if !isUniqueConstraintError(err) {
		return err
	}

	return &DuplicateKeyError{
		ItemType: desc.ItemType,
		Field:    matchUniqueField(desc, err),
	}
}

func matchUniqueField(desc entities.Descriptor, err error) string {
	msg := strings.ToLower(err.Error())
	for _, u := range desc.Unique {
		if strings.Contains(msg, strings.ToLower(u.Name)) {
			return u.Name
		}
	}
	if len(desc.Unique) > 0 {
		return desc.Unique[0].Name
	}
	return ""
}

// isUniqueConstraintError detects database uniqueness constraint violations across vendors.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr != nil && pgErr.Code == "23505" {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr != nil && myErr.Number == 1062 {
		return true
	}

	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "unique") ||
		strings.Contains(lower, "duplicate") ||
		strings.Contains(lower, "constraint")
}
