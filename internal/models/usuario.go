package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sigpat/sigpat/internal/entities"
	"github.com/sigpat/sigpat/pkg/crypto"
)

// Usuario is an administrative user. Unlike the other registry entities it is
// keyed by UUID and carries credentials, which never appear in snapshots or
// audit metadata.
type Usuario struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Nome         string `gorm:"not null" json:"nome"`
	Email        string `gorm:"not null" json:"email"`
	CPF          string `gorm:"column:cpf" json:"cpf"`
	PasswordHash string `gorm:"not null" json:"-"`
	// Password is the write-only plaintext accepted on create and hashed
	// before the row is stored.
	Password string `gorm:"-" json:"password,omitempty"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *Usuario) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.PasswordHash == "" && u.Password != "" {
		hash, err := crypto.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
		u.Password = ""
	}
	return nil
}

func (u *Usuario) EntityID() entities.ID { return entities.StringID(u.ID) }
func (u *Usuario) DisplayName() string   { return u.Nome }

func (u *Usuario) Snapshot() map[string]any {
	return map[string]any{
		"nome":  u.Nome,
		"email": u.Email,
		"cpf":   u.CPF,
	}
}

func (u *Usuario) Apply(values map[string]any) {
	applyString(values, "nome", &u.Nome)
	applyString(values, "email", &u.Email)
	applyString(values, "cpf", &u.CPF)
}
