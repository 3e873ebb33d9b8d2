package models

import (
	"time"

	"github.com/sigpat/sigpat/internal/entities"
)

// Unidade is an organizational unit linked to an Orgao. It is the dependent
// side of cascade deactivation.
type Unidade struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	OrgaoID uint   `gorm:"not null;index" json:"orgao_id"`
	Nome    string `gorm:"not null" json:"nome"`
	Codigo  string `json:"codigo"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *Unidade) EntityID() entities.ID { return entities.NumericID(int64(u.ID)) }
func (u *Unidade) DisplayName() string   { return u.Nome }

func (u *Unidade) Snapshot() map[string]any {
	return map[string]any{
		"nome":   u.Nome,
		"codigo": u.Codigo,
	}
}

func (u *Unidade) Apply(values map[string]any) {
	applyString(values, "nome", &u.Nome)
	applyString(values, "codigo", &u.Codigo)
}
