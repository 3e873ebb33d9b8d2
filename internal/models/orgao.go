package models

import (
	"time"

	"github.com/sigpat/sigpat/internal/entities"
)

// Orgao is a government agency, the parent entity of the registry. Its
// deactivation may cascade to the Unidades linked to it.
type Orgao struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Nome  string `gorm:"not null" json:"nome"`
	Sigla string `json:"sigla"`
	CNPJ  string `gorm:"column:cnpj" json:"cnpj"`
	Email string `json:"email"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Unidades []Unidade `gorm:"foreignKey:OrgaoID" json:"unidades,omitempty"`
}

func (o *Orgao) EntityID() entities.ID { return entities.NumericID(int64(o.ID)) }
func (o *Orgao) DisplayName() string   { return o.Nome }

func (o *Orgao) Snapshot() map[string]any {
	return map[string]any{
		"nome":  o.Nome,
		"sigla": o.Sigla,
		"cnpj":  o.CNPJ,
		"email": o.Email,
	}
}

func (o *Orgao) Apply(values map[string]any) {
	applyString(values, "nome", &o.Nome)
	applyString(values, "sigla", &o.Sigla)
	applyString(values, "cnpj", &o.CNPJ)
	applyString(values, "email", &o.Email)
}
