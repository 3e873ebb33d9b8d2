package models

import (
	"time"

	"github.com/sigpat/sigpat/internal/entities"
)

// Area is an organizational area (e.g. "TI").
type Area struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Nome      string `gorm:"not null" json:"nome"`
	Descricao string `json:"descricao"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Area) EntityID() entities.ID { return entities.NumericID(int64(a.ID)) }
func (a *Area) DisplayName() string   { return a.Nome }

func (a *Area) Snapshot() map[string]any {
	return map[string]any{
		"nome":      a.Nome,
		"descricao": a.Descricao,
	}
}

func (a *Area) Apply(values map[string]any) {
	applyString(values, "nome", &a.Nome)
	applyString(values, "descricao", &a.Descricao)
}
