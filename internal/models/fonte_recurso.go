package models

import (
	"time"

	"github.com/sigpat/sigpat/internal/entities"
)

// FonteRecurso is a funding source identified by a short code.
type FonteRecurso struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Nome   string `gorm:"not null" json:"nome"`
	Codigo string `gorm:"not null" json:"codigo"`
	SoftDelete
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *FonteRecurso) EntityID() entities.ID { return entities.NumericID(int64(f.ID)) }
func (f *FonteRecurso) DisplayName() string   { return f.Nome }

func (f *FonteRecurso) Snapshot() map[string]any {
	return map[string]any{
		"nome":   f.Nome,
		"codigo": f.Codigo,
	}
}

func (f *FonteRecurso) Apply(values map[string]any) {
	applyString(values, "nome", &f.Nome)
	applyString(values, "codigo", &f.Codigo)
}
