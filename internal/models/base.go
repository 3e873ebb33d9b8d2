package models

import "time"

// Lifecycle status labels used in audit metadata.
const (
	StatusActive   = "Ativo"
	StatusInactive = "Inativo"
)

// StatusLabel renders the lifecycle state of a record.
func StatusLabel(active bool) string {
	if active {
		return StatusActive
	}
	return StatusInactive
}

// SoftDelete provides the activation pair shared by all registry entities.
// IsDeleted=false means "Ativo"; deactivation stamps DeletedAt, reactivation
// clears it. Records are never physically removed through this subsystem.
type SoftDelete struct {
	IsDeleted bool       `gorm:"column:is_deleted;not null;default:false;index" json:"is_deleted"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
}

// Active reports the lifecycle state.
func (s SoftDelete) Active() bool { return !s.IsDeleted }

// Status returns the human label for the current state.
func (s SoftDelete) Status() string { return StatusLabel(s.Active()) }
