package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog is an immutable record of one mutation: who changed what, when, and
// why. Entries are written after the business mutation commits and are never
// updated or deleted by normal application flow.
type AuditLog struct {
	ID                string         `gorm:"primaryKey;type:uuid" json:"id"`
	ItemType          string         `gorm:"not null;index:idx_audit_item" json:"item_type"`
	ItemID            string         `gorm:"not null;index:idx_audit_item" json:"item_id"`
	ItemName          string         `json:"item_name"`
	ActionType        string         `gorm:"not null;index" json:"action_type"`
	ActionLabel       string         `gorm:"not null" json:"action_label"`
	ActionDescription string         `json:"action_description"`
	PerformedBy       *string        `gorm:"type:uuid;index" json:"performed_by"`
	PerformedByName   string         `gorm:"not null" json:"performed_by_name"`
	Metadata          datatypes.JSON `gorm:"type:json" json:"metadata"`
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
