package services

import "fmt"

// Dependent identifies one active child record blocking a parent deactivation.
type Dependent struct {
	ItemType string `json:"item_type"`
	ItemID   string `json:"item_id"`
	Nome     string `json:"nome"`
}

// CascadeBlockedError reports a deactivation attempt on a parent entity that
// still has active dependents. The UI uses the list to ask for an explicit
// cascade confirmation instead of showing a generic failure.
type CascadeBlockedError struct {
	ItemType   string
	ItemID     string
	Dependents []Dependent
}

func (e *CascadeBlockedError) Error() string {
	return fmt.Sprintf("lifecycle: %s %s possui %d dependente(s) ativo(s)",
		e.ItemType, e.ItemID, len(e.Dependents))
}
