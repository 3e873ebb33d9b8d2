package entities

import (
	"fmt"
	"strings"
)

// ChangeSet is the outcome of comparing two snapshots of an entity. Old and new
// values contain only the fields that actually changed; Labels follows the
// descriptor's tracked-field order.
type ChangeSet struct {
	Labels    []string
	Fields    []string
	OldValues map[string]any
	NewValues map[string]any
}

// HasChanges reports whether at least one tracked field differs.
func (c ChangeSet) HasChanges() bool {
	return len(c.Fields) > 0
}

// Description renders the audit text for an edit, e.g.
// "Campos editados: Nome, CNPJ.".
func (c ChangeSet) Description() string {
	if !c.HasChanges() {
		return "Nenhum campo alterado."
	}
	return fmt.Sprintf("Campos editados: %s.", strings.Join(c.Labels, ", "))
}

// Diff compares old and new snapshots over the tracked fields only. Equality is
// normalization-aware: values that differ purely by whitespace or by casing a
// case-insensitive field are not reported as changed.
func Diff(oldValues, newValues map[string]any, tracked []Field) ChangeSet {
	cs := ChangeSet{
		OldValues: make(map[string]any),
		NewValues: make(map[string]any),
	}

	for _, field := range tracked {
		oldVal, hasOld := oldValues[field.Name]
		newVal, hasNew := newValues[field.Name]
		if !hasOld && !hasNew {
			continue
		}
		if valuesEqual(field.Kind, oldVal, newVal) {
			continue
		}

		cs.Labels = append(cs.Labels, field.Label)
		cs.Fields = append(cs.Fields, field.Name)
		cs.OldValues[field.Name] = oldVal
		cs.NewValues[field.Name] = newVal
	}

	return cs
}

func valuesEqual(kind FieldKind, a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == b {
		return true
	}

	// Fall back to canonical string comparison so int64(7) == float64(7) and
	// formatting-only differences are not reported as changes.
	return Normalize(kind, stringify(a)) == Normalize(kind, stringify(b))
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
