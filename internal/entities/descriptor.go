package entities

import "fmt"

// Field describes one tracked business attribute of an entity: its column name,
// the human label used in audit descriptions, and its normalization kind.
type Field struct {
	Name  string
	Label string
	Kind  FieldKind
}

// UniqueField marks a field whose value must be unique among active records.
type UniqueField struct {
	Name string
	Kind FieldKind
}

// Descriptor is the per-entity metadata the generic engine is parameterised by.
// One instance per entity type replaces the hand-copied per-entity services.
type Descriptor struct {
	// ItemType is the logical entity kind recorded in audit entries, e.g. "Area".
	ItemType string
	// Table is the backing store collection.
	Table string
	// IDKind selects the identifier family for this entity.
	IDKind IDKind
	// Tracked lists the fields considered by the change-diff helper, in the
	// order their labels appear in audit descriptions.
	Tracked []Field
	// Unique lists the fields guarded by uniqueness checks.
	Unique []UniqueField
	// Required lists tracked field names that must be non-empty after
	// normalization on create.
	Required []string
}

// Validate reports configuration mistakes early, at service construction.
func (d Descriptor) Validate() error {
	if d.ItemType == "" {
		return fmt.Errorf("entities: descriptor item type is required")
	}
	if d.Table == "" {
		return fmt.Errorf("entities: descriptor %s: table is required", d.ItemType)
	}
	if len(d.Tracked) == 0 {
		return fmt.Errorf("entities: descriptor %s: at least one tracked field is required", d.ItemType)
	}

	tracked := make(map[string]struct{}, len(d.Tracked))
	for _, f := range d.Tracked {
		if f.Name == "" || f.Label == "" {
			return fmt.Errorf("entities: descriptor %s: tracked fields need name and label", d.ItemType)
		}
		tracked[f.Name] = struct{}{}
	}
	for _, u := range d.Unique {
		if _, ok := tracked[u.Name]; !ok {
			return fmt.Errorf("entities: descriptor %s: unique field %s is not tracked", d.ItemType, u.Name)
		}
	}
	for _, name := range d.Required {
		if _, ok := tracked[name]; !ok {
			return fmt.Errorf("entities: descriptor %s: required field %s is not tracked", d.ItemType, name)
		}
	}
	return nil
}

// FieldByName returns the tracked field definition, if declared.
func (d Descriptor) FieldByName(name string) (Field, bool) {
	for _, f := range d.Tracked {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// UniqueFieldByName returns the unique field definition, if declared.
func (d Descriptor) UniqueFieldByName(name string) (UniqueField, bool) {
	for _, u := range d.Unique {
		if u.Name == name {
			return u, true
		}
	}
	return UniqueField{}, false
}

// NormalizeValues canonicalises the tracked subset of the supplied values,
// dropping keys that are not tracked fields.
func (d Descriptor) NormalizeValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		field, ok := d.FieldByName(key)
		if !ok {
			continue
		}
		if s, isString := value.(string); isString {
			out[key] = Normalize(field.Kind, s)
			continue
		}
		out[key] = value
	}
	return out
}

// Record is the behaviour the generic engine needs from every entity model.
type Record interface {
	// EntityID returns the typed identifier of the record.
	EntityID() ID
	// DisplayName returns the human label snapshotted into audit entries.
	DisplayName() string
	// Snapshot returns the tracked business field values keyed by column name.
	Snapshot() map[string]any
	// Apply sets tracked business fields from normalized values.
	Apply(values map[string]any)
	// Active reports the lifecycle state (false means soft-deleted).
	Active() bool
}
