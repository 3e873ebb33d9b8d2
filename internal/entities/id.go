package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// IDKind distinguishes the identifier families used by registry entities:
// integer primary keys for most tables, UUID strings for users.
type IDKind int

const (
	IDNumeric IDKind = iota
	IDString
)

// ID is an opaque entity identifier tagged with its kind. It avoids assuming a
// single numeric or string type throughout the generic repository.
type ID struct {
	kind IDKind
	num  int64
	str  string
}

// NumericID wraps an integer primary key.
func NumericID(n int64) ID {
	return ID{kind: IDNumeric, num: n}
}

// StringID wraps a string (UUID) primary key.
func StringID(s string) ID {
	return ID{kind: IDString, str: strings.TrimSpace(s)}
}

// ParseID parses the raw path/query representation of an identifier.
func ParseID(kind IDKind, raw string) (ID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ID{}, fmt.Errorf("entities: empty identifier")
	}

	switch kind {
	case IDNumeric:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return ID{}, fmt.Errorf("entities: invalid numeric identifier %q", raw)
		}
		return NumericID(n), nil
	default:
		return StringID(raw), nil
	}
}

// Kind reports the identifier family.
func (id ID) Kind() IDKind { return id.kind }

// IsZero reports whether the identifier carries no value.
func (id ID) IsZero() bool {
	if id.kind == IDNumeric {
		return id.num == 0
	}
	return id.str == ""
}

// Value returns the raw value suitable for query binding.
func (id ID) Value() any {
	if id.kind == IDNumeric {
		return id.num
	}
	return id.str
}

// String renders the identifier for audit records and logs.
func (id ID) String() string {
	if id.kind == IDNumeric {
		return strconv.FormatInt(id.num, 10)
	}
	return id.str
}
