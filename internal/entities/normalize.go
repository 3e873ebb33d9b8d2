package entities

import "strings"

// FieldKind selects the normalization rule applied to a field before storage,
// comparison, and uniqueness checks.
type FieldKind string

const (
	FieldText  FieldKind = "text"
	FieldEmail FieldKind = "email"
	FieldCPF   FieldKind = "cpf"
	FieldCNPJ  FieldKind = "cnpj"
	FieldCode  FieldKind = "code"
)

// Normalize canonicalises a field value according to its kind. The function is
// idempotent: Normalize(kind, Normalize(kind, s)) == Normalize(kind, s).
func Normalize(kind FieldKind, value string) string {
	value = strings.TrimSpace(value)

	switch kind {
	case FieldEmail:
		return strings.ToLower(value)
	case FieldCPF, FieldCNPJ:
		return digitsOnly(value)
	case FieldCode:
		return strings.ToUpper(value)
	default:
		return value
	}
}

func digitsOnly(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
