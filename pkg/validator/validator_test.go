package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type loginPayload struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required,min=8"`
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	err := ValidateStruct(loginPayload{Email: "not-an-email", Senha: "curta"})
	require.Error(t, err)

	failures, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, failures, 2)
	require.Equal(t, "email", failures[0].Field)
	require.Equal(t, "senha", failures[1].Field)
}

func TestValidateStructPassesValidInput(t *testing.T) {
	require.NoError(t, ValidateStruct(loginPayload{Email: "user@example.com", Senha: "s3nh4-f0rte"}))
}
