package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var areaFields = []Field{
	{Name: "nome", Label: "Nome", Kind: FieldText},
	{Name: "descricao", Label: "Descrição", Kind: FieldText},
}

func TestDiffReportsOnlyChangedFields(t *testing.T) {
	oldValues := map[string]any{"nome": "A", "descricao": "X"}
	newValues := map[string]any{"nome": "B", "descricao": "X"}

	cs := Diff(oldValues, newValues, areaFields)

	require.True(t, cs.HasChanges())
	require.Equal(t, []string{"Nome"}, cs.Labels)
	require.Equal(t, map[string]any{"nome": "A"}, cs.OldValues)
	require.Equal(t, map[string]any{"nome": "B"}, cs.NewValues)
}

func TestDiffDescriptionFollowsTrackedOrder(t *testing.T) {
	oldValues := map[string]any{"nome": "TI", "descricao": "Tecnologia"}
	newValues := map[string]any{"nome": "TIC", "descricao": "Tecnologia e Comunicação"}

	cs := Diff(oldValues, newValues, areaFields)
	require.Equal(t, "Campos editados: Nome, Descrição.", cs.Description())
}

func TestDiffSingleFieldDescription(t *testing.T) {
	oldValues := map[string]any{"nome": "TI", "descricao": "Tecnologia"}
	newValues := map[string]any{"nome": "TI", "descricao": "Tecnologia da Informação"}

	cs := Diff(oldValues, newValues, areaFields)
	require.Equal(t, "Campos editados: Descrição.", cs.Description())
}

func TestDiffIgnoresNormalizationOnlyChanges(t *testing.T) {
	fields := []Field{
		{Name: "email", Label: "E-mail", Kind: FieldEmail},
		{Name: "cnpj", Label: "CNPJ", Kind: FieldCNPJ},
	}

	oldValues := map[string]any{"email": "maria@example.com", "cnpj": "11222333000181"}
	newValues := map[string]any{"email": "  Maria@Example.com ", "cnpj": "11.222.333/0001-81"}

	cs := Diff(oldValues, newValues, fields)
	require.False(t, cs.HasChanges())
	require.Equal(t, "Nenhum campo alterado.", cs.Description())
}

func TestDiffComparesAcrossNumericTypes(t *testing.T) {
	fields := []Field{{Name: "quantidade", Label: "Quantidade", Kind: FieldText}}

	cs := Diff(map[string]any{"quantidade": int64(7)}, map[string]any{"quantidade": float64(7)}, fields)
	require.False(t, cs.HasChanges())

	cs = Diff(map[string]any{"quantidade": int64(7)}, map[string]any{"quantidade": float64(8)}, fields)
	require.True(t, cs.HasChanges())
}
