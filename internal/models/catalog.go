package models

import "github.com/sigpat/sigpat/internal/entities"

// Descriptors for every registry entity. Adding an entity to the system means
// adding its model plus one descriptor here; the engine handles the rest.
var (
	OrgaoEntity = entities.Descriptor{
		ItemType: "Orgao",
		Table:    "orgaos",
		IDKind:   entities.IDNumeric,
		Tracked: []entities.Field{
			{Name: "nome", Label: "Nome", Kind: entities.FieldText},
			{Name: "sigla", Label: "Sigla", Kind: entities.FieldCode},
			{Name: "cnpj", Label: "CNPJ", Kind: entities.FieldCNPJ},
			{Name: "email", Label: "E-mail", Kind: entities.FieldEmail},
		},
		Unique: []entities.UniqueField{
			{Name: "cnpj", Kind: entities.FieldCNPJ},
			{Name: "sigla", Kind: entities.FieldCode},
			{Name: "email", Kind: entities.FieldEmail},
		},
		Required: []string{"nome", "cnpj"},
	}

	UnidadeEntity = entities.Descriptor{
		ItemType: "Unidade",
		Table:    "unidades",
		IDKind:   entities.IDNumeric,
		Tracked: []entities.Field{
			{Name: "nome", Label: "Nome", Kind: entities.FieldText},
			{Name: "codigo", Label: "Código", Kind: entities.FieldCode},
		},
		Unique: []entities.UniqueField{
			{Name: "codigo", Kind: entities.FieldCode},
		},
		Required: []string{"nome", "codigo"},
	}

	AreaEntity = entities.Descriptor{
		ItemType: "Area",
		Table:    "areas",
		IDKind:   entities.IDNumeric,
		Tracked: []entities.Field{
			{Name: "nome", Label: "Nome", Kind: entities.FieldText},
			{Name: "descricao", Label: "Descrição", Kind: entities.FieldText},
		},
		Unique: []entities.UniqueField{
			{Name: "nome", Kind: entities.FieldText},
		},
		Required: []string{"nome"},
	}

	FonteRecursoEntity = entities.Descriptor{
		ItemType: "FonteRecurso",
		Table:    "fonte_recursos",
		IDKind:   entities.IDNumeric,
		Tracked: []entities.Field{
			{Name: "nome", Label: "Nome", Kind: entities.FieldText},
			{Name: "codigo", Label: "Código", Kind: entities.FieldCode},
		},
		Unique: []entities.UniqueField{
			{Name: "codigo", Kind: entities.FieldCode},
		},
		Required: []string{"nome", "codigo"},
	}

	UsuarioEntity = entities.Descriptor{
		ItemType: "Usuario",
		Table:    "usuarios",
		IDKind:   entities.IDString,
		Tracked: []entities.Field{
			{Name: "nome", Label: "Nome", Kind: entities.FieldText},
			{Name: "email", Label: "E-mail", Kind: entities.FieldEmail},
			{Name: "cpf", Label: "CPF", Kind: entities.FieldCPF},
		},
		Unique: []entities.UniqueField{
			{Name: "email", Kind: entities.FieldEmail},
			{Name: "cpf", Kind: entities.FieldCPF},
		},
		Required: []string{"nome", "email", "cpf"},
	}
)

// Catalog lists every descriptor, in migration and routing order.
var Catalog = []entities.Descriptor{
	OrgaoEntity,
	UnidadeEntity,
	AreaEntity,
	FonteRecursoEntity,
	UsuarioEntity,
}

func applyString(values map[string]any, key string, dst *string) {
	if raw, ok := values[key]; ok {
		if s, isString := raw.(string); isString {
			*dst = s
		}
	}
}
