package tools

import (
	"strings"
	"unicode"
)

// OnlyDigits remove tudo que não é dígito (máscaras de CPF, CNPJ, CEP, telefone...).
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CollapseSpaces faz trim e troca qualquer sequência de espaços por um único espaço.
func CollapseSpaces(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// OptionalID normaliza ids opcionais vindos do front ("" e "null" viram nil).
func OptionalID(id *string) *string {
	if id == nil {
		return nil
	}
	v := strings.TrimSpace(*id)
	if v == "" || strings.EqualFold(v, "null") {
		return nil
	}
	return &v
}

// OptionalDigits devolve nil quando não sobra nenhum dígito.
func OptionalDigits(s *string) *string {
	if s == nil {
		return nil
	}
	v := OnlyDigits(*s)
	if v == "" {
		return nil
	}
	return &v
}
