package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"cadastro/tools"
)

// Normalize remove acentos, põe em caixa baixa e colapsa espaços.
// "  JOSÉ  da Conceição " -> "jose da conceicao"
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return tools.CollapseSpaces(strings.ToLower(out))
}
