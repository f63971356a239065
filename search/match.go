package search

import (
	"strings"

	"cadastro/tools"
)

// Query é um texto de busca já quebrado em termos normalizados.
type Query struct {
	terms []term
}

type term struct {
	text   string
	digits string // preenchido quando o termo é numérico (CPF, placa, telefone com máscara)
}

// Parse quebra o texto em termos. Termos que só têm dígitos e pontuação
// (ex: "529.982") também casam com campos mascarados.
func Parse(q string) Query {
	var out Query
	for _, f := range strings.Fields(Normalize(q)) {
		t := term{text: f}
		if d := tools.OnlyDigits(f); d != "" && isNumeric(f) {
			t.digits = d
		}
		out.terms = append(out.terms, t)
	}
	return out
}

func (q Query) Empty() bool {
	return len(q.terms) == 0
}

// Match informa se todos os termos aparecem em pelo menos um dos campos.
// Query vazia casa com tudo.
func (q Query) Match(fields ...string) bool {
	if q.Empty() {
		return true
	}
	normalized := make([]string, len(fields))
	digits := make([]string, len(fields))
	for i, f := range fields {
		normalized[i] = Normalize(f)
	}
	for _, t := range q.terms {
		found := false
		for i := range normalized {
			if strings.Contains(normalized[i], t.text) {
				found = true
				break
			}
			if t.digits != "" {
				if digits[i] == "" {
					digits[i] = tools.OnlyDigits(fields[i])
				}
				if digits[i] != "" && strings.Contains(digits[i], t.digits) {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Contains é o filtro de campo único (ex: cidade=, bairro=): sem acento e sem caixa.
func Contains(field, value string) bool {
	v := Normalize(value)
	if v == "" {
		return true
	}
	return strings.Contains(Normalize(field), v)
}

// Equal compara sem acento e sem caixa.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

func isNumeric(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' || r == '-' || r == '/' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return true
}
