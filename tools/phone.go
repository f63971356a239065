package tools

import (
	"fmt"
	"strings"
)

// NormalizePhone normaliza um telefone brasileiro para apenas dígitos.
//
// Heurística:
// - remove tudo que não é dígito e zeros à esquerda (0xx de operadora)
// - 8 ou 9 dígitos: número sem DDD, aceito como está
// - 10 ou 11 dígitos: DDD + número
// - 12 ou 13 dígitos começando com 55: DDI do Brasil, mantido
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("telefone vazio")
	}

	phone := strings.TrimLeft(OnlyDigits(raw), "0")
	switch len(phone) {
	case 8, 9, 10, 11:
		return phone, nil
	case 12, 13:
		if strings.HasPrefix(phone, "55") {
			return phone, nil
		}
	}
	return "", fmt.Errorf("telefone com tamanho inválido: %d dígitos", len(phone))
}
