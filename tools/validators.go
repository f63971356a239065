package tools

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// placa antiga (ABC1234) e Mercosul (ABC1D23)
var placaRe = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z0-9][0-9]{2}$`)

var ufs = map[string]struct{}{
	"AC": {}, "AL": {}, "AP": {}, "AM": {}, "BA": {}, "CE": {}, "DF": {}, "ES": {}, "GO": {},
	"MA": {}, "MT": {}, "MS": {}, "MG": {}, "PA": {}, "PB": {}, "PR": {}, "PE": {}, "PI": {},
	"RJ": {}, "RN": {}, "RS": {}, "RO": {}, "RR": {}, "SC": {}, "SP": {}, "SE": {}, "TO": {},
}

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

// CheckPassword devolve o motivo da recusa ou "" quando a senha é aceitável.
func CheckPassword(password string) string {
	if len(password) < 6 {
		return "a senha deve ter ao menos 6 caracteres"
	}
	if strings.TrimSpace(password) == "" {
		return "a senha não pode ser só espaços"
	}
	return ""
}

// NormalizePlaca deixa a placa em caixa alta, sem hífen nem espaços.
func NormalizePlaca(placa string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(placa) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func IsPlacaValid(placa string) bool {
	return placaRe.MatchString(NormalizePlaca(placa))
}

func IsUFValid(uf string) bool {
	_, ok := ufs[strings.ToUpper(strings.TrimSpace(uf))]
	return ok
}

// IsDateValid aceita datas no formato YYYY-MM-DD.
func IsDateValid(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// IsCpfValid confere tamanho e dígitos verificadores. Aceita com ou sem máscara.
func IsCpfValid(cpf string) bool {
	d := OnlyDigits(cpf)
	if len(d) != 11 || allSame(d) {
		return false
	}
	return checkDigit(d[:9], 10) == d[9] && checkDigit(d[:10], 11) == d[10]
}

// IsCnpjValid confere tamanho e dígitos verificadores. Aceita com ou sem máscara.
func IsCnpjValid(cnpj string) bool {
	d := OnlyDigits(cnpj)
	if len(d) != 14 || allSame(d) {
		return false
	}
	w1 := []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	w2 := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	return weightedDigit(d[:12], w1) == d[12] && weightedDigit(d[:13], w2) == d[13]
}

func checkDigit(digits string, startWeight int) byte {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * (startWeight - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		rest = 0
	}
	return byte('0' + rest)
}

func weightedDigit(digits string, weights []int) byte {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * weights[i]
	}
	rest := sum % 11
	if rest < 2 {
		return '0'
	}
	return byte('0' + 11 - rest)
}

func allSame(d string) bool {
	return strings.Count(d, d[:1]) == len(d)
}
