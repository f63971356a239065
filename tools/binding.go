package tools

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators registra as regras "cpf", "cnpj", "placa" e "uf" no validator usado pelo gin
// e faz os erros citarem o nome JSON do campo. Pode ser chamado mais de uma vez.
// cpf, cnpj e uf aceitam vazio: ponteiro preenchido com "" vira NULL no service.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
			return blank(fl) || IsCpfValid(fl.Field().String())
		})
		_ = v.RegisterValidation("cnpj", func(fl validator.FieldLevel) bool {
			return blank(fl) || IsCnpjValid(fl.Field().String())
		})
		_ = v.RegisterValidation("placa", func(fl validator.FieldLevel) bool {
			return IsPlacaValid(fl.Field().String())
		})
		_ = v.RegisterValidation("uf", func(fl validator.FieldLevel) bool {
			return blank(fl) || IsUFValid(fl.Field().String())
		})
	})
}

func blank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) == ""
}
