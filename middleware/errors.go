package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"cadastro/services"
	"cadastro/storage"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ErrorHandler serializa o último erro registrado com c.Error como
// {"message": ..., "details": ...}. Erros sem status conhecido viram 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status, body := Translate(err)
		if status >= http.StatusInternalServerError {
			zap.L().Error("erro na requisição",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}
		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(status, body)
	}
}

// Translate converte um erro em status HTTP e corpo de resposta.
func Translate(err error) (int, gin.H) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		body := gin.H{"message": svcErr.Message}
		if svcErr.Details != nil {
			body["details"] = svcErr.Details
		}
		return svcErr.Status, body
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]services.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, services.FieldError{Campo: fe.Field(), Mensagem: fieldMessage(fe)})
		}
		return http.StatusBadRequest, gin.H{"message": "dados inválidos", "details": details}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return http.StatusBadRequest, gin.H{"message": "JSON inválido", "details": err.Error()}
	}

	if errors.Is(err, storage.ErrTooLarge) || errors.Is(err, storage.ErrUnsupportedType) {
		return http.StatusBadRequest, gin.H{"message": err.Error()}
	}

	return http.StatusInternalServerError, gin.H{"message": "erro interno do servidor"}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "email":
		return "e-mail inválido"
	case "cpf":
		return "CPF inválido"
	case "cnpj":
		return "CNPJ inválido"
	case "placa":
		return "placa inválida"
	case "uf":
		return "UF inválida"
	case "oneof":
		return "valor deve ser um de: " + fe.Param()
	case "min":
		return "valor mínimo: " + fe.Param()
	case "max":
		return "valor máximo: " + fe.Param()
	case "numeric":
		return "apenas números"
	}
	return "valor inválido (" + fe.Tag() + ")"
}
