package services

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jinzhu/gorm"
)

// Error é o erro de negócio devolvido pelos services. O middleware de erros
// serializa como {"message": ..., "details": ...} com o Status informado.
type Error struct {
	Status  int
	Message string
	Details any
}

func (e *Error) Error() string {
	return e.Message
}

func BadRequest(msg string, details any) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg, Details: details}
}

func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Status: http.StatusConflict, Message: msg}
}

// FieldError descreve um campo recusado pela validação.
type FieldError struct {
	Campo    string `json:"campo"`
	Mensagem string `json:"mensagem"`
}

// Validation acumula erros de campo para devolver todos de uma vez.
type Validation struct {
	errs []FieldError
}

func (v *Validation) Add(campo, format string, args ...any) {
	v.errs = append(v.errs, FieldError{Campo: campo, Mensagem: fmt.Sprintf(format, args...)})
}

func (v *Validation) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return BadRequest("dados inválidos", v.errs)
}

// notFoundOr traduz RecordNotFound para 404 e embrulha os demais erros.
func notFoundOr(err error, msg string) error {
	if gorm.IsRecordNotFoundError(err) {
		return NotFound(msg)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// isUniqueViolation reconhece violação de índice único no sqlite e no postgres.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") || strings.Contains(s, "duplicate key value")
}
