package dto

import (
	"github.com/go-playground/validator/v10"
)

// validate é a instância compartilhada do validador de shape dos requests.
var validate = validator.New()

// Validate aplica as tags `validate` de um request. Regras de negócio
// (conflito de substituição, pertença a enum de domínio) ficam em
// internal/domain/workflow.
func Validate(v any) error {
	return validate.Struct(v)
}

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
