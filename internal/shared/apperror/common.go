package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Recurso no encontrado",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"No tienes permiso para acceder a este recurso",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"Ocurrio un error inesperado",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Debes iniciar sesion",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeValidationError,
		"Los datos enviados no son validos",
		http.StatusBadRequest,
	)
)

// RequiredField builds a validation error for a missing field.
func RequiredField(field string) *AppError {
	return New(CodeValidationError, field+" es requerido", http.StatusBadRequest)
}

// InvalidField builds a validation error for a malformed field.
func InvalidField(field string) *AppError {
	return New(CodeValidationError, field+" no es valido", http.StatusBadRequest)
}
