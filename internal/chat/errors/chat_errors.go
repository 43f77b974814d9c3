package chaterrors

import (
	"net/http"

	"github.com/esnupy/lafa/internal/shared/apperror"
)

var (
	ErrAssistantUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"El asistente no esta disponible en este momento, intenta de nuevo",
		http.StatusServiceUnavailable,
	)
	ErrNotConfigured = apperror.New(
		apperror.CodeServiceUnavailable,
		"El asistente no esta configurado",
		http.StatusServiceUnavailable,
	)
)
