package payrollerrors

import (
	"net/http"

	"github.com/esnupy/lafa/internal/shared/apperror"
)

var (
	ErrInvalidWeek = apperror.New(
		apperror.CodeValidationError,
		"Semana no valida, usa el formato YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrNoResultsForWeek = apperror.New(
		apperror.CodeNotFound,
		"No hay nomina calculada para esa semana",
		http.StatusNotFound,
	)
)
