package shifterrors

import (
	"net/http"

	"github.com/esnupy/lafa/internal/shared/apperror"
)

var (
	ErrShiftNotFound = apperror.New(
		apperror.CodeNotFound,
		"Turno no encontrado",
		http.StatusNotFound,
	)
	ErrDriverHasOpenShift = apperror.New(
		apperror.CodeConflict,
		"Este chofer ya tiene un turno activo",
		http.StatusConflict,
	)
	ErrShiftAlreadyClosed = apperror.New(
		apperror.CodeConflict,
		"El turno ya fue cerrado",
		http.StatusConflict,
	)
	ErrInvalidShiftID = apperror.New(
		apperror.CodeValidationError,
		"ID de turno no valido",
		http.StatusBadRequest,
	)
)
