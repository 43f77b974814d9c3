package drivererrors

import (
	"net/http"

	"github.com/esnupy/lafa/internal/shared/apperror"
)

var (
	ErrDriverNotFound = apperror.New(
		apperror.CodeNotFound,
		"Chofer no encontrado",
		http.StatusNotFound,
	)
	ErrEmployeeCodeTaken = apperror.New(
		apperror.CodeConflict,
		"Ya existe un chofer con ese ID de empleado",
		http.StatusConflict,
	)
	ErrPlatformIDTaken = apperror.New(
		apperror.CodeConflict,
		"Ya existe un chofer con ese DiDi Driver ID",
		http.StatusConflict,
	)
	ErrDriverInUse = apperror.New(
		apperror.CodeConflict,
		"No se puede eliminar: el chofer tiene turnos o viajes asociados",
		http.StatusConflict,
	)
	ErrInvalidDriverID = apperror.New(
		apperror.CodeValidationError,
		"ID de chofer no valido",
		http.StatusBadRequest,
	)
)
