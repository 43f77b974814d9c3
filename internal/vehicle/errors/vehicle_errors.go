package vehicleerrors

import (
	"net/http"

	"github.com/esnupy/lafa/internal/shared/apperror"
)

var (
	ErrVehicleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Vehiculo no encontrado",
		http.StatusNotFound,
	)
	ErrPlateTaken = apperror.New(
		apperror.CodeConflict,
		"Ya existe un vehiculo con esa placa",
		http.StatusConflict,
	)
	ErrVehicleInUse = apperror.New(
		apperror.CodeConflict,
		"No se puede eliminar: el vehiculo tiene turnos asociados",
		http.StatusConflict,
	)
	ErrVehicleNotAvailable = apperror.New(
		apperror.CodeConflict,
		"El vehiculo no esta disponible",
		http.StatusConflict,
	)
	ErrInvalidVehicleID = apperror.New(
		apperror.CodeValidationError,
		"ID de vehiculo no valido",
		http.StatusBadRequest,
	)
)
