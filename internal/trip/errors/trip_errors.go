package triperrors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/esnupy/lafa/internal/shared/apperror"
)

var (
	ErrEmptyBatch = apperror.New(
		apperror.CodeValidationError,
		"El archivo no contiene viajes validos",
		http.StatusBadRequest,
	)
	ErrEarningsNotFound = apperror.New(
		apperror.CodeNotFound,
		"No hay ingresos registrados para esa semana",
		http.StatusNotFound,
	)
	ErrInvalidWeek = apperror.New(
		apperror.CodeValidationError,
		"Semana no valida, usa el formato YYYY-MM-DD",
		http.StatusBadRequest,
	)
)

// UnmappedDrivers rejects a whole batch, listing every external id
// without a registered driver so the operator can add them first.
func UnmappedDrivers(ids []int64) *apperror.AppError {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return apperror.New(
		apperror.CodeUnmappedDriver,
		"Hay choferes sin registrar con ID de DiDi: "+strings.Join(parts, ", "),
		http.StatusUnprocessableEntity,
	)
}

// PartialPersistence signals that trips were saved but the weekly
// aggregates were not; retrying the import repairs state without
// re-uploading the file.
func PartialPersistence(err error) *apperror.AppError {
	return apperror.Wrap(
		err,
		apperror.CodePartialPersistence,
		"Los viajes se guardaron pero fallo el calculo de ingresos semanales, reintenta la importacion",
		http.StatusInternalServerError,
	)
}
