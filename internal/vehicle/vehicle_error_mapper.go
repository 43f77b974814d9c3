package vehicle

import (
	"errors"
	"strings"

	vehicleerrors "github.com/esnupy/lafa/internal/vehicle/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return vehicleerrors.ErrVehicleNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return vehicleerrors.ErrPlateTaken
		case "23503":
			return vehicleerrors.ErrVehicleInUse
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		return vehicleerrors.ErrPlateTaken
	}
	if strings.Contains(errMsg, "violates foreign key constraint") {
		return vehicleerrors.ErrVehicleInUse
	}

	return err
}
