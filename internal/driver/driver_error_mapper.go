package driver

import (
	"errors"
	"strings"

	drivererrors "github.com/esnupy/lafa/internal/driver/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return drivererrors.ErrDriverNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			switch pgErr.ConstraintName {
			case "uq_driver_employee_id":
				return drivererrors.ErrEmployeeCodeTaken
			case "uq_driver_didi_id":
				return drivererrors.ErrPlatformIDTaken
			}
		case "23503":
			// Referential integrity is owned by the store; the driver is
			// still referenced by shifts or trips.
			return drivererrors.ErrDriverInUse
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_driver_employee_id") {
		return drivererrors.ErrEmployeeCodeTaken
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_driver_didi_id") {
		return drivererrors.ErrPlatformIDTaken
	}
	if strings.Contains(errMsg, "violates foreign key constraint") {
		return drivererrors.ErrDriverInUse
	}

	return err
}
