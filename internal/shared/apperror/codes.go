package apperror

const (
	// Client errors (4xx)
	CodeValidationError = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeUnmappedDriver  = "UNMAPPED_DRIVER"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodePartialPersistence = "PARTIAL_PERSISTENCE"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
