package exception

// DatabaseError wraps failures of the persistence layer. Lifecycle operations
// never surface it to callers; it only reaches logs and the datastore
// bootstrap path.
type DatabaseError struct {
	*AppError
}

func NewDatabaseError(message string, cause error) *DatabaseError {
	return &DatabaseError{
		AppError: &AppError{
			Code:    "DATABASE_ERROR",
			Message: message,
			Cause:   cause,
		},
	}
}
