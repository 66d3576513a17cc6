package apperrors

// CustomError wraps a sentinel error with a human readable message
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements the errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// StoreError carries an upstream database failure along with the
// driver-reported message and SQLSTATE code.
type StoreError struct {
	Err     error
	Message string
	Code    string
}

// Error implements the error interface
func (e *StoreError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap implements the errors.Unwrap interface
func (e *StoreError) Unwrap() error {
	return e.Err
}
