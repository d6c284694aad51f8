package errors

import "errors"

// AppError carries a stable machine-readable code alongside the message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds an AppError; err may be nil when there is no underlying cause.
func New(code, message string, err error) error {
	if err == nil {
		return &AppError{Code: code, Message: message}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	return New(code, message, err)
}

// IsCode helps handlers differentiate failures.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
