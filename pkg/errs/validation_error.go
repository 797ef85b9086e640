package errs

import "errors"

// ValidationError marks errors produced while checking transaction fields before serialization.
type ValidationError interface {
	ValidationError()
}

type ValidationErrorImpl struct {
}

func (ValidationErrorImpl) ValidationError() {
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
