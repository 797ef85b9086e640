package errs

import "github.com/pkg/errors"

// Extender is a typed error that can prefix its message with context and keep its type.
type Extender interface {
	error
	Extend(message string) error
}

// Extend adds the context message to err.
// Typed errors stay matchable with errors.Is, anything else is wrapped.
// A nil error stays nil.
func Extend(err error, message string) error {
	switch e := err.(type) {
	case nil:
		return nil
	case Extender:
		return e.Extend(message)
	default:
		return errors.Wrap(err, message)
	}
}

func prefixed(message string, err error) string {
	return message + ": " + err.Error()
}
