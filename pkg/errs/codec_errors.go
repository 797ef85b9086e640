package errs

import "fmt"

// DecodeError reports malformed textual or binary input, such as bad Base58 or a wrong decoded length.
type DecodeError struct {
	what string
	err  error
}

func NewDecodeError(what string, err error) *DecodeError {
	return &DecodeError{what: what, err: err}
}

func (a DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s: %v", a.what, a.err)
}

func (a DecodeError) Unwrap() error {
	return a.err
}

func (a DecodeError) Is(target error) bool {
	_, ok := target.(DecodeError)
	return ok
}

type InvalidChecksum struct {
	message string
}

func NewInvalidChecksum(message string) *InvalidChecksum {
	return &InvalidChecksum{message: message}
}

func (a InvalidChecksum) Error() string {
	return a.message
}

func (a InvalidChecksum) Extend(message string) error {
	return NewInvalidChecksum(prefixed(message, a))
}

func (a InvalidChecksum) Is(target error) bool {
	_, ok := target.(InvalidChecksum)
	return ok
}

type InvalidPrivateKey struct {
	message string
}

func NewInvalidPrivateKey(message string) *InvalidPrivateKey {
	return &InvalidPrivateKey{message: message}
}

func (a InvalidPrivateKey) Error() string {
	return "invalid private key: " + a.message
}

func (a InvalidPrivateKey) Is(target error) bool {
	_, ok := target.(InvalidPrivateKey)
	return ok
}

// WrongTransactionType is returned when a transaction is narrowed to a variant it does not hold.
type WrongTransactionType struct {
	Expected byte
	Actual   byte
}

func NewWrongTransactionType(expected, actual byte) *WrongTransactionType {
	return &WrongTransactionType{Expected: expected, Actual: actual}
}

func (a WrongTransactionType) Error() string {
	return fmt.Sprintf("wrong transaction type: expected %d, actual %d", a.Expected, a.Actual)
}

func (a WrongTransactionType) Is(target error) bool {
	_, ok := target.(WrongTransactionType)
	return ok
}
