package errs

import "fmt"

type TooBigArray struct {
	ValidationErrorImpl
	message string
}

func NewTooBigArray(message string) *TooBigArray {
	return &TooBigArray{message: message}
}

func (a TooBigArray) Error() string {
	return a.message
}

func (a TooBigArray) Extend(message string) error {
	return NewTooBigArray(prefixed(message, a))
}

func (a TooBigArray) Is(target error) bool {
	_, ok := target.(TooBigArray)
	return ok
}

type NonPositiveAmount struct {
	ValidationErrorImpl
	amount int64
	of     string
}

func NewNonPositiveAmount(amount int64, of string) *NonPositiveAmount {
	return &NonPositiveAmount{
		amount: amount,
		of:     of,
	}
}

func (a NonPositiveAmount) Error() string {
	return fmt.Sprintf("%d of %s", a.amount, a.of)
}

func (a NonPositiveAmount) Is(target error) bool {
	_, ok := target.(NonPositiveAmount)
	return ok
}

type InvalidName struct {
	ValidationErrorImpl
	message string
}

func NewInvalidName(message string) *InvalidName {
	return &InvalidName{message: message}
}

func (a InvalidName) Error() string {
	return a.message
}

func (a InvalidName) Extend(message string) error {
	return NewInvalidName(prefixed(message, a))
}

func (a InvalidName) Is(target error) bool {
	_, ok := target.(InvalidName)
	return ok
}

type EmptyDataKey struct {
	ValidationErrorImpl
	message string
}

func NewEmptyDataKey(message string) *EmptyDataKey {
	return &EmptyDataKey{message: message}
}

func (a EmptyDataKey) Error() string {
	return a.message
}

func (a EmptyDataKey) Extend(message string) error {
	return NewEmptyDataKey(prefixed(message, a))
}

func (a EmptyDataKey) Is(target error) bool {
	_, ok := target.(EmptyDataKey)
	return ok
}

type DuplicatedDataKeys struct {
	ValidationErrorImpl
	message string
}

func NewDuplicatedDataKeys(message string) *DuplicatedDataKeys {
	return &DuplicatedDataKeys{message: message}
}

func (a DuplicatedDataKeys) Error() string {
	return a.message
}

func (a DuplicatedDataKeys) Extend(message string) error {
	return NewDuplicatedDataKeys(prefixed(message, a))
}

func (a DuplicatedDataKeys) Is(target error) bool {
	_, ok := target.(DuplicatedDataKeys)
	return ok
}

// TooLongData is returned when a byte or string field exceeds its length limit.
type TooLongData struct {
	ValidationErrorImpl
	message string
}

func NewTooLongData(message string) *TooLongData {
	return &TooLongData{message: message}
}

func (a TooLongData) Error() string {
	return a.message
}

func (a TooLongData) Extend(message string) error {
	return NewTooLongData(prefixed(message, a))
}

func (a TooLongData) Is(target error) bool {
	_, ok := target.(TooLongData)
	return ok
}

type InvalidTransactionType struct {
	ValidationErrorImpl
	message string
}

func NewInvalidTransactionType(message string) *InvalidTransactionType {
	return &InvalidTransactionType{message: message}
}

func (a InvalidTransactionType) Error() string {
	return a.message
}

func (a InvalidTransactionType) Extend(message string) error {
	return NewInvalidTransactionType(prefixed(message, a))
}

func (a InvalidTransactionType) Is(target error) bool {
	_, ok := target.(InvalidTransactionType)
	return ok
}
