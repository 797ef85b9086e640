package proto

import (
	"reflect"
	"strconv"

	"github.com/pkg/errors"

	"github.com/wavesplatform/wavestx/pkg/errs"
)

const (
	maxAttachmentLength  = 140
	maxTransfers         = 100
	maxEntries           = 100
	maxKeySize           = 400
	maxValueSize         = 32767
	minAssetNameLength   = 4
	maxAssetNameLength   = 16
	maxDescriptionLength = 1000
	maxDecimals          = 8
	maxFunctionNameBytes = 255
	maxArguments         = 22
	maxPayments          = 10
	maxScriptSize        = 8 * 1024
)

func validRecipient(r Recipient, scheme Scheme) error {
	if err := r.Valid(); err != nil {
		return errors.Wrap(err, "invalid recipient")
	}
	var rs Scheme
	if a := r.Address(); a != nil {
		rs = a.ChainID()
	} else {
		rs = r.Alias().Scheme
	}
	if rs != scheme {
		return errors.Errorf("recipient %s belongs to network '%c', expected '%c'", r.String(), rs, scheme)
	}
	return nil
}

// isNil reports whether an interface holds nothing or a nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func validAttachment(attachment []byte) error {
	if l := len(attachment); l > maxAttachmentLength {
		return errs.NewTooLongData(
			"attachment of " + strconv.Itoa(l) + " bytes is longer than " + strconv.Itoa(maxAttachmentLength))
	}
	return nil
}

func validPositive(v uint64, of string) error {
	if v == 0 {
		return errs.NewNonPositiveAmount(0, of)
	}
	return nil
}
