package proto

import (
	"slices"
	"strconv"
	"unicode/utf8"

	"github.com/wavesplatform/wavestx/pkg/errs"
	"github.com/wavesplatform/wavestx/pkg/libs/serializer"
)

// Issue creates a new asset, its ID is the ID of the transaction.
type Issue struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    uint64 `json:"quantity"`
	Decimals    byte   `json:"decimals"`
	Reissuable  bool   `json:"reissuable"`
	Script      Script `json:"script"`
}

func NewIssue(name, description string, quantity uint64, decimals byte, reissuable bool, script []byte) *Issue {
	return &Issue{
		Name:        name,
		Description: description,
		Quantity:    quantity,
		Decimals:    decimals,
		Reissuable:  reissuable,
		Script:      script,
	}
}

func (tx *Issue) Type() TransactionType {
	return IssueTransaction
}

func (tx *Issue) Valid(_ byte, _ Scheme) error {
	if l := len(tx.Name); l < minAssetNameLength || l > maxAssetNameLength || !utf8.ValidString(tx.Name) {
		return errs.NewInvalidName("asset name length should be between " +
			strconv.Itoa(minAssetNameLength) + " and " + strconv.Itoa(maxAssetNameLength) + " bytes")
	}
	if l := len(tx.Description); l > maxDescriptionLength {
		return errs.NewTooLongData("asset description of " + strconv.Itoa(l) + " bytes is longer than " +
			strconv.Itoa(maxDescriptionLength))
	}
	if err := validPositive(tx.Quantity, "quantity"); err != nil {
		return err
	}
	if tx.Decimals > maxDecimals {
		return errs.NewTooBigArray("asset decimals " + strconv.Itoa(int(tx.Decimals)) + " is greater than " +
			strconv.Itoa(maxDecimals))
	}
	if l := len(tx.Script); l > maxScriptSize {
		return errs.NewTooLongData("asset script of " + strconv.Itoa(l) + " bytes is longer than " +
			strconv.Itoa(maxScriptSize))
	}
	return nil
}

func (tx *Issue) clone() (TransactionData, error) {
	c := *tx
	c.Script = slices.Clone(tx.Script)
	return &c, nil
}

func (tx *Issue) writeBody(s *serializer.Serializer, _ byte) error {
	if err := s.StringWithUInt16Len(tx.Name); err != nil {
		return err
	}
	if err := s.StringWithUInt16Len(tx.Description); err != nil {
		return err
	}
	if err := s.Uint64(tx.Quantity); err != nil {
		return err
	}
	if err := s.Byte(tx.Decimals); err != nil {
		return err
	}
	if err := s.Bool(tx.Reissuable); err != nil {
		return err
	}
	if len(tx.Script) == 0 {
		return s.Bool(false)
	}
	if err := s.Bool(true); err != nil {
		return err
	}
	return s.BytesWithUInt16Len(tx.Script)
}
