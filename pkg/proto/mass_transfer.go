package proto

import (
	"math"
	"slices"
	"strconv"

	"github.com/pkg/errors"

	"github.com/wavesplatform/wavestx/pkg/errs"
	"github.com/wavesplatform/wavestx/pkg/libs/serializer"
)

type MassTransferEntry struct {
	Recipient Recipient `json:"recipient"`
	Amount    uint64    `json:"amount"`
}

// MassTransfer sends one asset to many recipients at once.
type MassTransfer struct {
	Asset      OptionalAsset       `json:"assetId"`
	Transfers  []MassTransferEntry `json:"transfers"`
	Attachment B58Bytes            `json:"attachment"`
}

func NewMassTransfer(asset OptionalAsset, transfers []MassTransferEntry, attachment []byte) *MassTransfer {
	return &MassTransfer{Asset: asset, Transfers: transfers, Attachment: attachment}
}

func (tx *MassTransfer) Type() TransactionType {
	return MassTransferTransaction
}

func (tx *MassTransfer) Valid(_ byte, scheme Scheme) error {
	if l := len(tx.Transfers); l > maxTransfers {
		return errs.NewTooBigArray(
			"number of transfers " + strconv.Itoa(l) + " is greater than " + strconv.Itoa(maxTransfers))
	}
	for i, t := range tx.Transfers {
		if err := validRecipient(t.Recipient, scheme); err != nil {
			return errors.Wrapf(err, "invalid transfer %d", i)
		}
	}
	if _, err := tx.TotalAmount(); err != nil {
		return err
	}
	return validAttachment(tx.Attachment)
}

// TotalAmount sums the amounts of all transfers, failing if the sum does not fit into uint64.
func (tx *MassTransfer) TotalAmount() (uint64, error) {
	var r uint64
	for i, t := range tx.Transfers {
		if t.Amount > math.MaxUint64-r {
			return 0, errors.Errorf("total amount overflows at transfer %d", i)
		}
		r += t.Amount
	}
	return r, nil
}

func (tx *MassTransfer) clone() (TransactionData, error) {
	c := *tx
	c.Transfers = slices.Clone(tx.Transfers)
	c.Attachment = slices.Clone(tx.Attachment)
	return &c, nil
}

func (tx *MassTransfer) writeBody(s *serializer.Serializer, _ byte) error {
	if err := tx.Asset.write(s); err != nil {
		return err
	}
	if err := s.Uint16(uint16(len(tx.Transfers))); err != nil {
		return err
	}
	for _, t := range tx.Transfers {
		if err := t.Recipient.write(s); err != nil {
			return err
		}
		if err := s.Uint64(t.Amount); err != nil {
			return err
		}
	}
	return s.BytesWithUInt16Len(tx.Attachment)
}
