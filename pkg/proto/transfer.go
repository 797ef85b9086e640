package proto

import (
	"encoding/json"
	"slices"

	"github.com/pkg/errors"

	"github.com/wavesplatform/wavestx/pkg/libs/serializer"
)

// Transfer moves an amount of an asset to a recipient.
type Transfer struct {
	Recipient  Recipient
	Amount     Amount
	Attachment B58Bytes
}

func NewTransfer(recipient Recipient, amount Amount, attachment []byte) *Transfer {
	return &Transfer{Recipient: recipient, Amount: amount, Attachment: attachment}
}

func (tx *Transfer) Type() TransactionType {
	return TransferTransaction
}

func (tx *Transfer) Valid(_ byte, scheme Scheme) error {
	if err := validPositive(tx.Amount.Value, "amount"); err != nil {
		return err
	}
	if err := validAttachment(tx.Attachment); err != nil {
		return err
	}
	return validRecipient(tx.Recipient, scheme)
}

func (tx *Transfer) clone() (TransactionData, error) {
	c := *tx
	c.Attachment = slices.Clone(tx.Attachment)
	return &c, nil
}

func (tx *Transfer) writeBody(s *serializer.Serializer, _ byte) error {
	if err := tx.Recipient.write(s); err != nil {
		return err
	}
	if err := tx.Amount.write(s); err != nil {
		return err
	}
	return s.BytesWithUInt16Len(tx.Attachment)
}

type transferJSON struct {
	Recipient  Recipient     `json:"recipient"`
	Amount     uint64        `json:"amount"`
	AssetID    OptionalAsset `json:"assetId"`
	Attachment B58Bytes      `json:"attachment"`
}

func (tx *Transfer) MarshalJSON() ([]byte, error) {
	return json.Marshal(transferJSON{
		Recipient:  tx.Recipient,
		Amount:     tx.Amount.Value,
		AssetID:    tx.Amount.Asset,
		Attachment: tx.Attachment,
	})
}

func (tx *Transfer) UnmarshalJSON(value []byte) error {
	var tmp transferJSON
	if err := json.Unmarshal(value, &tmp); err != nil {
		return errors.Wrap(err, "failed to unmarshal Transfer from JSON")
	}
	*tx = Transfer{
		Recipient:  tmp.Recipient,
		Amount:     NewAmount(tmp.Amount, tmp.AssetID),
		Attachment: tmp.Attachment,
	}
	return nil
}
