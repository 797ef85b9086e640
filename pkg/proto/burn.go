package proto

import (
	"github.com/wavesplatform/wavestx/pkg/crypto"
	"github.com/wavesplatform/wavestx/pkg/libs/serializer"
)

// Burn destroys an amount of an issued asset.
type Burn struct {
	AssetID crypto.Digest `json:"assetId"`
	Amount  uint64        `json:"amount"`
}

func NewBurn(assetID crypto.Digest, amount uint64) *Burn {
	return &Burn{AssetID: assetID, Amount: amount}
}

func (tx *Burn) Type() TransactionType {
	return BurnTransaction
}

func (tx *Burn) Valid(_ byte, _ Scheme) error {
	return nil
}

func (tx *Burn) clone() (TransactionData, error) {
	c := *tx
	return &c, nil
}

func (tx *Burn) writeBody(s *serializer.Serializer, _ byte) error {
	if err := s.Bytes(tx.AssetID[:]); err != nil {
		return err
	}
	return s.Uint64(tx.Amount)
}
