package proto

import (
	"github.com/wavesplatform/wavestx/pkg/crypto"
	"github.com/wavesplatform/wavestx/pkg/libs/serializer"
)

// Reissue adds quantity to a reissuable asset.
type Reissue struct {
	AssetID    crypto.Digest `json:"assetId"`
	Quantity   uint64        `json:"quantity"`
	Reissuable bool          `json:"reissuable"`
}

func NewReissue(assetID crypto.Digest, quantity uint64, reissuable bool) *Reissue {
	return &Reissue{AssetID: assetID, Quantity: quantity, Reissuable: reissuable}
}

func (tx *Reissue) Type() TransactionType {
	return ReissueTransaction
}

func (tx *Reissue) Valid(_ byte, _ Scheme) error {
	return validPositive(tx.Quantity, "quantity")
}

func (tx *Reissue) clone() (TransactionData, error) {
	c := *tx
	return &c, nil
}

func (tx *Reissue) writeBody(s *serializer.Serializer, _ byte) error {
	if err := s.Bytes(tx.AssetID[:]); err != nil {
		return err
	}
	if err := s.Uint64(tx.Quantity); err != nil {
		return err
	}
	return s.Bool(tx.Reissuable)
}
