package proto

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"

	"github.com/wavesplatform/wavestx/pkg/crypto"
	"github.com/wavesplatform/wavestx/pkg/libs/serializer"
)

type OrderType byte

const (
	Buy OrderType = iota
	Sell
)

const (
	buyOrderName  = "buy"
	sellOrderName = "sell"
)

func (t OrderType) String() string {
	switch t {
	case Buy:
		return buyOrderName
	case Sell:
		return sellOrderName
	default:
		return ""
	}
}

func (t OrderType) MarshalJSON() ([]byte, error) {
	s := t.String()
	if s == "" {
		return nil, errors.Errorf("invalid OrderType value %d", t)
	}
	return json.Marshal(s)
}

func (t *OrderType) UnmarshalJSON(value []byte) error {
	s, err := strconv.Unquote(string(value))
	if err != nil {
		return errors.Wrap(err, "failed to unmarshal OrderType from JSON")
	}
	switch s {
	case buyOrderName:
		*t = Buy
	case sellOrderName:
		*t = Sell
	default:
		return errors.Errorf("incorrect OrderType '%s'", s)
	}
	return nil
}

// AssetPair is the market of an order: amounts are in AmountAsset, prices in PriceAsset.
type AssetPair struct {
	AmountAsset OptionalAsset `json:"amountAsset"`
	PriceAsset  OptionalAsset `json:"priceAsset"`
}

func (p AssetPair) write(s *serializer.Serializer) error {
	if err := p.AmountAsset.write(s); err != nil {
		return err
	}
	return p.PriceAsset.write(s)
}

// Order is a matcher order, signed by its sender separately from the exchange transaction that fills it.
type Order struct {
	Version    byte
	SenderPK   crypto.PublicKey
	MatcherPK  crypto.PublicKey
	AssetPair  AssetPair
	OrderType  OrderType
	Price      uint64
	Amount     uint64
	Timestamp  uint64
	Expiration uint64
	MatcherFee Amount
	Proofs     ProofsV1
}

func (o *Order) Valid() error {
	if o.OrderType != Buy && o.OrderType != Sell {
		return errors.Errorf("invalid order type %d", o.OrderType)
	}
	if o.AssetPair.AmountAsset == o.AssetPair.PriceAsset {
		return errors.New("invalid asset pair: amount and price assets are the same")
	}
	if err := validPositive(o.Price, "price"); err != nil {
		return err
	}
	if err := validPositive(o.Amount, "amount"); err != nil {
		return err
	}
	if err := validPositive(o.MatcherFee.Value, "matcher fee"); err != nil {
		return err
	}
	if o.Expiration < o.Timestamp {
		return errors.New("order expiration should be later than its timestamp")
	}
	return o.Proofs.Valid()
}

func (o *Order) writeBody(s *serializer.Serializer) error {
	if err := s.Byte(o.Version); err != nil {
		return err
	}
	if err := s.Bytes(o.SenderPK[:]); err != nil {
		return err
	}
	if err := s.Bytes(o.MatcherPK[:]); err != nil {
		return err
	}
	if err := o.AssetPair.write(s); err != nil {
		return err
	}
	if err := s.Byte(byte(o.OrderType)); err != nil {
		return err
	}
	if err := s.Uint64(o.Price); err != nil {
		return err
	}
	if err := s.Uint64(o.Amount); err != nil {
		return err
	}
	if err := s.Uint64(o.Timestamp); err != nil {
		return err
	}
	if err := s.Uint64(o.Expiration); err != nil {
		return err
	}
	return o.MatcherFee.write(s)
}

// BodyBytes returns the signed part of the order.
func (o *Order) BodyBytes() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := o.writeBody(serializer.New(buf)); err != nil {
		return nil, errors.Wrap(err, "failed to marshal Order body")
	}
	return buf.Bytes(), nil
}

func (o *Order) ID() (ID, error) {
	b, err := o.BodyBytes()
	if err != nil {
		return ID{}, err
	}
	return NewIDFromBytes(b)
}

// Sign returns a copy of the order with the sender's signature at proof position 0.
func (o *Order) Sign(secretKey crypto.SecretKey) (*Order, error) {
	b, err := o.BodyBytes()
	if err != nil {
		return nil, err
	}
	sig, err := crypto.Sign(secretKey, b)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign Order")
	}
	proofs, err := o.Proofs.WithProof(0, sig[:])
	if err != nil {
		return nil, err
	}
	out, err := o.Clone()
	if err != nil {
		return nil, err
	}
	out.Proofs = proofs
	return out, nil
}

func (o *Order) Verify(publicKey crypto.PublicKey) (bool, error) {
	b, err := o.BodyBytes()
	if err != nil {
		return false, err
	}
	return o.Proofs.Verify(0, publicKey, b)
}

// Clone returns a copy of the order that shares no proofs with o.
func (o *Order) Clone() (*Order, error) {
	out := &Order{}
	if err := copier.Copy(out, o); err != nil {
		return nil, errors.Wrap(err, "failed to copy Order")
	}
	out.Proofs = o.Proofs.Clone()
	return out, nil
}

func (o *Order) write(s *serializer.Serializer) error {
	if err := o.writeBody(s); err != nil {
		return err
	}
	return o.Proofs.write(s)
}

// MarshalBinary writes the order body followed by its proofs.
func (o *Order) MarshalBinary() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := o.write(serializer.New(buf)); err != nil {
		return nil, errors.Wrap(err, "failed to marshal Order to bytes")
	}
	return buf.Bytes(), nil
}

type orderJSON struct {
	ID                *ID              `json:"id,omitempty"`
	Version           byte             `json:"version"`
	SenderPK          crypto.PublicKey `json:"senderPublicKey"`
	MatcherPK         crypto.PublicKey `json:"matcherPublicKey"`
	AssetPair         AssetPair        `json:"assetPair"`
	OrderType         OrderType        `json:"orderType"`
	Price             uint64           `json:"price"`
	Amount            uint64           `json:"amount"`
	Timestamp         uint64           `json:"timestamp"`
	Expiration        uint64           `json:"expiration"`
	MatcherFee        uint64           `json:"matcherFee"`
	MatcherFeeAssetID OptionalAsset    `json:"matcherFeeAssetId"`
	Proofs            ProofsV1         `json:"proofs"`
}

func (o *Order) MarshalJSON() ([]byte, error) {
	id, err := o.ID()
	if err != nil {
		return nil, err
	}
	return json.Marshal(orderJSON{
		ID:                &id,
		Version:           o.Version,
		SenderPK:          o.SenderPK,
		MatcherPK:         o.MatcherPK,
		AssetPair:         o.AssetPair,
		OrderType:         o.OrderType,
		Price:             o.Price,
		Amount:            o.Amount,
		Timestamp:         o.Timestamp,
		Expiration:        o.Expiration,
		MatcherFee:        o.MatcherFee.Value,
		MatcherFeeAssetID: o.MatcherFee.Asset,
		Proofs:            o.Proofs,
	})
}

func (o *Order) UnmarshalJSON(value []byte) error {
	var tmp orderJSON
	if err := json.Unmarshal(value, &tmp); err != nil {
		return errors.Wrap(err, "failed to unmarshal Order from JSON")
	}
	*o = Order{
		Version:    tmp.Version,
		SenderPK:   tmp.SenderPK,
		MatcherPK:  tmp.MatcherPK,
		AssetPair:  tmp.AssetPair,
		OrderType:  tmp.OrderType,
		Price:      tmp.Price,
		Amount:     tmp.Amount,
		Timestamp:  tmp.Timestamp,
		Expiration: tmp.Expiration,
		MatcherFee: NewAmount(tmp.MatcherFee, tmp.MatcherFeeAssetID),
		Proofs:     tmp.Proofs,
	}
	return nil
}
