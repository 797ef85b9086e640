package proto

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/wavesplatform/wavestx/pkg/crypto"
	"github.com/wavesplatform/wavestx/pkg/errs"
	"github.com/wavesplatform/wavestx/pkg/libs/serializer"
)

// TransactionType is the one byte discriminant of a transaction kind.
type TransactionType byte

// All transaction types supported by the network. Only some of them can be built here, see TransactionData.
const (
	GenesisTransaction TransactionType = iota + 1
	PaymentTransaction
	IssueTransaction
	TransferTransaction
	ReissueTransaction
	BurnTransaction
	ExchangeTransaction
	LeaseTransaction
	LeaseCancelTransaction
	CreateAliasTransaction
	MassTransferTransaction
	DataTransaction
	SetScriptTransaction
	SponsorshipTransaction
	SetAssetScriptTransaction
	InvokeScriptTransaction
)

const (
	minTransactionVersion byte = 1
	maxTransactionVersion byte = 3
)

func (t TransactionType) String() string {
	switch t {
	case GenesisTransaction:
		return "Genesis"
	case PaymentTransaction:
		return "Payment"
	case IssueTransaction:
		return "Issue"
	case TransferTransaction:
		return "Transfer"
	case ReissueTransaction:
		return "Reissue"
	case BurnTransaction:
		return "Burn"
	case ExchangeTransaction:
		return "Exchange"
	case LeaseTransaction:
		return "Lease"
	case LeaseCancelTransaction:
		return "LeaseCancel"
	case CreateAliasTransaction:
		return "CreateAlias"
	case MassTransferTransaction:
		return "MassTransfer"
	case DataTransaction:
		return "Data"
	case SetScriptTransaction:
		return "SetScript"
	case SponsorshipTransaction:
		return "Sponsorship"
	case SetAssetScriptTransaction:
		return "SetAssetScript"
	case InvokeScriptTransaction:
		return "InvokeScript"
	default:
		return "Unknown"
	}
}

// TransactionData is the closed set of transaction kinds: *Transfer, *Reissue, *Burn, *Lease, *LeaseCancel,
// *CreateAlias, *MassTransfer, *Data, *Issue, *InvokeScript and *Exchange.
// Every kind writes its own body, the envelope around it is written by Transaction.
type TransactionData interface {
	Type() TransactionType
	Valid(version byte, scheme Scheme) error
	writeBody(s *serializer.Serializer, version byte) error
	clone() (TransactionData, error)
}

// Transaction is an unsigned envelope around TransactionData.
// Type is carried explicitly and must match the kind of Data.
type Transaction struct {
	Data      TransactionData
	Fee       Amount
	Timestamp uint64
	SenderPK  crypto.PublicKey
	Type      TransactionType
	Version   byte
	ChainID   Scheme
}

// NewTransaction builds a validated envelope around a copy of data, the type is taken from data.
func NewTransaction(
	data TransactionData, fee Amount, timestamp uint64, senderPK crypto.PublicKey, version byte, chainID Scheme,
) (Transaction, error) {
	if data == nil {
		return Transaction{}, errs.NewInvalidTransactionType("empty transaction data")
	}
	data, err := data.clone()
	if err != nil {
		return Transaction{}, err
	}
	tx := Transaction{
		Data:      data,
		Fee:       fee,
		Timestamp: timestamp,
		SenderPK:  senderPK,
		Type:      data.Type(),
		Version:   version,
		ChainID:   chainID,
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// clone returns the envelope with its own copy of Data.
func (tx Transaction) clone() (Transaction, error) {
	if tx.Data == nil {
		return tx, nil
	}
	d, err := tx.Data.clone()
	if err != nil {
		return Transaction{}, errors.Wrapf(err, "failed to copy %s transaction", tx.Type)
	}
	tx.Data = d
	return tx, nil
}

func (tx Transaction) Validate() error {
	if tx.Data == nil {
		return errs.NewInvalidTransactionType("empty transaction data")
	}
	if dt := tx.Data.Type(); tx.Type != dt {
		return errs.NewInvalidTransactionType(
			"transaction type " + tx.Type.String() + " does not match data of type " + dt.String())
	}
	if tx.Version < minTransactionVersion || tx.Version > maxTransactionVersion {
		return errors.Errorf("unsupported version %d of %s transaction", tx.Version, tx.Type)
	}
	if tx.Fee.Value == 0 {
		return errs.NewNonPositiveAmount(0, "fee")
	}
	if err := tx.Data.Valid(tx.Version, tx.ChainID); err != nil {
		return errs.Extend(err, "invalid "+tx.Type.String()+" transaction")
	}
	return nil
}

func (tx Transaction) writeBody(s *serializer.Serializer) error {
	if err := s.Byte(byte(tx.Type)); err != nil {
		return err
	}
	if tx.Version >= 2 {
		if err := s.Byte(tx.Version); err != nil {
			return err
		}
		if err := s.Byte(tx.ChainID); err != nil {
			return err
		}
	}
	if err := s.Bytes(tx.SenderPK[:]); err != nil {
		return err
	}
	if err := tx.Data.writeBody(s, tx.Version); err != nil {
		return err
	}
	if err := tx.Fee.write(s); err != nil {
		return err
	}
	return s.Uint64(tx.Timestamp)
}

// BodyBytes returns the canonical bytes that are hashed into the ID and signed.
func (tx Transaction) BodyBytes() ([]byte, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return MarshalBody(tx)
}

// MarshalBody writes the body of an already validated transaction.
func MarshalBody(tx Transaction) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := tx.writeBody(serializer.New(buf)); err != nil {
		return nil, errors.Wrapf(err, "failed to marshal body of %s transaction", tx.Type)
	}
	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}

// ID is the FastHash of the body bytes, proofs never change it.
func (tx Transaction) ID() (ID, error) {
	b, err := tx.BodyBytes()
	if err != nil {
		return ID{}, err
	}
	return NewIDFromBytes(b)
}

// Sign returns a new SignedTransaction carrying the signature of the body at proof position 0.
// The signed value owns a copy of the transaction data.
func (tx Transaction) Sign(secretKey crypto.SecretKey) (SignedTransaction, error) {
	tx, err := tx.clone()
	if err != nil {
		return SignedTransaction{}, err
	}
	b, err := tx.BodyBytes()
	if err != nil {
		return SignedTransaction{}, err
	}
	sig, err := crypto.Sign(secretKey, b)
	if err != nil {
		return SignedTransaction{}, errors.Wrapf(err, "failed to sign %s transaction", tx.Type)
	}
	proofs, err := NewProofs().WithProof(0, sig[:])
	if err != nil {
		return SignedTransaction{}, err
	}
	return SignedTransaction{tx: tx, proofs: proofs}, nil
}

// SignWithKeyBytes signs with raw secret key bytes, failing with InvalidPrivateKey on malformed keys.
func (tx Transaction) SignWithKeyBytes(key []byte) (SignedTransaction, error) {
	sk, err := crypto.NewSecretKeyFromBytes(key)
	if err != nil {
		return SignedTransaction{}, err
	}
	return tx.Sign(sk)
}

type typed interface {
	Type() TransactionType
}

func narrow[T typed](v typed, expected TransactionType) (T, error) {
	r, ok := v.(T)
	if !ok {
		var zero T
		actual := TransactionType(0)
		if v != nil {
			actual = v.Type()
		}
		return zero, errs.NewWrongTransactionType(byte(expected), byte(actual))
	}
	return r, nil
}

func (tx Transaction) AsTransfer() (*Transfer, error) {
	return narrow[*Transfer](tx.Data, TransferTransaction)
}

func (tx Transaction) AsReissue() (*Reissue, error) {
	return narrow[*Reissue](tx.Data, ReissueTransaction)
}

func (tx Transaction) AsBurn() (*Burn, error) {
	return narrow[*Burn](tx.Data, BurnTransaction)
}

func (tx Transaction) AsLease() (*Lease, error) {
	return narrow[*Lease](tx.Data, LeaseTransaction)
}

func (tx Transaction) AsLeaseCancel() (*LeaseCancel, error) {
	return narrow[*LeaseCancel](tx.Data, LeaseCancelTransaction)
}

func (tx Transaction) AsCreateAlias() (*CreateAlias, error) {
	return narrow[*CreateAlias](tx.Data, CreateAliasTransaction)
}

func (tx Transaction) AsMassTransfer() (*MassTransfer, error) {
	return narrow[*MassTransfer](tx.Data, MassTransferTransaction)
}

func (tx Transaction) AsData() (*Data, error) {
	return narrow[*Data](tx.Data, DataTransaction)
}

func (tx Transaction) AsIssue() (*Issue, error) {
	return narrow[*Issue](tx.Data, IssueTransaction)
}

func (tx Transaction) AsInvokeScript() (*InvokeScript, error) {
	return narrow[*InvokeScript](tx.Data, InvokeScriptTransaction)
}

func (tx Transaction) AsExchange() (*Exchange, error) {
	return narrow[*Exchange](tx.Data, ExchangeTransaction)
}

// txCommonJSON holds the envelope fields of the node's transaction JSON.
type txCommonJSON struct {
	ID         *ID              `json:"id,omitempty"`
	Type       TransactionType  `json:"type"`
	Version    byte             `json:"version"`
	ChainID    byte             `json:"chainId"`
	SenderPK   crypto.PublicKey `json:"senderPublicKey"`
	Fee        uint64           `json:"fee"`
	FeeAssetID OptionalAsset    `json:"feeAssetId"`
	Timestamp  uint64           `json:"timestamp"`
	Proofs     *ProofsV1        `json:"proofs,omitempty"`
}

func (tx Transaction) commonJSON() txCommonJSON {
	return txCommonJSON{
		Type:       tx.Type,
		Version:    tx.Version,
		ChainID:    tx.ChainID,
		SenderPK:   tx.SenderPK,
		Fee:        tx.Fee.Value,
		FeeAssetID: tx.Fee.Asset,
		Timestamp:  tx.Timestamp,
	}
}

// mergeJSON marshals the objects one by one and merges their fields, later objects win.
func mergeJSON(objects ...any) ([]byte, error) {
	fields := make(map[string]json.RawMessage)
	for _, o := range objects {
		b, err := json.Marshal(o)
		if err != nil {
			return nil, err
		}
		var m map[string]json.RawMessage
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, err
		}
		for k, v := range m {
			fields[k] = v
		}
	}
	return json.Marshal(fields)
}

// MarshalJSON produces the envelope and data fields without id and proofs.
func (tx Transaction) MarshalJSON() ([]byte, error) {
	if tx.Data == nil {
		return nil, errs.NewInvalidTransactionType("empty transaction data")
	}
	return mergeJSON(tx.Data, tx.commonJSON())
}
