package proto

import (
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"

	"github.com/wavesplatform/wavestx/pkg/crypto"
)

// ApplicationStatus is the ledger-side outcome of a confirmed transaction.
type ApplicationStatus byte

const (
	UnknownStatus ApplicationStatus = iota
	SucceedStatus
	ScriptExecutionFailedStatus
)

const (
	succeededStatusName             = "succeeded"
	scriptExecutionFailedStatusName = "script_execution_failed"
	unknownStatusName               = "unknown"
)

// NewApplicationStatus maps the node's status text, anything unrecognized is UnknownStatus.
func NewApplicationStatus(s string) ApplicationStatus {
	switch s {
	case succeededStatusName:
		return SucceedStatus
	case scriptExecutionFailedStatusName:
		return ScriptExecutionFailedStatus
	default:
		return UnknownStatus
	}
}

func (s ApplicationStatus) String() string {
	switch s {
	case SucceedStatus:
		return succeededStatusName
	case ScriptExecutionFailedStatus:
		return scriptExecutionFailedStatusName
	default:
		return unknownStatusName
	}
}

func (s ApplicationStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ApplicationStatus) UnmarshalJSON(value []byte) error {
	if string(value) == jsonNull {
		*s = UnknownStatus
		return nil
	}
	str, err := strconv.Unquote(string(value))
	if err != nil {
		return errors.Wrap(err, "failed to unmarshal ApplicationStatus from JSON")
	}
	*s = NewApplicationStatus(str)
	return nil
}

// TransactionDataInfo is the read-side mirror of TransactionData, possibly with post-execution fields.
type TransactionDataInfo interface {
	Type() TransactionType
	transactionData() TransactionData
}

type TransferInfo struct {
	Transfer
}

func (i *TransferInfo) transactionData() TransactionData {
	return &i.Transfer
}

type ReissueInfo struct {
	Reissue
}

func (i *ReissueInfo) transactionData() TransactionData {
	return &i.Reissue
}

type BurnInfo struct {
	Burn
}

func (i *BurnInfo) transactionData() TransactionData {
	return &i.Burn
}

// LeaseInfo carries the current lease status, "active" or "canceled".
type LeaseInfo struct {
	Lease
	Status string `json:"status"`
}

func (i *LeaseInfo) transactionData() TransactionData {
	return &i.Lease
}

// LeaseDetails is the lease resolved by the node for a lease cancellation.
type LeaseDetails struct {
	ID                  ID           `json:"id"`
	OriginTransactionID ID           `json:"originTransactionId"`
	Sender              WavesAddress `json:"sender"`
	Recipient           Recipient    `json:"recipient"`
	Amount              uint64       `json:"amount"`
	Height              uint32       `json:"height"`
	Status              string       `json:"status"`
}

type LeaseCancelInfo struct {
	LeaseCancel
	Lease *LeaseDetails `json:"lease"`
}

func (i *LeaseCancelInfo) transactionData() TransactionData {
	return &i.LeaseCancel
}

type CreateAliasInfo struct {
	CreateAlias
}

func (i *CreateAliasInfo) transactionData() TransactionData {
	return &i.CreateAlias
}

type MassTransferInfo struct {
	MassTransfer
	TransferCount int    `json:"transferCount"`
	TotalAmount   uint64 `json:"totalAmount"`
}

func (i *MassTransferInfo) transactionData() TransactionData {
	return &i.MassTransfer
}

type DataInfo struct {
	Data
}

func (i *DataInfo) transactionData() TransactionData {
	return &i.Data
}

// IssueInfo carries the ID of the issued asset.
type IssueInfo struct {
	Issue
	AssetID crypto.Digest `json:"assetId"`
}

func (i *IssueInfo) transactionData() TransactionData {
	return &i.Issue
}

// InvokeScriptInfo keeps the state changes of the invocation as reported by the node.
type InvokeScriptInfo struct {
	InvokeScript
	StateChanges json.RawMessage `json:"stateChanges,omitempty"`
}

func (i *InvokeScriptInfo) transactionData() TransactionData {
	return &i.InvokeScript
}

// ExchangeInfo carries the IDs of the filled orders as reported by the node.
type ExchangeInfo struct {
	Exchange
	Order1ID ID
	Order2ID ID
}

func (i *ExchangeInfo) transactionData() TransactionData {
	return &i.Exchange
}

func (i *ExchangeInfo) UnmarshalJSON(value []byte) error {
	if err := json.Unmarshal(value, &i.Exchange); err != nil {
		return errors.Wrap(err, "failed to unmarshal ExchangeInfo from JSON")
	}
	type orderID struct {
		ID ID `json:"id"`
	}
	var ids struct {
		Order1 orderID `json:"order1"`
		Order2 orderID `json:"order2"`
	}
	if err := json.Unmarshal(value, &ids); err != nil {
		return errors.Wrap(err, "failed to unmarshal ExchangeInfo order IDs from JSON")
	}
	i.Order1ID = ids.Order1.ID
	i.Order2ID = ids.Order2.ID
	return nil
}

func guessTransactionDataInfo(t TransactionType) (TransactionDataInfo, error) {
	switch t {
	case TransferTransaction:
		return &TransferInfo{}, nil
	case ReissueTransaction:
		return &ReissueInfo{}, nil
	case BurnTransaction:
		return &BurnInfo{}, nil
	case LeaseTransaction:
		return &LeaseInfo{}, nil
	case LeaseCancelTransaction:
		return &LeaseCancelInfo{}, nil
	case CreateAliasTransaction:
		return &CreateAliasInfo{}, nil
	case MassTransferTransaction:
		return &MassTransferInfo{}, nil
	case DataTransaction:
		return &DataInfo{}, nil
	case IssueTransaction:
		return &IssueInfo{}, nil
	case InvokeScriptTransaction:
		return &InvokeScriptInfo{}, nil
	case ExchangeTransaction:
		return &ExchangeInfo{}, nil
	default:
		return nil, errors.Errorf("unsupported transaction type %d (%s)", byte(t), t)
	}
}

// TransactionInfo is a confirmed transaction as reported by a node.
type TransactionInfo struct {
	ID        ID
	Status    ApplicationStatus
	Data      TransactionDataInfo
	Fee       Amount
	Timestamp uint64
	SenderPK  crypto.PublicKey
	Type      TransactionType
	Version   byte
	ChainID   Scheme
	Height    uint32
	Proofs    ProofsV1
}

type transactionInfoJSON struct {
	ID         ID                `json:"id"`
	Type       TransactionType   `json:"type"`
	Version    byte              `json:"version"`
	ChainID    byte              `json:"chainId"`
	Sender     *WavesAddress     `json:"sender"`
	SenderPK   crypto.PublicKey  `json:"senderPublicKey"`
	Fee        uint64            `json:"fee"`
	FeeAssetID OptionalAsset     `json:"feeAssetId"`
	Timestamp  uint64            `json:"timestamp"`
	Height     uint32            `json:"height"`
	Status     ApplicationStatus `json:"applicationStatus"`
	Proofs     *ProofsV1         `json:"proofs"`
	Signature  B58Bytes          `json:"signature"`
}

func (ti *TransactionInfo) UnmarshalJSON(value []byte) error {
	var head transactionInfoJSON
	if err := json.Unmarshal(value, &head); err != nil {
		return errors.Wrap(err, "failed to unmarshal TransactionInfo from JSON")
	}
	data, err := guessTransactionDataInfo(head.Type)
	if err != nil {
		return errors.Wrap(err, "failed to unmarshal TransactionInfo from JSON")
	}
	if err := json.Unmarshal(value, data); err != nil {
		return errors.Wrapf(err, "failed to unmarshal %s transaction info from JSON", head.Type)
	}
	if head.ChainID == 0 && head.Sender != nil {
		// Legacy records carry no chainId, the network is the one of the sender's address.
		head.ChainID = head.Sender.ChainID()
	}
	if ca, ok := data.(*CreateAliasInfo); ok && ca.Alias.Scheme == 0 {
		ca.Alias.Scheme = head.ChainID
	}
	proofs := NewProofs()
	switch {
	case head.Proofs != nil:
		proofs = *head.Proofs
	case len(head.Signature) != 0:
		// Version 1 transactions report a single signature instead of proofs.
		if proofs, err = proofs.WithProof(0, head.Signature); err != nil {
			return err
		}
	}
	*ti = TransactionInfo{
		ID:        head.ID,
		Status:    head.Status,
		Data:      data,
		Fee:       NewAmount(head.Fee, head.FeeAssetID),
		Timestamp: head.Timestamp,
		SenderPK:  head.SenderPK,
		Type:      head.Type,
		Version:   head.Version,
		ChainID:   head.ChainID,
		Height:    head.Height,
		Proofs:    proofs,
	}
	return nil
}

// Transaction rebuilds the unsigned envelope of the confirmed transaction.
func (ti *TransactionInfo) Transaction() (Transaction, error) {
	if ti.Data == nil {
		return Transaction{}, errors.New("empty transaction info data")
	}
	return Transaction{
		Data:      ti.Data.transactionData(),
		Fee:       ti.Fee,
		Timestamp: ti.Timestamp,
		SenderPK:  ti.SenderPK,
		Type:      ti.Type,
		Version:   ti.Version,
		ChainID:   ti.ChainID,
	}, nil
}

// SignedTransaction rebuilds the signed transaction, the reported proofs are attached as is.
func (ti *TransactionInfo) SignedTransaction() (SignedTransaction, error) {
	tx, err := ti.Transaction()
	if err != nil {
		return SignedTransaction{}, err
	}
	return NewSignedTransaction(tx, ti.Proofs)
}

func (ti *TransactionInfo) TransferInfo() (*TransferInfo, error) {
	return narrow[*TransferInfo](ti.Data, TransferTransaction)
}

func (ti *TransactionInfo) ReissueInfo() (*ReissueInfo, error) {
	return narrow[*ReissueInfo](ti.Data, ReissueTransaction)
}

func (ti *TransactionInfo) BurnInfo() (*BurnInfo, error) {
	return narrow[*BurnInfo](ti.Data, BurnTransaction)
}

func (ti *TransactionInfo) LeaseInfo() (*LeaseInfo, error) {
	return narrow[*LeaseInfo](ti.Data, LeaseTransaction)
}

func (ti *TransactionInfo) LeaseCancelInfo() (*LeaseCancelInfo, error) {
	return narrow[*LeaseCancelInfo](ti.Data, LeaseCancelTransaction)
}

func (ti *TransactionInfo) CreateAliasInfo() (*CreateAliasInfo, error) {
	return narrow[*CreateAliasInfo](ti.Data, CreateAliasTransaction)
}

func (ti *TransactionInfo) MassTransferInfo() (*MassTransferInfo, error) {
	return narrow[*MassTransferInfo](ti.Data, MassTransferTransaction)
}

func (ti *TransactionInfo) DataInfo() (*DataInfo, error) {
	return narrow[*DataInfo](ti.Data, DataTransaction)
}

func (ti *TransactionInfo) IssueInfo() (*IssueInfo, error) {
	return narrow[*IssueInfo](ti.Data, IssueTransaction)
}

func (ti *TransactionInfo) InvokeScriptInfo() (*InvokeScriptInfo, error) {
	return narrow[*InvokeScriptInfo](ti.Data, InvokeScriptTransaction)
}

func (ti *TransactionInfo) ExchangeInfo() (*ExchangeInfo, error) {
	return narrow[*ExchangeInfo](ti.Data, ExchangeTransaction)
}
