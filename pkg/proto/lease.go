package proto

import (
	"github.com/wavesplatform/wavestx/pkg/libs/serializer"
)

// Lease leases an amount of the native asset to a recipient.
type Lease struct {
	Recipient Recipient `json:"recipient"`
	Amount    uint64    `json:"amount"`
}

func NewLease(recipient Recipient, amount uint64) *Lease {
	return &Lease{Recipient: recipient, Amount: amount}
}

func (tx *Lease) Type() TransactionType {
	return LeaseTransaction
}

func (tx *Lease) Valid(_ byte, scheme Scheme) error {
	if err := validPositive(tx.Amount, "amount"); err != nil {
		return err
	}
	return validRecipient(tx.Recipient, scheme)
}

func (tx *Lease) clone() (TransactionData, error) {
	c := *tx
	return &c, nil
}

func (tx *Lease) writeBody(s *serializer.Serializer, _ byte) error {
	if err := tx.Recipient.write(s); err != nil {
		return err
	}
	return s.Uint64(tx.Amount)
}

// LeaseCancel cancels the lease created by the transaction with LeaseID.
type LeaseCancel struct {
	LeaseID ID `json:"leaseId"`
}

func NewLeaseCancel(leaseID ID) *LeaseCancel {
	return &LeaseCancel{LeaseID: leaseID}
}

func (tx *LeaseCancel) Type() TransactionType {
	return LeaseCancelTransaction
}

func (tx *LeaseCancel) Valid(_ byte, _ Scheme) error {
	return nil
}

func (tx *LeaseCancel) clone() (TransactionData, error) {
	c := *tx
	return &c, nil
}

func (tx *LeaseCancel) writeBody(s *serializer.Serializer, _ byte) error {
	return s.Bytes(tx.LeaseID.Bytes())
}
