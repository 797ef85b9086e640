package proto

import (
	"github.com/pkg/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/wavesplatform/wavestx/pkg/crypto"
	"github.com/wavesplatform/wavestx/pkg/libs/serializer"
)

// signedTransactionVersionFlag opens the full binary form of a transaction with proofs.
const signedTransactionVersionFlag byte = 0

// SignedTransaction is a transaction with its ordered proofs. Values are never modified in place,
// adding a proof produces a new SignedTransaction.
type SignedTransaction struct {
	tx     Transaction
	proofs ProofsV1
}

// NewSignedTransaction attaches externally produced proofs to a transaction.
func NewSignedTransaction(tx Transaction, proofs ProofsV1) (SignedTransaction, error) {
	if err := tx.Validate(); err != nil {
		return SignedTransaction{}, err
	}
	if err := proofs.Valid(); err != nil {
		return SignedTransaction{}, err
	}
	tx, err := tx.clone()
	if err != nil {
		return SignedTransaction{}, err
	}
	return SignedTransaction{tx: tx, proofs: proofs.Clone()}, nil
}

// Transaction returns a copy of the signed transaction, changing it does not affect st.
func (st SignedTransaction) Transaction() (Transaction, error) {
	return st.tx.clone()
}

func (st SignedTransaction) Proofs() ProofsV1 {
	return st.proofs.Clone()
}

// ID is the ID of the inner transaction.
func (st SignedTransaction) ID() (ID, error) {
	return st.tx.ID()
}

// WithProof returns a copy with the proof set at the given position. Position 0 holds the sender's signature.
func (st SignedTransaction) WithProof(pos int, proof []byte) (SignedTransaction, error) {
	p, err := st.proofs.WithProof(pos, proof)
	if err != nil {
		return SignedTransaction{}, err
	}
	return SignedTransaction{tx: st.tx, proofs: p}, nil
}

// Verify checks the proof at position 0 against the body bytes.
func (st SignedTransaction) Verify(publicKey crypto.PublicKey) (bool, error) {
	b, err := st.tx.BodyBytes()
	if err != nil {
		return false, err
	}
	return st.proofs.Verify(0, publicKey, b)
}

// MarshalBinary writes the full binary form: a zero flag, the body and the proofs.
func (st SignedTransaction) MarshalBinary() ([]byte, error) {
	if err := st.tx.Validate(); err != nil {
		return nil, err
	}
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	s := serializer.New(buf)
	if err := s.Byte(signedTransactionVersionFlag); err != nil {
		return nil, err
	}
	if err := st.tx.writeBody(s); err != nil {
		return nil, errors.Wrapf(err, "failed to marshal %s transaction", st.tx.Type)
	}
	if err := st.proofs.write(s); err != nil {
		return nil, errors.Wrapf(err, "failed to marshal proofs of %s transaction", st.tx.Type)
	}
	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}

// MarshalJSON produces the node's broadcast format.
func (st SignedTransaction) MarshalJSON() ([]byte, error) {
	id, err := st.ID()
	if err != nil {
		return nil, err
	}
	common := st.tx.commonJSON()
	common.ID = &id
	proofs := st.proofs
	common.Proofs = &proofs
	return mergeJSON(st.tx.Data, common)
}
