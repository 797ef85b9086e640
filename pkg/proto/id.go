package proto

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/wavesplatform/wavestx/pkg/crypto"
)

// ID is a content hash identifying a transaction or an order.
type ID struct {
	d crypto.Digest
}

// NewIDFromBytes hashes data with FastHash.
func NewIDFromBytes(data []byte) (ID, error) {
	d, err := crypto.FastHash(data)
	if err != nil {
		return ID{}, errors.Wrap(err, "failed to calculate ID")
	}
	return ID{d: d}, nil
}

func NewIDFromDigest(d crypto.Digest) ID {
	return ID{d: d}
}

// NewIDFromBase58 decodes an already calculated ID without hashing it again.
func NewIDFromBase58(s string) (ID, error) {
	d, err := crypto.NewDigestFromBase58(s)
	if err != nil {
		return ID{}, err
	}
	return ID{d: d}, nil
}

func MustIDFromBase58(s string) ID {
	id, err := NewIDFromBase58(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ID) Digest() crypto.Digest {
	return id.d
}

func (id ID) Bytes() []byte {
	return id.d.Bytes()
}

func (id ID) String() string {
	return id.d.String()
}

func (id ID) Equal(other ID) bool {
	return id.d == other.d
}

// Compare orders IDs by their bytes.
func (id ID) Compare(other ID) int {
	return bytes.Compare(id.d[:], other.d[:])
}

func (id ID) MarshalJSON() ([]byte, error) {
	return id.d.MarshalJSON()
}

func (id *ID) UnmarshalJSON(value []byte) error {
	return id.d.UnmarshalJSON(value)
}
