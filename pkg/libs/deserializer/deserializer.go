package deserializer

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/wavesplatform/wavestx/pkg/crypto"
)

// Deserializer consumes big-endian primitives from the head of a byte slice.
type Deserializer struct {
	b []byte
}

func NewDeserializer(b []byte) *Deserializer {
	return &Deserializer{b: b}
}

// Len returns the number of bytes left.
func (a *Deserializer) Len() int {
	return len(a.b)
}

func (a *Deserializer) Byte() (byte, error) {
	b, err := a.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (a *Deserializer) Bool() (bool, error) {
	b, err := a.Byte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.Errorf("invalid boolean value %d", b)
	}
}

func (a *Deserializer) Uint16() (uint16, error) {
	b, err := a.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (a *Deserializer) Uint32() (uint32, error) {
	b, err := a.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (a *Deserializer) Uint64() (uint64, error) {
	b, err := a.Bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (a *Deserializer) Bytes(length uint) ([]byte, error) {
	if length > uint(len(a.b)) {
		return nil, errors.Errorf("not enough bytes, expected at least %d, found %d", length, len(a.b))
	}
	out := a.b[:length]
	a.b = a.b[length:]
	return out, nil
}

func (a *Deserializer) Digest() (crypto.Digest, error) {
	b, err := a.Bytes(crypto.DigestSize)
	if err != nil {
		return crypto.Digest{}, errors.Wrap(err, "failed to deserialize digest")
	}
	return crypto.NewDigestFromBytes(b)
}

func (a *Deserializer) PublicKey() (crypto.PublicKey, error) {
	b, err := a.Bytes(crypto.PublicKeySize)
	if err != nil {
		return crypto.PublicKey{}, errors.Wrap(err, "failed to deserialize public key")
	}
	return crypto.NewPublicKeyFromBytes(b)
}

func (a *Deserializer) BytesWithUInt16Len() ([]byte, error) {
	l, err := a.Uint16()
	if err != nil {
		return nil, err
	}
	return a.Bytes(uint(l))
}

func (a *Deserializer) BytesWithUInt32Len() ([]byte, error) {
	l, err := a.Uint32()
	if err != nil {
		return nil, err
	}
	return a.Bytes(uint(l))
}
