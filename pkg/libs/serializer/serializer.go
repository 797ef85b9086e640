package serializer

import (
	"encoding/binary"
	"io"

	"github.com/ccoveille/go-safecast"
	"github.com/pkg/errors"
)

// Serializer writes big-endian primitives and length-prefixed byte strings, counting bytes written.
type Serializer struct {
	w io.Writer
	n int
}

func New(w io.Writer) *Serializer {
	return &Serializer{w: w}
}

func (a *Serializer) Write(b []byte) (int, error) {
	n, err := a.w.Write(b)
	if err != nil {
		return 0, err
	}
	a.n += n
	return n, nil
}

func (a *Serializer) N() int64 {
	return int64(a.n)
}

func (a *Serializer) StringWithUInt16Len(s string) error {
	return a.BytesWithUInt16Len([]byte(s))
}

func (a *Serializer) StringWithUInt32Len(s string) error {
	return a.BytesWithUInt32Len([]byte(s))
}

func (a *Serializer) BytesWithUInt16Len(data []byte) error {
	l, err := safecast.ToUint16(len(data))
	if err != nil {
		return errors.Wrapf(err, "too long data of %d bytes for 2-byte length prefix", len(data))
	}
	if err := a.Uint16(l); err != nil {
		return err
	}
	return a.Bytes(data)
}

func (a *Serializer) BytesWithUInt32Len(data []byte) error {
	l, err := safecast.ToUint32(len(data))
	if err != nil {
		return errors.Wrapf(err, "too long data of %d bytes for 4-byte length prefix", len(data))
	}
	if err := a.Uint32(l); err != nil {
		return err
	}
	return a.Bytes(data)
}

func (a *Serializer) Uint16(v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	return a.Bytes(buf[:])
}

func (a *Serializer) Uint32(v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return a.Bytes(buf[:])
}

func (a *Serializer) Uint64(v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return a.Bytes(buf[:])
}

// Int64 writes the two's complement representation of v.
func (a *Serializer) Int64(v int64) error {
	return a.Uint64(uint64(v))
}

func (a *Serializer) Byte(b byte) error {
	return a.Bytes([]byte{b})
}

func (a *Serializer) Bool(b bool) error {
	if b {
		return a.Byte(1)
	}
	return a.Byte(0)
}

func (a *Serializer) String(s string) error {
	return a.Bytes([]byte(s))
}

func (a *Serializer) Bytes(b []byte) error {
	_, err := a.Write(b)
	return err
}
