package serializer

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializer_Byte(t *testing.T) {
	buf := &bytes.Buffer{}
	s := New(buf)
	require.NoError(t, s.Byte('b'))
	require.NoError(t, s.Bool(true))
	require.NoError(t, s.Bool(false))
	require.Equal(t, []byte{'b', 1, 0}, buf.Bytes())
	require.EqualValues(t, 3, s.N())
}

func TestSerializer_Integers(t *testing.T) {
	buf := &bytes.Buffer{}
	s := New(buf)
	require.NoError(t, s.Uint16(257))
	require.NoError(t, s.Uint32(1000000000))
	require.NoError(t, s.Uint64(100000))
	require.NoError(t, s.Int64(-1))
	b := buf.Bytes()
	require.Equal(t, []byte{1, 1}, b[:2])
	require.Equal(t, uint32(1000000000), binary.BigEndian.Uint32(b[2:6]))
	require.Equal(t, uint64(100000), binary.BigEndian.Uint64(b[6:14]))
	require.Equal(t, bytes.Repeat([]byte{0xff}, 8), b[14:])
	require.EqualValues(t, 22, s.N())
}

func TestSerializer_LengthPrefixed(t *testing.T) {
	buf := &bytes.Buffer{}
	s := New(buf)
	require.NoError(t, s.StringWithUInt16Len("abc"))
	require.NoError(t, s.StringWithUInt32Len("de"))
	require.NoError(t, s.BytesWithUInt16Len(nil))
	require.Equal(t, []byte{0, 3, 'a', 'b', 'c', 0, 0, 0, 2, 'd', 'e', 0, 0}, buf.Bytes())
	require.EqualValues(t, 13, s.N())
}

func TestSerializer_TooLongForUint16(t *testing.T) {
	buf := &bytes.Buffer{}
	s := New(buf)
	require.Error(t, s.BytesWithUInt16Len(make([]byte, math.MaxUint16+1)))
	require.Zero(t, s.N())
}

func TestSerializer_Write(t *testing.T) {
	buf := &bytes.Buffer{}
	o := bytes.NewBuffer([]byte{1, 2, 3, 4, 5})
	s := New(buf)
	_, _ = o.WriteTo(s)

	require.EqualValues(t, 5, s.N())
	require.Equal(t, []byte{1, 2, 3, 4, 5}, buf.Bytes())
}
