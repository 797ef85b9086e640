package deserializer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wavesplatform/wavestx/pkg/crypto"
)

func TestDeserializer_Byte(t *testing.T) {
	d := NewDeserializer([]byte{4})
	t.Run("valid", func(t *testing.T) {
		rs, err := d.Byte()
		require.NoError(t, err)
		require.EqualValues(t, 4, rs)
	})
	t.Run("invalid", func(t *testing.T) {
		_, err := d.Byte()
		require.Error(t, err)
	})
}

func TestDeserializer_Bool(t *testing.T) {
	d := NewDeserializer([]byte{1, 0, 2})
	v, err := d.Bool()
	require.NoError(t, err)
	require.True(t, v)
	v, err = d.Bool()
	require.NoError(t, err)
	require.False(t, v)
	_, err = d.Bool()
	require.Error(t, err)
}

func TestDeserializer_Integers(t *testing.T) {
	d := NewDeserializer([]byte{1, 1, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 5})
	u16, err := d.Uint16()
	require.NoError(t, err)
	require.EqualValues(t, 257, u16)
	u32, err := d.Uint32()
	require.NoError(t, err)
	require.EqualValues(t, 256, u32)
	u64, err := d.Uint64()
	require.NoError(t, err)
	require.EqualValues(t, 5, u64)
	require.Equal(t, 0, d.Len())
	_, err = d.Uint16()
	require.Error(t, err)
}

func TestDeserializer_LengthPrefixed(t *testing.T) {
	d := NewDeserializer([]byte{0, 2, 'a', 'b', 0, 0, 0, 1, 'c', 0, 5, 'd'})
	b, err := d.BytesWithUInt16Len()
	require.NoError(t, err)
	require.Equal(t, []byte("ab"), b)
	b, err = d.BytesWithUInt32Len()
	require.NoError(t, err)
	require.Equal(t, []byte("c"), b)
	_, err = d.BytesWithUInt16Len()
	require.Error(t, err)
}

func TestDeserializer_Digest(t *testing.T) {
	dg, err := crypto.FastHash([]byte("data"))
	require.NoError(t, err)
	d := NewDeserializer(append(dg.Bytes(), 7))
	rs, err := d.Digest()
	require.NoError(t, err)
	require.Equal(t, dg, rs)
	_, err = d.PublicKey()
	require.Error(t, err)
}
