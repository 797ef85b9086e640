package proto

import (
	"encoding/json"
	"testing"

	"github.com/mr-tron/base58/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavesplatform/wavestx/pkg/errs"
)

func TestAddressFromSeed(t *testing.T) {
	kp, err := NewKeyPairFromSeed("blame vacant regret company chase trip grant funny brisk innocent", 0)
	require.NoError(t, err)
	addr, err := kp.Address(TestNetScheme)
	require.NoError(t, err)
	assert.Equal(t, "3Ms87NGAAaPWZux233TB9A3TXps4LDkyJWN", addr.String())
	assert.Equal(t, TestNetScheme, addr.ChainID())
	assert.NoError(t, addr.Validate())
}

func TestAddressDerivationIsDeterministic(t *testing.T) {
	const seed = "dwarf chimney miss category orchard organ neck income prevent trigger used census"
	kp1 := MustKeyPairFromSeed(seed, 0)
	kp2 := MustKeyPairFromSeed(seed, 0)
	kp3 := MustKeyPairFromSeed(seed, 1)
	assert.Equal(t, kp1, kp2)
	assert.NotEqual(t, kp1.Public, kp3.Public)

	a1, err := NewAddressFromPublicKey(MainNetScheme, kp1.Public)
	require.NoError(t, err)
	a2, err := NewAddressFromPublicKey(TestNetScheme, kp1.Public)
	require.NoError(t, err)
	assert.Equal(t, MainNetScheme, a1.ChainID())
	assert.Equal(t, TestNetScheme, a2.ChainID())
	assert.Equal(t, a1.PublicKeyHash(), a2.PublicKeyHash())
	assert.NotEqual(t, a1.String(), a2.String())
}

func TestAddressRoundTrip(t *testing.T) {
	for _, tc := range []string{
		"3MtQQX9NwYH5URGGcS2e6ptEgV7wTFesaRW",
		"3PAWwWa6GbwcJaFzwqXQN5KQm7H96Y7SHTQ",
		"3PQ8bp1aoqHQo3icNqFv6VM36V1jzPeaG1v",
		"3PMj3yGPBEa1Sx9X4TSBFeJCMMaE3wvKR4N",
	} {
		addr, err := NewAddressFromString(tc)
		require.NoError(t, err, tc)
		assert.Equal(t, tc, addr.String())
		b, err := NewAddressFromBytes(addr.Bytes())
		require.NoError(t, err)
		assert.Equal(t, addr, b)
	}
}

func TestAddressChecksumFailure(t *testing.T) {
	addr := MustAddressFromString("3MtQQX9NwYH5URGGcS2e6ptEgV7wTFesaRW")
	b := addr.Bytes()
	b[WavesAddressSize-1] ^= 0xff
	_, err := NewAddressFromString(base58.Encode(b))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.InvalidChecksum{})

	b = addr.Bytes()
	b[5] ^= 0x01
	_, err = NewAddressFromBytes(b)
	assert.ErrorIs(t, err, errs.InvalidChecksum{})
}

func TestAddressDecodeErrors(t *testing.T) {
	addr := MustAddressFromString("3MtQQX9NwYH5URGGcS2e6ptEgV7wTFesaRW")
	wrongVersion := addr.Bytes()
	wrongVersion[0] = 2
	for _, tc := range []string{
		"3MtQQX9NwYH5URGGcS2e6ptEgV7wTFesaR0", // '0' is not in the alphabet
		"3MtQQX9NwYH5URGGcS2e6ptEgV7wTF",
		"",
		base58.Encode(wrongVersion),
	} {
		_, err := NewAddressFromString(tc)
		require.Error(t, err, tc)
		assert.ErrorIs(t, err, errs.DecodeError{}, tc)
	}
}

func TestAddressJSON(t *testing.T) {
	addr := MustAddressFromString("3MtQQX9NwYH5URGGcS2e6ptEgV7wTFesaRW")
	js, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"3MtQQX9NwYH5URGGcS2e6ptEgV7wTFesaRW"`, string(js))
	var a WavesAddress
	require.NoError(t, json.Unmarshal(js, &a))
	assert.Equal(t, addr, a)
}

func TestAlias(t *testing.T) {
	tests := []struct {
		s     string
		valid bool
	}{
		{"alias:T:alice", true},
		{"alias:W:bob-the.builder@waves_1", true},
		{"alias:T:abc", false},
		{"alias:T:Alice", false},
		{"alias:T:" + "abcdefghijabcdefghijabcdefghijk", false},
		{"alias:TT:alice", false},
		{"alias:T", false},
		{"alas:T:alice", false},
	}
	for _, tc := range tests {
		a, err := NewAliasFromString(tc.s)
		if !tc.valid {
			assert.Error(t, err, tc.s)
			continue
		}
		require.NoError(t, err, tc.s)
		assert.Equal(t, tc.s, a.String())
		assert.NoError(t, a.Valid())
	}
}

func TestAliasInvalidName(t *testing.T) {
	_, err := NewAlias(TestNetScheme, "ALICE")
	assert.ErrorIs(t, err, errs.InvalidName{})
	assert.True(t, errs.IsValidationError(err))
}

func TestAliasBinaryRoundTrip(t *testing.T) {
	a, err := NewAlias(TestNetScheme, "alice")
	require.NoError(t, err)
	b, err := a.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{2, 'T', 0, 5, 'a', 'l', 'i', 'c', 'e'}, b)
	var a2 Alias
	require.NoError(t, a2.UnmarshalBinary(b))
	assert.Equal(t, *a, a2)

	assert.Error(t, a2.UnmarshalBinary([]byte{2, 'T', 0}))
	assert.Error(t, a2.UnmarshalBinary([]byte{3, 'T', 0, 5, 'a', 'l', 'i', 'c', 'e'}))
}

func TestRecipient(t *testing.T) {
	r, err := NewRecipientFromString("3MtQQX9NwYH5URGGcS2e6ptEgV7wTFesaRW")
	require.NoError(t, err)
	require.NotNil(t, r.Address())
	assert.Nil(t, r.Alias())
	assert.NoError(t, r.Valid())
	assert.NoError(t, validRecipient(r, TestNetScheme))
	assert.Error(t, validRecipient(r, MainNetScheme))

	r, err = NewRecipientFromString("alias:T:alice")
	require.NoError(t, err)
	require.NotNil(t, r.Alias())
	assert.Nil(t, r.Address())
	assert.Equal(t, "alias:T:alice", r.String())

	js, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `"alias:T:alice"`, string(js))
	var r2 Recipient
	require.NoError(t, json.Unmarshal(js, &r2))
	assert.Equal(t, r, r2)

	assert.Error(t, Recipient{}.Valid())
}

func TestRecipientUnmarshalBinary(t *testing.T) {
	addr := MustAddressFromString("3MtQQX9NwYH5URGGcS2e6ptEgV7wTFesaRW")
	var r Recipient
	require.NoError(t, r.UnmarshalBinary(addr.Bytes()))
	require.NotNil(t, r.Address())
	assert.Equal(t, addr, *r.Address())

	a, err := NewAlias(TestNetScheme, "alice")
	require.NoError(t, err)
	b, err := a.MarshalBinary()
	require.NoError(t, err)
	require.NoError(t, r.UnmarshalBinary(b))
	require.NotNil(t, r.Alias())
	assert.Equal(t, "alice", r.Alias().Alias)

	assert.Error(t, r.UnmarshalBinary(nil))
	assert.Error(t, r.UnmarshalBinary([]byte{7, 1, 2}))
}
