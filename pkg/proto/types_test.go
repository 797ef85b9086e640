package proto

import (
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavesplatform/wavestx/pkg/crypto"
	"github.com/wavesplatform/wavestx/pkg/errs"
)

func TestOptionalAssetJSONRoundTrip(t *testing.T) {
	d, err := crypto.NewDigestFromBase58("BiJR8gCxR7crGEdy31jLkYpjpLy98kq3NuxPE8Z2Uk3b")
	require.NoError(t, err)
	tests := []struct {
		asset OptionalAsset
		json  string
	}{
		{NewOptionalAssetWaves(), "null"},
		{NewOptionalAssetFromDigest(d), `"BiJR8gCxR7crGEdy31jLkYpjpLy98kq3NuxPE8Z2Uk3b"`},
	}
	for _, tc := range tests {
		js, err := json.Marshal(tc.asset)
		require.NoError(t, err)
		assert.Equal(t, tc.json, string(js))
		var a OptionalAsset
		require.NoError(t, json.Unmarshal(js, &a))
		assert.Equal(t, tc.asset, a)
	}
}

func TestNewOptionalAssetFromString(t *testing.T) {
	for _, s := range []string{"", "WAVES", "waves"} {
		a, err := NewOptionalAssetFromString(s)
		require.NoError(t, err)
		assert.False(t, a.Present)
		assert.Equal(t, WavesAssetName, a.String())
	}
	a, err := NewOptionalAssetFromString("BiJR8gCxR7crGEdy31jLkYpjpLy98kq3NuxPE8Z2Uk3b")
	require.NoError(t, err)
	assert.True(t, a.Present)
	_, err = NewOptionalAssetFromString("3MtQQX9NwYH5URGGcS2e6ptEgV7wTFesaRW")
	assert.Error(t, err)
}

func TestAmountJSON(t *testing.T) {
	a := NewWavesAmount(100000)
	js, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":100000,"assetId":null}`, string(js))
	var b Amount
	require.NoError(t, json.Unmarshal(js, &b))
	assert.Equal(t, a, b)
}

func TestScriptJSON(t *testing.T) {
	s := Script{0x01, 0x02, 0x03}
	js, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `"base64:AQID"`, string(js))
	var s2 Script
	require.NoError(t, json.Unmarshal(js, &s2))
	assert.Equal(t, s, s2)

	js, err = json.Marshal(Script(nil))
	require.NoError(t, err)
	assert.Equal(t, "null", string(js))
	assert.Error(t, json.Unmarshal([]byte(`"AQID"`), &s2))
}

func TestProofsV1UnmarshalJSON(t *testing.T) {
	tests := []struct {
		json     string
		expected []B58Bytes
	}{
		{"[]",
			[]B58Bytes{},
		},
		{"[\"\"]",
			[]B58Bytes{{}},
		},
		{"[\"\", \"\"]",
			[]B58Bytes{{}, {}},
		},
		{
			"[\"2PPJhhHz2sCoFtJ3Dx3fTDzRXEC6Zm76kQMF7m5aqeL1XjFRysMircz7Cy5zJc77BrYTbEG9pgY4MMRVjv1S1hGx\"]",
			[]B58Bytes{{0x45, 0x52, 0x13, 0x19, 0xaf, 0x82, 0x3e, 0x01, 0x38, 0xf9, 0x99, 0x7a, 0x3a, 0xd0, 0x7f, 0xa3, 0x81, 0xde, 0xce, 0x6b, 0x4d, 0xe4, 0x0c, 0x81, 0x78, 0x4b, 0xd7, 0x15, 0xd4, 0x34, 0x08, 0x22, 0x8c, 0x04, 0xdf, 0x89, 0x7a, 0x7f, 0x95, 0x66, 0xd5, 0x75, 0xc2, 0x0a, 0xbb, 0x97, 0x64, 0x29, 0xe3, 0x48, 0x67, 0xe8, 0x22, 0xeb, 0x6f, 0x93, 0xbb, 0xd8, 0x22, 0xac, 0x11, 0x3c, 0xa8, 0x0d}},
		},
	}
	for _, tc := range tests {
		var p ProofsV1
		if err := json.Unmarshal([]byte(tc.json), &p); assert.NoError(t, err) {
			assert.Equal(t, 1, int(p.Version))
			assert.Equal(t, len(tc.expected), len(p.Proofs))
			assert.ElementsMatch(t, tc.expected, p.Proofs)
		}
	}
}

func TestProofsV1_Valid(t *testing.T) {
	smallProof := make([]byte, 32)
	normProof := make([]byte, 64)
	bigProof := make([]byte, 65)
	_, err := rand.Read(smallProof)
	require.NoError(t, err)
	_, err = rand.Read(normProof)
	require.NoError(t, err)
	_, err = rand.Read(bigProof)
	require.NoError(t, err)
	p1 := NewProofs()
	p1.Proofs = append(p1.Proofs, smallProof)
	p1.Proofs = append(p1.Proofs, normProof)
	assert.NoError(t, p1.Valid())
	p1.Proofs = append(p1.Proofs, bigProof)
	err = p1.Valid()
	assert.ErrorIs(t, err, errs.TooLongData{})

	p2 := NewProofs()
	for i := 0; i < 9; i++ {
		p2.Proofs = append(p2.Proofs, smallProof)
	}
	err = p2.Valid()
	assert.ErrorIs(t, err, errs.TooBigArray{})
}

func TestProofsV1BinaryRoundTrip(t *testing.T) {
	p, err := NewProofs().WithProof(0, []byte{1, 2, 3})
	require.NoError(t, err)
	p, err = p.WithProof(2, []byte{4, 5})
	require.NoError(t, err)
	b, err := p.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 3, 0, 3, 1, 2, 3, 0, 0, 0, 2, 4, 5}, b)
	var p2 ProofsV1
	require.NoError(t, p2.UnmarshalBinary(b))
	assert.Equal(t, p, p2)

	assert.Error(t, p2.UnmarshalBinary([]byte{1, 0}))
	assert.Error(t, p2.UnmarshalBinary([]byte{2, 0, 0}))
	assert.Error(t, p2.UnmarshalBinary(append(b, 0)))
	assert.ErrorIs(t, p2.UnmarshalBinary([]byte{1, 0, 9}), errs.TooBigArray{})
}

func TestProofsV1WithProofKeepsOriginal(t *testing.T) {
	p1, err := NewProofs().WithProof(0, []byte{1})
	require.NoError(t, err)
	p2, err := p1.WithProof(0, []byte{2})
	require.NoError(t, err)
	p3, err := p2.WithProof(1, []byte{3})
	require.NoError(t, err)
	assert.Equal(t, "[2]", p1.String())
	assert.Equal(t, 1, p1.Len())
	assert.Equal(t, B58Bytes{2}, p2.Proofs[0])
	assert.Equal(t, 2, p3.Len())
	assert.Equal(t, 1, p2.Len())

	_, err = p1.WithProof(8, []byte{1})
	assert.ErrorIs(t, err, errs.TooBigArray{})
	_, err = p1.WithProof(-1, []byte{1})
	assert.ErrorIs(t, err, errs.TooBigArray{})
	_, err = p1.WithProof(0, make([]byte, 65))
	assert.ErrorIs(t, err, errs.TooLongData{})
}

func TestProofsV1MarshalJSON(t *testing.T) {
	js, err := json.Marshal(ProofsV1{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(js))
	p, err := NewProofs().WithProof(0, []byte{0, 0, 1})
	require.NoError(t, err)
	js, err = json.Marshal(p)
	require.NoError(t, err)
	assert.Equal(t, `["112"]`, string(js))
}

func TestID(t *testing.T) {
	const s = "BiJR8gCxR7crGEdy31jLkYpjpLy98kq3NuxPE8Z2Uk3b"
	id, err := NewIDFromBase58(s)
	require.NoError(t, err)
	assert.Equal(t, s, id.String())
	assert.Len(t, id.Bytes(), crypto.DigestSize)
	assert.True(t, id.Equal(MustIDFromBase58(s)))
	assert.Equal(t, 0, id.Compare(MustIDFromBase58(s)))

	js, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"`+s+`"`, string(js))
	var id2 ID
	require.NoError(t, json.Unmarshal(js, &id2))
	assert.Equal(t, id, id2)

	_, err = NewIDFromBase58("3MtQQX9NwYH5URGGcS2e6ptEgV7wTFesaRW")
	assert.ErrorIs(t, err, errs.DecodeError{})
}

func TestIDFromBytesHashes(t *testing.T) {
	data := []byte("transaction body")
	id, err := NewIDFromBytes(data)
	require.NoError(t, err)
	d, err := crypto.FastHash(data)
	require.NoError(t, err)
	assert.Equal(t, d, id.Digest())
	assert.Equal(t, NewIDFromDigest(d), id)

	other, err := NewIDFromBytes([]byte("another body"))
	require.NoError(t, err)
	assert.False(t, id.Equal(other))
	assert.Equal(t, -other.Compare(id), id.Compare(other))
}
