package proto

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"

	"github.com/wavesplatform/wavestx/pkg/crypto"
	"github.com/wavesplatform/wavestx/pkg/errs"
	"github.com/wavesplatform/wavestx/pkg/libs/deserializer"
	"github.com/wavesplatform/wavestx/pkg/libs/serializer"
)

const (
	// WavesAssetName is the name of the native asset.
	WavesAssetName = "WAVES"

	jsonNull     = "null"
	scriptPrefix = "base64:"

	proofsVersion  byte = 1
	proofsMinLen        = 1 + 2
	proofsMaxCount      = 8
	proofMaxSize        = 64
)

var jsonNullBytes = []byte(jsonNull)

// B58Bytes represents bytes as Base58 string in JSON.
type B58Bytes []byte

func (b B58Bytes) String() string {
	return base58.Encode(b)
}

func (b B58Bytes) MarshalJSON() ([]byte, error) {
	var sb strings.Builder
	sb.WriteRune('"')
	sb.WriteString(base58.Encode(b))
	sb.WriteRune('"')
	return []byte(sb.String()), nil
}

func (b *B58Bytes) UnmarshalJSON(value []byte) error {
	s := string(value)
	if s == jsonNull {
		*b = nil
		return nil
	}
	s, err := strconv.Unquote(s)
	if err != nil {
		return errors.Wrap(err, "failed to unmarshal B58Bytes from JSON")
	}
	if s == "" {
		*b = B58Bytes{}
		return nil
	}
	v, err := base58.Decode(s)
	if err != nil {
		return errs.NewDecodeError("B58Bytes", err)
	}
	*b = v
	return nil
}

// OptionalAsset is an asset reference where absence means the native asset.
type OptionalAsset struct {
	Present bool
	ID      crypto.Digest
}

func NewOptionalAssetWaves() OptionalAsset {
	return OptionalAsset{}
}

func NewOptionalAssetFromDigest(d crypto.Digest) OptionalAsset {
	return OptionalAsset{Present: true, ID: d}
}

// NewOptionalAssetFromString accepts an empty string or "WAVES" for the native asset, otherwise a Base58 asset ID.
func NewOptionalAssetFromString(s string) (OptionalAsset, error) {
	switch strings.ToUpper(s) {
	case WavesAssetName, "":
		return OptionalAsset{}, nil
	default:
		d, err := crypto.NewDigestFromBase58(s)
		if err != nil {
			return OptionalAsset{}, errors.Wrap(err, "failed to create OptionalAsset from Base58 string")
		}
		return NewOptionalAssetFromDigest(d), nil
	}
}

func (a OptionalAsset) String() string {
	if a.Present {
		return a.ID.String()
	}
	return WavesAssetName
}

func (a OptionalAsset) MarshalJSON() ([]byte, error) {
	if a.Present {
		return a.ID.MarshalJSON()
	}
	return jsonNullBytes, nil
}

func (a *OptionalAsset) UnmarshalJSON(value []byte) error {
	if bytes.Equal(value, jsonNullBytes) {
		*a = OptionalAsset{}
		return nil
	}
	s, err := strconv.Unquote(string(value))
	if err != nil {
		return errors.Wrap(err, "failed to unmarshal OptionalAsset from JSON")
	}
	r, err := NewOptionalAssetFromString(s)
	if err != nil {
		return err
	}
	*a = r
	return nil
}

func (a OptionalAsset) write(s *serializer.Serializer) error {
	if !a.Present {
		return s.Bool(false)
	}
	if err := s.Bool(true); err != nil {
		return err
	}
	return s.Bytes(a.ID[:])
}

// Amount is a quantity of the native asset or of an issued one, in the smallest units.
type Amount struct {
	Value uint64
	Asset OptionalAsset
}

func NewAmount(value uint64, asset OptionalAsset) Amount {
	return Amount{Value: value, Asset: asset}
}

func NewWavesAmount(value uint64) Amount {
	return Amount{Value: value}
}

func (a Amount) write(s *serializer.Serializer) error {
	if err := s.Uint64(a.Value); err != nil {
		return err
	}
	return a.Asset.write(s)
}

type amountJSON struct {
	Amount  uint64        `json:"amount"`
	AssetID OptionalAsset `json:"assetId"`
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(amountJSON{Amount: a.Value, AssetID: a.Asset})
}

func (a *Amount) UnmarshalJSON(value []byte) error {
	var tmp amountJSON
	if err := json.Unmarshal(value, &tmp); err != nil {
		return errors.Wrap(err, "failed to unmarshal Amount from JSON")
	}
	a.Value = tmp.Amount
	a.Asset = tmp.AssetID
	return nil
}

// Script holds compiled script bytes, represented in JSON as BASE64 with a prefix.
type Script []byte

func (s Script) String() string {
	var sb strings.Builder
	sb.WriteString(scriptPrefix)
	sb.WriteString(base64.StdEncoding.EncodeToString(s))
	return sb.String()
}

func (s Script) MarshalJSON() ([]byte, error) {
	if s == nil {
		return jsonNullBytes, nil
	}
	return json.Marshal(s.String())
}

func (s *Script) UnmarshalJSON(value []byte) error {
	if bytes.Equal(value, jsonNullBytes) {
		*s = nil
		return nil
	}
	str, err := strconv.Unquote(string(value))
	if err != nil {
		return errors.Wrap(err, "failed to unmarshal Script from JSON")
	}
	if !strings.HasPrefix(str, scriptPrefix) {
		return errors.New("failed to unmarshal Script from JSON: no prefix")
	}
	b, err := base64.StdEncoding.DecodeString(str[len(scriptPrefix):])
	if err != nil {
		return errs.NewDecodeError("Script", err)
	}
	*s = b
	return nil
}

// ProofsV1 is an ordered collection of proofs, the sender's signature occupies position 0.
type ProofsV1 struct {
	Version byte
	Proofs  []B58Bytes
}

func NewProofs() ProofsV1 {
	return ProofsV1{Version: proofsVersion}
}

func (p ProofsV1) String() string {
	var sb strings.Builder
	sb.WriteRune('[')
	for i, e := range p.Proofs {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	sb.WriteRune(']')
	return sb.String()
}

func (p ProofsV1) Len() int {
	return len(p.Proofs)
}

// Clone returns a copy that shares no memory with p.
func (p ProofsV1) Clone() ProofsV1 {
	out := ProofsV1{Version: p.Version}
	if p.Proofs == nil {
		return out
	}
	out.Proofs = make([]B58Bytes, len(p.Proofs))
	for i, pr := range p.Proofs {
		out.Proofs[i] = append(B58Bytes{}, pr...)
	}
	return out
}

// WithProof returns a copy with the proof stored at position pos, padding missing positions with empty proofs.
func (p ProofsV1) WithProof(pos int, proof []byte) (ProofsV1, error) {
	if pos < 0 || pos >= proofsMaxCount {
		return ProofsV1{}, errs.NewTooBigArray(
			"proof position " + strconv.Itoa(pos) + " is out of range [0, " + strconv.Itoa(proofsMaxCount-1) + "]")
	}
	if l := len(proof); l > proofMaxSize {
		return ProofsV1{}, errs.NewTooLongData(
			"proof size " + strconv.Itoa(l) + " bytes exceeds maximum allowed " + strconv.Itoa(proofMaxSize))
	}
	out := p.Clone()
	out.Version = proofsVersion
	for len(out.Proofs) <= pos {
		out.Proofs = append(out.Proofs, B58Bytes{})
	}
	out.Proofs[pos] = append(B58Bytes{}, proof...)
	return out, nil
}

// Verify checks that the proof at the given position is a valid signature of data.
func (p ProofsV1) Verify(pos int, key crypto.PublicKey, data []byte) (bool, error) {
	if len(p.Proofs) <= pos {
		return false, errors.Errorf("no proof at position %d", pos)
	}
	sig, err := crypto.NewSignatureFromBytes(p.Proofs[pos])
	if err != nil {
		return false, errors.Wrapf(err, "invalid proof at position %d", pos)
	}
	return crypto.Verify(key, sig, data), nil
}

func (p ProofsV1) Valid() error {
	if l := len(p.Proofs); l > proofsMaxCount {
		return errs.NewTooBigArray(
			"too many proofs " + strconv.Itoa(l) + ", expected no more than " + strconv.Itoa(proofsMaxCount))
	}
	for i, pr := range p.Proofs {
		if l := len(pr); l > proofMaxSize {
			return errs.NewTooLongData("proof at position " + strconv.Itoa(i) + " has " + strconv.Itoa(l) + " bytes")
		}
	}
	return nil
}

func (p ProofsV1) MarshalJSON() ([]byte, error) {
	if p.Proofs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.Proofs)
}

func (p *ProofsV1) UnmarshalJSON(value []byte) error {
	var tmp []B58Bytes
	if err := json.Unmarshal(value, &tmp); err != nil {
		return errors.Wrap(err, "failed to unmarshal ProofsV1 from JSON")
	}
	p.Version = proofsVersion
	p.Proofs = tmp
	return nil
}

func (p ProofsV1) write(s *serializer.Serializer) error {
	if err := s.Byte(proofsVersion); err != nil {
		return err
	}
	if err := s.Uint16(uint16(len(p.Proofs))); err != nil {
		return err
	}
	for _, e := range p.Proofs {
		if err := s.BytesWithUInt16Len(e); err != nil {
			return err
		}
	}
	return nil
}

func (p ProofsV1) MarshalBinary() ([]byte, error) {
	if err := p.Valid(); err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	if err := p.write(serializer.New(buf)); err != nil {
		return nil, errors.Wrap(err, "failed to marshal ProofsV1 to bytes")
	}
	return buf.Bytes(), nil
}

func (p *ProofsV1) UnmarshalBinary(data []byte) error {
	if l := len(data); l < proofsMinLen {
		return errors.Errorf("not enough data for ProofsV1 value, expected %d, received %d", proofsMinLen, l)
	}
	d := deserializer.NewDeserializer(data)
	v, err := d.Byte()
	if err != nil {
		return err
	}
	if v != proofsVersion {
		return errors.Errorf("unexpected ProofsV1 version %d, expected %d", v, proofsVersion)
	}
	n, err := d.Uint16()
	if err != nil {
		return err
	}
	if n > proofsMaxCount {
		return errs.NewTooBigArray(
			"too many proofs " + strconv.Itoa(int(n)) + ", expected no more than " + strconv.Itoa(proofsMaxCount))
	}
	proofs := make([]B58Bytes, 0, n)
	for i := 0; i < int(n); i++ {
		pr, err := d.BytesWithUInt16Len()
		if err != nil {
			return errors.Wrapf(err, "failed to read proof at position %d", i)
		}
		if l := len(pr); l > proofMaxSize {
			return errs.NewTooLongData("proof size " + strconv.Itoa(l) + " bytes exceeds maximum allowed " + strconv.Itoa(proofMaxSize))
		}
		proofs = append(proofs, append(B58Bytes{}, pr...))
	}
	if d.Len() != 0 {
		return errors.Errorf("%d unexpected bytes after ProofsV1", d.Len())
	}
	p.Version = v
	p.Proofs = proofs
	return nil
}
