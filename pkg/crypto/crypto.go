package crypto

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"strconv"
	"strings"

	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"
	"github.com/mr-tron/base58/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/wavesplatform/wavestx/pkg/errs"
)

const (
	DigestSize    = 32
	PublicKeySize = 32
	SecretKeySize = 32
	SignatureSize = 64
)

// Digest is a 32-byte result of FastHash, Keccak256 or SecureHash.
type Digest [DigestSize]byte

func (d Digest) String() string {
	return base58.Encode(d[:])
}

func (d Digest) Bytes() []byte {
	r := make([]byte, DigestSize)
	copy(r, d[:])
	return r
}

func (d Digest) MarshalJSON() ([]byte, error) {
	return toBase58JSON(d[:]), nil
}

func (d *Digest) UnmarshalJSON(value []byte) error {
	b, err := fromBase58JSON(value, DigestSize, "Digest")
	if err != nil {
		return err
	}
	copy(d[:], b)
	return nil
}

func NewDigestFromBase58(s string) (Digest, error) {
	return array32FromBase58(s, "Digest")
}

func NewDigestFromBytes(b []byte) (Digest, error) {
	var r Digest
	if l := len(b); l != DigestSize {
		return r, errs.NewDecodeError("Digest", errors.Errorf("incorrect length %d, expected %d", l, DigestSize))
	}
	copy(r[:], b)
	return r, nil
}

// SecretKey is a clamped curve25519 scalar.
type SecretKey [SecretKeySize]byte

func (k SecretKey) String() string {
	return base58.Encode(k[:])
}

func (k SecretKey) Bytes() []byte {
	r := make([]byte, SecretKeySize)
	copy(r, k[:])
	return r
}

func NewSecretKeyFromBase58(s string) (SecretKey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return SecretKey{}, errs.NewInvalidPrivateKey(err.Error())
	}
	return NewSecretKeyFromBytes(b)
}

// NewSecretKeyFromBytes accepts exactly SecretKeySize bytes of key material.
func NewSecretKeyFromBytes(b []byte) (SecretKey, error) {
	var sk SecretKey
	if l := len(b); l != SecretKeySize {
		return sk, errs.NewInvalidPrivateKey(
			"incorrect secret key length " + strconv.Itoa(l) + ", expected " + strconv.Itoa(SecretKeySize))
	}
	copy(sk[:], b)
	return sk, nil
}

// PublicKey is a curve25519 (Montgomery u-coordinate) public key.
type PublicKey [PublicKeySize]byte

func (k PublicKey) String() string {
	return base58.Encode(k[:])
}

func (k PublicKey) Bytes() []byte {
	r := make([]byte, PublicKeySize)
	copy(r, k[:])
	return r
}

func (k PublicKey) MarshalJSON() ([]byte, error) {
	return toBase58JSON(k[:]), nil
}

func (k *PublicKey) UnmarshalJSON(value []byte) error {
	b, err := fromBase58JSON(value, PublicKeySize, "PublicKey")
	if err != nil {
		return err
	}
	copy(k[:], b)
	return nil
}

func NewPublicKeyFromBase58(s string) (PublicKey, error) {
	d, err := array32FromBase58(s, "PublicKey")
	return PublicKey(d), err
}

func NewPublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	if l := len(b); l != PublicKeySize {
		return pk, errs.NewDecodeError("PublicKey", errors.Errorf("incorrect length %d, expected %d", l, PublicKeySize))
	}
	copy(pk[:], b)
	return pk, nil
}

type Signature [SignatureSize]byte

func (s Signature) String() string {
	return base58.Encode(s[:])
}

func (s Signature) Bytes() []byte {
	r := make([]byte, SignatureSize)
	copy(r, s[:])
	return r
}

func NewSignatureFromBytes(b []byte) (Signature, error) {
	var s Signature
	if l := len(b); l != SignatureSize {
		return s, errs.NewDecodeError("Signature", errors.Errorf("incorrect length %d, expected %d", l, SignatureSize))
	}
	copy(s[:], b)
	return s, nil
}

func Keccak256(data []byte) Digest {
	var d Digest
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	h.Sum(d[:0])
	return d
}

// FastHash is a blake2b-256 digest.
func FastHash(data []byte) (Digest, error) {
	var d Digest
	h, err := blake2b.New256(nil)
	if err != nil {
		return d, err
	}
	h.Write(data)
	h.Sum(d[:0])
	return d, nil
}

// SecureHash is Keccak256 over FastHash.
func SecureHash(data []byte) (Digest, error) {
	fh, err := FastHash(data)
	if err != nil {
		return Digest{}, err
	}
	return Keccak256(fh[:]), nil
}

func GenerateSecretKey(seed []byte) SecretKey {
	var sk SecretKey
	copy(sk[:], seed[:SecretKeySize])
	sk[0] &= 248
	sk[31] &= 127
	sk[31] |= 64
	return sk
}

func GeneratePublicKey(sk SecretKey) PublicKey {
	p := new(edwards25519.Point).ScalarBaseMult(scalar(sk))
	var pk PublicKey
	copy(pk[:], p.BytesMontgomery())
	return pk
}

// GenerateKeyPair derives keys from an account seed, see AccountSeed.
func GenerateKeyPair(seed []byte) (SecretKey, PublicKey) {
	digest := sha256.Sum256(seed)
	sk := GenerateSecretKey(digest[:])
	return sk, GeneratePublicKey(sk)
}

// Sign produces a curve25519 signature of data. Every call mixes 64 random bytes into the nonce,
// so two signatures of the same data differ while both verify.
func Sign(secretKey SecretKey, data []byte) (Signature, error) {
	var random [64]byte
	if _, err := rand.Read(random[:]); err != nil {
		return Signature{}, errors.Wrap(err, "failed to read random bytes for signature")
	}
	return sign(secretKey, data, random[:]), nil
}

func sign(secretKey SecretKey, data, random []byte) Signature {
	a := scalar(secretKey)
	edPublicKey := new(edwards25519.Point).ScalarBaseMult(a).Bytes()
	signBit := edPublicKey[31] & 0x80

	prefix := bytes.Repeat([]byte{0xff}, 32)
	prefix[0] = 0xfe

	var messageDigest, hramDigest [64]byte
	h := sha512.New()
	h.Write(prefix)
	h.Write(secretKey[:])
	h.Write(data)
	h.Write(random)
	h.Sum(messageDigest[:0])
	r, err := edwards25519.NewScalar().SetUniformBytes(messageDigest[:])
	if err != nil {
		panic(err) // messageDigest is always 64 bytes long
	}
	encodedR := new(edwards25519.Point).ScalarBaseMult(r).Bytes()

	h.Reset()
	h.Write(encodedR)
	h.Write(edPublicKey)
	h.Write(data)
	h.Sum(hramDigest[:0])
	k, err := edwards25519.NewScalar().SetUniformBytes(hramDigest[:])
	if err != nil {
		panic(err) // hramDigest is always 64 bytes long
	}
	s := edwards25519.NewScalar().MultiplyAdd(k, a, r)

	var sig Signature
	copy(sig[:], encodedR)
	copy(sig[32:], s.Bytes())
	sig[63] &= 0x7f
	sig[63] |= signBit
	return sig
}

func Verify(publicKey PublicKey, signature Signature, data []byte) bool {
	montX, err := new(field.Element).SetBytes(publicKey[:])
	if err != nil {
		return false
	}
	one := new(field.Element).One()
	montXMinusOne := new(field.Element).Subtract(montX, one)
	montXPlusOne := new(field.Element).Add(montX, one)
	invMontXPlusOne := new(field.Element).Invert(montXPlusOne)
	edY := new(field.Element).Multiply(montXMinusOne, invMontXPlusOne)

	edPublicKey := edY.Bytes()
	edPublicKey[31] &= 0x7f
	edPublicKey[31] |= signature[63] & 0x80

	s := make([]byte, SignatureSize)
	copy(s, signature[:])
	s[63] &= 0x7f
	return ed25519.Verify(edPublicKey, data, s)
}

func scalar(sk SecretKey) *edwards25519.Scalar {
	s, err := edwards25519.NewScalar().SetBytesWithClamping(sk[:])
	if err != nil {
		panic(err) // SecretKey is always SecretKeySize bytes long
	}
	return s
}

func array32FromBase58(s, name string) ([32]byte, error) {
	var r [32]byte
	b, err := base58.Decode(s)
	if err != nil {
		return r, errs.NewDecodeError(name, err)
	}
	if l := len(b); l != 32 {
		return r, errs.NewDecodeError(name, errors.Errorf("incorrect length %d, expected %d", l, 32))
	}
	copy(r[:], b)
	return r, nil
}

func toBase58JSON(b []byte) []byte {
	var sb strings.Builder
	sb.WriteRune('"')
	sb.WriteString(base58.Encode(b))
	sb.WriteRune('"')
	return []byte(sb.String())
}

func fromBase58JSON(value []byte, size int, name string) ([]byte, error) {
	s, err := strconv.Unquote(string(value))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal %s from JSON", name)
	}
	b, err := base58.Decode(s)
	if err != nil {
		return nil, errs.NewDecodeError(name, err)
	}
	if l := len(b); l != size {
		return nil, errs.NewDecodeError(name, errors.Errorf("incorrect length %d, expected %d", l, size))
	}
	return b, nil
}
