package proto

import (
	"bytes"
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

// Scheme is the one byte network (chain) identifier.
type Scheme = byte

const (
	MainNetScheme  Scheme = 'W'
	TestNetScheme  Scheme = 'T'
	StageNetScheme Scheme = 'S'
	DevNetScheme   Scheme = 'D'
)

const (
	headerSize       = 2
	bodySize         = 20
	checksumSize     = 4
	WavesAddressSize = headerSize + bodySize + checksumSize
	aliasFixedSize   = 4

	addressVersion byte = 0x01

	aliasVersion   byte = 0x02
	aliasMinLength      = 4
	aliasMaxLength      = 30
	aliasAlphabet       = "-.0123456789@_abcdefghijklmnopqrstuvwxyz"
	aliasPrefix         = "alias"
)

// WavesAddress is [version][scheme][public key hash][checksum].
type WavesAddress [WavesAddressSize]byte

// NewAddressFromPublicKey derives the address of publicKey on the network identified by scheme.
func NewAddressFromPublicKey(scheme Scheme, publicKey crypto.PublicKey) (WavesAddress, error) {
	var a WavesAddress
	a[0] = addressVersion
	a[1] = scheme
	h, err := crypto.SecureHash(publicKey[:])
	if err != nil {
		return a, errors.Wrap(err, "failed to produce Digest from PublicKey")
	}
	copy(a[headerSize:], h[:bodySize])
	cs, err := addressChecksum(a[:headerSize+bodySize])
	if err != nil {
		return a, errors.Wrap(err, "failed to calculate WavesAddress checksum")
	}
	copy(a[headerSize+bodySize:], cs)
	return a, nil
}

// NewAddressFromString parses a Base58 address and re-validates its version and checksum.
func NewAddressFromString(s string) (WavesAddress, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return WavesAddress{}, errs.NewDecodeError("WavesAddress", err)
	}
	return NewAddressFromBytes(b)
}

func NewAddressFromBytes(b []byte) (WavesAddress, error) {
	var a WavesAddress
	if l := len(b); l != WavesAddressSize {
		return a, errs.NewDecodeError("WavesAddress",
			errors.Errorf("incorrect length %d, expected %d", l, WavesAddressSize))
	}
	copy(a[:], b)
	if err := a.Validate(); err != nil {
		return WavesAddress{}, err
	}
	return a, nil
}

func MustAddressFromString(s string) WavesAddress {
	a, err := NewAddressFromString(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a WavesAddress) Validate() error {
	if a[0] != addressVersion {
		return errs.NewDecodeError("WavesAddress",
			errors.Errorf("unsupported address version %d, expected %d", a[0], addressVersion))
	}
	ec, err := addressChecksum(a[:headerSize+bodySize])
	if err != nil {
		return errors.Wrap(err, "failed to calculate WavesAddress checksum")
	}
	if !bytes.Equal(ec, a[headerSize+bodySize:]) {
		return errs.NewInvalidChecksum("invalid WavesAddress checksum")
	}
	return nil
}

func (a WavesAddress) ChainID() Scheme {
	return a[1]
}

// PublicKeyHash returns the 20 bytes of the public key digest.
func (a WavesAddress) PublicKeyHash() []byte {
	r := make([]byte, bodySize)
	copy(r, a[headerSize:headerSize+bodySize])
	return r
}

func (a WavesAddress) Bytes() []byte {
	r := make([]byte, WavesAddressSize)
	copy(r, a[:])
	return r
}

func (a WavesAddress) String() string {
	return base58.Encode(a[:])
}

func (a WavesAddress) MarshalJSON() ([]byte, error) {
	return B58Bytes(a[:]).MarshalJSON()
}

func (a *WavesAddress) UnmarshalJSON(value []byte) error {
	var b B58Bytes
	if err := b.UnmarshalJSON(value); err != nil {
		return err
	}
	r, err := NewAddressFromBytes(b)
	if err != nil {
		return err
	}
	*a = r
	return nil
}

func addressChecksum(b []byte) ([]byte, error) {
	h, err := crypto.SecureHash(b)
	if err != nil {
		return nil, err
	}
	c := make([]byte, checksumSize)
	copy(c, h[:checksumSize])
	return c, nil
}

// Alias is a human-readable name bound to an address on a network.
type Alias struct {
	Version byte
	Scheme  Scheme
	Alias   string
}

func NewAlias(scheme Scheme, alias string) (*Alias, error) {
	if err := validAliasName(alias); err != nil {
		return nil, err
	}
	return &Alias{Version: aliasVersion, Scheme: scheme, Alias: alias}, nil
}

// NewAliasFromString parses the "alias:<scheme>:<name>" form.
func NewAliasFromString(s string) (*Alias, error) {
	ps := strings.Split(s, ":")
	if len(ps) != 3 {
		return nil, errors.Errorf("incorrect alias string representation '%s'", s)
	}
	if ps[0] != aliasPrefix {
		return nil, errors.Errorf("alias should start with prefix '%s'", aliasPrefix)
	}
	scheme := ps[1]
	if len(scheme) != 1 {
		return nil, errors.Errorf("incorrect alias chainID '%s'", scheme)
	}
	return NewAlias(scheme[0], ps[2])
}

func validAliasName(alias string) error {
	if l := len(alias); l < aliasMinLength || l > aliasMaxLength {
		return errs.NewInvalidName(
			"alias length should be between " + strconv.Itoa(aliasMinLength) + " and " + strconv.Itoa(aliasMaxLength))
	}
	for _, c := range alias {
		if !strings.ContainsRune(aliasAlphabet, c) {
			return errs.NewInvalidName("alias should contain only following characters: " + aliasAlphabet)
		}
	}
	return nil
}

func (a Alias) String() string {
	var sb strings.Builder
	sb.WriteString(aliasPrefix)
	sb.WriteRune(':')
	sb.WriteByte(a.Scheme)
	sb.WriteRune(':')
	sb.WriteString(a.Alias)
	return sb.String()
}

func (a Alias) Valid() error {
	if a.Version != aliasVersion {
		return errors.Errorf("unsupported alias version %d, expected %d", a.Version, aliasVersion)
	}
	return validAliasName(a.Alias)
}

func (a Alias) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Alias) UnmarshalJSON(value []byte) error {
	s, err := strconv.Unquote(string(value))
	if err != nil {
		return errors.Wrap(err, "failed to unmarshal Alias from JSON")
	}
	t, err := NewAliasFromString(s)
	if err != nil {
		return errors.Wrap(err, "failed to unmarshal Alias from JSON")
	}
	*a = *t
	return nil
}

func (a Alias) write(s *serializer.Serializer) error {
	if err := s.Byte(a.Version); err != nil {
		return err
	}
	if err := s.Byte(a.Scheme); err != nil {
		return err
	}
	return s.StringWithUInt16Len(a.Alias)
}

func (a Alias) MarshalBinary() ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := a.write(serializer.New(buf)); err != nil {
		return nil, errors.Wrap(err, "failed to marshal Alias to bytes")
	}
	return buf.Bytes(), nil
}

func (a *Alias) UnmarshalBinary(data []byte) error {
	if dl := len(data); dl < aliasFixedSize+aliasMinLength {
		return errors.Errorf("incorrect alias length %d, should be at least %d bytes", dl, aliasFixedSize+aliasMinLength)
	}
	d := deserializer.NewDeserializer(data)
	v, _ := d.Byte()
	if v != aliasVersion {
		return errors.Errorf("unsupported alias version %d, expected %d", v, aliasVersion)
	}
	scheme, _ := d.Byte()
	name, err := d.BytesWithUInt16Len()
	if err != nil {
		return errors.Wrap(err, "failed to unmarshal Alias from bytes")
	}
	if err := validAliasName(string(name)); err != nil {
		return err
	}
	a.Version = v
	a.Scheme = scheme
	a.Alias = string(name)
	return nil
}

// Recipient is either an address or an alias.
type Recipient struct {
	address *WavesAddress
	alias   *Alias
}

func NewRecipientFromAddress(a WavesAddress) Recipient {
	return Recipient{address: &a}
}

func NewRecipientFromAlias(a Alias) Recipient {
	return Recipient{alias: &a}
}

// NewRecipientFromString accepts either a Base58 address or an "alias:<scheme>:<name>" string.
func NewRecipientFromString(s string) (Recipient, error) {
	if strings.HasPrefix(s, aliasPrefix+":") {
		a, err := NewAliasFromString(s)
		if err != nil {
			return Recipient{}, err
		}
		return NewRecipientFromAlias(*a), nil
	}
	a, err := NewAddressFromString(s)
	if err != nil {
		return Recipient{}, err
	}
	return NewRecipientFromAddress(a), nil
}

func (r Recipient) Address() *WavesAddress {
	return r.address
}

func (r Recipient) Alias() *Alias {
	return r.alias
}

func (r Recipient) Valid() error {
	switch {
	case r.alias != nil:
		return r.alias.Valid()
	case r.address != nil:
		return r.address.Validate()
	default:
		return errors.New("empty recipient")
	}
}

func (r Recipient) String() string {
	switch {
	case r.alias != nil:
		return r.alias.String()
	case r.address != nil:
		return r.address.String()
	default:
		return ""
	}
}

func (r Recipient) write(s *serializer.Serializer) error {
	switch {
	case r.alias != nil:
		return r.alias.write(s)
	case r.address != nil:
		return s.Bytes(r.address[:])
	default:
		return errors.New("empty recipient")
	}
}

func (r Recipient) MarshalJSON() ([]byte, error) {
	if r.alias == nil && r.address == nil {
		return jsonNullBytes, nil
	}
	return json.Marshal(r.String())
}

func (r *Recipient) UnmarshalJSON(value []byte) error {
	s, err := strconv.Unquote(string(value))
	if err != nil {
		return errors.Wrap(err, "failed to unmarshal Recipient from JSON")
	}
	t, err := NewRecipientFromString(s)
	if err != nil {
		return errors.Wrap(err, "failed to unmarshal Recipient from JSON")
	}
	*r = t
	return nil
}

func (r *Recipient) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return errors.New("failed to unmarshal Recipient from empty bytes")
	}
	switch v := data[0]; v {
	case addressVersion:
		a, err := NewAddressFromBytes(data)
		if err != nil {
			return errors.Wrap(err, "failed to unmarshal Recipient from bytes")
		}
		*r = NewRecipientFromAddress(a)
		return nil
	case aliasVersion:
		var a Alias
		if err := a.UnmarshalBinary(data); err != nil {
			return errors.Wrap(err, "failed to unmarshal Recipient from bytes")
		}
		*r = NewRecipientFromAlias(a)
		return nil
	default:
		return errors.Errorf("unsupported Recipient version %d", v)
	}
}
