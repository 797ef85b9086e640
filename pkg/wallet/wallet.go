package wallet

import (
	"encoding/binary"
	"encoding/json"
	"slices"

	"github.com/pkg/errors"

	"github.com/wavesplatform/wavestx/pkg/proto"
)

const (
	curVersion   = 1
	headerLength = 4
)

var (
	ErrInvalidPassword   = errors.New("invalid password")
	ErrPublicKeyNotFound = errors.New("public key not found")
)

type walletFormat struct {
	Seeds []string `json:"seeds"`
}

// Wallet holds seed phrases. It is stored as a big-endian uint32 version followed by
// the encrypted JSON list of phrases.
type Wallet struct {
	Version uint32
	format  walletFormat
}

func NewWallet() *Wallet {
	return &Wallet{Version: curVersion}
}

func (w *Wallet) Seeds() []string {
	return slices.Clone(w.format.Seeds)
}

func (w *Wallet) AddSeed(phrase string) error {
	if phrase == "" {
		return errors.New("empty seed phrase")
	}
	if slices.Contains(w.format.Seeds, phrase) {
		return errors.New("seed phrase is already in the wallet")
	}
	w.format.Seeds = append(w.format.Seeds, phrase)
	return nil
}

// KeyPair derives the key pair of the account with the given nonce from the i-th seed phrase.
func (w *Wallet) KeyPair(i int, nonce uint32) (proto.KeyPair, error) {
	if i < 0 || i >= len(w.format.Seeds) {
		return proto.KeyPair{}, errors.Errorf("no seed phrase with index %d, wallet has %d", i, len(w.format.Seeds))
	}
	return proto.NewKeyPairFromSeed(w.format.Seeds[i], nonce)
}

func (w *Wallet) Encode(password []byte) ([]byte, error) {
	data, err := json.Marshal(w.format)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal wallet")
	}
	encrypted, err := newCrypt(password).encrypt(data)
	if err != nil {
		return nil, err
	}
	out := make([]byte, headerLength, headerLength+len(encrypted))
	binary.BigEndian.PutUint32(out, curVersion)
	return append(out, encrypted...), nil
}

func Decode(data []byte, password []byte) (*Wallet, error) {
	if len(data) < headerLength {
		return nil, errors.Errorf("wallet data is too short: %d bytes", len(data))
	}
	version := binary.BigEndian.Uint32(data[:headerLength])
	if version != curVersion {
		return nil, errors.Errorf("unsupported wallet version %d", version)
	}
	plaintext, err := newCrypt(password).decrypt(data[headerLength:])
	if err != nil {
		return nil, err
	}
	format := walletFormat{}
	if err := json.Unmarshal(plaintext, &format); err != nil {
		return nil, ErrInvalidPassword
	}
	return &Wallet{Version: version, format: format}, nil
}
