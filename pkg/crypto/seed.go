package crypto

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

const seedPhraseEntropyBits = 160

// NewSeedPhrase generates a fresh 15-word English seed phrase.
func NewSeedPhrase() (string, error) {
	entropy, err := bip39.NewEntropy(seedPhraseEntropyBits)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate entropy for seed phrase")
	}
	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to build seed phrase")
	}
	return phrase, nil
}

// AccountSeed hashes the big-endian nonce followed by the seed phrase bytes.
func AccountSeed(seed []byte, nonce uint32) (Digest, error) {
	buf := make([]byte, 4+len(seed))
	binary.BigEndian.PutUint32(buf, nonce)
	copy(buf[4:], seed)
	d, err := SecureHash(buf)
	if err != nil {
		return Digest{}, errors.Wrap(err, "failed to build account seed")
	}
	return d, nil
}

// KeyPairFromSeedPhrase derives the key pair of the account with the given index.
func KeyPairFromSeedPhrase(phrase string, nonce uint32) (SecretKey, PublicKey, error) {
	s, err := AccountSeed([]byte(phrase), nonce)
	if err != nil {
		return SecretKey{}, PublicKey{}, err
	}
	sk, pk := GenerateKeyPair(s[:])
	return sk, pk, nil
}
