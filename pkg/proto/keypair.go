package proto

import (
	"github.com/pkg/errors"

	"github.com/wavesplatform/wavestx/pkg/crypto"
)

type KeyPair struct {
	Public crypto.PublicKey
	Secret crypto.SecretKey
}

// NewKeyPairFromSeed derives the key pair of the account with the given index from a seed phrase.
// Any string is a valid seed, the same seed and index always give the same keys.
func NewKeyPairFromSeed(seed string, index uint32) (KeyPair, error) {
	sk, pk, err := crypto.KeyPairFromSeedPhrase(seed, index)
	if err != nil {
		return KeyPair{}, errors.Wrap(err, "failed to derive key pair")
	}
	return KeyPair{Public: pk, Secret: sk}, nil
}

func MustKeyPairFromSeed(seed string, index uint32) KeyPair {
	kp, err := NewKeyPairFromSeed(seed, index)
	if err != nil {
		panic(err)
	}
	return kp
}

func (kp KeyPair) Address(scheme Scheme) (WavesAddress, error) {
	return NewAddressFromPublicKey(scheme, kp.Public)
}
