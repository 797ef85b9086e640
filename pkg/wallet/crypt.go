package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"io"

	"github.com/pkg/errors"
)

const keyHashRounds = 5000

// crypt encrypts wallet contents with AES-256 in CFB mode, the random IV is prepended to the ciphertext.
type crypt struct {
	key []byte
}

func newCrypt(password []byte) *crypt {
	return &crypt{key: stretchPassword(password)}
}

func (c *crypt) encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}
	ciphertext := make([]byte, aes.BlockSize+len(plaintext))
	iv := ciphertext[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, errors.Wrap(err, "failed to generate IV")
	}
	cipher.NewCFBEncrypter(block, iv).XORKeyStream(ciphertext[aes.BlockSize:], plaintext)
	return ciphertext, nil
}

func (c *crypt) decrypt(data []byte) ([]byte, error) {
	if l := len(data); l < aes.BlockSize {
		return nil, errors.Errorf("invalid cipher size %d", l)
	}
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}
	iv := data[:aes.BlockSize]
	plaintext := make([]byte, len(data)-aes.BlockSize)
	cipher.NewCFBDecrypter(block, iv).XORKeyStream(plaintext, data[aes.BlockSize:])
	return plaintext, nil
}

// stretchPassword applies SHA-256 to the password keyHashRounds times.
func stretchPassword(password []byte) []byte {
	h := sha256.Sum256(password)
	for i := 1; i < keyHashRounds; i++ {
		h = sha256.Sum256(h[:])
	}
	return h[:]
}
