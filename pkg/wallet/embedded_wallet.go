package wallet

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wavesplatform/wavestx/pkg/crypto"
	"github.com/wavesplatform/wavestx/pkg/proto"
)

// EmbeddedWallet is a wallet bound to its storage, safe for concurrent use.
type EmbeddedWallet struct {
	loader Loader
	scheme proto.Scheme
	logger *zap.Logger

	mu     sync.Mutex
	wallet *Wallet
}

func NewEmbeddedWallet(loader Loader, scheme proto.Scheme, logger *zap.Logger) *EmbeddedWallet {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmbeddedWallet{
		loader: loader,
		scheme: scheme,
		logger: logger,
		wallet: NewWallet(),
	}
}

// Load replaces the wallet contents with the stored ones.
func (a *EmbeddedWallet) Load(password []byte) error {
	bts, err := a.loader.Load()
	if err != nil {
		return err
	}
	w, err := Decode(bts, password)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.wallet = w
	a.mu.Unlock()
	a.logger.Debug("Wallet loaded", zap.Int("seeds", len(w.format.Seeds)))
	return nil
}

func (a *EmbeddedWallet) Save(password []byte) error {
	a.mu.Lock()
	bts, err := a.wallet.Encode(password)
	a.mu.Unlock()
	if err != nil {
		return err
	}
	return a.loader.Save(bts)
}

func (a *EmbeddedWallet) AddSeed(phrase string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.wallet.AddSeed(phrase)
}

func (a *EmbeddedWallet) Seeds() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.wallet.Seeds()
}

func (a *EmbeddedWallet) KeyPair(i int, nonce uint32) (proto.KeyPair, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.wallet.KeyPair(i, nonce)
}

// Addresses lists the first account address of every seed.
func (a *EmbeddedWallet) Addresses() ([]proto.WavesAddress, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	r := make([]proto.WavesAddress, 0, len(a.wallet.format.Seeds))
	for i := range a.wallet.format.Seeds {
		kp, err := a.wallet.KeyPair(i, 0)
		if err != nil {
			return nil, err
		}
		addr, err := kp.Address(a.scheme)
		if err != nil {
			return nil, err
		}
		r = append(r, addr)
	}
	return r, nil
}

// SignTransactionWith signs the transaction with the account of the given nonce whose public key is pk.
// Every seed of the wallet is tried.
func (a *EmbeddedWallet) SignTransactionWith(pk crypto.PublicKey, nonce uint32, tx proto.Transaction) (proto.SignedTransaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.wallet.format.Seeds {
		kp, err := a.wallet.KeyPair(i, nonce)
		if err != nil {
			return proto.SignedTransaction{}, err
		}
		if kp.Public == pk {
			return tx.Sign(kp.Secret)
		}
	}
	return proto.SignedTransaction{}, ErrPublicKeyNotFound
}
