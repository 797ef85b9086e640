package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/wavesplatform/wavestx/pkg/client"
	"github.com/wavesplatform/wavestx/pkg/crypto"
	"github.com/wavesplatform/wavestx/pkg/libs/ntptime"
	"github.com/wavesplatform/wavestx/pkg/proto"
)

const defaultFee = 100000

type accountOutput struct {
	Seed      string             `json:"seed,omitempty"`
	Index     *int               `json:"index,omitempty"`
	Nonce     uint32             `json:"nonce"`
	PublicKey crypto.PublicKey   `json:"publicKey"`
	Address   proto.WavesAddress `json:"address"`
}

type infoOutput struct {
	ID            proto.ID                `json:"id"`
	Height        uint32                  `json:"height,omitempty"`
	Confirmations uint64                  `json:"confirmations,omitempty"`
	Status        proto.ApplicationStatus `json:"applicationStatus"`
	Transaction   proto.SignedTransaction `json:"transaction"`
}

type balanceOutput struct {
	Address       proto.WavesAddress `json:"address"`
	Alias         *proto.Alias       `json:"alias,omitempty"`
	Confirmations uint64             `json:"confirmations"`
	Balance       uint64             `json:"balance"`
}

func newInfoOutput(ti *proto.TransactionInfo) (infoOutput, error) {
	st, err := ti.SignedTransaction()
	if err != nil {
		return infoOutput{}, err
	}
	return infoOutput{ID: ti.ID, Height: ti.Height, Status: ti.Status, Transaction: st}, nil
}

func account(kp proto.KeyPair, scheme proto.Scheme, nonce uint32) (accountOutput, error) {
	addr, err := kp.Address(scheme)
	if err != nil {
		return accountOutput{}, err
	}
	return accountOutput{Nonce: nonce, PublicKey: kp.Public, Address: addr}, nil
}

func (a *app) seedCmd(_ context.Context, args []string) error {
	fs, cfg := a.flags("seed")
	if err := a.parse(fs, cfg, args); err != nil {
		return err
	}
	scheme, err := cfg.scheme()
	if err != nil {
		return err
	}
	phrase, err := crypto.NewSeedPhrase()
	if err != nil {
		return err
	}
	kp, err := proto.NewKeyPairFromSeed(phrase, cfg.nonce)
	if err != nil {
		return err
	}
	out, err := account(kp, scheme, cfg.nonce)
	if err != nil {
		return err
	}
	out.Seed = phrase
	return a.print(out)
}

func (a *app) addressCmd(_ context.Context, args []string) error {
	fs, cfg := a.flags("address")
	if err := a.parse(fs, cfg, args); err != nil {
		return err
	}
	scheme, err := cfg.scheme()
	if err != nil {
		return err
	}
	kp, err := a.keyPair(cfg, scheme)
	if err != nil {
		return err
	}
	out, err := account(kp, scheme, cfg.nonce)
	if err != nil {
		return err
	}
	return a.print(out)
}

func (a *app) leaseCancelCmd(ctx context.Context, args []string) error {
	fs, cfg := a.flags("lease-cancel")
	leaseID := fs.String("lease-id", "", "ID of the lease to cancel (required)")
	fee := fs.Uint64("fee", defaultFee, "Fee in WAVELETs")
	txVersion := fs.Uint8("tx-version", 3, "Transaction version")
	timestamp := fs.Uint64("timestamp", 0, "Transaction timestamp in milliseconds, current time if zero")
	broadcast := fs.Bool("broadcast", false, "Send the transaction to the node")
	wait := fs.Bool("wait", false, "Wait for the broadcast transaction to be confirmed")
	if err := a.parse(fs, cfg, args); err != nil {
		return err
	}
	if *leaseID == "" {
		return errors.New("--lease-id is required")
	}
	id, err := proto.NewIDFromBase58(*leaseID)
	if err != nil {
		return errors.Wrap(err, "invalid lease id")
	}
	scheme, err := cfg.scheme()
	if err != nil {
		return err
	}
	ts := *timestamp
	if ts == 0 {
		if ts, err = a.now(cfg); err != nil {
			return err
		}
	}
	kp, err := a.keyPair(cfg, scheme)
	if err != nil {
		return err
	}
	if *broadcast {
		if err := a.checkLease(ctx, cfg, id, kp.Public, scheme); err != nil {
			return err
		}
	}
	tx, err := proto.NewTransaction(proto.NewLeaseCancel(id), proto.NewWavesAmount(*fee), ts, kp.Public, *txVersion, scheme)
	if err != nil {
		return err
	}
	st, err := tx.Sign(kp.Secret)
	if err != nil {
		return err
	}
	if !*broadcast {
		return a.print(st)
	}
	return a.send(ctx, cfg, st, *wait)
}

// checkLease makes sure the lease exists, is still active and belongs to the account.
func (a *app) checkLease(ctx context.Context, cfg *config, id proto.ID, sender crypto.PublicKey, scheme proto.Scheme) error {
	c, err := a.client(cfg)
	if err != nil {
		return err
	}
	lease, _, err := c.Leasing.Info(ctx, id)
	if err != nil {
		return errors.Wrapf(err, "failed to get lease %s", id.String())
	}
	if lease.Status != "active" {
		return errors.Errorf("lease %s is %s", id.String(), lease.Status)
	}
	addr, err := proto.NewAddressFromPublicKey(scheme, sender)
	if err != nil {
		return err
	}
	if lease.Sender != addr {
		return errors.Errorf("lease %s belongs to %s, not to %s", id.String(), lease.Sender, addr)
	}
	a.logger.Debug("Lease is active", zap.Stringer("id", id), zap.Uint64("amount", lease.Amount))
	return nil
}

// now returns the current timestamp, corrected by the NTP server if one is configured.
func (a *app) now(cfg *config) (uint64, error) {
	t := time.Now()
	if cfg.ntpServer != "" {
		var err error
		if t, err = ntptime.New(cfg.ntpServer).Now(); err != nil {
			return 0, err
		}
	}
	return client.NewTimestampFromTime(t)
}

func (a *app) broadcastCmd(ctx context.Context, args []string) error {
	fs, cfg := a.flags("broadcast")
	sign := fs.Bool("sign", false, "Sign the transaction with the wallet key of its sender before sending")
	wait := fs.Bool("wait", false, "Wait for the transaction to be confirmed")
	if err := a.parse(fs, cfg, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("path to the transaction JSON file is required")
	}
	data, err := afero.ReadFile(a.fs, fs.Arg(0))
	if err != nil {
		return errors.Wrap(err, "failed to read transaction")
	}
	ti, err := client.DecodeTransactionInfo(data)
	if err != nil {
		return err
	}
	if *sign {
		tx, err := ti.Transaction()
		if err != nil {
			return err
		}
		w, _, err := a.openWallet(cfg, tx.ChainID)
		if err != nil {
			return err
		}
		password, err := a.secret("Enter wallet password: ", envWalletPassword)
		if err != nil {
			return err
		}
		if err := w.Load(password); err != nil {
			return err
		}
		st, err := w.SignTransactionWith(ti.SenderPK, cfg.nonce, tx)
		if err != nil {
			return err
		}
		return a.send(ctx, cfg, st, *wait)
	}
	st, err := ti.SignedTransaction()
	if err != nil {
		return err
	}
	ok, err := st.Verify(ti.SenderPK)
	if err != nil {
		return errors.Wrap(err, "transaction is not signed")
	}
	if !ok {
		return errors.New("invalid sender signature")
	}
	return a.send(ctx, cfg, st, *wait)
}

func (a *app) send(ctx context.Context, cfg *config, st proto.SignedTransaction, wait bool) error {
	c, err := a.client(cfg)
	if err != nil {
		return err
	}
	id, _, err := c.Transactions.Broadcast(ctx, st)
	if err != nil {
		return errors.Wrap(err, "broadcast failed")
	}
	a.logger.Info("Transaction broadcast", zap.Stringer("id", id))
	if !wait {
		return a.print(map[string]proto.ID{"id": id})
	}
	ti, err := c.Transactions.WaitForTransaction(ctx, id, cfg.timeout)
	if err != nil {
		return err
	}
	out, err := newInfoOutput(ti)
	if err != nil {
		return err
	}
	return a.print(out)
}

func (a *app) infoCmd(ctx context.Context, args []string) error {
	fs, cfg := a.flags("info")
	unconfirmed := fs.Bool("unconfirmed", false, "Look the transaction up in the UTX pool")
	if err := a.parse(fs, cfg, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("transaction id is required")
	}
	id, err := proto.NewIDFromBase58(fs.Arg(0))
	if err != nil {
		return errors.Wrap(err, "invalid transaction id")
	}
	c, err := a.client(cfg)
	if err != nil {
		return err
	}
	var ti *proto.TransactionInfo
	if *unconfirmed {
		ti, _, err = c.Transactions.UnconfirmedInfo(ctx, id)
	} else {
		ti, _, err = c.Transactions.Info(ctx, id)
	}
	if err != nil {
		return err
	}
	out, err := newInfoOutput(ti)
	if err != nil {
		return err
	}
	if ti.Height > 0 {
		h, _, err := c.Blocks.Height(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to get blockchain height")
		}
		if h >= uint64(ti.Height) {
			out.Confirmations = h - uint64(ti.Height) + 1
		}
	}
	return a.print(out)
}

func (a *app) balanceCmd(ctx context.Context, args []string) error {
	fs, cfg := a.flags("balance")
	confirmations := fs.Uint64("confirmations", 0, "Only count the balance that is this many blocks deep")
	if err := a.parse(fs, cfg, args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return errors.New("at most one address or alias is expected")
	}
	scheme, err := cfg.scheme()
	if err != nil {
		return err
	}
	c, err := a.client(cfg)
	if err != nil {
		return err
	}
	var out balanceOutput
	if fs.NArg() == 0 {
		kp, err := a.keyPair(cfg, scheme)
		if err != nil {
			return err
		}
		if out.Address, err = kp.Address(scheme); err != nil {
			return err
		}
	} else {
		r, err := proto.NewRecipientFromString(fs.Arg(0))
		if err != nil {
			return errors.Wrap(err, "invalid address or alias")
		}
		if err := r.Valid(); err != nil {
			return err
		}
		if alias := r.Alias(); alias != nil {
			if out.Address, _, err = c.Aliases.Resolve(ctx, *alias); err != nil {
				return errors.Wrapf(err, "failed to resolve %s", alias.String())
			}
			out.Alias = alias
		} else {
			out.Address = *r.Address()
		}
	}
	if out.Address.ChainID() != scheme {
		return errors.Errorf("address %s does not belong to network '%c'", out.Address, scheme)
	}
	b, _, err := c.Addresses.Balance(ctx, out.Address, *confirmations)
	if err != nil {
		return err
	}
	out.Confirmations = b.Confirmations
	out.Balance = b.Balance
	return a.print(out)
}

func (a *app) walletAddCmd(_ context.Context, args []string) error {
	fs, cfg := a.flags("wallet-add")
	generate := fs.Bool("generate", false, "Generate a new seed phrase instead of reading one")
	if err := a.parse(fs, cfg, args); err != nil {
		return err
	}
	scheme, err := cfg.scheme()
	if err != nil {
		return err
	}
	w, loader, err := a.openWallet(cfg, scheme)
	if err != nil {
		return err
	}
	password, err := a.secret("Enter wallet password: ", envWalletPassword)
	if err != nil {
		return err
	}
	exists, err := loader.Exists()
	if err != nil {
		return err
	}
	if exists {
		if err := w.Load(password); err != nil {
			return err
		}
	}
	phrase := cfg.seed
	switch {
	case *generate:
		if phrase, err = crypto.NewSeedPhrase(); err != nil {
			return err
		}
	case phrase == "":
		b, err := a.secret("Enter seed phrase: ", envSeed)
		if err != nil {
			return err
		}
		phrase = string(b)
	}
	if err := w.AddSeed(phrase); err != nil {
		return err
	}
	if err := w.Save(password); err != nil {
		return err
	}
	a.logger.Info("Seed phrase added", zap.String("wallet", loader.Path()))
	kp, err := proto.NewKeyPairFromSeed(phrase, 0)
	if err != nil {
		return err
	}
	out, err := account(kp, scheme, 0)
	if err != nil {
		return err
	}
	idx := len(w.Seeds()) - 1
	out.Index = &idx
	return a.print(out)
}

func (a *app) walletShowCmd(_ context.Context, args []string) error {
	fs, cfg := a.flags("wallet-show")
	showSeeds := fs.Bool("show-seeds", false, "Print the seed phrases too")
	if err := a.parse(fs, cfg, args); err != nil {
		return err
	}
	scheme, err := cfg.scheme()
	if err != nil {
		return err
	}
	w, _, err := a.openWallet(cfg, scheme)
	if err != nil {
		return err
	}
	password, err := a.secret("Enter wallet password: ", envWalletPassword)
	if err != nil {
		return err
	}
	if err := w.Load(password); err != nil {
		return err
	}
	seeds := w.Seeds()
	out := make([]accountOutput, 0, len(seeds))
	for i := range seeds {
		kp, err := w.KeyPair(i, cfg.nonce)
		if err != nil {
			return err
		}
		acc, err := account(kp, scheme, cfg.nonce)
		if err != nil {
			return err
		}
		idx := i
		acc.Index = &idx
		if *showSeeds {
			acc.Seed = seeds[i]
		}
		out = append(out, acc)
	}
	return a.print(out)
}
