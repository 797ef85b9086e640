package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/wavesplatform/wavestx/pkg/client"
	"github.com/wavesplatform/wavestx/pkg/logging"
	"github.com/wavesplatform/wavestx/pkg/proto"
	"github.com/wavesplatform/wavestx/pkg/wallet"
)

var errUsage = errors.New("usage")

type command struct {
	help string
	run  func(ctx context.Context, args []string) error
}

type app struct {
	out     io.Writer
	errOut  io.Writer
	fs      afero.Fs
	getenv  func(string) string
	secrets secretReader
	logger  *zap.Logger
}

func newApp(out, errOut io.Writer, fs afero.Fs, getenv func(string) string, secrets secretReader) *app {
	return &app{
		out:     out,
		errOut:  errOut,
		fs:      fs,
		getenv:  getenv,
		secrets: secrets,
		logger:  zap.NewNop(),
	}
}

func (a *app) commands() map[string]command {
	return map[string]command{
		"seed":         {"Generate a new seed phrase", a.seedCmd},
		"address":      {"Print the address of an account", a.addressCmd},
		"lease-cancel": {"Build and sign a lease cancellation", a.leaseCancelCmd},
		"broadcast":    {"Broadcast a signed transaction", a.broadcastCmd},
		"info":         {"Print a transaction known to the node", a.infoCmd},
		"balance":      {"Print the WAVES balance of an address or alias", a.balanceCmd},
		"wallet-add":   {"Add a seed phrase to the wallet", a.walletAddCmd},
		"wallet-show":  {"Print the wallet accounts", a.walletShowCmd},
		"version":      {"Print version information", a.versionCmd},
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := a.commands()[args[0]]
	if !ok {
		fmt.Fprintf(a.errOut, "Unknown command '%s', available commands:\n", args[0])
		a.printCommands()
		return errors.Errorf("unknown command '%s'", args[0])
	}
	err := cmd.run(ctx, args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

// flags creates the flag set of the command with the common flags registered.
func (a *app) flags(name string) (*flag.FlagSet, *config) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	cfg := new(config)
	cfg.register(fs)
	return fs, cfg
}

func (a *app) parse(fs *flag.FlagSet, cfg *config, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.applyEnv(a.getenv)
	if err := cfg.logging.Parse(); err != nil {
		return err
	}
	logger, err := logging.SetupLogger(cfg.logging)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

func (a *app) print(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to format output")
	}
	_, err = fmt.Fprintln(a.out, string(b))
	return err
}

func (a *app) client(cfg *config) (*client.Client, error) {
	opts, err := cfg.clientOptions(a.logger)
	if err != nil {
		return nil, err
	}
	return client.NewClient(opts)
}

func (a *app) openWallet(cfg *config, scheme proto.Scheme) (*wallet.EmbeddedWallet, wallet.FileLoader, error) {
	path, err := cfg.walletFile()
	if err != nil {
		return nil, wallet.FileLoader{}, err
	}
	loader := wallet.NewLoader(a.fs, path)
	return wallet.NewEmbeddedWallet(loader, scheme, a.logger.Named("wallet")), loader, nil
}

// keyPair resolves the signing account from the seed phrase or from the wallet.
func (a *app) keyPair(cfg *config, scheme proto.Scheme) (proto.KeyPair, error) {
	if cfg.seed != "" {
		return proto.NewKeyPairFromSeed(cfg.seed, cfg.nonce)
	}
	w, _, err := a.openWallet(cfg, scheme)
	if err != nil {
		return proto.KeyPair{}, err
	}
	password, err := a.secret("Enter wallet password: ", envWalletPassword)
	if err != nil {
		return proto.KeyPair{}, err
	}
	if err := w.Load(password); err != nil {
		return proto.KeyPair{}, err
	}
	return w.KeyPair(cfg.walletIndex, cfg.nonce)
}

func (a *app) versionCmd(_ context.Context, _ []string) error {
	_, err := fmt.Fprintf(a.out, "wavestx %s\n", version)
	return err
}

func (a *app) printCommands() {
	cmds := a.commands()
	names := make([]string, 0, len(cmds))
	for n := range cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(a.errOut, "  %-13s %s\n", n, cmds[n].help)
	}
}
