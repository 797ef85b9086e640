package main

import (
	"time"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/wavesplatform/wavestx/pkg/client"
	"github.com/wavesplatform/wavestx/pkg/logging"
	"github.com/wavesplatform/wavestx/pkg/proto"
	"github.com/wavesplatform/wavestx/pkg/wallet"
)

const (
	envNode           = "WAVESTX_NODE"
	envChain          = "WAVESTX_CHAIN"
	envAPIKey         = "WAVESTX_API_KEY"
	envWallet         = "WAVESTX_WALLET"
	envWalletPassword = "WAVESTX_WALLET_PASSWORD"
	envSeed           = "WAVESTX_SEED"
	envNTPServer      = "WAVESTX_NTP_SERVER"
)

type config struct {
	node        string
	chain       string
	apiKey      string
	walletPath  string
	seed        string
	nonce       uint32
	walletIndex int
	timeout     time.Duration
	ntpServer   string
	logging     logging.Parameters
}

func (c *config) register(fs *flag.FlagSet) {
	fs.StringVarP(&c.node, "node", "n", "",
		"Node API URL, defaults to the public node of the chain (env "+envNode+")")
	fs.StringVarP(&c.chain, "chain", "c", "",
		"Chain id: W (MainNet), T (TestNet), S (StageNet) or any other single character (env "+envChain+", default W)")
	fs.StringVar(&c.apiKey, "api-key", "", "Node API key (env "+envAPIKey+")")
	fs.StringVarP(&c.walletPath, "wallet", "w", "", "Path to the wallet file (env "+envWallet+", default ~/.wavestx-wallet)")
	fs.StringVar(&c.seed, "seed", "", "Seed phrase of the account, the wallet is used if empty (env "+envSeed+")")
	fs.Uint32Var(&c.nonce, "nonce", 0, "Account nonce within the seed")
	fs.IntVar(&c.walletIndex, "wallet-index", 0, "Index of the seed phrase in the wallet")
	fs.DurationVar(&c.timeout, "timeout", time.Minute, "How long to wait for confirmation")
	fs.StringVar(&c.ntpServer, "ntp-server", "", "NTP server to correct transaction timestamps, local time is used if empty (env "+envNTPServer+")")
	c.logging.Initialize(fs)
}

func (c *config) applyEnv(getenv func(string) string) {
	fallback := func(v *string, name string) {
		if *v == "" {
			*v = getenv(name)
		}
	}
	fallback(&c.node, envNode)
	fallback(&c.chain, envChain)
	fallback(&c.apiKey, envAPIKey)
	fallback(&c.walletPath, envWallet)
	fallback(&c.seed, envSeed)
	fallback(&c.ntpServer, envNTPServer)
}

func (c *config) scheme() (proto.Scheme, error) {
	switch len(c.chain) {
	case 0:
		return proto.MainNetScheme, nil
	case 1:
		return c.chain[0], nil
	default:
		return 0, errors.Errorf("invalid chain id '%s', expected a single character", c.chain)
	}
}

func (c *config) clientOptions(logger *zap.Logger) (client.Options, error) {
	scheme, err := c.scheme()
	if err != nil {
		return client.Options{}, err
	}
	opts := client.Options{BaseUrl: c.node}
	if opts.BaseUrl == "" {
		opts, err = client.OptionsForScheme(scheme)
		if err != nil {
			return client.Options{}, errors.Wrap(err, "node URL is required for this chain")
		}
	}
	opts.ChainID = scheme
	opts.ApiKey = c.apiKey
	opts.Logger = logger.Named("client")
	return opts, nil
}

func (c *config) walletFile() (string, error) {
	if c.walletPath != "" {
		return c.walletPath, nil
	}
	return wallet.DefaultPath()
}
