package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

var version = "v0.0.0"

const usage = `wavestx builds, signs and broadcasts Waves transactions.

Usage:
  wavestx <command> [flags]

Available Commands:
  seed          Generate a new seed phrase and print its first address
  address       Print the address and public key of an account
  lease-cancel  Build and sign a lease cancellation, optionally broadcast it
  broadcast     Broadcast a signed transaction read from a JSON file
  info          Print a transaction known to the node
  wallet-add    Add a seed phrase to the encrypted wallet
  wallet-show   Print the accounts stored in the wallet
  version       Print version information

Run 'wavestx <command> --help' for the flags of a command.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	a := newApp(os.Stdout, os.Stderr, afero.NewOsFs(), os.Getenv, terminalSecrets)
	err := a.run(ctx, os.Args[1:])
	stop()
	if err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
