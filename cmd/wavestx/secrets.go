package main

import (
	"os"

	"github.com/howeyc/gopass"
	"github.com/pkg/errors"
)

// secretReader asks the user for a secret value, the prompt is written to stderr.
type secretReader func(prompt string) ([]byte, error)

func terminalSecrets(prompt string) ([]byte, error) {
	b, err := gopass.GetPasswdPrompt(prompt, true, os.Stdin, os.Stderr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read input")
	}
	return b, nil
}

// secret returns the environment value if set, otherwise asks the user.
func (a *app) secret(prompt, env string) ([]byte, error) {
	if v := a.getenv(env); v != "" {
		return []byte(v), nil
	}
	b, err := a.secrets(prompt)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, errors.New("empty input")
	}
	return b, nil
}
