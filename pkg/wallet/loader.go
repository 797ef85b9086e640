package wallet

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const defaultFileName = ".wavestx-wallet"

type Loader interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Exists() (bool, error)
}

// FileLoader keeps the encoded wallet in a single file.
type FileLoader struct {
	fs   afero.Fs
	path string
}

func NewLoader(fs afero.Fs, path string) FileLoader {
	return FileLoader{fs: fs, path: path}
}

// DefaultPath returns the wallet location in the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate home directory")
	}
	return filepath.Join(home, defaultFileName), nil
}

func (l FileLoader) Path() string {
	return l.path
}

func (l FileLoader) Load() ([]byte, error) {
	data, err := afero.ReadFile(l.fs, l.path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read wallet '%s'", l.path)
	}
	return data, nil
}

func (l FileLoader) Save(data []byte) error {
	if dir := filepath.Dir(l.path); dir != "" {
		if err := l.fs.MkdirAll(dir, 0o700); err != nil {
			return errors.Wrapf(err, "failed to create directory '%s'", dir)
		}
	}
	if err := afero.WriteFile(l.fs, l.path, data, 0o600); err != nil {
		return errors.Wrapf(err, "failed to write wallet '%s'", l.path)
	}
	return nil
}

func (l FileLoader) Exists() (bool, error) {
	return afero.Exists(l.fs, l.path)
}
