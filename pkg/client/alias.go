package client

import (
	"context"

	"github.com/pkg/errors"

	"github.com/wavesplatform/wavestx/pkg/proto"
)

// Aliases resolves alias names.
type Aliases struct {
	options Options
}

func NewAliases(options Options) *Aliases {
	return &Aliases{options: options}
}

// Resolve returns the address the alias is bound to.
// The node serves the aliases of its own network only, so the alias network must match the client one.
func (a *Aliases) Resolve(ctx context.Context, alias proto.Alias) (proto.WavesAddress, *Response, error) {
	if err := alias.Valid(); err != nil {
		return proto.WavesAddress{}, nil, err
	}
	if alias.Scheme != a.options.ChainID {
		return proto.WavesAddress{}, nil, errors.Errorf("alias %s does not belong to network '%c'", alias, a.options.ChainID)
	}
	var out struct {
		Address proto.WavesAddress `json:"address"`
	}
	response, err := get(ctx, a.options, "/alias/by-alias/"+alias.Alias, &out)
	if err != nil {
		return proto.WavesAddress{}, response, err
	}
	if out.Address.ChainID() != alias.Scheme {
		return proto.WavesAddress{}, response, &ParseError{Err: errors.Errorf("alias %s resolved to %s of another network", alias, out.Address)}
	}
	return out.Address, response, nil
}
