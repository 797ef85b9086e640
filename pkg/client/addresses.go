package client

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/wavesplatform/wavestx/pkg/proto"
)

// Addresses queries account state.
type Addresses struct {
	options Options
}

func NewAddresses(options Options) *Addresses {
	return &Addresses{options: options}
}

// Balance is the WAVES balance of an account.
type Balance struct {
	Address       proto.WavesAddress `json:"address"`
	Confirmations uint64             `json:"confirmations"`
	Balance       uint64             `json:"balance"`
}

// Balance returns the WAVES balance of the address that is at least confirmations blocks deep.
// Zero confirmations requests the current balance.
func (a *Addresses) Balance(ctx context.Context, address proto.WavesAddress, confirmations uint64) (*Balance, *Response, error) {
	path := "/addresses/balance/" + address.String()
	if confirmations > 0 {
		path += fmt.Sprintf("/%d", confirmations)
	}
	out := new(Balance)
	response, err := get(ctx, a.options, path, out)
	if err != nil {
		return nil, response, err
	}
	if out.Address != address {
		return nil, response, &ParseError{Err: errors.Errorf("balance of %s returned for %s", out.Address, address)}
	}
	return out, response, nil
}
