package client

import (
	"context"

	"github.com/wavesplatform/wavestx/pkg/proto"
)

type Leasing struct {
	options Options
}

func NewLeasing(options Options) *Leasing {
	return &Leasing{options: options}
}

// Info returns the lease created by the transaction with the given ID, canceled leases included.
func (a *Leasing) Info(ctx context.Context, id proto.ID) (*proto.LeaseDetails, *Response, error) {
	out := new(proto.LeaseDetails)
	response, err := get(ctx, a.options, "/leasing/info/"+id.String(), out)
	if err != nil {
		return nil, response, err
	}
	return out, response, nil
}
