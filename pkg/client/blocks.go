package client

import "context"

type Blocks struct {
	options Options
}

func NewBlocks(options Options) *Blocks {
	return &Blocks{options: options}
}

// Height returns the height of the last block applied by the node.
func (a *Blocks) Height(ctx context.Context) (uint64, *Response, error) {
	var out struct {
		Height uint64 `json:"height"`
	}
	response, err := get(ctx, a.options, "/blocks/height", &out)
	if err != nil {
		return 0, response, err
	}
	return out.Height, response, nil
}
