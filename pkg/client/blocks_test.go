package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlocks_Height(t *testing.T) {
	h, resp, err := mockClient(t, `{"height": 3285714}`, 200).Blocks.Height(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(3285714), h)
	assert.Equal(t, "https://testnode1.wavesnodes.com/blocks/height", resp.Request.URL.String())

	_, _, err = mockClient(t, `{"height": "tall"}`, 200).Blocks.Height(context.Background())
	assert.ErrorAs(t, err, new(*ParseError))
}
