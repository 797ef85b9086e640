package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavesplatform/wavestx/pkg/proto"
)

func TestAliases_Resolve(t *testing.T) {
	alias, err := proto.NewAlias(proto.TestNetScheme, "frozen")
	require.NoError(t, err)
	c := mockClient(t, `{"address":"3NBVqYXrapgJP9atQccdBPAgJPwHDKkh6A8"}`, 200)
	addr, resp, err := c.Aliases.Resolve(context.Background(), *alias)
	require.NoError(t, err)
	assert.Equal(t, proto.MustAddressFromString("3NBVqYXrapgJP9atQccdBPAgJPwHDKkh6A8"), addr)
	assert.Equal(t, "https://testnode1.wavesnodes.com/alias/by-alias/frozen", resp.Request.URL.String())
}

func TestAliases_ResolveRejects(t *testing.T) {
	mainnet, err := proto.NewAlias(proto.MainNetScheme, "frozen")
	require.NoError(t, err)
	testnet, err := proto.NewAlias(proto.TestNetScheme, "frozen")
	require.NoError(t, err)

	t.Run("alias of another network", func(t *testing.T) {
		_, resp, err := mockClient(t, "", 200).Aliases.Resolve(context.Background(), *mainnet)
		assert.Error(t, err)
		assert.Nil(t, resp)
	})
	t.Run("invalid name", func(t *testing.T) {
		_, resp, err := mockClient(t, "", 200).Aliases.Resolve(context.Background(), proto.Alias{Version: testnet.Version, Scheme: proto.TestNetScheme, Alias: "UP"})
		assert.Error(t, err)
		assert.Nil(t, resp)
	})
	t.Run("address of another network", func(t *testing.T) {
		c := mockClient(t, `{"address":"3PAWwWa6GbwcJaFzwqXQN5KQm7H96Y7SHTQ"}`, 200)
		_, _, err := c.Aliases.Resolve(context.Background(), *testnet)
		assert.ErrorAs(t, err, new(*ParseError))
	})
	t.Run("unknown alias", func(t *testing.T) {
		c := mockClient(t, `{"error":302,"message":"Alias 'frozen' doesn't exist"}`, 404)
		_, _, err := c.Aliases.Resolve(context.Background(), *testnet)
		var re *RequestError
		require.ErrorAs(t, err, &re)
		assert.True(t, re.NotFound())
	})
}
