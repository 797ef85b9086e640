package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavesplatform/wavestx/pkg/proto"
)

func TestLeasing_Info(t *testing.T) {
	reply := `{
    "id": "` + testLeaseID + `",
    "originTransactionId": "` + testLeaseID + `",
    "sender": "` + testAddress + `",
    "recipient": "alias:T:v3g4n",
    "amount": 1000000,
    "height": 2183000,
    "status": "canceled"
  }`
	id := proto.MustIDFromBase58(testLeaseID)
	l, resp, err := mockClient(t, reply, 200).Leasing.Info(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, l.ID)
	assert.Equal(t, proto.MustAddressFromString(testAddress), l.Sender)
	require.NotNil(t, l.Recipient.Alias())
	assert.Equal(t, "v3g4n", l.Recipient.Alias().Alias)
	assert.Equal(t, uint64(1000000), l.Amount)
	assert.Equal(t, uint32(2183000), l.Height)
	assert.Equal(t, "canceled", l.Status)
	assert.Equal(t, "https://testnode1.wavesnodes.com/leasing/info/"+testLeaseID, resp.Request.URL.String())
}
