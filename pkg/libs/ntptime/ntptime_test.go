package ntptime

import (
	"errors"
	"testing"
	"time"

	"github.com/beevik/ntp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock(t *testing.T) {
	offset := time.Hour
	var fail error
	c := newClock("pool.ntp.org", func(addr string) (*ntp.Response, error) {
		assert.Equal(t, "pool.ntp.org", addr)
		if fail != nil {
			return nil, fail
		}
		return &ntp.Response{ClockOffset: offset}, nil
	})
	now, err := c.Now()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), now, time.Minute)
	assert.Equal(t, time.Hour, c.Offset())

	fail = errors.New("timeout")
	assert.Error(t, c.Sync())
	_, err = c.Now()
	assert.ErrorIs(t, err, fail)
	assert.Equal(t, time.Hour, c.Offset())

	fail = nil
	offset = -time.Minute
	require.NoError(t, c.Sync())
	now, err = c.Now()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(-time.Minute), now, 30*time.Second)
}
