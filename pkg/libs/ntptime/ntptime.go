package ntptime

import (
	"sync"
	"time"

	"github.com/beevik/ntp"
	"github.com/pkg/errors"
)

type queryFunc func(addr string) (*ntp.Response, error)

// Clock is the local clock corrected by the offset reported by an NTP server.
type Clock struct {
	addr  string
	query queryFunc

	mu     sync.RWMutex
	offset time.Duration
	err    error
}

// New queries the server once, Now reports the query error until a Sync succeeds.
func New(addr string) *Clock {
	return newClock(addr, ntp.Query)
}

func newClock(addr string, query queryFunc) *Clock {
	c := &Clock{addr: addr, query: query}
	_ = c.Sync()
	return c
}

// Sync refreshes the clock offset.
func (c *Clock) Sync() error {
	resp, err := c.query(c.addr)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.err = errors.Wrapf(err, "failed to query NTP server '%s'", c.addr)
		return c.err
	}
	c.offset = resp.ClockOffset
	c.err = nil
	return nil
}

func (c *Clock) Offset() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.offset
}

func (c *Clock) Now() (time.Time, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Now().Add(c.offset), c.err
}
