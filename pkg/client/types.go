package client

import (
	"time"

	"github.com/ccoveille/go-safecast"
)

// Timestamp is Unix time in milliseconds, the unit of transaction timestamps.
type Timestamp = uint64

func NewTimestampFromTime(t time.Time) (Timestamp, error) {
	return safecast.ToUint64(t.UnixMilli())
}
