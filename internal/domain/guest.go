package domain

import (
	"strconv"
	"time"
)

// NewGuestID mints an opaque guest identifier. Generation is time-based, so
// uniqueness is best effort rather than collision free; the id carries no
// server-side record of its own and only scopes cart ownership.
func NewGuestID() string {
	return strconv.FormatInt(time.Now().UnixMicro(), 16)
}
