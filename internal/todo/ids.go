package todo

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// IDGenerator hands out task ids. Each call must return an id not returned before.
type IDGenerator interface {
	NextID() string
}

// ID scheme names accepted by NewIDGenerator.
const (
	SchemeCounter = "counter"
	SchemeUUID    = "uuid"
)

// DefaultIDPrefix is prepended to counter ids.
const DefaultIDPrefix = "T"

// Counter yields prefix+1, prefix+2, ...
type Counter struct {
	Prefix string
	n      int
}

// NewCounter returns a counter starting at 1.
func NewCounter(prefix string) *Counter {
	return &Counter{Prefix: prefix}
}

// NextID returns the next counter id.
func (c *Counter) NextID() string {
	c.n++
	return c.Prefix + strconv.Itoa(c.n)
}

// UUIDs yields random version 4 UUIDs.
type UUIDs struct{}

// NextID returns a new UUID string.
func (UUIDs) NextID() string {
	return uuid.NewString()
}

// NewIDGenerator returns the generator for a scheme name.
func NewIDGenerator(scheme, prefix string) (IDGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", SchemeCounter:
		if prefix == "" {
			prefix = DefaultIDPrefix
		}
		return NewCounter(prefix), nil
	case SchemeUUID:
		return UUIDs{}, nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q, must be one of: counter, uuid", scheme)
	}
}
