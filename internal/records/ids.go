package records

import (
	"fmt"
	"sync"
	"time"
)

// IDGenerator hands out time based ids of the form PREFIX_<unix-ms>. Two
// ids requested within the same millisecond get consecutive values so ids
// never repeat within a process.
type IDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func NewIDGenerator(now func() time.Time) *IDGenerator {
	return &IDGenerator{now: now}
}

func (g *IDGenerator) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms

	return fmt.Sprintf("%s_%d", prefix, ms)
}
