package core

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const idPrefix = "exp_"

// IDGenerator mints entry identifiers of the form exp_YYYYMMDD_HHMMSSffffff,
// where ffffff is the microsecond fraction. Lexical order of ids therefore
// matches creation order within a process. When two calls land on the same
// microsecond the generator appends a zero-padded counter (_001, _002, ...),
// which still sorts after the bare id and keeps ids collision-free.
type IDGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last string
	seq  int
}

// NewIDGenerator returns a generator using the given clock. A nil clock
// defaults to time.Now.
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Next returns a fresh identifier, unique within this generator.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	stamp := g.now().Format("20060102_150405.000000")
	stamp = strings.Replace(stamp, ".", "", 1)
	if stamp == g.last {
		g.seq++
		return fmt.Sprintf("%s%s_%03d", idPrefix, stamp, g.seq)
	}
	g.last = stamp
	g.seq = 0
	return idPrefix + stamp
}
