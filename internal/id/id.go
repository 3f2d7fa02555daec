package id

import "time"

// Generator hands out clock-based integer ids.
//
// An id is the current Unix time in milliseconds, bumped past the last id
// handed out (or observed) so that two calls within the same millisecond,
// or a clock stepping backwards, never produce a duplicate.
type Generator struct {
	now  func() time.Time
	last int64
}

// NewGenerator returns a Generator reading time from now. A nil now uses time.Now.
func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

// Next returns a fresh id, strictly greater than every id seen so far.
func (g *Generator) Next() int64 {
	next := g.now().UnixMilli()
	if next <= g.last {
		next = g.last + 1
	}
	g.last = next
	return next
}

// Observe records an existing id so Next never returns it or anything below it.
func (g *Generator) Observe(id int64) {
	if id > g.last {
		g.last = id
	}
}
