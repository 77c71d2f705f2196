// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package lexctx holds the lexical context threaded through the command
// dispatcher and every element builder: the current playhead time and the
// watermark of the largest time ever seen. It resolves the reserved
// $time token.
package lexctx

// Context tracks current_time and max_time_ever for a single parse run.
// It lives for the duration of parsing and is mutated only by UpdateTime.
type Context struct {
	currentTime float64
	maxTimeEver float64
}

// New returns a Context with current_time at zero and max_time_ever at
// -1, so the first UpdateTime call with a time above -1 raises it.
func New() *Context {
	return &Context{
		currentTime: 0,
		maxTimeEver: -1,
	}
}

// UpdateTime sets current_time to next and raises max_time_ever if next
// exceeds it. Callers are responsible for rejecting non-finite next
// values before calling this (see cerrs.ErrNonFiniteTime).
func (c *Context) UpdateTime(next float64) {
	if next > c.maxTimeEver {
		c.maxTimeEver = next
	}
	c.currentTime = next
}

// CurrentTime returns the value $time resolves to.
func (c *Context) CurrentTime() float64 {
	return c.currentTime
}

// MaxTimeEver returns the largest time ever passed to UpdateTime.
func (c *Context) MaxTimeEver() float64 {
	return c.maxTimeEver
}
