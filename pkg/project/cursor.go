package project

import (
	"fmt"
	"math"
)

// IDSequence hands out "prefix-1", "prefix-2", ... identifiers. The
// historical generator kept this counter as process-global state; it is an
// explicit value here so independent documents get independent sequences.
type IDSequence struct {
	prefix string
	next   int
}

// NewIDSequence creates a sequence starting at 1.
func NewIDSequence(prefix string) *IDSequence {
	return &IDSequence{prefix: prefix, next: 1}
}

// Next returns the next identifier.
func (s *IDSequence) Next() string {
	id := fmt.Sprintf("%s-%d", s.prefix, s.next)
	s.next++
	return id
}

// ParamCursor cycles through float parameter defaults 0.01, 0.02, ...,
// wrapping back to 0.01 above 0.9. Values are truncated to two decimals, the
// same way the original generator did.
type ParamCursor struct {
	value float64
}

// NewParamCursor creates a cursor positioned at 0.01.
func NewParamCursor() *ParamCursor {
	return &ParamCursor{value: 0.01}
}

// Next returns the current value and advances the cursor.
func (c *ParamCursor) Next() float64 {
	v := math.Trunc(c.value*100) / 100.0
	c.value += 0.01
	if c.value > 0.9 {
		c.value = 0.01
	}
	return v
}
