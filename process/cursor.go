package process

import "github.com/stuartgen/stuart/parse"

// Cursor iterates a token sequence and can be rewound to a saved Waypoint,
// which is how `for` re-executes its body.
type Cursor struct {
	tokens []parse.Token
	index  int
}

// Waypoint is a saved position in a Cursor.
type Waypoint int

// NewCursor creates a cursor over the given tokens.
func NewCursor(tokens []parse.Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// Next returns the next token, or false when the sequence is exhausted.
func (c *Cursor) Next() (parse.Token, bool) {
	if c.index >= len(c.tokens) {
		return nil, false
	}
	var token = c.tokens[c.index]
	c.index++
	return token, true
}

// Current returns the last token returned by Next, not the next one.
func (c *Cursor) Current() parse.Token {
	if c.index == 0 {
		return nil
	}
	return c.tokens[c.index-1]
}

// Waypoint captures the current position.
func (c *Cursor) Waypoint() Waypoint {
	return Waypoint(c.index)
}

// Rewind moves the cursor back to a previously captured waypoint.
func (c *Cursor) Rewind(w Waypoint) {
	c.index = int(w)
}
