// Package fence implements the stale-response guard: a monotonic
// generation counter owned by each logical query stream. There is no
// network-level cancellation anywhere in the client; superseded responses
// are simply dropped on arrival.
package fence

import "sync/atomic"

// Token captures the guard's generation at issue time.
type Token uint64

// Guard fences one logical query stream. The zero value is ready to use.
type Guard struct {
	gen atomic.Uint64
}

// Next advances the generation and returns the token for the request about
// to be issued. Every earlier token becomes stale immediately.
func (g *Guard) Next() Token {
	return Token(g.gen.Add(1))
}

// IsCurrent reports whether tok is still the latest issued token. A false
// result means the response it accompanies must be discarded silently.
func (g *Guard) IsCurrent(tok Token) bool {
	return Token(g.gen.Load()) == tok
}
