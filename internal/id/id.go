package id

import (
	"sync/atomic"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// TokenPrefix is prepended to every generated bearer token so tokens issued
// by the mock are easy to recognise in logs and client storage.
const TokenPrefix = "mock-jwt-token-"

// Sequence is a monotonically increasing counter safe for concurrent use.
// The zero value starts at 0; the first call to Next returns 1.
type Sequence struct {
	n atomic.Int64
}

// NewSequence returns a sequence whose next value is start+1.
func NewSequence(start int64) *Sequence {
	s := &Sequence{}
	s.n.Store(start)
	return s
}

// Next returns the next value of the sequence.
func (s *Sequence) Next() int64 {
	return s.n.Add(1)
}

// Current returns the last value handed out (or the start value).
func (s *Sequence) Current() int64 {
	return s.n.Load()
}

// Advance moves the sequence forward so the next value is greater than v.
// It never moves the sequence backwards.
func (s *Sequence) Advance(v int64) {
	for {
		cur := s.n.Load()
		if cur >= v {
			return
		}
		if s.n.CompareAndSwap(cur, v) {
			return
		}
	}
}

// Token generates a new opaque bearer token.
func Token() string {
	tok, err := gonanoid.New()
	if err != nil {
		// nanoid only fails when the system random source fails.
		return TokenPrefix + uuid.NewString()
	}
	return TokenPrefix + tok
}

// RequestID generates a request identifier (UUID v4).
func RequestID() string {
	return uuid.NewString()
}
