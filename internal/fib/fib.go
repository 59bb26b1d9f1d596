package fib

import (
	"context"

	"github.com/HidekiAI/hairev-utils/internal/bignum"
)

// ctxCheckEvery is how many additions run between context checks.
const ctxCheckEvery = 1024

// Fibonacci returns F(n) with F(0) = 0 and F(1) = 1.
func Fibonacci(n uint64) bignum.BigUint {
	v, _ := FibonacciContext(context.Background(), n) //nolint:errcheck // Background is never canceled.
	return v
}

// FibonacciContext is like Fibonacci but stops early when ctx is done.
func FibonacciContext(ctx context.Context, n uint64) (bignum.BigUint, error) {
	seq := NewSequence()
	for seq.Index() < n {
		if seq.Index()%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return bignum.BigUint{}, err
			}
		}
		seq.Next()
	}
	return seq.Value(), nil
}

// Sequence walks the Fibonacci sequence one term at a time.
// The zero value is not ready for use; call NewSequence.
type Sequence struct {
	index uint64
	cur   bignum.BigUint // F(index)
	next  bignum.BigUint // F(index+1)
}

// NewSequence returns a Sequence positioned at F(0).
func NewSequence() *Sequence {
	return &Sequence{cur: bignum.UintZero(), next: bignum.UintOne()}
}

// Index returns n for the current term F(n).
func (s *Sequence) Index() uint64 { return s.index }

// Value returns the current term. BigUint values are never modified in
// place, so the result stays valid after Next.
func (s *Sequence) Value() bignum.BigUint { return s.cur }

// Next advances to the following term and returns it.
func (s *Sequence) Next() bignum.BigUint {
	s.cur, s.next = s.next, bignum.UintAdd(s.cur, s.next)
	s.index++
	return s.cur
}

// Skip advances to F(n). It does nothing when the sequence is already at or
// past n.
func (s *Sequence) Skip(ctx context.Context, n uint64) error {
	for s.index < n {
		if s.index%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		s.Next()
	}
	return nil
}
