// Package selftest holds the arithmetic checks run by `largenum selftest`.
package selftest

import (
	"errors"
	"fmt"
	"time"

	"github.com/HidekiAI/hairev-utils/internal/bignum"
	"github.com/HidekiAI/hairev-utils/internal/fib"
)

// Check is a single named assertion.
type Check struct {
	Name string
	Run  func() error
}

// Outcome is the result of running one Check.
type Outcome struct {
	Name    string
	Err     error
	Elapsed time.Duration
}

// Passed reports whether the check succeeded.
func (o Outcome) Passed() bool { return o.Err == nil }

// Checks returns the built-in suite in execution order.
func Checks() []Check {
	return []Check{
		{"parse plus negated native is positive zero", func() error {
			a, err := bignum.ParseInt("1234567890")
			if err != nil {
				return err
			}
			sum, err := bignum.IntAdd(a, bignum.IntFromInt64(-1234567890))
			if err != nil {
				return err
			}
			if !sum.IsZero() || !sum.IsPositive() {
				return fmt.Errorf("got %s (positive=%t), want positive 0", sum, sum.IsPositive())
			}
			return nil
		}},
		{"subtracting a negative", func() error {
			diff, err := bignum.IntSub(bignum.IntFromInt64(9876543210), bignum.IntFromInt64(-9876543210))
			if err != nil {
				return err
			}
			return expectInt(diff, bignum.IntFromInt64(19753086420))
		}},
		{"fibonacci(12)", func() error {
			return expectString(fib.Fibonacci(12).String(), "144")
		}},
		{"fibonacci(0) and fibonacci(1)", func() error {
			if err := expectString(fib.Fibonacci(0).String(), "0"); err != nil {
				return err
			}
			return expectString(fib.Fibonacci(1).String(), "1")
		}},
		{"leading zeros are dropped", func() error {
			u, err := bignum.ParseUint("000123")
			if err != nil {
				return err
			}
			return expectString(u.String(), "123")
		}},
		{"padded negative", func() error {
			return expectString(bignum.FormatInt(bignum.IntFromInt64(-5), 5, '0'), "-0005")
		}},
		{"long division", func() error {
			q, r, err := bignum.UintDivMod(bignum.UintFromUint64(87654), bignum.UintFromUint64(780))
			if err != nil {
				return err
			}
			if err := expectString(q.String(), "112"); err != nil {
				return fmt.Errorf("quotient: %w", err)
			}
			if err := expectString(r.String(), "294"); err != nil {
				return fmt.Errorf("remainder: %w", err)
			}
			return nil
		}},
		{"negative ordering", func() error {
			if !bignum.IntFromInt64(-7).Less(bignum.IntFromInt64(-5)) {
				return errors.New("-7 < -5 does not hold")
			}
			return nil
		}},
		{"truncated remainder follows the dividend", func() error {
			q, r, err := bignum.IntDivMod(bignum.IntFromInt64(-7), bignum.IntFromInt64(2))
			if err != nil {
				return err
			}
			if err := expectInt(q, bignum.IntFromInt64(-3)); err != nil {
				return fmt.Errorf("quotient: %w", err)
			}
			return expectInt(r, bignum.IntFromInt64(-1))
		}},
		{"declared sign must match", func() error {
			_, err := bignum.ParseIntSigned("-42", true)
			if !errors.Is(err, bignum.ErrSignMismatch) {
				return fmt.Errorf("got %v, want %v", err, bignum.ErrSignMismatch)
			}
			return nil
		}},
		{"division by zero is reported", func() error {
			_, _, err := bignum.IntDivMod(bignum.IntOne(), bignum.IntZero())
			if !errors.Is(err, bignum.ErrDivisionByZero) {
				return fmt.Errorf("got %v, want %v", err, bignum.ErrDivisionByZero)
			}
			return nil
		}},
	}
}

// Run executes checks in order and returns one Outcome per check.
func Run(checks []Check) []Outcome {
	out := make([]Outcome, 0, len(checks))
	for _, c := range checks {
		start := time.Now()
		err := c.Run()
		out = append(out, Outcome{Name: c.Name, Err: err, Elapsed: time.Since(start)})
	}
	return out
}

// Failed counts failing outcomes.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if !o.Passed() {
			n++
		}
	}
	return n
}

func expectInt(got, want bignum.BigInt) error {
	if !got.Equal(want) {
		return fmt.Errorf("got %s, want %s", got, want)
	}
	return nil
}

func expectString(got, want string) error {
	if got != want {
		return fmt.Errorf("got %q, want %q", got, want)
	}
	return nil
}
