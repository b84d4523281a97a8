// Package mathgen generates timed-drill arithmetic problems.
package mathgen

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDifficulty reports a difficulty whose sampling ranges are empty.
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	// ErrDegenerateRange reports a template that kept drawing partial results
	// too small to bound its next operand.
	ErrDegenerateRange = errors.New("degenerate sampling range")
)

// DefaultDifficulty is the operand range used when none is configured.
var DefaultDifficulty = Difficulty{Lower: 2, Upper: 36}

// Difficulty bounds the operands drawn by every template.
//
// Additive operands come from [Lower, Upper) and multiplicative operands from
// [Lower, Upper/3), so multiplication and division stay about as hard as
// addition.
type Difficulty struct {
	Lower int
	Upper int
}

// Validate checks that every template can draw its operands. Besides
// non-empty ranges, division needs a non-zero divisor and the largest product
// must exceed Lower so a subtrahend can be drawn below it.
func (d Difficulty) Validate() error {
	if d.Lower < 0 {
		return fmt.Errorf("%w: lower bound %d must be >= 0", ErrInvalidDifficulty, d.Lower)
	}
	if d.Upper <= d.Lower {
		return fmt.Errorf("%w: upper bound %d must be > lower bound %d", ErrInvalidDifficulty, d.Upper, d.Lower)
	}
	if d.multiplicativeUpper() <= d.Lower {
		return fmt.Errorf("%w: upper bound / 3 (%d) must be > lower bound %d", ErrInvalidDifficulty, d.multiplicativeUpper(), d.Lower)
	}
	top := d.multiplicativeUpper() - 1
	if top < 1 {
		return fmt.Errorf("%w: upper bound %d leaves no non-zero divisor", ErrInvalidDifficulty, d.Upper)
	}
	if top*top <= d.Lower {
		return fmt.Errorf("%w: largest product %d must be > lower bound %d", ErrInvalidDifficulty, top*top, d.Lower)
	}
	return nil
}

func (d Difficulty) multiplicativeUpper() int {
	return d.Upper / 3
}

func (d Difficulty) String() string {
	return fmt.Sprintf("[%d, %d)", d.Lower, d.Upper)
}
