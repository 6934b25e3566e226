package numeral

import (
	"errors"
	"fmt"
)

// Standard error variables for each way a conversion can fail
var (
	ErrEmptyNumeral        = errors.New("numeral is empty")
	ErrExcessiveRepetition = errors.New("symbol repeated too many times")
	ErrInvalidSubtraction  = errors.New("invalid subtractive pair")
	ErrInvalidArabic       = errors.New("not a valid non-negative integer")
	ErrZeroHasNoNumeral    = errors.New("zero cannot be written as a numeral")
	ErrInvalidSymbol       = errors.New("unknown numeral symbol")
)

// Kind classifies a conversion failure so callers can switch on it
type Kind int

const (
	KindUnknown Kind = iota
	KindEmpty
	KindRepetition
	KindSubtraction
	KindArabic
	KindZero
	KindSymbol
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindRepetition:
		return "repetition"
	case KindSubtraction:
		return "subtraction"
	case KindArabic:
		return "arabic"
	case KindZero:
		return "zero"
	case KindSymbol:
		return "symbol"
	default:
		return "unknown"
	}
}

// Error describes where and why a numeral or integer was rejected
type Error struct {
	Err   error  // One of the Err* sentinels
	Input string // Numeral or integer literal being converted
	Pos   int    // Offending index into Input, -1 when not positional
}

func (e *Error) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%v: %q at position %d", e.Err, e.Input, e.Pos)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Input)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports which conversion failure err carries, or KindUnknown
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrEmptyNumeral):
		return KindEmpty
	case errors.Is(err, ErrExcessiveRepetition):
		return KindRepetition
	case errors.Is(err, ErrInvalidSubtraction):
		return KindSubtraction
	case errors.Is(err, ErrInvalidArabic):
		return KindArabic
	case errors.Is(err, ErrZeroHasNoNumeral):
		return KindZero
	case errors.Is(err, ErrInvalidSymbol):
		return KindSymbol
	default:
		return KindUnknown
	}
}

func newError(sentinel error, input string, pos int) *Error {
	return &Error{Err: sentinel, Input: input, Pos: pos}
}
