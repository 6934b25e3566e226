// Package numeral converts between the seven-symbol numeral notation and integers.
//
// Numerals are validated against a strict grammar before conversion:
//   - I, X, C and M may repeat at most three times in succession
//   - V, L and D may never repeat
//   - a smaller symbol may only precede a larger one as I before V/X,
//     X before L/C or C before D/M
//
// The subtraction rule only inspects adjacent pairs, so a sequence such as
// "IIX" passes validation and converts to 10.
package numeral

import (
	"strconv"
	"strings"
)

// Symbol is one of the seven numeral characters
type Symbol byte

const (
	I Symbol = 'I'
	V Symbol = 'V'
	X Symbol = 'X'
	L Symbol = 'L'
	C Symbol = 'C'
	D Symbol = 'D'
	M Symbol = 'M'
)

// MaxValue is the largest integer the notation can express
const MaxValue = 3999

// Value returns the integer value of the symbol, 0 for a non-symbol
func (s Symbol) Value() int {
	switch s {
	case I:
		return 1
	case V:
		return 5
	case X:
		return 10
	case L:
		return 50
	case C:
		return 100
	case D:
		return 500
	case M:
		return 1000
	default:
		return 0
	}
}

// Repeatable reports whether the symbol may appear several times in a row
func (s Symbol) Repeatable() bool {
	return s == I || s == X || s == C || s == M
}

func (s Symbol) String() string {
	return string(rune(s))
}

// ParseSymbol returns the Symbol for a character
func ParseSymbol(c byte) (Symbol, bool) {
	s := Symbol(c)
	return s, s.Value() > 0
}

// Symbols returns the seven symbols in ascending value order
func Symbols() []Symbol {
	return []Symbol{I, V, X, L, C, D, M}
}

// Join concatenates symbols into a numeral string
func Join(symbols []Symbol) string {
	var b strings.Builder
	b.Grow(len(symbols))
	for _, s := range symbols {
		b.WriteByte(byte(s))
	}
	return b.String()
}

// canSubtract reports whether small may directly precede the larger symbol
func canSubtract(small, large Symbol) bool {
	switch small {
	case I:
		return large == V || large == X
	case X:
		return large == L || large == C
	case C:
		return large == D || large == M
	default:
		return false
	}
}

// Validate checks a numeral against the grammar.
// Checks run in order: emptiness, unknown characters, repetition, subtraction.
func Validate(numeral string) error {
	if numeral == "" {
		return newError(ErrEmptyNumeral, numeral, -1)
	}

	for i := 0; i < len(numeral); i++ {
		if _, ok := ParseSymbol(numeral[i]); !ok {
			return newError(ErrInvalidSymbol, numeral, i)
		}
	}

	if err := checkRepetition(numeral); err != nil {
		return err
	}

	return checkSubtraction(numeral)
}

func checkRepetition(numeral string) error {
	run := 1
	for i := 1; i < len(numeral); i++ {
		if numeral[i] != numeral[i-1] {
			run = 1
			continue
		}

		run++
		s := Symbol(numeral[i])
		if !s.Repeatable() || run > 3 {
			return newError(ErrExcessiveRepetition, numeral, i)
		}
	}
	return nil
}

func checkSubtraction(numeral string) error {
	for i := 0; i+1 < len(numeral); i++ {
		current, next := Symbol(numeral[i]), Symbol(numeral[i+1])
		if current.Value() < next.Value() && !canSubtract(current, next) {
			return newError(ErrInvalidSubtraction, numeral, i)
		}
	}
	return nil
}

// ToInteger validates a numeral and returns its integer value
func ToInteger(numeral string) (int, error) {
	if err := Validate(numeral); err != nil {
		return 0, err
	}

	total := 0
	for i := 0; i < len(numeral); i++ {
		value := Symbol(numeral[i]).Value()
		if i+1 < len(numeral) && value < Symbol(numeral[i+1]).Value() {
			total -= value
		} else {
			total += value
		}
	}
	return total, nil
}

// places holds the (one, five, ten) symbols for units, tens and hundreds
var places = [...][3]Symbol{
	{I, V, X},
	{X, L, C},
	{C, D, M},
}

// ToNumeral converts a decimal integer literal to a numeral
func ToNumeral(arabic string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arabic))
	if err != nil || n < 0 {
		return "", newError(ErrInvalidArabic, arabic, -1)
	}
	return FromInt(n)
}

// FromInt converts a positive integer to a numeral.
// The result is validated before it is returned.
func FromInt(n int) (string, error) {
	input := strconv.Itoa(n)
	switch {
	case n < 0:
		return "", newError(ErrInvalidArabic, input, -1)
	case n == 0:
		return "", newError(ErrZeroHasNoNumeral, input, -1)
	case n > MaxValue:
		// Only M is available for thousands, so anything above 3999 repeats it four times or more
		return "", newError(ErrExcessiveRepetition, input, -1)
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(string(M), n/1000))
	for place := len(places) - 1; place >= 0; place-- {
		digit := n
		for i := 0; i < place; i++ {
			digit /= 10
		}
		writeDigit(&b, digit%10, places[place])
	}

	numeral := b.String()
	if err := Validate(numeral); err != nil {
		return "", err
	}
	return numeral, nil
}

func writeDigit(b *strings.Builder, digit int, syms [3]Symbol) {
	one, five, ten := byte(syms[0]), byte(syms[1]), byte(syms[2])
	switch {
	case digit == 0:
	case digit <= 3:
		for i := 0; i < digit; i++ {
			b.WriteByte(one)
		}
	case digit == 4:
		b.WriteByte(one)
		b.WriteByte(five)
	case digit <= 8:
		b.WriteByte(five)
		for i := 5; i < digit; i++ {
			b.WriteByte(one)
		}
	default:
		b.WriteByte(one)
		b.WriteByte(ten)
	}
}
