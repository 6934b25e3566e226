package numeral

import (
	"errors"
	"strconv"
	"testing"
)

func TestSymbol_Value(t *testing.T) {
	expected := map[Symbol]int{I: 1, V: 5, X: 10, L: 50, C: 100, D: 500, M: 1000}
	for _, s := range Symbols() {
		if s.Value() != expected[s] {
			t.Errorf("%s: expected %d, got %d", s, expected[s], s.Value())
		}
	}

	if Symbol('Z').Value() != 0 {
		t.Errorf("expected 0 for non-symbol, got %d", Symbol('Z').Value())
	}
}

func TestParseSymbol(t *testing.T) {
	if s, ok := ParseSymbol('D'); !ok || s != D {
		t.Errorf("expected D, got %v (ok=%v)", s, ok)
	}
	if _, ok := ParseSymbol('i'); ok {
		t.Error("lowercase symbols should not parse")
	}
}

func TestToInteger(t *testing.T) {
	tests := []struct {
		numeral string
		want    int
	}{
		{"I", 1},
		{"III", 3},
		{"IV", 4},
		{"IX", 9},
		{"XL", 40},
		{"XC", 90},
		{"XLII", 42},
		{"XXXIX", 39},
		{"MI", 1001},
		{"MCMIII", 1903},
		{"MCMXLIV", 1944},
		{"MCMLXXXIII", 1983},
		{"MMMCMXCIX", 3999},
		// adjacent-pair rule only; stacked subtraction is not rejected
		{"IIX", 10},
	}

	for _, tt := range tests {
		t.Run(tt.numeral, func(t *testing.T) {
			got, err := ToInteger(tt.numeral)
			if err != nil {
				t.Fatalf("ToInteger(%q) failed: %v", tt.numeral, err)
			}
			if got != tt.want {
				t.Errorf("ToInteger(%q) = %d, want %d", tt.numeral, got, tt.want)
			}
		})
	}
}

func TestToInteger_Invalid(t *testing.T) {
	tests := []struct {
		numeral string
		want    error
		kind    Kind
	}{
		{"", ErrEmptyNumeral, KindEmpty},
		{"IIII", ErrExcessiveRepetition, KindRepetition},
		{"IIIIV", ErrExcessiveRepetition, KindRepetition},
		{"VV", ErrExcessiveRepetition, KindRepetition},
		{"LL", ErrExcessiveRepetition, KindRepetition},
		{"MDD", ErrExcessiveRepetition, KindRepetition},
		{"MMMM", ErrExcessiveRepetition, KindRepetition},
		{"IM", ErrInvalidSubtraction, KindSubtraction},
		{"MIM", ErrInvalidSubtraction, KindSubtraction},
		{"IL", ErrInvalidSubtraction, KindSubtraction},
		{"VX", ErrInvalidSubtraction, KindSubtraction},
		{"LC", ErrInvalidSubtraction, KindSubtraction},
		{"DM", ErrInvalidSubtraction, KindSubtraction},
		{"XD", ErrInvalidSubtraction, KindSubtraction},
		{"XIZ", ErrInvalidSymbol, KindSymbol},
	}

	for _, tt := range tests {
		t.Run(tt.numeral, func(t *testing.T) {
			_, err := ToInteger(tt.numeral)
			if !errors.Is(err, tt.want) {
				t.Fatalf("ToInteger(%q) error = %v, want %v", tt.numeral, err, tt.want)
			}
			if KindOf(err) != tt.kind {
				t.Errorf("KindOf = %s, want %s", KindOf(err), tt.kind)
			}

			var numErr *Error
			if !errors.As(err, &numErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if numErr.Input != tt.numeral {
				t.Errorf("expected input %q, got %q", tt.numeral, numErr.Input)
			}
		})
	}
}

func TestValidate_RepetitionPosition(t *testing.T) {
	err := Validate("XXXXI")

	var numErr *Error
	if !errors.As(err, &numErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if numErr.Pos != 3 {
		t.Errorf("expected violation at position 3, got %d", numErr.Pos)
	}
}

func TestToNumeral(t *testing.T) {
	tests := map[string]string{
		"1":    "I",
		"4":    "IV",
		"9":    "IX",
		"14":   "XIV",
		"40":   "XL",
		"90":   "XC",
		"400":  "CD",
		"900":  "CM",
		"1903": "MCMIII",
		"1944": "MCMXLIV",
		"1983": "MCMLXXXIII",
		"2006": "MMVI",
		"3999": "MMMCMXCIX",
	}

	for arabic, want := range tests {
		got, err := ToNumeral(arabic)
		if err != nil {
			t.Errorf("ToNumeral(%s) failed: %v", arabic, err)
			continue
		}
		if got != want {
			t.Errorf("ToNumeral(%s) = %q, want %q", arabic, got, want)
		}
	}
}

func TestToNumeral_Invalid(t *testing.T) {
	tests := []struct {
		arabic string
		want   error
	}{
		{"", ErrInvalidArabic},
		{"abc", ErrInvalidArabic},
		{"12a", ErrInvalidArabic},
		{"-5", ErrInvalidArabic},
		{"0", ErrZeroHasNoNumeral},
		{"4000", ErrExcessiveRepetition},
	}

	for _, tt := range tests {
		_, err := ToNumeral(tt.arabic)
		if !errors.Is(err, tt.want) {
			t.Errorf("ToNumeral(%q) error = %v, want %v", tt.arabic, err, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for n := 1; n <= MaxValue; n++ {
		numeral, err := FromInt(n)
		if err != nil {
			t.Fatalf("FromInt(%d) failed: %v", n, err)
		}

		if err := Validate(numeral); err != nil {
			t.Fatalf("Validate(%q) rejected engine output for %d: %v", numeral, n, err)
		}

		back, err := ToInteger(numeral)
		if err != nil {
			t.Fatalf("ToInteger(%q) failed: %v", numeral, err)
		}
		if back != n {
			t.Fatalf("round trip %d -> %q -> %d", n, numeral, back)
		}

		viaString, err := ToNumeral(strconv.Itoa(n))
		if err != nil || viaString != numeral {
			t.Fatalf("ToNumeral(%d) = %q, %v; want %q", n, viaString, err, numeral)
		}
	}
}

func TestKindOf_Unknown(t *testing.T) {
	if KindOf(nil) != KindUnknown {
		t.Error("expected KindUnknown for nil")
	}
	if KindOf(errors.New("boom")) != KindUnknown {
		t.Error("expected KindUnknown for foreign error")
	}
}

func TestJoin(t *testing.T) {
	if got := Join([]Symbol{M, C, M, I, I, I}); got != "MCMIII" {
		t.Errorf("expected MCMIII, got %q", got)
	}
	if got := Join(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
