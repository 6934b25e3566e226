// Package sentence splits note lines into tokens and classifies them.
package sentence

import (
	"strconv"
	"strings"

	"github.com/ppiankov/merchant/internal/numeral"
)

// Kind classifies a tokenized line
type Kind int

const (
	Unrecognized Kind = iota
	Mapping           // <noun> is <Symbol>
	Valuation         // <noun>... <item> is <integer> Credits
	HowMuch           // how much is <noun>... ?
	HowMany           // how many Credits is <noun>... <item> ?
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case Mapping:
		return "mapping"
	case Valuation:
		return "valuation"
	case HowMuch:
		return "how_much"
	case HowMany:
		return "how_many"
	default:
		return "unrecognized"
	}
}

// IsQuestion reports whether the kind is one of the question forms
func (k Kind) IsQuestion() bool {
	return k == HowMuch || k == HowMany
}

// Sentence keywords
const (
	Is           = "is"
	How          = "how"
	Much         = "much"
	Many         = "many"
	Credits      = "Credits"
	Credit       = "Credit"
	QuestionMark = "?"
)

// Nouns reports whether a noun has been bound to a symbol
type Nouns interface {
	HasNoun(noun string) bool
}

// Items reports whether an item has a known unit price
type Items interface {
	HasItem(item string) bool
}

// Sentence is a classified line with its parts extracted
type Sentence struct {
	Kind    Kind
	Tokens  []string
	Nouns   []string       // Noun run (multiplier) for valuations and questions
	Item    string         // Item name for valuations and how-many questions
	Symbol  numeral.Symbol // Bound symbol for mappings
	Credits int            // Credited amount for valuations
}

// Tokenize splits a line on spaces. It returns nil for a line with no tokens.
func Tokenize(line string) []string {
	tokens := strings.FieldsFunc(line, func(r rune) bool { return r == ' ' })
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// IsMapping reports whether tokens form "<noun> is <Symbol>"
func IsMapping(tokens []string) bool {
	if len(tokens) != 3 || tokens[1] != Is || len(tokens[2]) != 1 {
		return false
	}
	_, ok := numeral.ParseSymbol(tokens[2][0])
	return ok
}

// IsValuation reports whether tokens form "<noun>... <item> is <integer> Credits"
// with every noun already bound.
func IsValuation(tokens []string, nouns Nouns) bool {
	n := len(tokens)
	if n < 5 {
		return false
	}
	if last := tokens[n-1]; last != Credits && last != Credit {
		return false
	}
	if _, err := strconv.Atoi(tokens[n-2]); err != nil {
		return false
	}
	if tokens[n-3] != Is {
		return false
	}
	return allKnown(tokens[:n-4], nouns)
}

// IsHowMuch reports whether tokens form "how much is <noun>... ?"
func IsHowMuch(tokens []string, nouns Nouns) bool {
	n := len(tokens)
	if n < 5 {
		return false
	}
	if !strings.EqualFold(tokens[0], How) ||
		!strings.EqualFold(tokens[1], Much) ||
		!strings.EqualFold(tokens[2], Is) ||
		tokens[n-1] != QuestionMark {
		return false
	}
	return allKnown(tokens[3:n-1], nouns)
}

// IsHowMany reports whether tokens form "how many Credits is <noun>... <item> ?"
func IsHowMany(tokens []string, nouns Nouns, items Items) bool {
	n := len(tokens)
	if n < 7 {
		return false
	}
	if !strings.EqualFold(tokens[0], How) ||
		!strings.EqualFold(tokens[1], Many) ||
		!strings.EqualFold(tokens[2], Credits) ||
		!strings.EqualFold(tokens[3], Is) ||
		tokens[n-1] != QuestionMark {
		return false
	}
	return allKnown(tokens[4:n-2], nouns) && items.HasItem(tokens[n-2])
}

// IsQuestion reports whether tokens form either question shape
func IsQuestion(tokens []string, nouns Nouns, items Items) bool {
	return IsHowMuch(tokens, nouns) || IsHowMany(tokens, nouns, items)
}

// Classify matches tokens in precedence order Mapping, Valuation, Question
// and extracts the parts of the first match.
func Classify(tokens []string, nouns Nouns, items Items) Sentence {
	s := Sentence{Kind: Unrecognized, Tokens: tokens}
	n := len(tokens)

	switch {
	case IsMapping(tokens):
		s.Kind = Mapping
		s.Nouns = tokens[:1]
		s.Symbol = numeral.Symbol(tokens[2][0])
	case IsValuation(tokens, nouns):
		s.Kind = Valuation
		s.Nouns = tokens[:n-4]
		s.Item = tokens[n-4]
		s.Credits, _ = strconv.Atoi(tokens[n-2])
	case IsHowMuch(tokens, nouns):
		s.Kind = HowMuch
		s.Nouns = tokens[3 : n-1]
	case IsHowMany(tokens, nouns, items):
		s.Kind = HowMany
		s.Nouns = tokens[4 : n-2]
		s.Item = tokens[n-2]
	}

	return s
}

func allKnown(nouns []string, known Nouns) bool {
	if len(nouns) == 0 {
		return false
	}
	for _, noun := range nouns {
		if !known.HasNoun(noun) {
			return false
		}
	}
	return true
}
