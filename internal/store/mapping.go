// Package store holds the two tables a conversation builds up: noun bindings
// and item unit prices. Tables are owned by a single interpreter and are not
// safe for concurrent use.
package store

import (
	"errors"
	"fmt"

	"github.com/ppiankov/merchant/internal/numeral"
)

// ErrUnknownNoun is returned when a noun has no bound symbol
var ErrUnknownNoun = errors.New("unknown noun")

// Mappings binds nouns to numeral symbols
type Mappings struct {
	symbols map[string]numeral.Symbol
}

// NewMappings creates an empty noun table
func NewMappings() *Mappings {
	return &Mappings{
		symbols: make(map[string]numeral.Symbol),
	}
}

// Put binds noun to symbol, replacing any earlier binding
func (m *Mappings) Put(noun string, symbol numeral.Symbol) {
	m.symbols[noun] = symbol
}

// Get returns the symbol bound to noun
func (m *Mappings) Get(noun string) (numeral.Symbol, bool) {
	s, ok := m.symbols[noun]
	return s, ok
}

// HasNoun reports whether noun is bound
func (m *Mappings) HasNoun(noun string) bool {
	_, ok := m.symbols[noun]
	return ok
}

// Len returns the number of bound nouns
func (m *Mappings) Len() int {
	return len(m.symbols)
}

// Numeral translates a noun run into the numeral it spells
func (m *Mappings) Numeral(nouns []string) (string, error) {
	symbols := make([]numeral.Symbol, 0, len(nouns))
	for _, noun := range nouns {
		s, ok := m.symbols[noun]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownNoun, noun)
		}
		symbols = append(symbols, s)
	}
	return numeral.Join(symbols), nil
}
