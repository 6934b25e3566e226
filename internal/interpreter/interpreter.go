// Package interpreter answers merchant notes: it learns noun bindings and item
// prices from statements and answers quantity questions with them.
package interpreter

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ppiankov/merchant/internal/cache"
	"github.com/ppiankov/merchant/internal/numeral"
	"github.com/ppiankov/merchant/internal/sentence"
	"github.com/ppiankov/merchant/internal/store"
)

// NoIdea is the reply to any line that cannot be understood or answered
const NoIdea = "I have no idea what you are talking about"

// AnswerPlaces is the number of fractional digits an answer is rounded to
const AnswerPlaces = 5

var errUnknownItem = errors.New("item has no unit price")

// Response is the outcome of one processed line
type Response struct {
	Kind sentence.Kind
	Text string // Empty for successful mappings and valuations
}

// Understood reports whether the line was classified and handled without error
func (r Response) Understood() bool {
	return r.Kind != sentence.Unrecognized
}

// Option configures an Interpreter
type Option func(*Interpreter)

// WithLogger sets the logger used for debug traces
func WithLogger(logger *zap.Logger) Option {
	return func(it *Interpreter) {
		if logger != nil {
			it.logger = logger
		}
	}
}

// WithCache memoizes numeral conversions in c
func WithCache(c cache.Cache) Option {
	return func(it *Interpreter) {
		if c != nil {
			it.cache = c
		}
	}
}

// Interpreter holds the state of one conversation. It is not safe for
// concurrent use; each session needs its own instance.
type Interpreter struct {
	mappings   *store.Mappings
	valuations *store.Valuations
	cache      cache.Cache
	logger     *zap.Logger
}

// New creates an interpreter with empty tables
func New(opts ...Option) *Interpreter {
	it := &Interpreter{
		mappings:   store.NewMappings(),
		valuations: store.NewValuations(),
		cache:      cache.NopCache{},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}

// Process interprets one line. ok is false when the line holds no tokens,
// which callers treat as the end of the conversation.
func (it *Interpreter) Process(line string) (resp Response, ok bool) {
	tokens := sentence.Tokenize(line)
	if tokens == nil {
		return Response{}, false
	}

	s := sentence.Classify(tokens, it.mappings, it.valuations)
	it.logger.Debug("classified line",
		zap.String("line", line),
		zap.Stringer("kind", s.Kind),
	)

	text, err := it.dispatch(s)
	if err != nil {
		it.logFailure(line, err)
		return Response{Kind: sentence.Unrecognized, Text: NoIdea}, true
	}
	return Response{Kind: s.Kind, Text: text}, true
}

// Ask processes line and returns only the reply text. Successful statements
// and empty lines yield the empty string.
func (it *Interpreter) Ask(line string) string {
	resp, _ := it.Process(line)
	return resp.Text
}

func (it *Interpreter) dispatch(s sentence.Sentence) (string, error) {
	switch s.Kind {
	case sentence.Mapping:
		it.mappings.Put(s.Nouns[0], s.Symbol)
		return "", nil
	case sentence.Valuation:
		return "", it.appraise(s)
	case sentence.HowMuch, sentence.HowMany:
		return it.answer(s)
	default:
		return NoIdea, nil
	}
}

func (it *Interpreter) appraise(s sentence.Sentence) error {
	quantity, err := it.multiplier(s.Nouns)
	if err != nil {
		return err
	}

	price, err := it.valuations.Appraise(s.Item, s.Credits, quantity)
	if err != nil {
		return err
	}

	it.logger.Debug("appraised item",
		zap.String("item", s.Item),
		zap.Int("credits", s.Credits),
		zap.Int("quantity", quantity),
		zap.Stringer("unit_price", price),
	)
	return nil
}

func (it *Interpreter) answer(s sentence.Sentence) (string, error) {
	quantity, err := it.multiplier(s.Nouns)
	if err != nil {
		return "", err
	}

	value := decimal.NewFromInt(int64(quantity))
	subject := strings.Join(s.Nouns, " ")

	if s.Kind == sentence.HowMuch {
		return subject + " " + sentence.Is + " " + FormatAnswer(value), nil
	}

	price, ok := it.valuations.Get(s.Item)
	if !ok {
		return "", errUnknownItem
	}
	value = value.Mul(price)
	return subject + " " + s.Item + " " + sentence.Is + " " + FormatAnswer(value) + " " + sentence.Credits, nil
}

// multiplier converts a noun run to the integer its numeral spells
func (it *Interpreter) multiplier(nouns []string) (int, error) {
	n, err := it.mappings.Numeral(nouns)
	if err != nil {
		return 0, err
	}

	key := cache.CacheKey(n)
	if v, found := it.cache.Get(key); found {
		return v, nil
	}

	v, err := numeral.ToInteger(n)
	if err != nil {
		return 0, err
	}
	_ = it.cache.Set(key, v, 0)
	return v, nil
}

// logFailure records why a classified line collapsed into NoIdea
func (it *Interpreter) logFailure(line string, err error) {
	switch kind := numeral.KindOf(err); kind {
	case numeral.KindEmpty,
		numeral.KindRepetition,
		numeral.KindSubtraction,
		numeral.KindArabic,
		numeral.KindZero,
		numeral.KindSymbol:
		it.logger.Debug("rejected numeral",
			zap.String("line", line),
			zap.Stringer("kind", kind),
			zap.Error(err),
		)
	default:
		it.logger.Warn("unexpected error answering line",
			zap.String("line", line),
			zap.Error(err),
		)
	}
}

// FormatAnswer rounds value half-to-even to AnswerPlaces digits and drops
// trailing zeros, printing whole values without a decimal point.
func FormatAnswer(value decimal.Decimal) string {
	return value.RoundBank(AnswerPlaces).String()
}

// Symbol returns the symbol bound to noun
func (it *Interpreter) Symbol(noun string) (numeral.Symbol, bool) {
	return it.mappings.Get(noun)
}

// UnitPrice returns the learned unit price of item, in Credits
func (it *Interpreter) UnitPrice(item string) (decimal.Decimal, bool) {
	return it.valuations.Get(item)
}

// Known returns the number of bound nouns and priced items
func (it *Interpreter) Known() (nouns, items int) {
	return it.mappings.Len(), it.valuations.Len()
}
