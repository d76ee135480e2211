// Package money renders amounts as locale-aware currency text.
//
// Formatting is delegated to the CLDR data carried by bojanz/currency, so
// grouping, decimal separators, and symbol placement follow the locale
// ("1.234,56 €" for de-DE, "€1,234.56" for en-US) without any hand-kept
// pattern tables.
package money

import (
	"math"
	"strings"
	"unicode"

	"github.com/bojanz/currency"
	"github.com/shopspring/decimal"

	"github.com/helioretail/cartkit/pkg/config"
)

// Formatter formats amounts using the configured default currency and
// locale unless overridden per call. It is safe for concurrent use.
type Formatter struct {
	cfg config.FormatConfig
}

type settings struct {
	currencyCode string
	locale       string
}

// Option overrides the configured currency or locale for a single call.
type Option func(*settings)

func WithCurrency(code string) Option {
	return func(s *settings) {
		if code != "" {
			s.currencyCode = strings.ToUpper(code)
		}
	}
}

func WithLocale(id string) Option {
	return func(s *settings) {
		if id != "" {
			s.locale = id
		}
	}
}

// New validates the configured defaults and returns a formatter.
func New(cfg config.FormatConfig) (*Formatter, error) {
	if _, err := currency.NewAmount("0", cfg.Currency); err != nil {
		return nil, err
	}
	return &Formatter{cfg: cfg}, nil
}

func (f *Formatter) resolve(opts []Option) settings {
	s := settings{currencyCode: f.cfg.Currency, locale: f.cfg.Locale}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (f *Formatter) newFormatter(s settings, display currency.Display) *currency.Formatter {
	formatter := currency.NewFormatter(currency.NewLocale(s.locale))
	formatter.MinDigits = f.cfg.MinFractionDigits
	formatter.MaxDigits = f.cfg.MaxFractionDigits
	formatter.RoundingMode = currency.RoundHalfUp
	formatter.CurrencyDisplay = display
	return formatter
}

// Format renders value as currency text, e.g. "1.234,56 €".
// Rounding at the configured fraction digits is half away from zero.
func (f *Formatter) Format(value decimal.Decimal, opts ...Option) string {
	s := f.resolve(opts)
	return f.format(value.String(), s, currency.DisplaySymbol)
}

// FormatFloat is Format for float inputs. Non-finite values take the
// textual forms the display layer expects: "∞" and "NaN" substituted for
// the numeral, keeping the currency token in its locale position.
func (f *Formatter) FormatFloat(value float64, opts ...Option) string {
	if token, ok := nonFiniteToken(value); ok {
		s := f.resolve(opts)
		zero := f.format("0", s, currency.DisplaySymbol)
		return replaceNumeral(zero, token)
	}
	return f.Format(decimal.NewFromFloat(value), opts...)
}

// FormatAmount renders value with the locale's numeric conventions but
// without any currency symbol or code.
func (f *Formatter) FormatAmount(value decimal.Decimal, opts ...Option) string {
	s := f.resolve(opts)
	return f.format(value.String(), s, currency.DisplayNone)
}

// Symbol returns the currency token of the configured defaults ("€" for
// EUR/de-DE). It is derived by formatting zero and stripping the numeral,
// so it cannot drift from what Format produces.
func (f *Formatter) Symbol(opts ...Option) string {
	s := f.resolve(opts)
	formatted := f.format("0", s, currency.DisplaySymbol)
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		return r
	}, formatted)
	return strings.Trim(stripped, ",.'   ")
}

func (f *Formatter) format(number string, s settings, display currency.Display) string {
	amount, err := currency.NewAmount(number, s.currencyCode)
	if err != nil {
		// Unknown override code: degrade to a plain rendering rather
		// than erroring out of every call site.
		return number + " " + s.currencyCode
	}
	return f.newFormatter(s, display).Format(amount)
}

func nonFiniteToken(value float64) (string, bool) {
	switch {
	case math.IsNaN(value):
		return "NaN", true
	case math.IsInf(value, 1):
		return "∞", true
	case math.IsInf(value, -1):
		return "-∞", true
	}
	return "", false
}

// replaceNumeral swaps the digit run (including its separators) in a
// formatted string for the given token.
func replaceNumeral(formatted, token string) string {
	runes := []rune(formatted)
	first, last := -1, -1
	for i, r := range runes {
		if unicode.IsDigit(r) {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		return formatted
	}
	return string(runes[:first]) + token + string(runes[last+1:])
}
