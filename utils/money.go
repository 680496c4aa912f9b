package utils

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var displayLocale = language.BrazilianPortuguese

// FormatBRL renders a money value for display, e.g. "R$ 1.234,50". The value is
// formatted from its decimal digits, never through a float.
func FormatBRL(v decimal.Decimal) string {
	scale, _ := currency.Standard.Rounding(currency.BRL)
	rounded := v.Round(int32(scale))

	whole, frac, _ := strings.Cut(rounded.Abs().StringFixed(int32(scale)), ".")
	out := groupThousands(whole)
	if frac != "" {
		out += "," + frac
	}
	if rounded.IsNegative() {
		out = "-" + out
	}
	return "R$ " + out
}

// FormatCount renders an integer with pt-BR digit grouping.
func FormatCount(n int) string {
	p := message.NewPrinter(displayLocale)
	return p.Sprintf("%d", n)
}

// groupThousands groups a string of digits in threes. Values that fit an
// int64 go through the pt-BR printer.
func groupThousands(digits string) string {
	if n, err := decimal.NewFromString(digits); err == nil && n.BigInt().IsInt64() {
		p := message.NewPrinter(displayLocale)
		return p.Sprintf("%d", n.IntPart())
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
