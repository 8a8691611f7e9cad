package reports

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts with locale-specific grouping and separators.
type Formatter struct {
	printer *message.Printer
	title   cases.Caser
}

// NewFormatter creates a Formatter for a BCP 47 locale such as "en-US".
func NewFormatter(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	return &Formatter{printer: message.NewPrinter(tag), title: cases.Title(tag)}, nil
}

// Amount formats d with two decimals. The float conversion is for display
// only; all arithmetic stays in decimal.
func (f *Formatter) Amount(d decimal.Decimal) string {
	return f.printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// Percent formats a ratio already expressed in percent, one decimal.
func (f *Formatter) Percent(d decimal.Decimal) string {
	return f.printer.Sprintf("%.1f%%", d.Round(1).InexactFloat64())
}

// Title capitalizes a label such as an account type.
func (f *Formatter) Title(s string) string {
	return f.title.String(s)
}
