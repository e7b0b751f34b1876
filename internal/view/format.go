package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"prism/pkg/domain"
)

// displayDateLayout renders founded dates on cards.
const displayDateLayout = "January 2, 2006"

// Formatter renders record values for display in one locale and currency.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
	symbol  string
	now     func() time.Time
}

// NewFormatter builds a formatter for a BCP 47 locale and ISO 4217 currency code.
func NewFormatter(locale, code string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", code, err)
	}
	p := message.NewPrinter(tag)
	return &Formatter{
		printer: p,
		unit:    unit,
		symbol:  p.Sprint(currency.Symbol(unit)),
		now:     time.Now,
	}, nil
}

// Currency formats amount as a whole-unit localized currency string, e.g. $1,000,000.
func (f *Formatter) Currency(amount float64) string {
	return f.symbol + f.printer.Sprint(number.Decimal(amount, number.MaxFractionDigits(0)))
}

// CompactCurrency abbreviates amount with an SI suffix, e.g. $1.5M.
func (f *Formatter) CompactCurrency(amount float64) string {
	value, prefix := humanize.ComputeSI(amount)
	return f.symbol + humanize.FtoaWithDigits(value, 1) + prefix
}

// Date renders a stored YYYY-MM-DD date; anything else is shown verbatim.
func (f *Formatter) Date(s domain.StartupFields) string {
	t, ok := s.Founded()
	if !ok {
		return s.FoundedDate
	}
	return t.Format(displayDateLayout)
}

// Age describes how long ago the startup was founded, e.g. "2 years ago".
func (f *Formatter) Age(s domain.StartupFields) string {
	t, ok := s.Founded()
	if !ok {
		return ""
	}
	return humanize.RelTime(t, f.now(), "ago", "from now")
}

// Employees renders the team size label.
func (f *Formatter) Employees(n int) string {
	return f.printer.Sprintf("%d employees", n)
}

// StatusClass picks the badge style: green for Active, blue for Acquired,
// red otherwise.
func StatusClass(s domain.Status) string {
	switch s {
	case domain.StatusActive:
		return "badge badge-active"
	case domain.StatusAcquired:
		return "badge badge-acquired"
	default:
		return "badge badge-closed"
	}
}

func stageClass(s domain.FundingStage) string {
	return "chip chip-" + strings.NewReplacer(" ", "-", "+", "plus").Replace(strings.ToLower(string(s)))
}
