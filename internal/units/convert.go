package units

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	amountRe = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	printer  = message.NewPrinter(language.English)
)

// Conversion is the result of converting an amount between two units.
type Conversion struct {
	Group   string
	From    string
	To      string
	Amount  float64
	Value   float64
	Message string
}

// ParseAmount parses a plain decimal amount such as "10", "-3" or "2.5".
func ParseAmount(s string) (float64, error) {
	if !amountRe.MatchString(s) {
		return 0, fmt.Errorf("%w: %q (use an integer or decimal, e.g. 10 or 10.0)", ErrInvalidAmount, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidAmount, s, err)
	}
	return v, nil
}

// Convert converts amount from one unit of group to another.
func (t *Tables) Convert(group, from, to, amount string) (Conversion, error) {
	fromName, fromUnit, err := t.Lookup(group, from)
	if err != nil {
		return Conversion{}, err
	}
	toName, toUnit, err := t.Lookup(group, to)
	if err != nil {
		return Conversion{}, err
	}
	v, err := ParseAmount(amount)
	if err != nil {
		return Conversion{}, err
	}
	if toUnit.Factor == 0 {
		return Conversion{}, fmt.Errorf("%w: %q in %q", ErrZeroFactor, toName, group)
	}

	result := toUnit.FromBase(fromUnit.ToBase(v))
	return Conversion{
		Group:   group,
		From:    fromName,
		To:      toName,
		Amount:  v,
		Value:   result,
		Message: fmt.Sprintf("%s %s = %s %s", FormatValue(v), fromName, FormatValue(result), toName),
	}, nil
}

// FormatValue formats v with thousands separators and at most five
// decimals. Trailing zeros are dropped but at least one decimal is kept,
// so 600 formats as "600.0" and 50000.123059 as "50,000.12306".
func FormatValue(v float64) string {
	s := printer.Sprintf("%.5f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
