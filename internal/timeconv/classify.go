// Package timeconv converts time expressions: unit amounts, clock
// durations, month spans, date spans and sums of several time units.
package timeconv

import (
	"errors"
	"fmt"

	"github.com/jparise/unitconv/internal/timeparse"
	"github.com/jparise/unitconv/internal/units"
)

var (
	// ErrMalformedExpression is returned when the tokens match no
	// expression shape, or a sum contains a bad term.
	ErrMalformedExpression = errors.New("invalid format for date and time conversion")
	// ErrInvalidMagnitude is returned when an amount is not a plain
	// integer or decimal number.
	ErrInvalidMagnitude = errors.New("invalid magnitude")
)

// UnitTable is the read-only view of the unit tables that conversions need.
type UnitTable interface {
	Resolve(group, name string) (string, bool)
	Lookup(group, name string) (string, units.Unit, error)
}

// Shape identifies which conversion rule an expression uses.
type Shape int

const (
	ShapeInvalid Shape = iota
	ShapeUnitToUnit
	ShapeClockRange
	ShapeMonthRange
	ShapeDateRange
	ShapeSingleClock
	ShapeSingleMonth
	ShapeSingleDate
	ShapeSum
)

var shapeNames = [...]string{
	ShapeInvalid:     "invalid",
	ShapeUnitToUnit:  "unit-to-unit",
	ShapeClockRange:  "clock-range",
	ShapeMonthRange:  "month-range",
	ShapeDateRange:   "date-range",
	ShapeSingleClock: "clock",
	ShapeSingleMonth: "month",
	ShapeSingleDate:  "date",
	ShapeSum:         "sum",
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// Term is one "<number> <unit>" pair of a sum expression.
type Term struct {
	Value float64
	Unit  string
	Rule  units.Unit
}

// Expression is a classified time expression. Only the fields that belong
// to Shape are set.
type Expression struct {
	Shape  Shape
	Tokens []string

	// Target is the canonical unit the result is expressed in.
	Target     string
	TargetRule units.Unit

	// ShapeUnitToUnit
	Source     string
	SourceRule units.Unit
	Amount     float64

	Clocks [2]int64
	Months [2]timeparse.Month
	Dates  [2]timeparse.Date
	Terms  []Term
}

// Classify determines the shape of tokens. Three-token expressions are
// tried as unit-to-unit, then clock, month and date ranges, before falling
// back to a sum.
func Classify(tokens []string, ut UnitTable, months *timeparse.MonthTable) (Expression, error) {
	expr := Expression{Tokens: tokens}

	switch len(tokens) {
	case 2:
		return classifySingle(expr, ut, months)
	case 3:
		a, b := tokens[0], tokens[1]
		if fromName, fromOK := ut.Resolve(units.TimeGroup, a); fromOK {
			if toName, toOK := ut.Resolve(units.TimeGroup, b); toOK {
				return classifyUnitToUnit(expr, ut, fromName, toName, tokens[2])
			}
		}
		if ca, ok := timeparse.ParseClock(a); ok {
			if cb, ok := timeparse.ParseClock(b); ok {
				expr.Shape = ShapeClockRange
				expr.Clocks = [2]int64{ca, cb}
				return withTarget(expr, ut, tokens[2])
			}
		}
		if ma, ok := months.Lookup(a); ok {
			if mb, ok := months.Lookup(b); ok {
				expr.Shape = ShapeMonthRange
				expr.Months = [2]timeparse.Month{ma, mb}
				return withTarget(expr, ut, tokens[2])
			}
		}
		if da, ok := timeparse.ParseDate(a); ok {
			if db, ok := timeparse.ParseDate(b); ok {
				expr.Shape = ShapeDateRange
				expr.Dates = [2]timeparse.Date{da, db}
				return withTarget(expr, ut, tokens[2])
			}
		}
	}

	if len(tokens) >= 3 && len(tokens)%2 == 1 {
		return classifySum(expr, ut)
	}

	return Expression{}, fmt.Errorf("%w: %d tokens", ErrMalformedExpression, len(tokens))
}

func classifySingle(expr Expression, ut UnitTable, months *timeparse.MonthTable) (Expression, error) {
	token := expr.Tokens[0]
	if c, ok := timeparse.ParseClock(token); ok {
		expr.Shape = ShapeSingleClock
		expr.Clocks[0] = c
	} else if m, ok := months.Lookup(token); ok {
		expr.Shape = ShapeSingleMonth
		expr.Months[0] = m
	} else if d, ok := timeparse.ParseDate(token); ok {
		expr.Shape = ShapeSingleDate
		expr.Dates[0] = d
	} else {
		return Expression{}, fmt.Errorf("%w: %q is not a clock, month or date", ErrMalformedExpression, token)
	}
	return withTarget(expr, ut, expr.Tokens[1])
}

func classifyUnitToUnit(expr Expression, ut UnitTable, from, to, amount string) (Expression, error) {
	v, err := units.ParseAmount(amount)
	if err != nil {
		return Expression{}, fmt.Errorf("%w: %q", ErrInvalidMagnitude, amount)
	}
	_, fromRule, err := ut.Lookup(units.TimeGroup, from)
	if err != nil {
		return Expression{}, err
	}

	expr.Shape = ShapeUnitToUnit
	expr.Source = from
	expr.SourceRule = fromRule
	expr.Amount = v
	return withTarget(expr, ut, to)
}

// classifySum parses "<n> <unit> ... <target>". Any bad pair rejects the
// whole expression.
func classifySum(expr Expression, ut UnitTable) (Expression, error) {
	n := len(expr.Tokens)
	terms := make([]Term, 0, n/2)
	for i := 0; i+1 < n; i += 2 {
		v, err := units.ParseAmount(expr.Tokens[i])
		if err != nil {
			return Expression{}, fmt.Errorf("%w: %w: %q", ErrMalformedExpression, ErrInvalidMagnitude, expr.Tokens[i])
		}
		name, rule, err := ut.Lookup(units.TimeGroup, expr.Tokens[i+1])
		if err != nil {
			return Expression{}, fmt.Errorf("%w: %w", ErrMalformedExpression, err)
		}
		terms = append(terms, Term{Value: v, Unit: name, Rule: rule})
	}

	expr.Shape = ShapeSum
	expr.Terms = terms
	e, err := withTarget(expr, ut, expr.Tokens[n-1])
	if err != nil {
		return Expression{}, fmt.Errorf("%w: %w", ErrMalformedExpression, err)
	}
	return e, nil
}

func withTarget(expr Expression, ut UnitTable, target string) (Expression, error) {
	name, rule, err := ut.Lookup(units.TimeGroup, target)
	if err != nil {
		return Expression{}, err
	}
	expr.Target = name
	expr.TargetRule = rule
	return expr, nil
}
