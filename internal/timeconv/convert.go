package timeconv

import (
	"fmt"
	"strings"
	"time"

	"github.com/jparise/unitconv/internal/timeparse"
	"github.com/jparise/unitconv/internal/units"
)

const (
	secondsUnit = "seconds"
	daysUnit    = "days"

	avgYearDays  = 365.2425
	avgMonthDays = 30.436875
)

// Request is a single time conversion.
type Request struct {
	// Expression is the raw user input, e.g. "jan dec days".
	Expression string
	Units      UnitTable
	Months     *timeparse.MonthTable
	// Year anchors month-range expressions, which carry no year. Zero
	// means the current year.
	Year int
}

// Result is the outcome of a conversion, with enough detail to record it
// in the conversion history.
type Result struct {
	Shape   Shape
	Message string
	Value   float64
	From    string
	To      string
	Factor  string
}

// Convert classifies and evaluates req.Expression.
func Convert(req Request) (Result, error) {
	tokens := strings.Fields(strings.ToLower(req.Expression))
	if len(tokens) == 0 {
		return Result{}, fmt.Errorf("%w: expression is empty", ErrMalformedExpression)
	}
	months := req.Months
	if months == nil {
		months = timeparse.DefaultMonthTable()
	}

	year := req.Year
	if year == 0 {
		year = time.Now().Year()
	}

	expr, err := Classify(tokens, req.Units, months)
	if err != nil {
		return Result{}, err
	}
	return Evaluate(expr, req.Units, months, year)
}

// Evaluate computes the value of a classified expression.
func Evaluate(expr Expression, ut UnitTable, months *timeparse.MonthTable, year int) (Result, error) {
	if expr.TargetRule.Factor == 0 {
		return Result{}, fmt.Errorf("%w: %q", units.ErrZeroFactor, expr.Target)
	}
	target := expr.Target
	tok := expr.Tokens

	switch expr.Shape {
	case ShapeUnitToUnit:
		v := expr.TargetRule.FromBase(expr.SourceRule.ToBase(expr.Amount))
		return Result{
			Shape:   expr.Shape,
			Message: fmt.Sprintf("%s %s = %s %s", units.FormatValue(expr.Amount), expr.Source, units.FormatValue(v), target),
			Value:   v,
			From:    expr.Source,
			To:      target,
			Factor:  tok[2],
		}, nil

	case ShapeClockRange:
		diff := expr.Clocks[0] - expr.Clocks[1]
		if diff < 0 {
			diff = -diff
		}
		v, err := fromSeconds(ut, expr, float64(diff))
		if err != nil {
			return Result{}, err
		}
		return between(expr, v), nil

	case ShapeMonthRange:
		v, err := fromDays(ut, expr, monthSpan(months, expr.Months[0], expr.Months[1], year))
		if err != nil {
			return Result{}, err
		}
		return between(expr, v), nil

	case ShapeDateRange:
		a, b := expr.Dates[0], expr.Dates[1]
		for _, d := range expr.Dates {
			if err := timeparse.ValidateDate(d); err != nil {
				return Result{}, err
			}
		}
		v, err := fromDays(ut, expr, float64(months.DaySpan(a, b)))
		if err != nil {
			return Result{}, err
		}
		return between(expr, v), nil

	case ShapeSingleClock:
		v, err := fromSeconds(ut, expr, float64(expr.Clocks[0]))
		if err != nil {
			return Result{}, err
		}
		return single(expr, v), nil

	case ShapeSingleMonth:
		v, err := fromDays(ut, expr, float64(expr.Months[0].Days))
		if err != nil {
			return Result{}, err
		}
		return single(expr, v), nil

	case ShapeSingleDate:
		d := expr.Dates[0]
		if err := timeparse.ValidateDate(d); err != nil {
			return Result{}, err
		}
		// A rough age in average years and months rather than an exact
		// calendar count.
		days := float64(d.Year)*avgYearDays + float64(d.Month)*avgMonthDays + float64(d.Day)
		v, err := fromDays(ut, expr, days)
		if err != nil {
			return Result{}, err
		}
		return single(expr, v), nil

	case ShapeSum:
		var base float64
		for _, term := range expr.Terms {
			base += term.Rule.ToBase(term.Value)
		}
		v := expr.TargetRule.FromBase(base)
		from := strings.Join(tok[:len(tok)-1], " ")
		return Result{
			Shape:   expr.Shape,
			Message: fmt.Sprintf("%s = %s %s", from, units.FormatValue(v), target),
			Value:   v,
			From:    from,
			To:      target,
		}, nil
	}

	return Result{}, fmt.Errorf("%w: unknown shape %v", ErrMalformedExpression, expr.Shape)
}

// monthSpan returns the inclusive number of days from the first day of
// month a through the last day of month b. A b earlier than a wraps into
// the following year.
func monthSpan(months *timeparse.MonthTable, a, b timeparse.Month, year int) float64 {
	start := timeparse.Date{Year: year, Month: a.Index, Day: 1}
	endYear := year
	if b.Index < a.Index {
		endYear++
	}

	// Measure to the first day of the next month and drop it, so the span
	// never ends on a leap day.
	next := timeparse.Date{Year: endYear, Month: b.Index + 1, Day: 1}
	if b.Index == 12 {
		next = timeparse.Date{Year: endYear + 1, Month: 1, Day: 1}
	}
	return float64(months.DaySpan(start, next) - 1)
}

// fromSeconds converts a second count into the expression's target unit.
func fromSeconds(ut UnitTable, expr Expression, seconds float64) (float64, error) {
	if expr.Target == secondsUnit {
		return seconds, nil
	}
	_, rule, err := ut.Lookup(units.TimeGroup, secondsUnit)
	if err != nil {
		return 0, err
	}
	return expr.TargetRule.FromBase(rule.ToBase(seconds)), nil
}

// fromDays converts a day count into the expression's target unit.
func fromDays(ut UnitTable, expr Expression, days float64) (float64, error) {
	if expr.Target == daysUnit {
		return days, nil
	}
	_, rule, err := ut.Lookup(units.TimeGroup, daysUnit)
	if err != nil {
		return 0, err
	}
	return expr.TargetRule.FromBase(rule.ToBase(days)), nil
}

func between(expr Expression, v float64) Result {
	return Result{
		Shape:   expr.Shape,
		Message: fmt.Sprintf("%s %s between %s %s", units.FormatValue(v), expr.Target, expr.Tokens[0], expr.Tokens[1]),
		Value:   v,
		From:    expr.Tokens[0],
		To:      expr.Tokens[1],
		Factor:  expr.Target,
	}
}

func single(expr Expression, v float64) Result {
	return Result{
		Shape:   expr.Shape,
		Message: fmt.Sprintf("%s = %s %s", expr.Tokens[0], units.FormatValue(v), expr.Target),
		Value:   v,
		From:    expr.Tokens[0],
		To:      expr.Target,
	}
}
