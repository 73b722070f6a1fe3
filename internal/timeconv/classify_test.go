package timeconv

import (
	"strings"
	"testing"

	"github.com/jparise/unitconv/internal/timeparse"
	"github.com/jparise/unitconv/internal/units"
)

func TestClassify(t *testing.T) {
	// "jan" and "dec" are also registered as units here, so unit-to-unit
	// must win over month-range.
	tables := timeTables(map[string]units.Unit{
		"jan": {Factor: 1},
		"dec": {Factor: 2},
	})
	months := timeparse.DefaultMonthTable()

	tests := []struct {
		input string
		want  Shape
	}{
		{"jan dec 10", ShapeUnitToUnit},
		{"minutes seconds 10", ShapeUnitToUnit},
		{"1h: 2h: seconds", ShapeClockRange},
		{"feb mar days", ShapeMonthRange},
		{"2020-01-01 2021-01-01 days", ShapeDateRange},
		{"36s seconds", ShapeSingleClock},
		{"feb days", ShapeSingleMonth},
		{"2020-01-01 days", ShapeSingleDate},
		{"2 hours seconds", ShapeSum},
		{"1 hours 2 minutes 3 seconds days", ShapeSum},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := Classify(strings.Fields(tt.input), tables, months)
			if err != nil {
				t.Fatalf("Classify(%q) unexpected error: %v", tt.input, err)
			}
			if expr.Shape != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.input, expr.Shape, tt.want)
			}
		})
	}
}

func TestClassifyFields(t *testing.T) {
	tables := timeTables(nil)
	months := timeparse.DefaultMonthTable()

	expr, err := Classify([]string{"17h:28m:36s", "04h:15m:22s", "sec"}, tables, months)
	if err != nil {
		t.Fatal(err)
	}
	if expr.Clocks != [2]int64{62916, 15322} {
		t.Errorf("Clocks = %v", expr.Clocks)
	}
	if expr.Target != "seconds" || expr.TargetRule.Factor != 1 {
		t.Errorf("Target = %q %v", expr.Target, expr.TargetRule)
	}

	expr, err = Classify([]string{"3", "hr", "15", "min", "sec"}, tables, months)
	if err != nil {
		t.Fatal(err)
	}
	if len(expr.Terms) != 2 || expr.Terms[0].Unit != "hours" || expr.Terms[1].Value != 15 {
		t.Errorf("Terms = %+v", expr.Terms)
	}
}

func TestShapeString(t *testing.T) {
	if got := ShapeMonthRange.String(); got != "month-range" {
		t.Errorf("ShapeMonthRange.String() = %q", got)
	}
	if got := Shape(99).String(); got != "Shape(99)" {
		t.Errorf("Shape(99).String() = %q", got)
	}
}
