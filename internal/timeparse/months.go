package timeparse

import (
	"fmt"
	"strings"
)

// Month is one row of a MonthTable.
type Month struct {
	Index int    // 1-12
	Name  string // canonical short name, e.g. "jan"
	Days  int    // nominal length; February is 28
}

// MonthTable maps month names and aliases to calendar months.
type MonthTable struct {
	months [12]Month
	byName map[string]int
}

// DefaultMonths is the built-in month table.
var DefaultMonths = []Month{
	{1, "jan", 31}, {2, "feb", 28}, {3, "mar", 31}, {4, "apr", 30},
	{5, "may", 31}, {6, "jun", 30}, {7, "jul", 31}, {8, "aug", 31},
	{9, "sep", 30}, {10, "oct", 31}, {11, "nov", 30}, {12, "dec", 31},
}

// NewMonthTable builds a table from exactly twelve months and an optional
// alias map (alias -> canonical name). Names are matched case-insensitively.
func NewMonthTable(months []Month, aliases map[string]string) (*MonthTable, error) {
	if len(months) != 12 {
		return nil, fmt.Errorf("month table must have 12 entries, got %d", len(months))
	}

	t := &MonthTable{byName: make(map[string]int, 12+len(aliases))}
	var seen [12]bool
	for _, m := range months {
		if m.Index < 1 || m.Index > 12 {
			return nil, fmt.Errorf("month %q has invalid index %d", m.Name, m.Index)
		}
		if seen[m.Index-1] {
			return nil, fmt.Errorf("duplicate month index %d", m.Index)
		}
		if m.Days < 1 || m.Days > 31 {
			return nil, fmt.Errorf("month %q has invalid day count %d", m.Name, m.Days)
		}
		name := strings.ToLower(m.Name)
		if name == "" {
			return nil, fmt.Errorf("month %d has no name", m.Index)
		}
		if _, dup := t.byName[name]; dup {
			return nil, fmt.Errorf("duplicate month name %q", name)
		}
		seen[m.Index-1] = true
		m.Name = name
		t.months[m.Index-1] = m
		t.byName[name] = m.Index
	}

	for alias, target := range aliases {
		alias, target = strings.ToLower(alias), strings.ToLower(target)
		idx, ok := t.byName[target]
		if !ok {
			return nil, fmt.Errorf("month alias %q points to unknown month %q", alias, target)
		}
		if existing, ok := t.byName[alias]; ok && existing != idx {
			return nil, fmt.Errorf("month alias %q collides with month %q", alias, t.months[existing-1].Name)
		}
		t.byName[alias] = idx
	}

	return t, nil
}

// DefaultMonthTable returns the built-in table without aliases.
func DefaultMonthTable() *MonthTable {
	t, err := NewMonthTable(DefaultMonths, nil)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup resolves a month name or alias.
func (t *MonthTable) Lookup(name string) (Month, bool) {
	idx, ok := t.byName[strings.ToLower(name)]
	if !ok {
		return Month{}, false
	}
	return t.months[idx-1], true
}

// Month returns the month with the given 1-based index.
func (t *MonthTable) Month(index int) (Month, bool) {
	if index < 1 || index > 12 {
		return Month{}, false
	}
	return t.months[index-1], true
}

// Months returns the twelve months in calendar order.
func (t *MonthTable) Months() []Month {
	out := make([]Month, 12)
	copy(out, t.months[:])
	return out
}

// DayNumber returns a monotonic day count for d using flat 365-day years and
// the table's nominal month lengths. Leap days are not included; callers
// that difference two day numbers add CountLeapYears separately.
func (t *MonthTable) DayNumber(d Date) int {
	n := d.Year*365 + d.Day
	for i := 0; i < d.Month-1 && i < 12; i++ {
		n += t.months[i].Days
	}
	return n
}
