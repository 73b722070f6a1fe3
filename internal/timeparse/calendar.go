package timeparse

import (
	"errors"
	"fmt"
)

// ErrInvalidDate is returned when a date's month or day is out of range.
var ErrInvalidDate = errors.New("invalid date")

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the number of days in the given month of year.
// It returns 0 for months outside 1-12.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return monthDays[month-1]
}

// ValidateDate checks that d names a real calendar day.
func ValidateDate(d Date) error {
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: %d is not a valid month", ErrInvalidDate, d.Month)
	}
	if last := DaysInMonth(d.Year, d.Month); d.Day < 1 || d.Day > last {
		return fmt.Errorf("%w: %d is not a valid day for month %d of %d", ErrInvalidDate, d.Day, d.Month, d.Year)
	}
	return nil
}

// CountLeapYears counts the leap days that fall between from and to.
//
// The leap years in [from.Year, to.Year] are counted first. A leap day in
// from's year is dropped when from is already past February, and a leap day
// in to's year is dropped when to has not yet reached February 29.
func CountLeapYears(from, to Date) int {
	count := func(y int) int {
		return floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400)
	}
	n := count(to.Year) - count(from.Year-1)

	if IsLeapYear(from.Year) && from.Month > 2 {
		n--
	}
	if IsLeapYear(to.Year) && (to.Month < 2 || (to.Month == 2 && to.Day < 29)) {
		n--
	}
	return n
}

// floorDiv rounds toward negative infinity so year 0 and earlier behave
// like the Gregorian rule extended backwards.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// DaySpan returns the inclusive number of days between a and b, in either
// order. Both dates must already be valid.
func (t *MonthTable) DaySpan(a, b Date) int {
	if b.Before(a) {
		a, b = b, a
	}
	diff := t.DayNumber(b) - t.DayNumber(a)
	return diff + 1 + CountLeapYears(a, b)
}
