package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
)

var dateRe = regexp.MustCompile(`^(\d+)-(\d+)-(\d+)$`)

// Date is a proleptic Gregorian calendar date. It carries no time zone.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Before reports whether d falls strictly before other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// ParseDate parses a "<year>-<month>-<day>" token. Components may have any
// number of digits. Ranges are not checked here; see ValidateDate.
func ParseDate(s string) (Date, bool) {
	m := dateRe.FindStringSubmatch(s)
	if m == nil {
		return Date{}, false
	}

	var parts [3]int
	for i := range parts {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Date{}, false
		}
		parts[i] = n
	}

	return Date{Year: parts[0], Month: parts[1], Day: parts[2]}, true
}
