// Package timeparse provides clock, date and calendar parsing utilities.
package timeparse

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// clockRe matches clock-style durations such as "17h:28m:36s", "28m:36s" or
// "36s". Hours and minutes are optional.
var clockRe = regexp.MustCompile(`^(?:(\d+)h:)?(?:(\d+)m:)?(?:(\d+)s)?$`)

// ParseClock parses a clock-style duration token into a number of seconds.
// Missing components count as zero, so "" parses as a zero duration.
// The boolean result reports whether the token has the clock shape and its
// total fits in an int64.
func ParseClock(s string) (int64, bool) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	var total int64
	for i, scale := range []int64{3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil || n > (math.MaxInt64-total)/scale {
			return 0, false
		}
		total += n * scale
	}

	return total, true
}

// FormatClock formats a number of seconds as "{h}h:{m}m:{s}s".
func FormatClock(seconds int64) string {
	h := seconds / 3600
	m := seconds % 3600 / 60
	s := seconds % 60
	return fmt.Sprintf("%dh:%dm:%ds", h, m, s)
}
