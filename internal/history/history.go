// Package history records successful conversions in a JSON log file.
package history

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/jparise/unitconv/internal/datadir"
	"github.com/jparise/unitconv/internal/logger"
	"github.com/jparise/unitconv/internal/units"
)

const (
	fileName = "conversion_log.json"

	// DefaultRetention is how long entries are kept.
	DefaultRetention = 3 * 24 * time.Hour
	// DefaultLimit is the number of entries shown when no limit is given.
	DefaultLimit = 10
)

var ErrEmpty = errors.New("conversion history is empty")

// Entry is one recorded conversion. Time conversions fill the *Time
// fields; other groups fill the *Type fields and Amount.
type Entry struct {
	Date    time.Time `json:"date"`
	Group   string    `json:"unit_group"`
	Message string    `json:"message,omitempty"`

	FromTime   string `json:"from_time,omitempty"`
	ToTime     string `json:"to_time,omitempty"`
	FactorTime string `json:"factor_time,omitempty"`

	FromType string   `json:"from_type,omitempty"`
	ToType   string   `json:"to_type,omitempty"`
	Amount   *float64 `json:"amount,omitempty"`

	Result float64 `json:"result"`
}

// String formats the entry the way it was shown when converted, followed
// by its group.
func (e Entry) String() string {
	msg := e.Message
	if msg == "" {
		switch {
		case e.Amount != nil:
			msg = fmt.Sprintf("%s %s = %s %s", units.FormatValue(*e.Amount), e.FromType,
				units.FormatValue(e.Result), e.ToType)
		default:
			msg = fmt.Sprintf("%s %s %s = %s", e.FromTime, e.ToTime, e.FactorTime, units.FormatValue(e.Result))
		}
	}
	return fmt.Sprintf("%s (Group: %s)", msg, e.Group)
}

// Log is the conversion history stored in a data directory.
type Log struct {
	dir       string
	retention time.Duration
	now       func() time.Time
}

// Open returns the log stored in dir. Nothing is read until it is used.
func Open(dir string) *Log {
	return &Log{
		dir:       dir,
		retention: DefaultRetention,
		now:       time.Now,
	}
}

func (l *Log) path() string {
	return filepath.Join(l.dir, fileName)
}

// Entries returns all stored entries in the order they were recorded.
func (l *Log) Entries() ([]Entry, error) {
	var entries []Entry
	err := datadir.ReadJSON(l.path(), &entries)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Append prunes expired entries and records e. The entry's date is set to
// the current time when it is zero.
func (l *Log) Append(ctx context.Context, e Entry) error {
	if e.Group == "" {
		return fmt.Errorf("history entry is missing its group")
	}
	if e.Date.IsZero() {
		e.Date = l.now()
	}

	unlock, err := datadir.Lock(ctx, l.dir)
	if err != nil {
		return err
	}
	defer unlock()

	entries, err := l.Entries()
	if err != nil {
		return err
	}
	kept := l.prune(entries)
	if n := len(entries) - len(kept); n > 0 {
		logger.FromContext(ctx).Debug("pruned expired history entries", "count", n)
	}
	return datadir.WriteJSON(l.path(), append(kept, e))
}

// prune drops entries older than the retention window and entries without
// a date.
func (l *Log) prune(entries []Entry) []Entry {
	cutoff := l.now().Add(-l.retention)
	kept := entries[:0]
	for _, e := range entries {
		if e.Date.IsZero() || e.Date.Before(cutoff) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// Recent returns up to limit unexpired entries, newest first.
func (l *Log) Recent(limit int) ([]Entry, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be a positive number, got %d", limit)
	}

	entries, err := l.Entries()
	if err != nil {
		return nil, err
	}
	entries = l.prune(entries)
	if len(entries) == 0 {
		return nil, ErrEmpty
	}

	recent := make([]Entry, 0, min(limit, len(entries)))
	for i := len(entries) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, entries[i])
	}
	return recent, nil
}
