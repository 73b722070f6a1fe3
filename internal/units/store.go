package units

import (
	"context"
	"embed"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/jparise/unitconv/internal/datadir"
	"github.com/jparise/unitconv/internal/logger"
	"github.com/jparise/unitconv/internal/timeparse"
	"golang.org/x/sync/errgroup"
)

//go:embed defaults/*.json
var defaults embed.FS

const (
	unitsFile        = "units.json"
	baseUnitsFile    = "base_units.json"
	aliasesFile      = "unit_aliases.json"
	monthDaysFile    = "month_days.json"
	monthAliasesFile = "month_aliases.json"
	originalFile     = "original_units.json"
)

// Store is a Tables loaded from, and saved back to, a data directory.
type Store struct {
	*Tables
	dir string
}

// Dir returns the data directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// Load reads all unit tables from dir. Files that do not exist yet are
// seeded from the built-in defaults.
func Load(ctx context.Context, dir string) (*Store, error) {
	tables, err := readTables(ctx, dir)
	if err != nil {
		return nil, err
	}
	return &Store{Tables: tables, dir: dir}, nil
}

func readTables(ctx context.Context, dir string) (*Tables, error) {
	var (
		tables       Tables
		monthDays    map[string]map[string]int
		monthAliases map[string]string
	)

	g, _ := errgroup.WithContext(ctx)
	read := func(name string, v any) {
		g.Go(func() error {
			def, err := defaults.ReadFile("defaults/" + name)
			if err != nil {
				return err
			}
			return datadir.ReadJSONOrDefault(filepath.Join(dir, name), def, v)
		})
	}
	read(unitsFile, &tables.Units)
	read(baseUnitsFile, &tables.BaseUnits)
	read(aliasesFile, &tables.Aliases)
	read(originalFile, &tables.Original)
	read(monthDaysFile, &monthDays)
	read(monthAliasesFile, &monthAliases)
	if err := g.Wait(); err != nil {
		return nil, err
	}

	months, err := buildMonthTable(monthDays, monthAliases)
	if err != nil {
		return nil, fmt.Errorf("%s is corrupted: %w", monthDaysFile, err)
	}
	tables.Months = months

	if err := tables.Validate(); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug("loaded unit tables", "dir", dir, "groups", len(tables.Units))
	return &tables, nil
}

// Save writes the editable tables back to the data directory while holding
// the directory lock. Changes made by other processes since the store was
// loaded are overwritten; use Update to edit the tables.
func (s *Store) Save(ctx context.Context) error {
	unlock, err := datadir.Lock(ctx, s.dir)
	if err != nil {
		return err
	}
	defer unlock()
	return s.write(ctx)
}

// Update holds the directory lock while it re-reads the tables from disk,
// applies fn, validates the result and writes it back. The store reflects
// the saved tables only when every step succeeds.
func (s *Store) Update(ctx context.Context, fn func(*Tables) error) error {
	unlock, err := datadir.Lock(ctx, s.dir)
	if err != nil {
		return err
	}
	defer unlock()

	tables, err := readTables(ctx, s.dir)
	if err != nil {
		return err
	}
	if err := fn(tables); err != nil {
		return err
	}
	if err := tables.Validate(); err != nil {
		return err
	}

	prev := s.Tables
	s.Tables = tables
	if err := s.write(ctx); err != nil {
		s.Tables = prev
		return err
	}
	return nil
}

func (s *Store) write(ctx context.Context) error {
	for _, f := range []struct {
		name string
		v    any
	}{
		{unitsFile, s.Units},
		{baseUnitsFile, s.BaseUnits},
		{aliasesFile, s.Aliases},
		{originalFile, s.Original},
	} {
		if err := datadir.WriteJSON(filepath.Join(s.dir, f.name), f.v); err != nil {
			return err
		}
	}
	logger.FromContext(ctx).Debug("saved unit tables", "dir", s.dir)
	return nil
}

// buildMonthTable converts the {"1": {"jan": 31}, ...} file layout.
func buildMonthTable(days map[string]map[string]int, aliases map[string]string) (*timeparse.MonthTable, error) {
	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	months := make([]timeparse.Month, 0, len(days))
	for _, k := range keys {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("month key %q is not a number", k)
		}
		if len(days[k]) != 1 {
			return nil, fmt.Errorf("month %d must have exactly one name", idx)
		}
		for name, n := range days[k] {
			months = append(months, timeparse.Month{Index: idx, Name: name, Days: n})
		}
	}
	return timeparse.NewMonthTable(months, aliases)
}

// Validate checks that the tables are consistent with each other.
func (t *Tables) Validate() error {
	if len(t.Units) == 0 {
		return fmt.Errorf("%s is corrupted: no groups defined", unitsFile)
	}
	if t.Aliases == nil {
		t.Aliases = map[string]map[string]string{}
	}
	if t.Original == nil {
		t.Original = map[string]map[string]Unit{}
	}

	for group, units := range t.Units {
		base, ok := t.BaseUnits[group]
		if !ok {
			return fmt.Errorf("%s is missing group %q", baseUnitsFile, group)
		}
		rule, ok := units[base]
		if !ok {
			return fmt.Errorf("base unit %q for group %q is not in %s", base, group, unitsFile)
		}
		if rule.Factor != 1 || rule.Offset != 0 {
			return fmt.Errorf("base unit %q for group %q must have factor 1", base, group)
		}
		for name, u := range units {
			if u.Factor == 0 {
				return fmt.Errorf("%w: %q in group %q", ErrZeroFactor, name, group)
			}
		}

		orig, ok := t.Original[group]
		if !ok {
			return fmt.Errorf("%s is missing group %q", originalFile, group)
		}
		for name := range units {
			if _, ok := orig[name]; !ok {
				return fmt.Errorf("unit %q of group %q is missing from %s", name, group, originalFile)
			}
		}
		for name := range orig {
			if _, ok := units[name]; !ok {
				return fmt.Errorf("unit %q of group %q in %s is not in %s", name, group, originalFile, unitsFile)
			}
		}
	}

	for group := range t.BaseUnits {
		if !t.HasGroup(group) {
			return fmt.Errorf("%s names unknown group %q", baseUnitsFile, group)
		}
	}

	for group, aliases := range t.Aliases {
		units, ok := t.Units[group]
		if !ok {
			return fmt.Errorf("%s names unknown group %q", aliasesFile, group)
		}
		for alias, target := range aliases {
			if _, ok := units[target]; !ok {
				return fmt.Errorf("alias %q in group %q points to unknown unit %q", alias, group, target)
			}
			if _, ok := units[alias]; ok {
				return fmt.Errorf("alias %q in group %q collides with a unit name", alias, group)
			}
			if t.HasGroup(alias) {
				return fmt.Errorf("alias %q in group %q collides with a group name", alias, group)
			}
		}
	}

	if t.Months == nil {
		t.Months = timeparse.DefaultMonthTable()
	}
	return nil
}
