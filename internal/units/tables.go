// Package units holds the unit tables and implements lookup, conversion and
// editing of measurement groups.
package units

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jparise/unitconv/internal/timeparse"
)

const (
	// TimeGroup is the group handled by the time expression converter.
	TimeGroup = "time"
	// AffineGroup is the only group whose units may carry an offset.
	AffineGroup = "temperature"
)

var (
	ErrUnknownGroup   = errors.New("unknown group")
	ErrUnresolvedUnit = errors.New("unknown unit")
	ErrZeroFactor     = errors.New("conversion factor is zero")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrExists         = errors.New("already exists")
	ErrInvalidName    = errors.New("invalid name")
)

// Tables is the full set of unit data. Conversions treat it as read-only;
// the editing methods in manage.go mutate it in place.
type Tables struct {
	Units     map[string]map[string]Unit   // group -> unit -> rule
	BaseUnits map[string]string            // group -> base unit
	Aliases   map[string]map[string]string // group -> alias -> unit
	Original  map[string]map[string]Unit   // group -> unit -> rule against the original base
	Months    *timeparse.MonthTable
}

// TypeInfo describes one unit of a group.
type TypeInfo struct {
	Name    string
	Unit    Unit
	Aliases []string
	Base    bool
}

// Groups returns all group names in sorted order.
func (t *Tables) Groups() []string {
	groups := make([]string, 0, len(t.Units))
	for g := range t.Units {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// HasGroup reports whether group exists.
func (t *Tables) HasGroup(group string) bool {
	_, ok := t.Units[group]
	return ok
}

func (t *Tables) group(group string) (map[string]Unit, error) {
	if group == "" {
		return nil, fmt.Errorf("%w: group cannot be empty", ErrUnknownGroup)
	}
	units, ok := t.Units[group]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a valid group", ErrUnknownGroup, group)
	}
	return units, nil
}

// Resolve maps a unit name or alias to its canonical unit name. Literal
// unit names take precedence over aliases.
func (t *Tables) Resolve(group, name string) (string, bool) {
	units, ok := t.Units[group]
	if !ok {
		return "", false
	}
	if _, ok := units[name]; ok {
		return name, true
	}
	if canonical, ok := t.Aliases[group][name]; ok {
		if _, ok := units[canonical]; ok {
			return canonical, true
		}
	}
	return "", false
}

// Lookup resolves name within group and returns its canonical name and rule.
func (t *Tables) Lookup(group, name string) (string, Unit, error) {
	units, err := t.group(group)
	if err != nil {
		return "", Unit{}, err
	}
	canonical, ok := t.Resolve(group, name)
	if !ok {
		return "", Unit{}, fmt.Errorf("%w: %q is not a valid unit for %q", ErrUnresolvedUnit, name, group)
	}
	return canonical, units[canonical], nil
}

// Types lists the units of group, sorted by name. When pattern is non-empty
// only units whose name or one of whose aliases matches the glob are kept.
func (t *Tables) Types(group, pattern string) ([]TypeInfo, error) {
	units, err := t.group(group)
	if err != nil {
		return nil, err
	}
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	aliases := make(map[string][]string)
	for alias, canonical := range t.Aliases[group] {
		aliases[canonical] = append(aliases[canonical], alias)
	}

	var types []TypeInfo
	for name, u := range units {
		names := aliases[name]
		sort.Strings(names)
		if pattern != "" && !matchAny(pattern, append([]string{name}, names...)) {
			continue
		}
		types = append(types, TypeInfo{
			Name:    name,
			Unit:    u,
			Aliases: names,
			Base:    t.BaseUnits[group] == name,
		})
	}

	slices.SortFunc(types, func(a, b TypeInfo) int {
		return strings.Compare(a.Name, b.Name)
	})
	return types, nil
}

func matchAny(pattern string, names []string) bool {
	for _, name := range names {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
