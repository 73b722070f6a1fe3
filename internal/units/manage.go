package units

import (
	"fmt"
	"strings"
)

// checkName rejects empty names and names that would be ambiguous when
// typed on the command line.
func checkName(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidName, kind)
	}
	if strings.ContainsAny(name, " \t\n") {
		return fmt.Errorf("%w: %s %q cannot contain whitespace", ErrInvalidName, kind, name)
	}
	return nil
}

// AddGroup creates group with base as its base unit.
func (t *Tables) AddGroup(group, base string) error {
	if err := checkName("group", group); err != nil {
		return err
	}
	if err := checkName("base unit", base); err != nil {
		return err
	}
	if t.HasGroup(group) {
		return fmt.Errorf("group %q %w", group, ErrExists)
	}
	if base == group {
		return fmt.Errorf("%w: base unit cannot have the same name as its group", ErrInvalidName)
	}
	if t.HasGroup(base) {
		return fmt.Errorf("%w: %q is already a group name", ErrInvalidName, base)
	}
	for _, aliases := range t.Aliases {
		if _, ok := aliases[group]; ok {
			return fmt.Errorf("%w: %q is already an alias", ErrInvalidName, group)
		}
	}

	t.Units[group] = map[string]Unit{base: {Factor: 1}}
	t.Original[group] = map[string]Unit{base: {Factor: 1}}
	t.BaseUnits[group] = base
	t.Aliases[group] = map[string]string{}
	return nil
}

// RemoveGroup deletes group along with its units and aliases.
func (t *Tables) RemoveGroup(group string) error {
	if _, err := t.group(group); err != nil {
		return err
	}
	delete(t.Units, group)
	delete(t.Original, group)
	delete(t.BaseUnits, group)
	delete(t.Aliases, group)
	return nil
}

// AddType adds unit to group. The rule is expressed against the group's
// current base unit. Only AffineGroup units may have an offset.
func (t *Tables) AddType(group, unit string, rule Unit) error {
	units, err := t.group(group)
	if err != nil {
		return err
	}
	if err := checkName("unit", unit); err != nil {
		return err
	}
	if rule.Factor == 0 {
		return fmt.Errorf("%w: %q needs a non-zero factor", ErrZeroFactor, unit)
	}
	if !rule.Linear() && group != AffineGroup {
		return fmt.Errorf("%w: only %q units can have an offset", ErrInvalidName, AffineGroup)
	}
	if _, ok := units[unit]; ok {
		return fmt.Errorf("unit %q %w in %q", unit, ErrExists, group)
	}
	if _, ok := t.Aliases[group][unit]; ok {
		return fmt.Errorf("%w: %q is already an alias in %q", ErrInvalidName, unit, group)
	}
	if t.HasGroup(unit) {
		return fmt.Errorf("%w: %q is already a group name", ErrInvalidName, unit)
	}

	units[unit] = rule

	// Record the rule against the original base so ChangeBase can
	// recompute it later.
	base := t.Original[group][t.BaseUnits[group]]
	if base.Factor == 0 {
		base = Unit{Factor: 1}
	}
	if t.Original[group] == nil {
		t.Original[group] = map[string]Unit{}
	}
	t.Original[group][unit] = Unit{
		Factor: rule.Factor * base.Factor,
		Offset: rule.Offset*base.Factor + base.Offset,
	}
	return nil
}

// RemoveType deletes unit and its aliases from group. The base unit cannot
// be removed.
func (t *Tables) RemoveType(group, unit string) error {
	if _, err := t.group(group); err != nil {
		return err
	}
	canonical, ok := t.Resolve(group, unit)
	if !ok {
		return fmt.Errorf("%w: %q is not a valid unit for %q", ErrUnresolvedUnit, unit, group)
	}
	if canonical == t.BaseUnits[group] {
		return fmt.Errorf("%w: cannot remove base unit %q; change the base first", ErrInvalidName, canonical)
	}

	delete(t.Units[group], canonical)
	delete(t.Original[group], canonical)
	for alias, target := range t.Aliases[group] {
		if target == canonical {
			delete(t.Aliases[group], alias)
		}
	}
	return nil
}

// AddAlias registers alias for unit in group.
func (t *Tables) AddAlias(group, unit, alias string) error {
	units, err := t.group(group)
	if err != nil {
		return err
	}
	if err := checkName("alias", alias); err != nil {
		return err
	}
	canonical, ok := t.Resolve(group, unit)
	if !ok {
		return fmt.Errorf("%w: %q is not a valid unit for %q", ErrUnresolvedUnit, unit, group)
	}
	if _, ok := units[alias]; ok {
		return fmt.Errorf("%w: %q is already a unit in %q", ErrInvalidName, alias, group)
	}
	if existing, ok := t.Aliases[group][alias]; ok {
		return fmt.Errorf("alias %q %w for %q", alias, ErrExists, existing)
	}
	if t.HasGroup(alias) {
		return fmt.Errorf("%w: %q is already a group name", ErrInvalidName, alias)
	}

	if t.Aliases[group] == nil {
		t.Aliases[group] = map[string]string{}
	}
	t.Aliases[group][alias] = canonical
	return nil
}

// RemoveAlias deletes alias from group.
func (t *Tables) RemoveAlias(group, alias string) error {
	if _, err := t.group(group); err != nil {
		return err
	}
	if _, ok := t.Aliases[group][alias]; !ok {
		return fmt.Errorf("%w: %q is not an alias in %q", ErrUnresolvedUnit, alias, group)
	}
	delete(t.Aliases[group], alias)
	return nil
}

// ChangeBase makes unit the base of group and recomputes every rule in the
// group from the original factors.
func (t *Tables) ChangeBase(group, unit string) error {
	if _, err := t.group(group); err != nil {
		return err
	}
	canonical, ok := t.Resolve(group, unit)
	if !ok {
		return fmt.Errorf("%w: %q is not a valid unit for %q", ErrUnresolvedUnit, unit, group)
	}
	nb, ok := t.Original[group][canonical]
	if !ok {
		return fmt.Errorf("%w: no original factor recorded for %q", ErrUnresolvedUnit, canonical)
	}
	if nb.Factor == 0 {
		return fmt.Errorf("%w: %q", ErrZeroFactor, canonical)
	}

	recomputed := make(map[string]Unit, len(t.Original[group]))
	for name, orig := range t.Original[group] {
		recomputed[name] = Unit{
			Factor: orig.Factor / nb.Factor,
			Offset: (orig.Offset - nb.Offset) / nb.Factor,
		}
	}
	t.Units[group] = recomputed
	t.BaseUnits[group] = canonical
	return nil
}
