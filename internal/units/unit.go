package units

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Unit is a conversion rule relative to a group's base unit:
// base = value*Factor + Offset.
type Unit struct {
	Factor float64
	Offset float64
}

// Linear reports whether the unit has no offset.
func (u Unit) Linear() bool {
	return u.Offset == 0
}

// ToBase converts a value in this unit to the group's base unit.
func (u Unit) ToBase(v float64) float64 {
	return v*u.Factor + u.Offset
}

// FromBase converts a base-unit value into this unit. The caller must
// check for a zero factor first.
func (u Unit) FromBase(v float64) float64 {
	return (v - u.Offset) / u.Factor
}

// MarshalJSON encodes linear units as a bare number and affine units as a
// [factor, offset] pair.
func (u Unit) MarshalJSON() ([]byte, error) {
	if u.Linear() {
		return json.Marshal(u.Factor)
	}
	return json.Marshal([2]float64{u.Factor, u.Offset})
}

// UnmarshalJSON accepts either a number or a [factor, offset] pair.
func (u *Unit) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var pair []float64
		if err := json.Unmarshal(data, &pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("unit must be a number or a [factor, offset] pair, got %d values", len(pair))
		}
		u.Factor, u.Offset = pair[0], pair[1]
		return nil
	}

	var factor float64
	if err := json.Unmarshal(data, &factor); err != nil {
		return fmt.Errorf("unit must be a number or a [factor, offset] pair: %w", err)
	}
	u.Factor, u.Offset = factor, 0
	return nil
}
