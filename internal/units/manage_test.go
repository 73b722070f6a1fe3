package units

import (
	"errors"
	"math"
	"testing"
)

func TestResolve(t *testing.T) {
	s := loadTestStore(t)

	tests := []struct {
		group, name string
		want        string
		wantOK      bool
	}{
		{"time", "seconds", "seconds", true},
		{"time", "sec", "seconds", true},
		{"time", "hr", "hours", true},
		{"length", "m", "meters", true},
		{"time", "m", "", false},
		{"time", "years", "", false},
		{"invalid", "seconds", "", false},
	}

	for _, tt := range tests {
		got, ok := s.Resolve(tt.group, tt.name)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("Resolve(%q, %q) = %q, %v, want %q, %v", tt.group, tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestTypes(t *testing.T) {
	s := loadTestStore(t)

	types, err := s.Types("time", "")
	if err != nil {
		t.Fatalf("Types() error = %v", err)
	}
	if len(types) != 5 {
		t.Fatalf("Types(time) returned %d units, want 5", len(types))
	}
	if types[0].Name != "days" || types[2].Name != "minutes" {
		t.Errorf("Types(time) not sorted: %v", types)
	}
	for _, ti := range types {
		if ti.Base != (ti.Name == "seconds") {
			t.Errorf("Types(time) %q Base = %v", ti.Name, ti.Base)
		}
	}

	matched, err := s.Types("time", "h*")
	if err != nil {
		t.Fatalf("Types() error = %v", err)
	}
	if len(matched) != 1 || matched[0].Name != "hours" {
		t.Errorf("Types(time, h*) = %v, want hours", matched)
	}

	matched, err = s.Types("length", "{yd,mi}")
	if err != nil {
		t.Fatalf("Types() error = %v", err)
	}
	if len(matched) != 2 {
		t.Errorf("Types(length, {yd,mi}) = %v, want miles and yards", matched)
	}

	if _, err := s.Types("time", "[bad"); err == nil {
		t.Errorf("Types() with invalid pattern expected error")
	}
	if _, err := s.Types("nope", ""); !errors.Is(err, ErrUnknownGroup) {
		t.Errorf("Types(nope) error = %v, want ErrUnknownGroup", err)
	}
}

func TestAddGroup(t *testing.T) {
	tests := []struct {
		name    string
		group   string
		base    string
		wantErr bool
	}{
		{"new group", "data", "bytes", false},
		{"existing group", "length", "foo", true},
		{"same name", "data", "data", true},
		{"base is a group", "data", "length", true},
		{"empty base", "data", "", true},
		{"empty group", "", "bytes", true},
		{"whitespace", "my data", "bytes", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadTestStore(t)
			err := s.AddGroup(tt.group, tt.base)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AddGroup(%q, %q) error = %v, wantErr %v", tt.group, tt.base, err, tt.wantErr)
			}
			if err == nil {
				if _, u, err := s.Lookup(tt.group, tt.base); err != nil || u.Factor != 1 {
					t.Errorf("new base unit lookup = %v, %v", u, err)
				}
			}
		})
	}
}

func TestRemoveGroup(t *testing.T) {
	s := loadTestStore(t)
	if err := s.RemoveGroup("length"); err != nil {
		t.Fatalf("RemoveGroup() error = %v", err)
	}
	if s.HasGroup("length") {
		t.Errorf("group still present after RemoveGroup")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() after RemoveGroup error = %v", err)
	}
	if err := s.RemoveGroup("length"); !errors.Is(err, ErrUnknownGroup) {
		t.Errorf("second RemoveGroup() error = %v, want ErrUnknownGroup", err)
	}
}

func TestAddType(t *testing.T) {
	tests := []struct {
		name    string
		group   string
		unit    string
		rule    Unit
		wantErr error
	}{
		{"linear", "time", "fortnights", Unit{Factor: 1209600}, nil},
		{"affine", "temperature", "rankine", Unit{Factor: 0.5555555555555556, Offset: -273.15}, nil},
		{"zero factor", "time", "never", Unit{Factor: 0}, ErrZeroFactor},
		{"offset outside temperature", "length", "odd", Unit{Factor: 1, Offset: 2}, ErrInvalidName},
		{"existing unit", "time", "minutes", Unit{Factor: 60}, ErrExists},
		{"alias name", "time", "sec", Unit{Factor: 1}, ErrInvalidName},
		{"group name", "time", "length", Unit{Factor: 1}, ErrInvalidName},
		{"unknown group", "nope", "x", Unit{Factor: 1}, ErrUnknownGroup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadTestStore(t)
			err := s.AddType(tt.group, tt.unit, tt.rule)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("AddType() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddType() unexpected error: %v", err)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Validate() after AddType error = %v", err)
			}
		})
	}
}

func TestRemoveType(t *testing.T) {
	s := loadTestStore(t)

	if err := s.RemoveType("length", "mi"); err != nil {
		t.Fatalf("RemoveType() error = %v", err)
	}
	if _, ok := s.Resolve("length", "miles"); ok {
		t.Errorf("miles still resolves after removal")
	}
	if _, ok := s.Resolve("length", "mile"); ok {
		t.Errorf("alias mile still resolves after removal")
	}
	if err := s.RemoveType("length", "meters"); !errors.Is(err, ErrInvalidName) {
		t.Errorf("RemoveType(base) error = %v, want ErrInvalidName", err)
	}
	if err := s.RemoveType("length", "nope"); !errors.Is(err, ErrUnresolvedUnit) {
		t.Errorf("RemoveType(nope) error = %v, want ErrUnresolvedUnit", err)
	}
}

func TestAliases(t *testing.T) {
	s := loadTestStore(t)

	if err := s.AddAlias("time", "hr", "hh"); err != nil {
		t.Fatalf("AddAlias() error = %v", err)
	}
	if got, _ := s.Resolve("time", "hh"); got != "hours" {
		t.Errorf("Resolve(hh) = %q, want hours", got)
	}

	for _, tt := range []struct {
		unit, alias string
		wantErr     error
	}{
		{"hours", "hh", ErrExists},
		{"hours", "minutes", ErrInvalidName},
		{"hours", "length", ErrInvalidName},
		{"years", "yr", ErrUnresolvedUnit},
		{"hours", "", ErrInvalidName},
	} {
		if err := s.AddAlias("time", tt.unit, tt.alias); !errors.Is(err, tt.wantErr) {
			t.Errorf("AddAlias(%q, %q) error = %v, want %v", tt.unit, tt.alias, err, tt.wantErr)
		}
	}

	if err := s.RemoveAlias("time", "hh"); err != nil {
		t.Fatalf("RemoveAlias() error = %v", err)
	}
	if _, ok := s.Resolve("time", "hh"); ok {
		t.Errorf("hh still resolves after RemoveAlias")
	}
	if err := s.RemoveAlias("time", "hh"); !errors.Is(err, ErrUnresolvedUnit) {
		t.Errorf("second RemoveAlias() error = %v, want ErrUnresolvedUnit", err)
	}
}

func TestChangeBase(t *testing.T) {
	s := loadTestStore(t)

	if err := s.ChangeBase("length", "km"); err != nil {
		t.Fatalf("ChangeBase() error = %v", err)
	}
	if s.BaseUnits["length"] != "kilometers" {
		t.Errorf("base = %q, want kilometers", s.BaseUnits["length"])
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() after ChangeBase error = %v", err)
	}
	if got := s.Units["length"]["meters"].Factor; math.Abs(got-0.001) > 1e-12 {
		t.Errorf("meters factor = %v, want 0.001", got)
	}

	// Units added against the new base survive a later base change.
	if err := s.AddType("length", "furlongs", Unit{Factor: 0.201168}); err != nil {
		t.Fatalf("AddType() error = %v", err)
	}
	if err := s.ChangeBase("length", "meters"); err != nil {
		t.Fatalf("ChangeBase() error = %v", err)
	}
	if got := s.Units["length"]["furlongs"].Factor; math.Abs(got-201.168) > 1e-9 {
		t.Errorf("furlongs factor = %v, want 201.168", got)
	}

	// Conversions are unchanged by the choice of base.
	if err := s.ChangeBase("temperature", "kelvin"); err != nil {
		t.Fatalf("ChangeBase() error = %v", err)
	}
	got, err := s.Convert("temperature", "celsius", "fahrenheit", "100")
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if math.Abs(got.Value-212) > 1e-9 {
		t.Errorf("100 celsius = %v fahrenheit, want 212", got.Value)
	}

	if err := s.ChangeBase("length", "nope"); !errors.Is(err, ErrUnresolvedUnit) {
		t.Errorf("ChangeBase(nope) error = %v, want ErrUnresolvedUnit", err)
	}
}
