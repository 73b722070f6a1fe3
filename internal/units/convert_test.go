package units

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestConvert(t *testing.T) {
	s := loadTestStore(t)

	tests := []struct {
		name        string
		group       string
		from, to    string
		amount      string
		want        float64
		wantMessage string
		wantErr     error
	}{
		{
			name:        "meters to yards",
			group:       "length",
			from:        "m",
			to:          "yd",
			amount:      "10",
			want:        10.936132983377078,
			wantMessage: "10.0 meters = 10.93613 yards",
		},
		{
			name:   "minutes to seconds",
			group:  "time",
			from:   "minutes",
			to:     "seconds",
			amount: "10",
			want:   600,
		},
		{
			name:   "celsius to kelvin",
			group:  "temperature",
			from:   "celsius",
			to:     "kelvin",
			amount: "10",
			want:   283.15,
		},
		{
			name:   "celsius to fahrenheit",
			group:  "temperature",
			from:   "c",
			to:     "f",
			amount: "100",
			want:   212,
		},
		{
			name:   "fahrenheit to kelvin",
			group:  "temperature",
			from:   "fahrenheit",
			to:     "kelvin",
			amount: "32",
			want:   273.15,
		},
		{
			name:   "negative amount",
			group:  "mass",
			from:   "kg",
			to:     "g",
			amount: "-2.5",
			want:   -2500,
		},
		{
			name:    "unknown group",
			group:   "invalid",
			from:    "m",
			to:      "yd",
			amount:  "10",
			wantErr: ErrUnknownGroup,
		},
		{
			name:    "unknown from unit",
			group:   "length",
			from:    "invalid",
			to:      "yd",
			amount:  "10",
			wantErr: ErrUnresolvedUnit,
		},
		{
			name:    "unknown to unit",
			group:   "length",
			from:    "m",
			to:      "invalid",
			amount:  "10",
			wantErr: ErrUnresolvedUnit,
		},
		{
			name:    "invalid amount",
			group:   "length",
			from:    "m",
			to:      "yd",
			amount:  "ten",
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "exponent amount",
			group:   "length",
			from:    "m",
			to:      "yd",
			amount:  "1e3",
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Convert(tt.group, tt.from, tt.to, tt.amount)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Convert() unexpected error: %v", err)
			}
			if math.Abs(got.Value-tt.want) > 1e-9 {
				t.Errorf("Convert() = %v, want %v", got.Value, tt.want)
			}
			if tt.wantMessage != "" && got.Message != tt.wantMessage {
				t.Errorf("Convert() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestConvertZeroFactor(t *testing.T) {
	s := loadTestStore(t)
	s.Units["length"]["yards"] = Unit{Factor: 0}

	_, err := s.Convert("length", "meters", "yards", "10")
	if !errors.Is(err, ErrZeroFactor) {
		t.Errorf("Convert() error = %v, want ErrZeroFactor", err)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{600, "600.0"},
		{0, "0.0"},
		{365, "365.0"},
		{50000.123059, "50,000.12306"},
		{54680.799495844265, "54,680.7995"},
		{10.936132983377078, "10.93613"},
		{1234567, "1,234,567.0"},
		{-2500, "-2,500.0"},
		{-0.000001, "0.0"},
		{0.5, "0.5"},
	}

	for _, tt := range tests {
		if got := FormatValue(tt.input); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	for _, ok := range []string{"10", "10.0", "-3", "0.25"} {
		if _, err := ParseAmount(ok); err != nil {
			t.Errorf("ParseAmount(%q) unexpected error: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "abc", "1.", ".5", "1,000", "+1", "NaN"} {
		_, err := ParseAmount(bad)
		if err == nil || !strings.Contains(err.Error(), "invalid amount") {
			t.Errorf("ParseAmount(%q) error = %v, want invalid amount", bad, err)
		}
	}
}
