package eval

import "testing"

func TestFormatFloat(t *testing.T) {
	cases := []struct {
		name  string
		input float64
		want  string
	}{
		{"integral", 2, "2.0"},
		{"already fractional", 1.5, "1.5"},
		{"zero", 0, "0.0"},
		{"large magnitude switches to exponent form", 1000000.0, "1.0e+06"},
		{"small magnitude switches to exponent form", 0.00001, "1.0e-05"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatFloat(tc.input); got != tc.want {
				t.Errorf("formatFloat(%v) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
