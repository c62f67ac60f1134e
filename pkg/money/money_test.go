package money

import (
	"math"
	"testing"
)

func TestFromFloat(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want Cents
	}{
		{"whole", 12, 1200},
		{"two decimals", 12.34, 1234},
		{"third decimal rounds down", 12.344, 1234},
		{"third decimal rounds up", 12.346, 1235},
		{"half rounds up", 0.005, 1},
		{"binary drift", 0.1 + 0.2, 30},
		{"negative", -5.5, -550},
		{"zero", 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FromFloat(tc.in)
			if err != nil {
				t.Fatalf("FromFloat(%v) returned error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("FromFloat(%v) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestFromFloatRejectsNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := FromFloat(v); err == nil {
			t.Errorf("FromFloat(%v) accepted a non-finite number", v)
		}
	}
}

func TestPercent(t *testing.T) {
	cases := []struct {
		name        string
		part, whole Cents
		want        int
	}{
		{"exact", 10000, 200000, 5},
		{"rounds half up", 2500, 200000, 1},  // 1.25 -> 1
		{"rounds up", 3000, 200000, 2},       // 1.5 -> 2
		{"over hundred", 250000, 200000, 125},
		{"zero whole", 100, 0, 0},
		{"negative whole", 100, -100, 0},
		{"zero part", 0, 1000, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Percent(tc.part, tc.whole); got != tc.want {
				t.Errorf("Percent(%d, %d) = %d, want %d", tc.part, tc.whole, got, tc.want)
			}
		})
	}
}

func TestFloatRoundTrip(t *testing.T) {
	if got := Cents(1234).Float(); got != 12.34 {
		t.Errorf("Float() = %v, want 12.34", got)
	}
}
