package normalizer

import "testing"

func TestPrecisionFromTick(t *testing.T) {
	tests := []struct {
		tick string
		want int
	}{
		{"0.0001", 4},
		{"1", 0},
		{"0.5", 1},
		{"0.00100", 3},
		{"100", 0},
		{"0", 0},
	}
	for i, test := range tests {
		got := PrecisionFromTick(test.tick)
		if got != test.want {
			t.Errorf("PrecisionFromTick #%d (%q) = %d, want %d", i, test.tick, got, test.want)
		}
	}
}

func TestRoundUpToPrecisionNoRoundingNeeded(t *testing.T) {
	tests := []struct {
		value     string
		precision int
		want      string
	}{
		{"1.5", 2, "1.50"},
		{"1", 2, "1.00"},
		{"1.00", 0, "1"},
	}
	for i, test := range tests {
		got := RoundUpToPrecision(test.value, test.precision)
		if got != test.want {
			t.Errorf("RoundUpToPrecision #%d (%q, %d) = %s, want %s", i, test.value, test.precision, got, test.want)
		}
	}
}

func TestRoundUpToPrecisionRoundsUp(t *testing.T) {
	tests := []struct {
		value     string
		precision int
		want      string
	}{
		{"1.001", 2, "1.01"},
		{"1.100", 2, "1.10"},
		{"0.00001", 4, "0.0001"},
	}
	for i, test := range tests {
		got := RoundUpToPrecision(test.value, test.precision)
		if got != test.want {
			t.Errorf("RoundUpToPrecision #%d (%q, %d) = %s, want %s", i, test.value, test.precision, got, test.want)
		}
	}
}

func TestRoundUpToPrecisionCarryPropagation(t *testing.T) {
	tests := []struct {
		value     string
		precision int
		want      string
	}{
		{"1.999", 2, "2.00"},
		{"9.995", 2, "10.00"},
		{"1.5", 0, "2"},
	}
	for i, test := range tests {
		got := RoundUpToPrecision(test.value, test.precision)
		if got != test.want {
			t.Errorf("RoundUpToPrecision #%d (%q, %d) = %s, want %s", i, test.value, test.precision, got, test.want)
		}
	}
}

func TestRoundUpToPrecisionNegative(t *testing.T) {
	got := RoundUpToPrecision("-1.001", 2)
	if got != "-1.01" {
		t.Errorf("RoundUpToPrecision(\"-1.001\", 2) = %s, want -1.01", got)
	}
}
