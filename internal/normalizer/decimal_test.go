package normalizer

import "testing"

func TestAddDecimalStrings(t *testing.T) {
	tests := []struct {
		a, b  string
		scale int
		want  string
	}{
		{"0.1", "0.2", 1, "0.3"},
		{"1", "2", 0, "3"},
		{"100.00000001", "0.00000002", 8, "100.00000003"},
		{"-1.5", "1.5", 2, "0.00"},
	}
	for i, test := range tests {
		got := AddDecimalStrings(test.a, test.b, test.scale)
		if got != test.want {
			t.Errorf("AddDecimalStrings #%d (%s + %s) = %s, want %s", i, test.a, test.b, got, test.want)
		}
	}
}

func TestAddDecimalStringsInvalidInputReturnsA(t *testing.T) {
	got := AddDecimalStrings("not-a-number", "1", 2)
	if got != "not-a-number" {
		t.Errorf("AddDecimalStrings with invalid input = %s, want the unparsed first argument back", got)
	}
}

func TestMulDecimalStrings(t *testing.T) {
	tests := []struct {
		a, b  string
		scale int
		want  string
	}{
		{"2", "3", 0, "6"},
		{"0.1", "0.1", 4, "0.0100"},
		{"1.5", "2", 1, "3.0"},
	}
	for i, test := range tests {
		got := MulDecimalStrings(test.a, test.b, test.scale)
		if got != test.want {
			t.Errorf("MulDecimalStrings #%d (%s * %s) = %s, want %s", i, test.a, test.b, got, test.want)
		}
	}
}

func TestMulDecimalStringsInvalidInput(t *testing.T) {
	if got := MulDecimalStrings("x", "1", 2); got != "0" {
		t.Errorf("MulDecimalStrings with invalid input = %s, want \"0\"", got)
	}
}

func TestDivideDecimalStrings(t *testing.T) {
	tests := []struct {
		a, b  string
		scale int
		want  string
	}{
		{"10", "4", 2, "2.50"},
		{"1", "3", 4, "0.3333"},
		{"0", "5", 2, "0.00"},
	}
	for i, test := range tests {
		got := DivideDecimalStrings(test.a, test.b, test.scale)
		if got != test.want {
			t.Errorf("DivideDecimalStrings #%d (%s / %s) = %s, want %s", i, test.a, test.b, got, test.want)
		}
	}
}

func TestDivideDecimalStringsByZero(t *testing.T) {
	if got := DivideDecimalStrings("10", "0", 2); got != "0" {
		t.Errorf("DivideDecimalStrings by zero = %s, want \"0\"", got)
	}
}

func TestMaxDecimalString(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{"1.5", "1.50000001", "1.50000001"},
		{"2", "1.999999", "2"},
		{"0.001", "0.001", "0.001"},
	}
	for i, test := range tests {
		got := MaxDecimalString(test.a, test.b)
		if got != test.want {
			t.Errorf("MaxDecimalString #%d (%s, %s) = %s, want %s", i, test.a, test.b, got, test.want)
		}
	}
}
