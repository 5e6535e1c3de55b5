// Package normalizer implements the deterministic mapping from heterogeneous
// exchange payloads into the canonical data model (spec.md component C5),
// plus the shared numeric helpers every provider's normalize.go calls into.
package normalizer

import "strings"

// PrecisionFromTick returns the number of digits after the decimal point up
// to and including the last non-zero digit of a tick-size literal, e.g.
// PrecisionFromTick("0.0001") == 4, PrecisionFromTick("1") == 0,
// PrecisionFromTick("0.5") == 1 (spec.md §4.5, §8.7).
//
// This must operate on the string form, never on a float64 parse of it --
// floats can't represent most decimal tick sizes exactly, and the spec's
// invariant is defined in terms of the literal's digits, not its rounded
// binary value.
func PrecisionFromTick(tick string) int {
	tick = strings.TrimSpace(tick)
	dot := strings.IndexByte(tick, '.')
	if dot < 0 {
		return 0
	}
	frac := tick[dot+1:]
	lastNonZero := -1
	for i := 0; i < len(frac); i++ {
		if frac[i] != '0' {
			lastNonZero = i
		}
	}
	if lastNonZero < 0 {
		return 0
	}
	return lastNonZero + 1
}

// RoundUpToPrecision rounds a decimal string up to the given number of
// fractional digits, string-in/string-out, so no floating point rounding
// artifacts are introduced.
func RoundUpToPrecision(value string, precision int) string {
	neg := strings.HasPrefix(value, "-")
	if neg {
		value = value[1:]
	}
	dot := strings.IndexByte(value, '.')
	var intPart, fracPart string
	if dot < 0 {
		intPart, fracPart = value, ""
	} else {
		intPart, fracPart = value[:dot], value[dot+1:]
	}
	if len(fracPart) <= precision {
		fracPart = fracPart + strings.Repeat("0", precision-len(fracPart))
		out := intPart
		if precision > 0 {
			out += "." + fracPart
		}
		if neg {
			out = "-" + out
		}
		return out
	}

	// There are more fractional digits than precision allows. If any
	// dropped digit is non-zero, round up (away from zero), propagating
	// carries through the kept digits; if all dropped digits are zero,
	// the kept digits are returned unchanged.
	keep := []byte(fracPart[:precision])
	dropped := fracPart[precision:]
	roundUp := false
	for i := 0; i < len(dropped); i++ {
		if dropped[i] != '0' {
			roundUp = true
			break
		}
	}
	digits := []byte(intPart + string(keep))
	if roundUp {
		digits = incrementDecimalDigits(digits)
	}
	// digits may have grown by one character if the increment carried
	// out of the most significant digit.
	newIntLen := len(digits) - precision
	intPart = string(digits[:newIntLen])
	fracPart = string(digits[newIntLen:])

	out := intPart
	if precision > 0 {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}

// incrementDecimalDigits adds 1 to the integer represented by digits
// (base-10, most significant digit first), growing the slice by one byte
// if the increment carries out of the top.
func incrementDecimalDigits(digits []byte) []byte {
	for i := len(digits) - 1; i >= 0; i-- {
		if digits[i] < '9' {
			digits[i]++
			return digits
		}
		digits[i] = '0'
	}
	return append([]byte{'1'}, digits...)
}
