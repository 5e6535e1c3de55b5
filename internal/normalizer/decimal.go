package normalizer

import "github.com/shopspring/decimal"

// AddDecimalStrings adds two decimal literals exactly (via
// shopspring/decimal's arbitrary-precision arithmetic, so no binary
// floating-point rounding is introduced) and renders the sum with scale
// fractional digits.
func AddDecimalStrings(a, b string, scale int) string {
	da, err1 := decimal.NewFromString(a)
	db, err2 := decimal.NewFromString(b)
	if err1 != nil || err2 != nil {
		return a
	}
	return da.Add(db).StringFixed(int32(scale))
}

// MulDecimalStrings multiplies two decimal literals exactly and renders the
// product with scale fractional digits.
func MulDecimalStrings(a, b string, scale int) string {
	da, err1 := decimal.NewFromString(a)
	db, err2 := decimal.NewFromString(b)
	if err1 != nil || err2 != nil {
		return "0"
	}
	return da.Mul(db).StringFixed(int32(scale))
}

// DivideDecimalStrings divides a by b, rounding the quotient half away from
// zero to scale fractional digits, and renders it with exactly scale
// fractional digits. Returns "0" if b is zero (MARKET-order average
// price derivation divides by cumulative fill quantity, which the caller
// never presents as zero in practice, but a stray zero denominator must not
// panic).
func DivideDecimalStrings(a, b string, scale int) string {
	da, err1 := decimal.NewFromString(a)
	db, err2 := decimal.NewFromString(b)
	if err1 != nil || err2 != nil || db.IsZero() {
		return "0"
	}
	return da.DivRound(db, int32(scale)).StringFixed(int32(scale))
}

// MaxDecimalString returns whichever of a, b is numerically larger,
// comparing exactly via shopspring/decimal.
func MaxDecimalString(a, b string) string {
	da, err1 := decimal.NewFromString(a)
	db, err2 := decimal.NewFromString(b)
	if err1 != nil || err2 != nil {
		return a
	}
	if da.Cmp(db) >= 0 {
		return a
	}
	return b
}
