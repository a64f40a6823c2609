package formatter

import (
	"math"
	"strconv"
	"strings"
)

// maxFixedExponent is the largest decimal exponent rendered without scientific notation.
const maxFixedExponent = 16

// RunTime is a job run time in seconds.
// It always encodes with a decimal point, so 2 renders as 2.0 and 1e21 as 1.0e+21.
type RunTime float64

// newRunTime converts a classified run time, keeping nil as nil.
func newRunTime(v *float64) *RunTime {
	if v == nil {
		return nil
	}
	r := RunTime(*v)
	return &r
}

// MarshalJSON implements json.Marshaler. Non-finite values encode as null.
func (r RunTime) MarshalJSON() ([]byte, error) {
	f := float64(r)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return []byte(r.String()), nil
}

// String renders the shortest decimal form of r that always carries a fraction.
// Exponents below -4 or above 16 switch to scientific notation with a signed,
// two digit exponent.
func (r RunTime) String() string {
	f := float64(r)
	if f == 0 {
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	var sign string
	if f < 0 {
		sign = "-"
		f = -f
	}

	// Shortest round-trip digits, e.g. "1.2345e+06".
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	digits := strings.Replace(mantissa, ".", "", 1)
	e, _ := strconv.Atoi(exp)
	point := e + 1

	var b strings.Builder
	b.WriteString(sign)

	switch {
	case point > 0 && point <= maxFixedExponent:
		if len(digits) <= point {
			b.WriteString(digits)
			b.WriteString(strings.Repeat("0", point-len(digits)))
			b.WriteString(".0")
		} else {
			b.WriteString(digits[:point])
			b.WriteByte('.')
			b.WriteString(digits[point:])
		}
	case point <= 0 && point > -4:
		b.WriteString("0.")
		b.WriteString(strings.Repeat("0", -point))
		b.WriteString(digits)
	default:
		b.WriteByte(digits[0])
		b.WriteByte('.')
		if len(digits) > 1 {
			b.WriteString(digits[1:])
		} else {
			b.WriteByte('0')
		}
		b.WriteByte('e')
		if e < 0 {
			b.WriteByte('-')
			e = -e
		} else {
			b.WriteByte('+')
		}
		if e < 10 {
			b.WriteByte('0')
		}
		b.WriteString(strconv.Itoa(e))
	}

	return b.String()
}
