package record

import (
	"errors"
	"strconv"
)

// maxIntDigits bounds the integer part of a value so that it fits in an
// int64 count of tenths.
const maxIntDigits = 15

var (
	ErrSyntax = errors.New("invalid value syntax")
	ErrRange  = errors.New("value out of range")
)

// Value is a decimal with exactly one fractional digit, stored as tenths.
type Value int64

// ParseValue parses text of the form -?\d+\.\d into tenths. A leading '+'
// is tolerated, anything else (exponents, separators, missing fractional
// digit) is rejected.
func ParseValue(b []byte) (Value, error) {
	var (
		i      int
		v      int64
		neg    bool
		digits int
	)

	if len(b) > 0 && (b[0] == '-' || b[0] == '+') {
		neg = b[0] == '-'
		i++
	}

	for i < len(b) && isDigit(b[i]) {
		if digits == maxIntDigits {
			return 0, ErrRange
		}
		v = v*10 + int64(b[i]-'0')
		digits++
		i++
	}
	if digits == 0 {
		return 0, ErrSyntax
	}

	if i+2 != len(b) || b[i] != '.' || !isDigit(b[i+1]) {
		return 0, ErrSyntax
	}
	v = v*10 + int64(b[i+1]-'0')

	if neg {
		v = -v
	}
	return Value(v), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (v Value) String() string {
	return string(v.AppendText(make([]byte, 0, 8)))
}

// AppendText appends the one-fractional-digit form of v to b.
func (v Value) AppendText(b []byte) []byte {
	n := int64(v)
	if n < 0 {
		b = append(b, '-')
		n = -n
	}
	b = strconv.AppendInt(b, n/10, 10)
	return append(b, '.', byte('0'+n%10))
}

func (v Value) Float64() float64 {
	return float64(v) / 10
}
