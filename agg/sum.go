package agg

import "math/bits"

// Sum is an exact 128-bit two's complement total of tenths. Hi holds the
// sign, so the zero value is 0.
type Sum struct {
	Hi int64
	Lo uint64
}

// SumOf returns v sign-extended to 128 bits.
func SumOf(v int64) Sum {
	return Sum{Hi: v >> 63, Lo: uint64(v)}
}

func (s *Sum) Add(v int64) {
	s.Merge(SumOf(v))
}

func (s *Sum) Merge(o Sum) {
	var carry uint64
	s.Lo, carry = bits.Add64(s.Lo, o.Lo, 0)
	s.Hi += o.Hi + int64(carry)
}

// Int64 returns s and whether it fits in an int64.
func (s Sum) Int64() (int64, bool) {
	v := int64(s.Lo)
	return v, s.Hi == v>>63
}

// Quo returns s/den rounded to the nearest integer, with exact midpoints
// rounded away from zero. den must be positive and the quotient must fit in
// an int64, which holds whenever s is a sum of den int64 values.
func (s Sum) Quo(den int64) int64 {
	neg := s.Hi < 0
	hi, lo := uint64(s.Hi), s.Lo
	if neg {
		var borrow uint64
		lo, borrow = bits.Sub64(0, lo, 0)
		hi, _ = bits.Sub64(0, hi, borrow)
	}

	d := uint64(den)
	q, r := bits.Div64(hi%d, lo, d)
	if 2*r >= d {
		q++
	}
	if neg {
		return -int64(q)
	}
	return int64(q)
}
