// Package dd implements double-double arithmetic: values are represented as
// the unevaluated sum of two float64s, giving roughly 106 bits of mantissa.
//
// It is intended for the handful of predicates that need more precision than
// float64 provides, not as a general purpose number type.
package dd

import (
	"fmt"
	"math"
	"math/big"
)

// DD is a double-double value hi+lo where |lo| <= ulp(hi)/2.
//
// Fields should be treated as read-only. Use FromFloat64 or the arithmetic
// methods to build values.
type DD struct {
	hi, lo float64
}

// NaN is the double-double not-a-number.
var NaN = DD{math.NaN(), math.NaN()}

// FromFloat64 returns the exact double-double value of v.
func FromFloat64(v float64) DD {
	return DD{hi: v}
}

// New returns hi+lo, renormalizing the pair.
func New(hi, lo float64) DD {
	s, e := twoSum(hi, lo)
	return DD{s, e}
}

// Hi returns the leading component.
func (a DD) Hi() float64 { return a.hi }

// Lo returns the trailing component.
func (a DD) Lo() float64 { return a.lo }

// twoSum returns s, e such that s+e == a+b exactly and s == fl(a+b).
func twoSum(a, b float64) (float64, float64) {
	s := a + b
	bb := s - a
	e := (a - (s - bb)) + (b - bb)
	return s, e
}

// quickTwoSum requires |a| >= |b|.
func quickTwoSum(a, b float64) (float64, float64) {
	s := a + b
	return s, b - (s - a)
}

// twoProd returns p, e such that p+e == a*b exactly.
func twoProd(a, b float64) (float64, float64) {
	p := a * b
	return p, math.FMA(a, b, -p)
}

// Add returns a+b.
func (a DD) Add(b DD) DD {
	s, e := twoSum(a.hi, b.hi)
	t, f := twoSum(a.lo, b.lo)
	e += t
	s, e = quickTwoSum(s, e)
	e += f
	s, e = quickTwoSum(s, e)
	return DD{s, e}
}

// AddFloat64 returns a+b.
func (a DD) AddFloat64(b float64) DD {
	return a.Add(FromFloat64(b))
}

// Neg returns -a.
func (a DD) Neg() DD {
	return DD{-a.hi, -a.lo}
}

// Sub returns a-b.
func (a DD) Sub(b DD) DD {
	return a.Add(b.Neg())
}

// SubFloat64 returns a-b.
func (a DD) SubFloat64(b float64) DD {
	return a.Add(FromFloat64(-b))
}

// Mul returns a*b.
func (a DD) Mul(b DD) DD {
	if a.IsNaN() || b.IsNaN() {
		return NaN
	}
	p, e := twoProd(a.hi, b.hi)
	e += a.hi*b.lo + a.lo*b.hi
	p, e = quickTwoSum(p, e)
	return DD{p, e}
}

// MulFloat64 returns a*b.
func (a DD) MulFloat64(b float64) DD {
	return a.Mul(FromFloat64(b))
}

// Div returns a/b. Division by zero yields an infinite or NaN value, which
// callers detect with IsNaN or IsInf.
func (a DD) Div(b DD) DD {
	q1 := a.hi / b.hi
	if math.IsNaN(q1) || math.IsInf(q1, 0) {
		return DD{q1, 0}
	}
	r := a.Sub(b.MulFloat64(q1))
	q2 := r.hi / b.hi
	r = r.Sub(b.MulFloat64(q2))
	q3 := r.hi / b.hi
	s, e := quickTwoSum(q1, q2)
	return DD{s, e}.AddFloat64(q3)
}

// Abs returns |a|.
func (a DD) Abs() DD {
	if a.Sgn() < 0 {
		return a.Neg()
	}
	return a
}

// Sgn returns -1, 0 or +1 according to the sign of a. NaN reports 0.
func (a DD) Sgn() int {
	switch {
	case a.hi > 0:
		return 1
	case a.hi < 0:
		return -1
	case a.lo > 0:
		return 1
	case a.lo < 0:
		return -1
	}
	return 0
}

// IsZero reports whether a == 0.
func (a DD) IsZero() bool { return a.hi == 0 && a.lo == 0 }

// IsNaN reports whether a is not a number.
func (a DD) IsNaN() bool { return math.IsNaN(a.hi) }

// IsInf reports whether a is infinite.
func (a DD) IsInf() bool { return math.IsInf(a.hi, 0) }

// Float64 returns the float64 closest to a.
func (a DD) Float64() float64 { return a.hi + a.lo }

// LessThan reports whether a < b. NaN is unordered.
func (a DD) LessThan(b DD) bool {
	if a.IsNaN() || b.IsNaN() {
		return false
	}
	return a.hi < b.hi || (a.hi == b.hi && a.lo < b.lo)
}

// Eq reports whether a == b. NaN is not equal to anything.
func (a DD) Eq(b DD) bool {
	if a.IsNaN() || b.IsNaN() {
		return false
	}
	return a.hi == b.hi && a.lo == b.lo
}

// Big returns the exact value of a as a big.Float.
func (a DD) Big() *big.Float {
	if a.IsNaN() || a.IsInf() {
		return nil
	}
	f := new(big.Float).SetPrec(2200).SetFloat64(a.hi)
	return f.Add(f, new(big.Float).SetFloat64(a.lo))
}

func (a DD) String() string {
	if a.IsNaN() {
		return "NaN"
	}
	if a.IsInf() {
		return fmt.Sprint(a.hi)
	}
	return a.Big().Text('g', 32)
}

// Determinant returns x1*y2 - y1*x2 evaluated in double-double arithmetic.
func Determinant(x1, y1, x2, y2 DD) DD {
	return x1.Mul(y2).Sub(y1.Mul(x2))
}

// SignOfDeterminant returns the sign of x1*y2 - y1*x2 for float64 inputs.
func SignOfDeterminant(x1, y1, x2, y2 float64) int {
	return Determinant(FromFloat64(x1), FromFloat64(y1), FromFloat64(x2), FromFloat64(y2)).Sgn()
}
