package planar

import (
	"math/big"
	"math/rand"
	"testing"
)

func TestOrientationIndex(t *testing.T) {
	tests := []struct {
		p1, p2, q Coord
		want      Orientation
	}{
		{NewCoord(0, 0), NewCoord(10, 0), NewCoord(5, 5), CounterClockwise},
		{NewCoord(0, 0), NewCoord(10, 0), NewCoord(5, -5), Clockwise},
		{NewCoord(0, 0), NewCoord(10, 0), NewCoord(5, 0), Collinear},
		{NewCoord(0, 0), NewCoord(10, 0), NewCoord(20, 0), Collinear},
		{NewCoord(0, 0), NewCoord(0, 0), NewCoord(1, 1), Collinear},
		// Nearly collinear points from a known failure case of naive
		// floating point evaluation.
		{
			NewCoord(219.3649559090992, 140.84159161824724),
			NewCoord(168.9018919682399, -5.713787599646864),
			NewCoord(186.80814046338352, 46.28973405831556),
			Clockwise,
		},
	}
	for _, test := range tests {
		if got := OrientationIndex(test.p1, test.p2, test.q); got != test.want {
			t.Errorf("OrientationIndex(%v, %v, %v) = %v, want %v", test.p1, test.p2, test.q, got, test.want)
		}
	}
}

func exactOrientation(p1, p2, q Coord) Orientation {
	f := func(v float64) *big.Float { return new(big.Float).SetPrec(2200).SetFloat64(v) }
	sub := func(a, b float64) *big.Float { return new(big.Float).SetPrec(2200).Sub(f(a), f(b)) }
	l := new(big.Float).SetPrec(2200).Mul(sub(p1.X, q.X), sub(p2.Y, q.Y))
	r := new(big.Float).SetPrec(2200).Mul(sub(p1.Y, q.Y), sub(p2.X, q.X))
	return Orientation(l.Sub(l, r).Sign())
}

func TestOrientationIndexMatchesExact(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 5000; i++ {
		p1 := NewCoord(r.Float64()*1000, r.Float64()*1000)
		p2 := NewCoord(r.Float64()*1000, r.Float64()*1000)
		// Place q very near the line p1-p2.
		s := r.Float64()*3 - 1
		q := NewCoord(p1.X+s*(p2.X-p1.X), p1.Y+s*(p2.Y-p1.Y))
		q.X += (r.Float64() - 0.5) * 1e-11
		if got, want := OrientationIndex(p1, p2, q), exactOrientation(p1, p2, q); got != want {
			t.Fatalf("OrientationIndex(%v, %v, %v) = %v, want %v", p1, p2, q, got, want)
		}
	}
}

func TestOrientationAntisymmetry(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 2000; i++ {
		p1 := NewCoord(r.NormFloat64(), r.NormFloat64())
		p2 := NewCoord(r.NormFloat64(), r.NormFloat64())
		s := r.Float64()
		q := NewCoord(p1.X+s*(p2.X-p1.X), p1.Y+s*(p2.Y-p1.Y))
		if i%3 == 0 {
			q = NewCoord(r.NormFloat64(), r.NormFloat64())
		}
		a := OrientationIndex(p1, p2, q)
		b := OrientationIndex(p2, p1, q)
		if a != -b {
			t.Fatalf("OrientationIndex(%v, %v, %v) = %v but reversed = %v", p1, p2, q, a, b)
		}
	}
}
