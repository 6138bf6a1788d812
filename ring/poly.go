// Package ring implements the polynomial ring Z_Q[X]/(X^N+1) operations of
// spec.md §4.2-§4.3: coefficient-domain ring arithmetic, the forward/inverse
// NTT, and the per-coefficient rounding primitives (Power2Round, Decompose,
// MakeHint, UseHint) that polyvec lifts to vectors.
//
// Two distinct types tag the domain a Poly lives in at compile time (the
// redesign spec.md §9 calls for): Poly for the coefficient domain and
// NTTPoly for the evaluation domain. Only NTT/InvNTTToMont cross between
// them, so a caller cannot accidentally pointwise-multiply two
// coefficient-domain polynomials or add across domains.
package ring

import "mldsa/field"

// N is the polynomial degree.
const N = 256

// Q is the ML-DSA prime modulus.
const Q = field.Q

// Poly holds N coefficients in the standard coefficient domain.
type Poly struct {
	Coeffs [N]int32
}

// NTTPoly holds N coefficients in the NTT (evaluation) domain, in
// bit-reversed order.
type NTTPoly struct {
	Coeffs [N]int32
}

// Add computes c = a + b coefficient-wise, without reduction. Precondition:
// |a_i| + |b_i| must not overflow int32; violation is a caller logic error.
func (a Poly) Add(b Poly) Poly {
	var c Poly
	for i := range c.Coeffs {
		c.Coeffs[i] = a.Coeffs[i] + b.Coeffs[i]
	}
	return c
}

// Sub computes c = a - b coefficient-wise, without reduction.
func (a Poly) Sub(b Poly) Poly {
	var c Poly
	for i := range c.Coeffs {
		c.Coeffs[i] = a.Coeffs[i] - b.Coeffs[i]
	}
	return c
}

// ShiftLeft multiplies every coefficient by 2^D without modular reduction.
// Precondition: |a_i| < 2^(31-D).
func (a Poly) ShiftLeft(d uint) Poly {
	var c Poly
	for i := range c.Coeffs {
		c.Coeffs[i] = a.Coeffs[i] << d
	}
	return c
}

// Reduce reduces every coefficient to a representative with
// |r| <= field.ReduceRangeMax.
func (a Poly) Reduce() Poly {
	var c Poly
	for i := range c.Coeffs {
		c.Coeffs[i] = field.Reduce32(a.Coeffs[i])
	}
	return c
}

// CAddQ adds Q to every negative coefficient.
func (a Poly) CAddQ() Poly {
	var c Poly
	for i := range c.Coeffs {
		c.Coeffs[i] = field.CAddQ(a.Coeffs[i])
	}
	return c
}

// Freeze reduces every coefficient to its canonical representative in
// [0, Q).
func (a Poly) Freeze() Poly {
	var c Poly
	for i := range c.Coeffs {
		c.Coeffs[i] = field.Freeze(a.Coeffs[i])
	}
	return c
}

// ChkNorm returns true iff some coefficient has absolute value >= bound.
// Coefficients are assumed to already be centered (signed, in (-Q, Q)) --
// this takes their absolute value directly, it does not canonicalize them
// into [0, Q) first. Folds its result with bitwise OR rather than
// early-returning so the check is branch-uniform over secret coefficients,
// per spec.md §4.2. Precondition: bound <= (Q-1)/8.
func (a Poly) ChkNorm(bound int32) bool {
	var fail int32
	for _, c := range a.Coeffs {
		sign := c >> 31       // 0 if c >= 0, -1 (all ones) if c < 0
		t := (c ^ sign) - sign // |c|
		ge := (t - bound) >> 31 // 0 if t >= bound, -1 (all ones) otherwise
		fail |= ^ge
	}
	return fail != 0
}

// Power2Round splits a (a canonical representative in [0, Q)) into
// (a1, a0) with a = a1*2^D + a0 and -2^(D-1) < a0 <= 2^(D-1).
func (a Poly) Power2Round() (a1, a0 Poly) {
	for i := range a.Coeffs {
		hi, lo := power2RoundCoeff(a.Coeffs[i])
		a1.Coeffs[i] = hi
		a0.Coeffs[i] = lo
	}
	return a1, a0
}

func power2RoundCoeff(a int32) (a1, a0 int32) {
	a1 = (a + (1 << (D - 1)) - 1) >> D
	a0 = a - a1<<D
	return a1, a0
}

// D is the number of low bits dropped by Power2Round.
const D = 13

// Decompose splits a (canonical, in [0, Q)) into (a1, a0) with
// a = a1*2*gamma2 + a0, -gamma2 < a0 <= gamma2, except a1 wraps to 0 when
// it would equal (Q-1)/(2*gamma2).
func (a Poly) Decompose(gamma2 int32) (a1, a0 Poly) {
	for i := range a.Coeffs {
		hi, lo := decomposeCoeff(a.Coeffs[i], gamma2)
		a1.Coeffs[i] = hi
		a0.Coeffs[i] = lo
	}
	return a1, a0
}

func decomposeCoeff(a, gamma2 int32) (a1, a0 int32) {
	a1 = (a + 127) >> 7
	if gamma2 == (Q-1)/32 {
		a1 = (a1*1025 + (1 << 21)) >> 22
		a1 &= 15
	} else { // gamma2 == (Q-1)/88
		a1 = (a1*11275 + (1 << 23)) >> 24
		a1 ^= ((43 - a1) >> 31) & a1
	}
	a0 = a - a1*2*gamma2
	a0 -= (((Q-1)/2 - a0) >> 31) & Q
	return a1, a0
}

// MakeHint computes, for each coefficient, h_i = 1 iff adding the low-part
// correction v0_i to v1_i changes the recovered high part under Decompose.
// v0 and v1 need not be reduced; MakeHint freezes internally. Returns the
// hint polynomial and its Hamming weight.
func MakeHint(v0, v1 Poly, gamma2 int32) (h Poly, weight int) {
	for i := range h.Coeffs {
		hi1, _ := decomposeCoeff(field.Freeze(v1.Coeffs[i]), gamma2)
		hi2, _ := decomposeCoeff(field.Freeze(v1.Coeffs[i]+v0.Coeffs[i]), gamma2)
		if hi1 != hi2 {
			h.Coeffs[i] = 1
			weight++
		}
	}
	return h, weight
}

// UseHint applies hint h to recover the corrected high part of a.
func (a Poly) UseHint(h Poly, gamma2 int32) Poly {
	var out Poly
	m := (Q - 1) / (2 * gamma2)
	for i := range out.Coeffs {
		a1, a0 := decomposeCoeff(a.Coeffs[i], gamma2)
		if h.Coeffs[i] == 0 {
			out.Coeffs[i] = a1
			continue
		}
		if a0 > 0 {
			out.Coeffs[i] = (a1 + 1) % m
		} else {
			v := a1 - 1
			if v < 0 {
				v = m - 1
			}
			out.Coeffs[i] = v
		}
	}
	return out
}
