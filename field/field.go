// Package field implements the modular arithmetic primitives of the
// ML-DSA prime field Z_Q with Q = 8380417 = 2^23 - 2^13 + 1.
//
// Every function here is total over its documented input range: there is
// no failure mode, only a numerical contract on the output magnitude that
// callers further up the stack (ring, polyvec) rely on to bound their own
// outputs.
package field

// Q is the ML-DSA prime modulus, Q = 2^23 - 2^13 + 1.
const Q int32 = 8380417

// mont is 2^32 mod Q in its centered (signed) representative.
const mont int32 = -4186625

// qinv is Q^(-1) mod 2^32, used by MontgomeryReduce.
const qinv int32 = 58728449

// ReduceRangeMax bounds the output of Reduce32: |Reduce32(a)| <= ReduceRangeMax.
const ReduceRangeMax int32 = 6283008

// MontgomeryReduce computes r == a * (2^32)^-1 (mod Q) with |r| < Q,
// given |a| <= 2^31 * Q. This is the inner reduction used by every NTT
// butterfly and pointwise-multiply.
func MontgomeryReduce(a int64) int32 {
	t := int32(a) * qinv
	r := int32((a - int64(t)*int64(Q)) >> 32)
	// At a = 2^31 * Q the quotient is exactly Q; fold it to 0.
	r -= ((Q - 1 - r) >> 31) & Q
	return r
}

// Reduce32 reduces a 32-bit value to a representative r with
// |r| <= ReduceRangeMax, r == a (mod Q). This is the Barrett-style
// reduction named in the numerical contract of the polynomial layer.
func Reduce32(a int32) int32 {
	t := (a + (1 << 22)) >> 23
	return a - t*Q
}

// CAddQ adds Q to a if a is negative, producing a canonical non-negative
// residue when the input is already reduced to (-Q, Q).
func CAddQ(a int32) int32 {
	a += (a >> 31) & Q
	return a
}

// Freeze reduces a to its canonical representative in [0, Q).
func Freeze(a int32) int32 {
	return CAddQ(Reduce32(a))
}
