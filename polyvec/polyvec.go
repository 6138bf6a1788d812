// Package polyvec lifts ring's per-polynomial operations to the
// variable-length vectors spec.md's matrix and key/signature types are
// built from: the L-wide vectors s1/y/z, the K-wide vectors s2/t/w/h, and
// the K-by-L public matrix A. A plain Go slice replaces the reference
// layer's fixed-size polyvecl/polyveck structs; the same functions serve
// both widths, parameterized by len(v) rather than a compile-time L/K.
package polyvec

import (
	"mldsa/field"
	"mldsa/ring"
	"mldsa/sample"
)

// Vec is a vector of coefficient-domain polynomials.
type Vec []ring.Poly

// NTTVec is a vector of NTT-domain polynomials.
type NTTVec []ring.NTTPoly

// New returns a zero vector of length n.
func New(n int) Vec { return make(Vec, n) }

// Add returns u+v element-wise, without reduction.
func (v Vec) Add(u Vec) Vec {
	out := make(Vec, len(v))
	for i := range v {
		out[i] = v[i].Add(u[i])
	}
	return out
}

// Sub returns v-u element-wise, without reduction.
func (v Vec) Sub(u Vec) Vec {
	out := make(Vec, len(v))
	for i := range v {
		out[i] = v[i].Sub(u[i])
	}
	return out
}

// ShiftLeft multiplies every coefficient of every polynomial by 2^d.
func (v Vec) ShiftLeft(d uint) Vec {
	out := make(Vec, len(v))
	for i := range v {
		out[i] = v[i].ShiftLeft(d)
	}
	return out
}

// Reduce reduces every coefficient to |r| <= field.ReduceRangeMax.
func (v Vec) Reduce() Vec {
	out := make(Vec, len(v))
	for i := range v {
		out[i] = v[i].Reduce()
	}
	return out
}

// CAddQ adds Q to every negative coefficient.
func (v Vec) CAddQ() Vec {
	out := make(Vec, len(v))
	for i := range v {
		out[i] = v[i].CAddQ()
	}
	return out
}

// Freeze reduces every coefficient to its canonical representative.
func (v Vec) Freeze() Vec {
	out := make(Vec, len(v))
	for i := range v {
		out[i] = v[i].Freeze()
	}
	return out
}

// ChkNorm reports whether any polynomial in v has a coefficient whose
// symmetric representative has absolute value >= bound.
func (v Vec) ChkNorm(bound int32) bool {
	for i := range v {
		if v[i].ChkNorm(bound) {
			return true
		}
	}
	return false
}

// NTT transforms every polynomial in v into the NTT domain.
func (v Vec) NTT() NTTVec {
	out := make(NTTVec, len(v))
	for i := range v {
		out[i] = v[i].NTT()
	}
	return out
}

// InvNTTToMont inverse-transforms every polynomial in v, landing the
// result in Montgomery form.
func (v NTTVec) InvNTTToMont() Vec {
	out := make(Vec, len(v))
	for i := range v {
		out[i] = v[i].InvNTTToMont()
	}
	return out
}

// PointwiseAccMontgomery computes sum_i u_i * v_i in the NTT domain, one
// Montgomery factor consumed per term -- the inner product that drives
// both ExpandA's row-vector product t = A*s1 and the verifier's
// recomputation of w = A*z - c*t1*2^D.
func PointwiseAccMontgomery(u, v NTTVec) ring.NTTPoly {
	var acc ring.NTTPoly
	for i := range u {
		term := ring.PointwiseMontgomery(u[i], v[i])
		for j := range acc.Coeffs {
			acc.Coeffs[j] = field.Reduce32(acc.Coeffs[j] + term.Coeffs[j])
		}
	}
	return acc
}

// PointwisePolyMontgomery scales every polynomial in v by the single
// NTT-domain polynomial a, e.g. multiplying the challenge c into s1/s2/t0
// one vector entry at a time.
func PointwisePolyMontgomery(a ring.NTTPoly, v NTTVec) NTTVec {
	out := make(NTTVec, len(v))
	for i := range v {
		out[i] = ring.PointwiseMontgomery(a, v[i])
	}
	return out
}

// Power2Round splits every coefficient of every polynomial in v into
// (hi, lo) via ring.Poly.Power2Round.
func (v Vec) Power2Round() (hi, lo Vec) {
	hi = make(Vec, len(v))
	lo = make(Vec, len(v))
	for i := range v {
		hi[i], lo[i] = v[i].Power2Round()
	}
	return hi, lo
}

// Decompose splits every coefficient of every polynomial in v into
// (hi, lo) via ring.Poly.Decompose.
func (v Vec) Decompose(gamma2 int32) (hi, lo Vec) {
	hi = make(Vec, len(v))
	lo = make(Vec, len(v))
	for i := range v {
		hi[i], lo[i] = v[i].Decompose(gamma2)
	}
	return hi, lo
}

// MakeHint computes, element-wise, ring.MakeHint(v0[i], v1[i], gamma2) and
// sums the per-polynomial weights.
func MakeHint(v0, v1 Vec, gamma2 int32) (h Vec, weight int) {
	h = make(Vec, len(v0))
	for i := range v0 {
		var w int
		h[i], w = ring.MakeHint(v0[i], v1[i], gamma2)
		weight += w
	}
	return h, weight
}

// UseHint applies hint vector h to v, element-wise.
func (v Vec) UseHint(h Vec, gamma2 int32) Vec {
	out := make(Vec, len(v))
	for i := range v {
		out[i] = v[i].UseHint(h[i], gamma2)
	}
	return out
}

// UniformEta expands (seed, nonce, nonce+1, ...) into a length-n vector
// with coefficients in [-eta, eta], consuming one nonce per polynomial in
// the order the reference layer's polyvecl_uniform_eta/
// polyveck_uniform_eta do.
func UniformEta(seed []byte, nonce uint16, eta int32, n int) Vec {
	out := make(Vec, n)
	for i := range out {
		out[i] = sample.EtaBounded(seed, nonce+uint16(i), eta)
	}
	return out
}

// UniformGamma1 expands (seed, nonce, nonce+1, ...) into a length-n
// vector with coefficients in (-gamma1, gamma1], mirroring
// polyvecl_uniform_gamma1.
func UniformGamma1(seed []byte, nonce uint16, gamma1 int32, bits, n int) Vec {
	out := make(Vec, n)
	for i := range out {
		out[i] = sample.Gamma1(seed, nonce+uint16(i), gamma1, bits)
	}
	return out
}

// MatrixExpand expands rho into the public K-by-L matrix A directly in
// the NTT domain (rejection sampling already produces NTT-domain
// coefficients, per FIPS 204's RejNTTPoly, so there's no separate
// transform step). Per spec.md §5, rows are independent: each runs in its
// own goroutine, every goroutine owning its own XOF state.
func MatrixExpand(rho []byte, k, l int) []NTTVec {
	mat := make([]NTTVec, k)
	done := make(chan int, k)
	for i := 0; i < k; i++ {
		go func(i int) {
			row := make(NTTVec, l)
			for j := 0; j < l; j++ {
				nonce := uint16(i)<<8 | uint16(j)
				row[j] = sample.Uniform(rho, nonce)
			}
			mat[i] = row
			done <- i
		}(i)
	}
	for i := 0; i < k; i++ {
		<-done
	}
	return mat
}

// MatrixPointwiseMontgomery computes t = A*v, one row-vector inner
// product per entry of t.
func MatrixPointwiseMontgomery(mat []NTTVec, v NTTVec) NTTVec {
	t := make(NTTVec, len(mat))
	for i := range mat {
		t[i] = PointwiseAccMontgomery(mat[i], v)
	}
	return t
}
