package ring

import "mldsa/field"

// NTT computes the forward number-theoretic transform in place over a copy
// of a, a Cooley-Tukey decimation-in-time butterfly network. The result's
// coefficients sit in bit-reversed order (the Montgomery-form zetas cancel
// their own 2^32 factor, so no Montgomery factor is added), tagged by
// the returned NTTPoly type so the coefficient domain can't leak back in
// without going through InvNTTToMont.
func (a Poly) NTT() NTTPoly {
	c := a.Coeffs
	k := 0
	for length := 128; length > 0; length >>= 1 {
		for start := 0; start < N; start += 2 * length {
			k++
			zeta := zetas[k]
			for j := start; j < start+length; j++ {
				t := field.MontgomeryReduce(int64(zeta) * int64(c[j+length]))
				c[j+length] = c[j] - t
				c[j] = c[j] + t
			}
		}
	}
	return NTTPoly{Coeffs: c}
}

// InvNTTToMont computes the inverse NTT via a Gentleman-Sande
// decimation-in-frequency butterfly network, scaling the result by N^-1 so
// it lands directly in Montgomery form (the "ToMont" in the name). The
// caller still owes the domain one factor of 2^32 that every subsequent
// MontgomeryReduce in the pipeline accounts for.
func (c NTTPoly) InvNTTToMont() Poly {
	a := c.Coeffs
	k := 256
	for length := 1; length < N; length <<= 1 {
		for start := 0; start < N; start += 2 * length {
			k--
			zeta := -zetas[k]
			for j := start; j < start+length; j++ {
				t := a[j]
				a[j] = t + a[j+length]
				a[j+length] = t - a[j+length]
				a[j+length] = field.MontgomeryReduce(int64(zeta) * int64(a[j+length]))
			}
		}
	}
	for j := range a {
		a[j] = field.MontgomeryReduce(int64(invNMont) * int64(a[j]))
	}
	return Poly{Coeffs: a}
}

// PointwiseMontgomery computes c_i = a_i * b_i (mod Q) in the NTT domain,
// consuming one Montgomery factor per coefficient.
func PointwiseMontgomery(a, b NTTPoly) NTTPoly {
	var c NTTPoly
	for i := range c.Coeffs {
		c.Coeffs[i] = field.MontgomeryReduce(int64(a.Coeffs[i]) * int64(b.Coeffs[i]))
	}
	return c
}
