package ring

import (
	"mldsa/field"
	"testing"
)

// lcg is a tiny deterministic pseudo-random source so tests don't need
// crypto/rand and stay reproducible without a fixed corpus file.
func lcg(seed uint32) func() int32 {
	state := seed
	return func() int32 {
		state = state*1664525 + 1013904223
		return int32(state % uint32(Q))
	}
}

func TestNTTInvNTTRoundTrip(t *testing.T) {
	next := lcg(1)
	var p Poly
	for i := range p.Coeffs {
		p.Coeffs[i] = next()
	}

	got := p.NTT().InvNTTToMont()

	// InvNTTToMont leaves results in Montgomery form (an extra factor of
	// 2^32); multiplying by 1 in the NTT domain strips it back to the
	// ordinary coefficient domain for comparison against the original.
	one := NTTPoly{}
	for i := range one.Coeffs {
		one.Coeffs[i] = 1
	}
	stripped := PointwiseMontgomery(NTTPoly{Coeffs: got.Coeffs}, one)

	for i := range p.Coeffs {
		want := field.Freeze(p.Coeffs[i])
		have := field.Freeze(stripped.Coeffs[i])
		if want != have {
			t.Fatalf("coefficient %d: NTT round trip mismatch: want %d got %d", i, want, have)
		}
	}
}

func TestNTTInvNTTFixedPointOnConstantPoly(t *testing.T) {
	var p Poly
	p.Coeffs[0] = 1

	got := p.NTT().InvNTTToMont()
	for i := range got.Coeffs {
		want := int32(0)
		if i == 0 {
			want = field.Freeze(int32((int64(1) << 32) % int64(Q)))
		}
		if have := field.Freeze(got.Coeffs[i]); have != want {
			t.Fatalf("coefficient %d: NTT/InvNTTToMont of [1,0,...,0]: got %d want %d", i, have, want)
		}
	}
}

func TestPointwiseMontgomeryMatchesConvolution(t *testing.T) {
	// X^1 * X^2 in the NTT domain should equal the degree-3 monomial in
	// the coefficient domain, since the ring modulus X^N+1 doesn't wrap
	// for such small exponents.
	var a, b Poly
	a.Coeffs[1] = 1
	b.Coeffs[2] = 1

	c := PointwiseMontgomery(a.NTT(), b.NTT()).InvNTTToMont()

	for i := range c.Coeffs {
		got := field.Freeze(c.Coeffs[i])
		want := int32(0)
		if i == 3 {
			want = 1
		}
		if got != want {
			t.Fatalf("coefficient %d: want %d got %d", i, want, got)
		}
	}
}
