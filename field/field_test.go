package field

import "testing"

func TestReduce32Bound(t *testing.T) {
	inputs := []int32{0, 1, -1, Q, -Q, Q - 1, -(Q - 1), 1 << 30, -(1 << 30)}
	for _, a := range inputs {
		r := Reduce32(a)
		if r > ReduceRangeMax || r < -ReduceRangeMax {
			t.Fatalf("Reduce32(%d) = %d out of range +-%d", a, r, ReduceRangeMax)
		}
		if mod(int64(r), int64(Q)) != mod(int64(a), int64(Q)) {
			t.Fatalf("Reduce32(%d) = %d not congruent mod Q", a, r)
		}
	}
}

func TestCAddQCanonical(t *testing.T) {
	for _, a := range []int32{0, 1, -1, Q - 1, -(Q - 1)} {
		r := CAddQ(Reduce32(a))
		if r < 0 || r >= Q {
			t.Fatalf("CAddQ(Reduce32(%d)) = %d not in [0, Q)", a, r)
		}
	}
}

func TestFreezeCanonical(t *testing.T) {
	for a := int32(-3 * Q); a <= 3*Q; a += Q / 7 {
		r := Freeze(a)
		if r < 0 || r >= Q {
			t.Fatalf("Freeze(%d) = %d not in [0, Q)", a, r)
		}
		if mod(int64(r), int64(Q)) != mod(int64(a), int64(Q)) {
			t.Fatalf("Freeze(%d) = %d not congruent mod Q", a, r)
		}
	}
}

func TestMontgomeryReduceBound(t *testing.T) {
	const r64 = int64(1) << 32
	cases := []int64{0, 1, -1, int64(Q) * (1 << 31), -int64(Q) * (1 << 31)}
	for _, a := range cases {
		got := MontgomeryReduce(a)
		if got >= Q || got <= -Q {
			t.Fatalf("MontgomeryReduce(%d) = %d out of range (-Q, Q)", a, got)
		}
		want := mod(mod(a, int64(Q))*modInverse(r64, int64(Q)), int64(Q))
		if mod(int64(got), int64(Q)) != want {
			t.Fatalf("MontgomeryReduce(%d) = %d, want congruent to %d mod Q", a, got, want)
		}
	}
}

func mod(a, m int64) int64 {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// modInverse computes the modular inverse of a mod m for the small, fixed
// values this test uses (m prime), via Fermat's little theorem.
func modInverse(a, m int64) int64 {
	a = mod(a, m)
	res := int64(1)
	exp := m - 2
	base := a
	for exp > 0 {
		if exp&1 == 1 {
			res = mod(res*base, m)
		}
		base = mod(base*base, m)
		exp >>= 1
	}
	return res
}
