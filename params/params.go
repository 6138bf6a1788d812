// Package params defines the ML-DSA parameter sets (levels 44, 65, 87) as
// compile-time constant records, the idiomatic-Go replacement for the
// visible C source's MLD_NAMESPACE textual symbol prefixing (spec §9).
package params

import "fmt"

// N is the polynomial degree, fixed across every security level.
const N = 256

// Q is the ML-DSA prime modulus, the same value as field.Q; kept as an
// untyped constant so packages can use it in both int32 and int contexts
// without conversion noise.
const Q = 8380417

// SeedBytes, CRHBytes, TRBytes are fixed across every level.
const (
	SeedBytes = 32
	CRHBytes  = 64
	TRBytes   = 64
)

// Name identifies a security level.
type Name string

const (
	ML_DSA_44 Name = "ML-DSA-44"
	ML_DSA_65 Name = "ML-DSA-65"
	ML_DSA_87 Name = "ML-DSA-87"
)

// Level bundles every constant from spec.md §3's parameter table for one
// security level, plus the wire-format byte lengths derived from them.
type Level struct {
	Name Name

	K   int // rows of matrix A
	L   int // columns of matrix A
	Eta int32
	Tau int // challenge Hamming weight

	Gamma1 int32 // mask range, a power of two
	Gamma2 int32 // low-bits rounding granularity
	Beta   int32 // Tau * Eta
	Omega  int   // max total hint weight

	CTildeBytes int

	// Derived bit widths for the per-polynomial codecs of spec.md §4.5.
	EtaBits int // bits per coefficient for the eta codec
	ZBits   int // bits per coefficient for the gamma1 (z) codec
	W1Bits  int // bits per coefficient for the w1 codec
}

// D is the number of low bits of t dropped by Power2Round, fixed at 13.
const D = 13

var levels = map[Name]Level{
	ML_DSA_44: {
		Name: ML_DSA_44, K: 4, L: 4, Eta: 2, Tau: 39,
		Gamma1: 1 << 17, Gamma2: (Q - 1) / 88, Beta: 39 * 2, Omega: 80,
		CTildeBytes: 32, EtaBits: 3, ZBits: 18, W1Bits: 6,
	},
	ML_DSA_65: {
		Name: ML_DSA_65, K: 6, L: 5, Eta: 4, Tau: 49,
		Gamma1: 1 << 19, Gamma2: (Q - 1) / 32, Beta: 49 * 4, Omega: 55,
		CTildeBytes: 48, EtaBits: 4, ZBits: 20, W1Bits: 4,
	},
	ML_DSA_87: {
		Name: ML_DSA_87, K: 8, L: 7, Eta: 2, Tau: 60,
		Gamma1: 1 << 19, Gamma2: (Q - 1) / 32, Beta: 60 * 2, Omega: 75,
		CTildeBytes: 64, EtaBits: 3, ZBits: 20, W1Bits: 4,
	},
}

// Get returns the parameter record for a named security level.
func Get(name Name) (Level, error) {
	lv, ok := levels[name]
	if !ok {
		return Level{}, fmt.Errorf("params: unknown level %q", name)
	}
	return lv, nil
}

// PolyT1Bytes, PolyT0Bytes are fixed: t1 is always 10 bits, t0 always 13.
const (
	PolyT1Bytes = N * 10 / 8
	PolyT0Bytes = N * 13 / 8
)

// PolyEtaBytes returns the packed byte length of one eta-bounded polynomial.
func (lv Level) PolyEtaBytes() int { return N * lv.EtaBits / 8 }

// PolyZBytes returns the packed byte length of one gamma1-range polynomial.
func (lv Level) PolyZBytes() int { return N * lv.ZBits / 8 }

// PolyW1Bytes returns the packed byte length of one w1 polynomial.
func (lv Level) PolyW1Bytes() int { return N * lv.W1Bits / 8 }

// HintBytes is the length of the packed hint block, omega + K.
func (lv Level) HintBytes() int { return lv.Omega + lv.K }

// PublicKeyBytes is the wire length of a packed public key.
func (lv Level) PublicKeyBytes() int {
	return SeedBytes + lv.K*PolyT1Bytes
}

// SecretKeyBytes is the wire length of a packed secret key.
func (lv Level) SecretKeyBytes() int {
	return SeedBytes + SeedBytes + TRBytes +
		lv.L*lv.PolyEtaBytes() + lv.K*lv.PolyEtaBytes() + lv.K*PolyT0Bytes
}

// SignatureBytes is the wire length of a packed signature.
func (lv Level) SignatureBytes() int {
	return lv.CTildeBytes + lv.L*lv.PolyZBytes() + lv.HintBytes()
}
