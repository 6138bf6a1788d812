// Package pack implements the canonical byte encodings of spec.md §4.5:
// the per-coefficient-range polynomial codecs (t1, t0, eta, z, w1) and the
// hint-vector codec. Every polynomial codec operates on a single
// ring.Poly (the hint codec takes the whole vector); the keys package
// lifts them to whole key/signature encodings.
//
// Unlike the reference C layer's field-element (always-canonical, mod Q)
// representation, ring.Poly stores coefficients as plain signed int32 in
// their natural centered range, so packing is direct subtraction rather
// than the reference's mod-Q fieldSub.
package pack

import (
	"errors"

	"mldsa/params"
	"mldsa/ring"
)

// ErrMalformedEncoding is returned by the Unpack* functions when the wire
// bytes decode to a coefficient outside the codec's declared range.
var ErrMalformedEncoding = errors.New("pack: malformed polynomial encoding")

// T1 packs a polynomial with coefficients in [0, 2^10) at 10 bits each.
func T1(p ring.Poly) []byte {
	b := make([]byte, params.PolyT1Bytes)
	for i := 0; i < ring.N; i += 4 {
		x := uint64(p.Coeffs[i]) | uint64(p.Coeffs[i+1])<<10 |
			uint64(p.Coeffs[i+2])<<20 | uint64(p.Coeffs[i+3])<<30
		o := i / 4 * 5
		b[o] = byte(x)
		b[o+1] = byte(x >> 8)
		b[o+2] = byte(x >> 16)
		b[o+3] = byte(x >> 24)
		b[o+4] = byte(x >> 32)
	}
	return b
}

// UnpackT1 reverses T1. Every 10-bit field is valid, so this never fails.
func UnpackT1(b []byte) ring.Poly {
	var p ring.Poly
	for i := 0; i < ring.N; i += 4 {
		x := le40(b[i/4*5:])
		p.Coeffs[i] = int32(x & 0x3ff)
		p.Coeffs[i+1] = int32((x >> 10) & 0x3ff)
		p.Coeffs[i+2] = int32((x >> 20) & 0x3ff)
		p.Coeffs[i+3] = int32((x >> 30) & 0x3ff)
	}
	return p
}

// T0 packs a polynomial with coefficients in (-2^12, 2^12] at 13 bits
// each, centered around 2^12 so every packed value is non-negative.
func T0(p ring.Poly) []byte {
	const center = 1 << 12
	b := make([]byte, params.PolyT0Bytes)
	idx := 0
	for i := 0; i < ring.N; i += 8 {
		var x1, x2 uint64
		x1 = uint64(center - p.Coeffs[i])
		x1 |= uint64(center-p.Coeffs[i+1]) << 13
		x1 |= uint64(center-p.Coeffs[i+2]) << 26
		x1 |= uint64(center-p.Coeffs[i+3]) << 39
		a := uint64(center - p.Coeffs[i+4])
		x1 |= a << 52
		x2 = a >> 12
		x2 |= uint64(center-p.Coeffs[i+5]) << 1
		x2 |= uint64(center-p.Coeffs[i+6]) << 14
		x2 |= uint64(center-p.Coeffs[i+7]) << 27
		putLE64(b[idx:], x1)
		putLE40(b[idx+8:], x2)
		idx += 13
	}
	return b
}

// UnpackT0 reverses T0. Every 13-bit field decodes to a value in range,
// so this never fails.
func UnpackT0(b []byte) ring.Poly {
	const center = 1 << 12
	const mask = 1<<13 - 1
	var p ring.Poly
	for i := 0; i < ring.N; i += 8 {
		x1 := le64(b)
		x2 := le40(b[8:])
		b = b[13:]
		p.Coeffs[i] = center - int32(x1&mask)
		p.Coeffs[i+1] = center - int32((x1>>13)&mask)
		p.Coeffs[i+2] = center - int32((x1>>26)&mask)
		p.Coeffs[i+3] = center - int32((x1>>39)&mask)
		p.Coeffs[i+4] = center - int32(((x1>>52)|(x2<<12))&mask)
		p.Coeffs[i+5] = center - int32((x2>>1)&mask)
		p.Coeffs[i+6] = center - int32((x2>>14)&mask)
		p.Coeffs[i+7] = center - int32((x2>>27)&mask)
	}
	return p
}

// Eta packs a polynomial with coefficients in [-eta, eta] using
// params.Level.EtaBits bits per coefficient (3 for eta=2, 4 for eta=4).
func Eta(p ring.Poly, eta int32, bits int) []byte {
	if bits == 3 {
		b := make([]byte, ring.N*3/8)
		for i := 0; i < ring.N; i += 8 {
			var x uint32
			for j := 0; j < 8; j++ {
				x |= uint32(eta-p.Coeffs[i+j]) << (3 * j)
			}
			o := i / 8 * 3
			b[o] = byte(x)
			b[o+1] = byte(x >> 8)
			b[o+2] = byte(x >> 16)
		}
		return b
	}
	b := make([]byte, ring.N*4/8)
	for i := 0; i < ring.N; i += 2 {
		b[i/2] = byte(eta-p.Coeffs[i]) | byte(eta-p.Coeffs[i+1])<<4
	}
	return b
}

// UnpackEta reverses Eta, rejecting encodings whose 3- or 4-bit groups
// decode to a value outside [0, 2*eta], i.e. a coefficient outside
// [-eta, eta]. UnpackT0 and UnpackZ perform no such check: every bit
// pattern they read decodes into their declared range.
func UnpackEta(b []byte, eta int32, bits int) (ring.Poly, error) {
	var p ring.Poly
	if bits == 3 {
		for i := 0; i < ring.N; i += 8 {
			x := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
			b = b[3:]
			for j := 0; j < 8; j++ {
				v := (x >> (3 * j)) & 0x7
				if v > 4 {
					return ring.Poly{}, ErrMalformedEncoding
				}
				p.Coeffs[i+j] = eta - int32(v)
			}
		}
		return p, nil
	}
	for i := 0; i < ring.N; i += 2 {
		lo := b[i/2] & 0x0f
		hi := b[i/2] >> 4
		if lo > 8 || hi > 8 {
			return ring.Poly{}, ErrMalformedEncoding
		}
		p.Coeffs[i] = eta - int32(lo)
		p.Coeffs[i+1] = eta - int32(hi)
	}
	return p, nil
}

// Z packs a polynomial with coefficients in (-gamma1, gamma1] using 18
// bits per coefficient (gamma1 = 2^17) or 20 bits (gamma1 = 2^19).
func Z(p ring.Poly, gamma1 int32, bits int) []byte {
	b := make([]byte, ring.N*bits/8)
	if bits == 18 {
		idx := 0
		for i := 0; i < ring.N; i += 4 {
			var x1, x2 uint64
			x1 = uint64(gamma1 - p.Coeffs[i])
			x1 |= uint64(gamma1-p.Coeffs[i+1]) << 18
			x1 |= uint64(gamma1-p.Coeffs[i+2]) << 36
			x2 = uint64(gamma1 - p.Coeffs[i+3])
			x1 |= x2 << 54
			x2 >>= 10
			putLE64(b[idx:], x1)
			b[idx+8] = byte(x2)
			idx += 9
		}
		return b
	}
	idx := 0
	for i := 0; i < ring.N; i += 4 {
		var x1, x2 uint64
		x1 = uint64(gamma1 - p.Coeffs[i])
		x1 |= uint64(gamma1-p.Coeffs[i+1]) << 20
		x1 |= uint64(gamma1-p.Coeffs[i+2]) << 40
		x2 = uint64(gamma1 - p.Coeffs[i+3])
		x1 |= x2 << 60
		x2 >>= 4
		putLE64(b[idx:], x1)
		b[idx+8] = byte(x2)
		b[idx+9] = byte(x2 >> 8)
		idx += 10
	}
	return b
}

// UnpackZ reverses Z. Every field is valid for its declared bit width, so
// this never fails; ChkNorm catches any out-of-bound z during Verify.
func UnpackZ(b []byte, gamma1 int32, bits int) ring.Poly {
	var p ring.Poly
	if bits == 18 {
		const mask = 1<<18 - 1
		for i := 0; i < ring.N; i += 4 {
			x1 := le64(b)
			x2 := uint64(b[8])
			b = b[9:]
			p.Coeffs[i] = gamma1 - int32(x1&mask)
			p.Coeffs[i+1] = gamma1 - int32((x1>>18)&mask)
			p.Coeffs[i+2] = gamma1 - int32((x1>>36)&mask)
			p.Coeffs[i+3] = gamma1 - int32(((x1>>54)|(x2<<10))&mask)
		}
		return p
	}
	const mask = 1<<20 - 1
	for i := 0; i < ring.N; i += 4 {
		x1 := le64(b)
		x2 := uint64(b[8]) | uint64(b[9])<<8
		b = b[10:]
		p.Coeffs[i] = gamma1 - int32(x1&mask)
		p.Coeffs[i+1] = gamma1 - int32((x1>>20)&mask)
		p.Coeffs[i+2] = gamma1 - int32((x1>>40)&mask)
		p.Coeffs[i+3] = gamma1 - int32(((x1>>60)|(x2<<4))&mask)
	}
	return p
}

// W1 packs the high-order bits of w, used only as input to the
// commitment hash: 6 bits/coefficient when gamma2 = (Q-1)/88 (ML-DSA-44),
// 4 bits/coefficient when gamma2 = (Q-1)/32 (the other two levels).
func W1(p ring.Poly, bits int) []byte {
	if bits == 4 {
		b := make([]byte, ring.N*4/8)
		for i := 0; i < ring.N; i += 2 {
			b[i/2] = byte(p.Coeffs[i]) | byte(p.Coeffs[i+1])<<4
		}
		return b
	}
	b := make([]byte, ring.N*6/8)
	for i := 0; i < ring.N; i += 4 {
		x := uint32(p.Coeffs[i]) | uint32(p.Coeffs[i+1])<<6 |
			uint32(p.Coeffs[i+2])<<12 | uint32(p.Coeffs[i+3])<<18
		o := i / 4 * 3
		b[o] = byte(x)
		b[o+1] = byte(x >> 8)
		b[o+2] = byte(x >> 16)
	}
	return b
}

func le64(b []byte) uint64 {
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

func le40(b []byte) uint64 {
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 | uint64(b[4])<<32
}

func putLE64(b []byte, x uint64) {
	b[0] = byte(x)
	b[1] = byte(x >> 8)
	b[2] = byte(x >> 16)
	b[3] = byte(x >> 24)
	b[4] = byte(x >> 32)
	b[5] = byte(x >> 40)
	b[6] = byte(x >> 48)
	b[7] = byte(x >> 56)
}

func putLE40(b []byte, x uint64) {
	b[0] = byte(x)
	b[1] = byte(x >> 8)
	b[2] = byte(x >> 16)
	b[3] = byte(x >> 24)
	b[4] = byte(x >> 32)
}
