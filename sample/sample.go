// Package sample implements ML-DSA's four rejection samplers (spec.md
// §4.4): the uniform sampler that expands the public matrix A, the
// eta-bounded sampler for the secret vectors s1/s2, the gamma1-range mask
// sampler for y, and the Fisher-Yates challenge-ball sampler for c. Every
// sampler is a deterministic function of its seed and nonce, squeezed
// through xof.Stream128 or xof.Stream256 one rate-sized block at a time
// until N coefficients have been accepted.
package sample

import (
	"mldsa/params"
	"mldsa/ring"
	"mldsa/xof"
)

const shake128Rate = 168
const shake256Rate = 136

// Uniform expands (rho, nonce) into a uniformly random NTT-domain
// polynomial via rejection sampling on 23-bit little-endian triples,
// FIPS 204's RejNTTPoly / the reference's poly_uniform. nonce is
// serialized low-byte-first, matching EtaBounded/Gamma1; for matrix
// expansion the caller passes nonce = (row<<8)|col per spec.md §4.7.
func Uniform(rho []byte, nonce uint16) ring.NTTPoly {
	st := xof.Stream128(rho, []byte{byte(nonce), byte(nonce >> 8)})
	var a ring.NTTPoly
	j := 0
	for j < ring.N {
		buf := st.Next(shake128Rate)
		for i := 0; i+3 <= len(buf) && j < ring.N; i += 3 {
			d := uint32(buf[i]) | uint32(buf[i+1])<<8 | uint32(buf[i+2])<<16
			d &= 0x7fffff
			if d < params.Q {
				a.Coeffs[j] = int32(d)
				j++
			}
		}
	}
	return a
}

// EtaBounded expands (seed, nonce) into a polynomial with coefficients in
// [-eta, eta] via rejection sampling on nibbles, FIPS 204's RejBoundedPoly
// / the reference's poly_uniform_eta.
func EtaBounded(seed []byte, nonce uint16, eta int32) ring.Poly {
	st := xof.Stream256(seed, []byte{byte(nonce), byte(nonce >> 8)})
	var a ring.Poly
	j := 0
	for j < ring.N {
		buf := st.Next(shake256Rate)
		for _, b := range buf {
			if j >= ring.N {
				break
			}
			z0 := b & 0x0f
			z1 := b >> 4
			if eta == 2 {
				if z0 < 15 {
					a.Coeffs[j] = eta - int32(z0%5)
					j++
				}
				if j < ring.N && z1 < 15 {
					a.Coeffs[j] = eta - int32(z1%5)
					j++
				}
			} else { // eta == 4
				if z0 <= 8 {
					a.Coeffs[j] = eta - int32(z0)
					j++
				}
				if j < ring.N && z1 <= 8 {
					a.Coeffs[j] = eta - int32(z1)
					j++
				}
			}
		}
	}
	return a
}

// Gamma1 expands (seed, nonce) into a polynomial with coefficients in
// (-gamma1, gamma1], FIPS 204's ExpandMask / the reference's
// poly_uniform_gamma1. bits must be 18 (gamma1 = 2^17) or 20 (gamma1 =
// 2^19), per spec.md §3's parameter table.
func Gamma1(seed []byte, nonce uint16, gamma1 int32, bits int) ring.Poly {
	n := ring.N * bits / 8
	buf := xof.Stream256(seed, []byte{byte(nonce), byte(nonce >> 8)}).Next(n)

	var a ring.Poly
	mask := int64(1)<<uint(bits) - 1
	switch bits {
	case 18:
		for i, o := 0, 0; i < ring.N; i, o = i+4, o+9 {
			x := le64(buf[o:])
			a.Coeffs[i] = gamma1 - int32(x&uint64(mask))
			a.Coeffs[i+1] = gamma1 - int32((x>>18)&uint64(mask))
			a.Coeffs[i+2] = gamma1 - int32((x>>36)&uint64(mask))
			x2 := uint64(buf[o+8])
			a.Coeffs[i+3] = gamma1 - int32(((x>>54)|(x2<<10))&uint64(mask))
		}
	case 20:
		for i, o := 0, 0; i < ring.N; i, o = i+4, o+10 {
			x := le64(buf[o:])
			a.Coeffs[i] = gamma1 - int32(x&uint64(mask))
			a.Coeffs[i+1] = gamma1 - int32((x>>20)&uint64(mask))
			a.Coeffs[i+2] = gamma1 - int32((x>>40)&uint64(mask))
			x2 := uint64(buf[o+8]) | uint64(buf[o+9])<<8
			a.Coeffs[i+3] = gamma1 - int32(((x>>60)|(x2<<4))&uint64(mask))
		}
	}
	return a
}

// le64 reads the first 8 bytes of b as a little-endian uint64. Callers
// only ever pass 9- or 10-byte windows, so index 7 is always in range.
func le64(b []byte) uint64 {
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

// Challenge expands a CTildeBytes commitment digest into the sparse
// ternary challenge polynomial with exactly tau nonzero coefficients in
// {-1, +1}, FIPS 204's SampleInBall / the reference's poly_challenge,
// via an inline Fisher-Yates shuffle seeded by the XOF's first 8 bytes of
// sign bits.
func Challenge(cTilde []byte, tau int) ring.Poly {
	st := xof.Stream256(cTilde)
	signBuf := st.Next(8)
	var signs uint64
	for i, b := range signBuf {
		signs |= uint64(b) << (8 * i)
	}

	buf := st.Next(shake256Rate)
	offset := 0
	next := func() byte {
		if offset >= len(buf) {
			buf = st.Next(shake256Rate)
			offset = 0
		}
		b := buf[offset]
		offset++
		return b
	}

	var c ring.Poly
	for i := ring.N - tau; i < ring.N; i++ {
		var j int
		for {
			b := next()
			if int(b) <= i {
				j = int(b)
				break
			}
		}
		c.Coeffs[i] = c.Coeffs[j]
		if signs&1 == 0 {
			c.Coeffs[j] = 1
		} else {
			c.Coeffs[j] = -1
		}
		signs >>= 1
	}
	return c
}
