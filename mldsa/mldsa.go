// Package mldsa implements the ML-DSA (CRYSTALS-Dilithium, FIPS 204)
// signature scheme's top-level Keygen/Sign/Verify orchestration, per
// spec.md §4.8-§4.9: internal key generation, the rejection-sampling
// signing loop, and signature verification, parameterized by security
// level (44/65/87) via a Level value.
package mldsa

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"mldsa/entropy"
	"mldsa/internal/stats"
	"mldsa/keys"
	"mldsa/pack"
	"mldsa/params"
	"mldsa/polyvec"
	"mldsa/ring"
	"mldsa/sample"
	"mldsa/xof"
)

// Mode selects whether Sign draws fresh randomness for its "hedged"
// nonce (Randomized) or uses an all-zero nonce so signing the same
// message under the same key always reproduces the same signature
// (Deterministic). See DESIGN.md for why neither is the silent default.
type Mode int

const (
	Deterministic Mode = iota
	Randomized
)

var (
	// ErrContextTooLong is returned when ctx exceeds 255 bytes, the limit
	// FIPS 204's context-string encoding imposes (a single length byte).
	ErrContextTooLong = errors.New("mldsa: context string exceeds 255 bytes")

	// ErrSignExhausted is returned when the rejection-sampling signing
	// loop fails to find an acceptable (z, h) within its iteration cap.
	// This is not expected in practice -- each attempt succeeds with
	// roughly constant probability well above 1/2 -- and signals either a
	// corrupt secret key or a broken randomness source.
	ErrSignExhausted = errors.New("mldsa: signing loop exceeded its iteration cap")

	// ErrMalformedSignature is returned by Verify when the signature's
	// structural bounds (z's infinity norm, the hint weight) are
	// violated, before any hash comparison is attempted.
	ErrMalformedSignature = errors.New("mldsa: signature fails structural bound check")

	// ErrInvalidSignature is returned by Verify when the signature is
	// well-formed but the recomputed commitment hash does not match.
	ErrInvalidSignature = errors.New("mldsa: signature verification failed")

	// ErrInvalidKeyLength describes a key whose packed byte length does
	// not match its declared security level. No function in this package
	// returns it; keys.ParsePublicKey and keys.ParseSecretKey report a
	// wrong length as keys.ErrMalformedKey.
	ErrInvalidKeyLength = errors.New("mldsa: key has the wrong byte length for its level")
)

// maxSignAttempts bounds the rejection-sampling loop. The expected number
// of attempts is small (under 6 for every parameter set per spec.md's
// table), so this cap is reached only on a malfunctioning entropy source
// or a corrupt key.
const maxSignAttempts = 1000

// Level binds every ML-DSA operation to one security level's parameters.
type Level struct {
	params params.Level
}

// New returns a Level for the named security level.
func New(name params.Name) (*Level, error) {
	p, err := params.Get(name)
	if err != nil {
		return nil, err
	}
	return &Level{params: p}, nil
}

// Name returns the security level's name.
func (lv *Level) Name() params.Name { return lv.params.Name }

func zeroVec(n int) polyvec.Vec { return polyvec.New(n) }

func negate(v polyvec.Vec) polyvec.Vec {
	return zeroVec(len(v)).Sub(v)
}

// wipeBytes zeroes b in place. Per spec.md §3/§5, every scratch buffer
// derived from key material is scrubbed once its last use has passed,
// rather than left for the garbage collector to reclaim on its own
// schedule.
func wipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func wipeVec(v polyvec.Vec) {
	for i := range v {
		for j := range v[i].Coeffs {
			v[i].Coeffs[j] = 0
		}
	}
}

func wipeNTTVec(v polyvec.NTTVec) {
	for i := range v {
		for j := range v[i].Coeffs {
			v[i].Coeffs[j] = 0
		}
	}
}

// packW1Vec packs a vector of high-bit polynomials for hashing into the
// commitment digest.
func packW1Vec(v polyvec.Vec, bits int) []byte {
	out := make([]byte, 0, len(v)*ring.N*bits/8)
	for _, p := range v {
		out = append(out, pack.W1(p, bits)...)
	}
	return out
}

// Keygen generates a fresh (public key, secret key) pair, drawing its
// 32-byte seed from rnd.
func (lv *Level) Keygen(rnd io.Reader) (*keys.PublicKey, *keys.SecretKey, error) {
	p := lv.params
	seed, err := entropy.Read(rnd, params.SeedBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("mldsa: keygen: %w", err)
	}

	seedBuf := xof.Sum256(2*params.SeedBytes+params.CRHBytes, seed)
	rho := seedBuf[:params.SeedBytes]
	rhoPrime := seedBuf[params.SeedBytes : params.SeedBytes+params.CRHBytes]
	key := seedBuf[params.SeedBytes+params.CRHBytes:]

	matA := polyvec.MatrixExpand(rho, p.K, p.L)

	s1 := polyvec.UniformEta(rhoPrime, 0, p.Eta, p.L)
	s2 := polyvec.UniformEta(rhoPrime, uint16(p.L), p.Eta, p.K)

	s1Hat := s1.NTT()
	t := polyvec.MatrixPointwiseMontgomery(matA, s1Hat).InvNTTToMont().Add(s2).Reduce().CAddQ()
	t1, t0 := t.Power2Round()

	pk := &keys.PublicKey{Level: p.Name, Rho: append([]byte(nil), rho...), T1: t1}
	tr := xof.Sum256(params.TRBytes, pk.Bytes())

	sk := &keys.SecretKey{
		Level: p.Name,
		Rho:   append([]byte(nil), rho...),
		Key:   append([]byte(nil), key...),
		Tr:    tr,
		S1:    s1,
		S2:    s2,
		T0:    t0,
	}

	// rho, rhoPrime, and key alias seedBuf; sk/pk hold their own copies
	// above, so the original seed material can be scrubbed now. s1Hat is
	// a scratch NTT-domain copy of the secret s1 that isn't part of sk.
	wipeBytes(seed)
	wipeBytes(seedBuf)
	wipeNTTVec(s1Hat)

	return pk, sk, nil
}

// computeMu derives the CRHBytes message representative mu = H(tr || 0 ||
// len(ctx) || ctx || msg), the domain-separated hash spec.md §4.8 signs
// over instead of the raw message.
func computeMu(tr, ctx, msg []byte) []byte {
	return xof.Sum256(params.CRHBytes, tr, []byte{0, byte(len(ctx))}, ctx, msg)
}

// Sign produces a signature over msg under sk, bound to the optional
// context string ctx (at most 255 bytes). In Randomized mode, rnd
// supplies 32 bytes mixed into the per-attempt nonce seed; in
// Deterministic mode those 32 bytes are fixed at zero and rnd is unused.
func (lv *Level) Sign(sk *keys.SecretKey, msg, ctx []byte, mode Mode, rnd io.Reader) (*keys.Signature, error) {
	if len(ctx) > 255 {
		return nil, ErrContextTooLong
	}
	p := lv.params

	var nonceSeed []byte
	if mode == Randomized {
		var err error
		nonceSeed, err = entropy.Read(rnd, params.SeedBytes)
		if err != nil {
			return nil, fmt.Errorf("mldsa: sign: %w", err)
		}
	} else {
		nonceSeed = make([]byte, params.SeedBytes)
	}

	mu := computeMu(sk.Tr, ctx, msg)
	rhoDPrime := xof.Sum256(params.CRHBytes, sk.Key, nonceSeed, mu)

	matA := polyvec.MatrixExpand(sk.Rho, p.K, p.L)
	s1Hat := sk.S1.NTT()
	s2Hat := sk.S2.NTT()
	t0Hat := sk.T0.NTT()

	gamma1MinusBeta := p.Gamma1 - p.Beta
	gamma2MinusBeta := p.Gamma2 - p.Beta

	kappa := uint16(0)
	for attempt := 0; attempt < maxSignAttempts; attempt++ {
		stats.Global.Add("mldsa/sign/attempts", 1)

		y := polyvec.UniformGamma1(rhoDPrime, kappa, p.Gamma1, p.ZBits, p.L)
		kappa += uint16(p.L)

		yHat := y.NTT()
		w := polyvec.MatrixPointwiseMontgomery(matA, yHat).InvNTTToMont().Reduce().CAddQ()
		w1, _ := w.Decompose(p.Gamma2)

		cTildeInput := append(append([]byte{}, mu...), packW1Vec(w1, p.W1Bits)...)
		cTilde := xof.Sum256(p.CTildeBytes, cTildeInput)
		c := sample.Challenge(cTilde, p.Tau)
		cHat := c.NTT()

		cs1 := polyvec.PointwisePolyMontgomery(cHat, s1Hat).InvNTTToMont()
		z := y.Add(cs1).Reduce()
		if z.ChkNorm(gamma1MinusBeta) {
			wipeVec(y)
			wipeNTTVec(yHat)
			wipeVec(w)
			wipeVec(cs1)
			wipeVec(z)
			continue
		}

		cs2 := polyvec.PointwisePolyMontgomery(cHat, s2Hat).InvNTTToMont()
		wcs2 := w.Sub(cs2).Reduce().CAddQ()
		_, r0 := wcs2.Decompose(p.Gamma2)
		if r0.ChkNorm(gamma2MinusBeta) {
			wipeVec(y)
			wipeNTTVec(yHat)
			wipeVec(w)
			wipeVec(cs1)
			wipeVec(z)
			wipeVec(cs2)
			wipeVec(wcs2)
			wipeVec(r0)
			continue
		}

		ct0 := polyvec.PointwisePolyMontgomery(cHat, t0Hat).InvNTTToMont().Reduce()
		if ct0.ChkNorm(p.Gamma2) {
			wipeVec(y)
			wipeNTTVec(yHat)
			wipeVec(w)
			wipeVec(cs1)
			wipeVec(z)
			wipeVec(cs2)
			wipeVec(wcs2)
			wipeVec(r0)
			wipeVec(ct0)
			continue
		}

		v1 := wcs2.Add(ct0)
		h, weight := polyvec.MakeHint(negate(ct0), v1, p.Gamma2)
		if weight > p.Omega {
			wipeVec(y)
			wipeNTTVec(yHat)
			wipeVec(w)
			wipeVec(cs1)
			wipeVec(z)
			wipeVec(cs2)
			wipeVec(wcs2)
			wipeVec(r0)
			wipeVec(ct0)
			wipeVec(v1)
			wipeVec(h)
			continue
		}

		wipeVec(y)
		wipeNTTVec(yHat)
		wipeVec(w)
		wipeVec(cs1)
		wipeVec(cs2)
		wipeVec(wcs2)
		wipeVec(r0)
		wipeVec(ct0)
		wipeVec(v1)
		wipeNTTVec(s1Hat)
		wipeNTTVec(s2Hat)
		wipeNTTVec(t0Hat)
		wipeBytes(nonceSeed)
		wipeBytes(rhoDPrime)
		return &keys.Signature{Level: p.Name, CTilde: cTilde, Z: z, H: h}, nil
	}
	wipeNTTVec(s1Hat)
	wipeNTTVec(s2Hat)
	wipeNTTVec(t0Hat)
	wipeBytes(nonceSeed)
	wipeBytes(rhoDPrime)
	return nil, ErrSignExhausted
}

// Verify checks sig against msg, ctx, and pk, returning nil iff the
// signature is structurally valid and its commitment hash matches.
func (lv *Level) Verify(pk *keys.PublicKey, msg, ctx []byte, sig *keys.Signature) error {
	if len(ctx) > 255 {
		return ErrContextTooLong
	}
	p := lv.params

	if len(sig.Z) != p.L || len(sig.H) != p.K {
		return ErrMalformedSignature
	}
	if sig.Z.ChkNorm(p.Gamma1 - p.Beta) {
		return ErrMalformedSignature
	}
	if weight := pack.HintWeight(sig.H); weight > p.Omega {
		return ErrMalformedSignature
	}

	tr := xof.Sum256(params.TRBytes, pk.Bytes())
	mu := computeMu(tr, ctx, msg)

	matA := polyvec.MatrixExpand(pk.Rho, p.K, p.L)
	c := sample.Challenge(sig.CTilde, p.Tau)
	cHat := c.NTT()
	zHat := sig.Z.NTT()

	t1Shifted := pk.T1.ShiftLeft(ring.D)
	t1Hat := t1Shifted.NTT()
	ct1 := polyvec.PointwisePolyMontgomery(cHat, t1Hat)

	azHat := polyvec.MatrixPointwiseMontgomery(matA, zHat)
	wApprox := make(polyvec.NTTVec, p.K)
	for i := range wApprox {
		wApprox[i] = ring.NTTPoly{}
		for j := range wApprox[i].Coeffs {
			wApprox[i].Coeffs[j] = azHat[i].Coeffs[j] - ct1[i].Coeffs[j]
		}
	}
	wApproxPoly := wApprox.InvNTTToMont().Reduce().CAddQ()
	w1 := wApproxPoly.UseHint(sig.H, p.Gamma2)

	cTildeInput := append(append([]byte{}, mu...), packW1Vec(w1, p.W1Bits)...)
	cTildePrime := xof.Sum256(p.CTildeBytes, cTildeInput)

	if subtle.ConstantTimeCompare(cTildePrime, sig.CTilde) != 1 {
		return ErrInvalidSignature
	}
	return nil
}
