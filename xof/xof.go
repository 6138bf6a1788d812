// Package xof wraps the two extendable-output functions ML-DSA's rejection
// samplers squeeze from: SHAKE-128 for the public matrix A, SHAKE-256 for
// everything else (key derivation, the secret and mask polynomials, the
// commitment hash, the challenge). Both are streaming -- samplers read as
// many blocks as rejection needs, so Stream exposes an incremental Next
// rather than a one-shot Expand like a Fiat-Shamir transcript would.
package xof

import "golang.org/x/crypto/sha3"

// Stream is a keyed, domain-separated squeeze of an absorbed transcript.
// It is read-once: callers read bytes in order and never rewind.
type Stream struct {
	sponge sha3.ShakeHash
}

// Stream128 absorbs parts into SHAKE-128 and returns a Stream ready to
// read. Used for matrix expansion.
func Stream128(parts ...[]byte) *Stream {
	h := sha3.NewShake128()
	for _, p := range parts {
		h.Write(p)
	}
	return &Stream{sponge: h}
}

// Stream256 absorbs parts into SHAKE-256 and returns a Stream ready to
// read. Used for seed expansion, secret- and mask-polynomial sampling,
// the commitment hash crH, and challenge sampling.
func Stream256(parts ...[]byte) *Stream {
	h := sha3.NewShake256()
	for _, p := range parts {
		h.Write(p)
	}
	return &Stream{sponge: h}
}

// Next returns the next n squeezed bytes.
func (s *Stream) Next(n int) []byte {
	out := make([]byte, n)
	if _, err := s.sponge.Read(out); err != nil {
		// sha3's ShakeHash.Read never errors; a failure here means the
		// sponge state itself is corrupt, which is a programmer error.
		panic(err)
	}
	return out
}

// Sum256 is the one-shot SHAKE-256 digest of parts truncated/extended to
// outLen bytes, used for crH (the CRHBytes-wide public-key/message hash)
// and c~ (the CTildeBytes-wide commitment hash).
func Sum256(outLen int, parts ...[]byte) []byte {
	return Stream256(parts...).Next(outLen)
}
