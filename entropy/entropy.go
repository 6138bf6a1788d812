// Package entropy wraps the system randomness source the signing loop
// draws from in randomized mode, and a fixed all-zero source that yields
// the same bytes deterministic mode signs with, per spec.md §9's
// resolution of the randomized-vs-deterministic open question (see
// DESIGN.md).
package entropy

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
)

// System returns the process-wide cryptographically secure randomness
// source, crypto/rand.Reader, matching the reference layer's direct use
// of crand.Read in signverify.go.
func System() io.Reader { return rand.Reader }

// Zero returns a reader that yields an endless stream of zero bytes, the
// same value ML-DSA's deterministic signing mode uses for rnd (mldsa.Sign
// builds that zero block itself rather than reading it from here). The
// tests use it as the all-zero keygen seed.
func Zero() io.Reader { return zeroReader{} }

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

// Read fills a freshly allocated n-byte buffer from r, wrapping any short
// read with context -- every caller in this module needs exactly n
// bytes, never a partial fill.
func Read(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("entropy: read %d bytes: %w", n, err)
	}
	return buf, nil
}

// IsZero reports whether b consists entirely of zero bytes, used by
// tests to confirm Zero() produces only zero bytes.
func IsZero(b []byte) bool {
	return bytes.Equal(b, make([]byte, len(b)))
}
