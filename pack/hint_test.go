package pack

import (
	"mldsa/ring"
	"testing"
)

func samplePoly(positions ...int) ring.Poly {
	var p ring.Poly
	for _, i := range positions {
		p.Coeffs[i] = 1
	}
	return p
}

func TestHintRoundTrip(t *testing.T) {
	h := []ring.Poly{
		samplePoly(0, 5, 200),
		samplePoly(),
		samplePoly(1, 255),
	}
	const omega = 80
	b := Hint(h, omega)
	if len(b) != omega+len(h) {
		t.Fatalf("Hint: wrong length %d, want %d", len(b), omega+len(h))
	}

	got, err := UnpackHint(b, len(h), omega)
	if err != nil {
		t.Fatalf("UnpackHint: unexpected error: %v", err)
	}
	for i := range h {
		if got[i] != h[i] {
			t.Fatalf("polynomial %d: round trip mismatch", i)
		}
	}
}

// TestHintAllOnesInFirstPolyRoundTripsThenRejectsDescendingTail covers the
// hint codec corner case where every set bit lands in polynomial 0: an
// ascending run of omega positions followed by a count trailer that must
// never decrease.
func TestHintAllOnesInFirstPolyRoundTripsThenRejectsDescendingTail(t *testing.T) {
	const omega = 8
	positions := make([]int, omega)
	for i := range positions {
		positions[i] = i * 30 // strictly ascending, all within poly 0
	}
	h := []ring.Poly{samplePoly(positions...), samplePoly(), samplePoly()}
	b := Hint(h, omega)

	got, err := UnpackHint(b, len(h), omega)
	if err != nil {
		t.Fatalf("UnpackHint: unexpected error: %v", err)
	}
	for i := range h {
		if got[i] != h[i] {
			t.Fatalf("polynomial %d: round trip mismatch", i)
		}
	}

	// Corrupt the count trailer so it decreases from one polynomial to
	// the next; unpack must reject it.
	tail := omega + len(h) - 1
	b[tail] = b[tail-1] - 1
	if _, err := UnpackHint(b, len(h), omega); err != ErrMalformedEncoding {
		t.Fatalf("UnpackHint accepted a decreasing count trailer")
	}
}

func TestUnpackHintRejectsNonAscending(t *testing.T) {
	const omega = 10
	b := make([]byte, omega+2)
	b[0], b[1] = 5, 3 // descending within the same polynomial
	b[omega+0] = 2
	b[omega+1] = 2
	if _, err := UnpackHint(b, 2, omega); err != ErrMalformedEncoding {
		t.Fatalf("UnpackHint accepted a non-ascending position list")
	}
}

func TestUnpackHintRejectsNonZeroPadding(t *testing.T) {
	const omega = 10
	b := make([]byte, omega+2)
	b[0] = 3
	b[omega+0] = 1
	b[omega+1] = 1
	b[5] = 7 // beyond the last polynomial's count, must be zero
	if _, err := UnpackHint(b, 2, omega); err != ErrMalformedEncoding {
		t.Fatalf("UnpackHint accepted non-zero padding beyond the hint count")
	}
}

func TestUnpackHintRejectsDecreasingCount(t *testing.T) {
	const omega = 10
	b := make([]byte, omega+2)
	b[1], b[2], b[3], b[4] = 1, 2, 3, 4 // valid ascending run for the first count
	b[omega+0] = 5
	b[omega+1] = 3 // count must never decrease
	if _, err := UnpackHint(b, 2, omega); err != ErrMalformedEncoding {
		t.Fatalf("UnpackHint accepted a decreasing hint count")
	}
}

func TestHintWeight(t *testing.T) {
	h := []ring.Poly{samplePoly(0, 1, 2), samplePoly(10)}
	if w := HintWeight(h); w != 4 {
		t.Fatalf("HintWeight = %d, want 4", w)
	}
}
