package pack

import "mldsa/ring"

// Hint packs a length-K vector of 0/1 hint polynomials into the
// omega+K-byte wire block of spec.md §4.6: the first omega bytes list the
// positions (0..N-1) of the nonzero coefficients, grouped by polynomial
// and left zero-padded; the final K bytes record, per polynomial, the
// running total of hints emitted so far.
//
// Hint does not itself enforce weight <= omega -- the caller (the signing
// loop) already rejects before reaching here. A hint vector with more
// than omega set bits silently truncates, mirroring the reference's
// number_of_hints precondition rather than panicking on a contract a
// well-formed caller never violates.
func Hint(h []ring.Poly, omega int) []byte {
	b := make([]byte, omega+len(h))
	k := 0
	for i, poly := range h {
		for j, c := range poly.Coeffs {
			if c != 0 && k < omega {
				b[k] = byte(j)
				k++
			}
		}
		b[omega+i] = byte(k)
	}
	return b
}

// UnpackHint reverses Hint, enforcing the two canonicity rules spec.md
// §4.6 calls out as required for strong unforgeability: per-polynomial
// position lists must be strictly ascending, and every byte beyond the
// last polynomial's count must be zero.
func UnpackHint(b []byte, k, omega int) ([]ring.Poly, error) {
	h := make([]ring.Poly, k)
	oldCount := 0
	for i := 0; i < k; i++ {
		newCount := int(b[omega+i])
		if newCount < oldCount || newCount > omega {
			return nil, ErrMalformedEncoding
		}
		for j := oldCount; j < newCount; j++ {
			idx := b[j]
			if j > oldCount && idx <= b[j-1] {
				return nil, ErrMalformedEncoding
			}
			h[i].Coeffs[idx] = 1
		}
		oldCount = newCount
	}
	for j := oldCount; j < omega; j++ {
		if b[j] != 0 {
			return nil, ErrMalformedEncoding
		}
	}
	return h, nil
}

// HintWeight returns the total number of set coefficients across h.
func HintWeight(h []ring.Poly) int {
	n := 0
	for _, p := range h {
		for _, c := range p.Coeffs {
			if c != 0 {
				n++
			}
		}
	}
	return n
}
