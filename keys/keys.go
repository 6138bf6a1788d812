// Package keys defines the wire-format public key, secret key, and
// signature types of spec.md §3-§6, their canonical byte encodings (built
// from pack's per-polynomial codecs), and a JSON persistence format for
// the KAT/CLI tooling, in the style of the reference layer's
// ntru/keys package.
package keys

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"time"

	"mldsa/pack"
	"mldsa/params"
	"mldsa/polyvec"
)

// ErrMalformedKey is returned when a wire-format byte slice cannot be
// parsed into a key or signature of the expected security level.
var ErrMalformedKey = errors.New("keys: malformed encoding")

// PublicKey is (rho, t1): the matrix seed and the rounded-down public
// vector t1, per spec.md §3.
type PublicKey struct {
	Level params.Name
	Rho   []byte
	T1    polyvec.Vec
}

// Bytes packs pk into its canonical wire format: rho followed by each
// polynomial of t1 under the T1 codec.
func (pk *PublicKey) Bytes() []byte {
	lv, _ := params.Get(pk.Level)
	out := make([]byte, 0, lv.PublicKeyBytes())
	out = append(out, pk.Rho...)
	for _, p := range pk.T1 {
		out = append(out, pack.T1(p)...)
	}
	return out
}

// ParsePublicKey decodes a public key of the given security level.
func ParsePublicKey(name params.Name, b []byte) (*PublicKey, error) {
	lv, err := params.Get(name)
	if err != nil {
		return nil, err
	}
	if len(b) != lv.PublicKeyBytes() {
		return nil, ErrMalformedKey
	}
	pk := &PublicKey{Level: name, Rho: append([]byte(nil), b[:params.SeedBytes]...)}
	b = b[params.SeedBytes:]
	pk.T1 = make(polyvec.Vec, lv.K)
	for i := range pk.T1 {
		pk.T1[i] = pack.UnpackT1(b[:params.PolyT1Bytes])
		b = b[params.PolyT1Bytes:]
	}
	return pk, nil
}

// SecretKey is (rho, key, tr, s1, s2, t0): the matrix seed, the
// signing-nonce key, the public-key hash tr, the two secret vectors, and
// the rounded-off low part of t, per spec.md §3.
type SecretKey struct {
	Level params.Name
	Rho   []byte
	Key   []byte
	Tr    []byte
	S1    polyvec.Vec
	S2    polyvec.Vec
	T0    polyvec.Vec
}

// Bytes packs sk into its canonical wire format.
func (sk *SecretKey) Bytes() []byte {
	lv, _ := params.Get(sk.Level)
	out := make([]byte, 0, lv.SecretKeyBytes())
	out = append(out, sk.Rho...)
	out = append(out, sk.Key...)
	out = append(out, sk.Tr...)
	for _, p := range sk.S1 {
		out = append(out, pack.Eta(p, lv.Eta, lv.EtaBits)...)
	}
	for _, p := range sk.S2 {
		out = append(out, pack.Eta(p, lv.Eta, lv.EtaBits)...)
	}
	for _, p := range sk.T0 {
		out = append(out, pack.T0(p)...)
	}
	return out
}

// ParseSecretKey decodes a secret key of the given security level,
// rejecting eta-out-of-range coefficients in s1/s2.
func ParseSecretKey(name params.Name, b []byte) (*SecretKey, error) {
	lv, err := params.Get(name)
	if err != nil {
		return nil, err
	}
	if len(b) != lv.SecretKeyBytes() {
		return nil, ErrMalformedKey
	}
	sk := &SecretKey{Level: name}
	sk.Rho, b = append([]byte(nil), b[:params.SeedBytes]...), b[params.SeedBytes:]
	sk.Key, b = append([]byte(nil), b[:params.SeedBytes]...), b[params.SeedBytes:]
	sk.Tr, b = append([]byte(nil), b[:params.TRBytes]...), b[params.TRBytes:]

	etaBytes := lv.PolyEtaBytes()
	sk.S1 = make(polyvec.Vec, lv.L)
	for i := range sk.S1 {
		p, err := pack.UnpackEta(b[:etaBytes], lv.Eta, lv.EtaBits)
		if err != nil {
			return nil, err
		}
		sk.S1[i] = p
		b = b[etaBytes:]
	}
	sk.S2 = make(polyvec.Vec, lv.K)
	for i := range sk.S2 {
		p, err := pack.UnpackEta(b[:etaBytes], lv.Eta, lv.EtaBits)
		if err != nil {
			return nil, err
		}
		sk.S2[i] = p
		b = b[etaBytes:]
	}
	sk.T0 = make(polyvec.Vec, lv.K)
	for i := range sk.T0 {
		sk.T0[i] = pack.UnpackT0(b[:params.PolyT0Bytes])
		b = b[params.PolyT0Bytes:]
	}
	return sk, nil
}

// Signature is (cTilde, z, h): the commitment digest, the response
// vector, and the hint vector, per spec.md §3.
type Signature struct {
	Level  params.Name
	CTilde []byte
	Z      polyvec.Vec
	H      polyvec.Vec
}

// Bytes packs sig into its canonical wire format.
func (sig *Signature) Bytes() []byte {
	lv, _ := params.Get(sig.Level)
	out := make([]byte, 0, lv.SignatureBytes())
	out = append(out, sig.CTilde...)
	for _, p := range sig.Z {
		out = append(out, pack.Z(p, lv.Gamma1, lv.ZBits)...)
	}
	out = append(out, pack.Hint(sig.H, lv.Omega)...)
	return out
}

// ParseSignature decodes a signature of the given security level,
// rejecting malformed hint encodings.
func ParseSignature(name params.Name, b []byte) (*Signature, error) {
	lv, err := params.Get(name)
	if err != nil {
		return nil, err
	}
	if len(b) != lv.SignatureBytes() {
		return nil, ErrMalformedKey
	}
	sig := &Signature{Level: name}
	sig.CTilde, b = append([]byte(nil), b[:lv.CTildeBytes]...), b[lv.CTildeBytes:]

	zBytes := lv.PolyZBytes()
	sig.Z = make(polyvec.Vec, lv.L)
	for i := range sig.Z {
		sig.Z[i] = pack.UnpackZ(b[:zBytes], lv.Gamma1, lv.ZBits)
		b = b[zBytes:]
	}

	h, err := pack.UnpackHint(b, lv.K, lv.Omega)
	if err != nil {
		return nil, err
	}
	sig.H = h
	return sig, nil
}

// Bundle is the JSON persistence format the CLI/KAT tools read and write,
// base64-encoding every binary field in the manner of the reference
// layer's ntru/keys package.
type Bundle struct {
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	PublicKey string `json:"public_key,omitempty"`
	SecretKey string `json:"secret_key,omitempty"`
	Signature string `json:"signature,omitempty"`
	Message   string `json:"message,omitempty"`
	Context   string `json:"context,omitempty"`
}

// NewBundle creates a Bundle stamped with the current time.
func NewBundle(level params.Name) *Bundle {
	return &Bundle{
		Version:   "mldsa-bundle-v1",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     string(level),
	}
}

// Save writes b as indented JSON to path.
func Save(path string, b *Bundle) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// Load reads a Bundle from path.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// EncodeField base64-encodes a binary field for storage in a Bundle.
func EncodeField(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// DecodeField base64-decodes a Bundle field back to bytes.
func DecodeField(s string) ([]byte, error) { return base64.StdEncoding.DecodeString(s) }
