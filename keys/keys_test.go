package keys

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"mldsa/params"
	"mldsa/polyvec"
)

func makeTestPublicKey(t *testing.T, name params.Name) *PublicKey {
	t.Helper()
	lv, err := params.Get(name)
	if err != nil {
		t.Fatal(err)
	}
	pk := &PublicKey{Level: name, Rho: bytes.Repeat([]byte{0x11}, params.SeedBytes)}
	pk.T1 = make(polyvec.Vec, lv.K)
	for i := range pk.T1 {
		for j := range pk.T1[i].Coeffs {
			pk.T1[i].Coeffs[j] = int32((i*37 + j) % 1024)
		}
	}
	return pk
}

func TestPublicKeyRoundTrip(t *testing.T) {
	for _, name := range []params.Name{params.ML_DSA_44, params.ML_DSA_65, params.ML_DSA_87} {
		pk := makeTestPublicKey(t, name)
		b := pk.Bytes()
		lv, _ := params.Get(name)
		if len(b) != lv.PublicKeyBytes() {
			t.Fatalf("%s: Bytes() length %d, want %d", name, len(b), lv.PublicKeyBytes())
		}
		got, err := ParsePublicKey(name, b)
		if err != nil {
			t.Fatalf("%s: ParsePublicKey: %v", name, err)
		}
		if !bytes.Equal(got.Rho, pk.Rho) {
			t.Fatalf("%s: rho mismatch after round trip", name)
		}
		for i := range pk.T1 {
			if got.T1[i] != pk.T1[i] {
				t.Fatalf("%s: t1[%d] mismatch after round trip", name, i)
			}
		}
	}
}

func TestParsePublicKeyRejectsWrongLength(t *testing.T) {
	if _, err := ParsePublicKey(params.ML_DSA_44, []byte{1, 2, 3}); err != ErrMalformedKey {
		t.Fatalf("ParsePublicKey accepted a truncated encoding")
	}
}

func TestSecretKeyRoundTrip(t *testing.T) {
	name := params.ML_DSA_65
	lv, _ := params.Get(name)
	sk := &SecretKey{
		Level: name,
		Rho:   bytes.Repeat([]byte{0x22}, params.SeedBytes),
		Key:   bytes.Repeat([]byte{0x33}, params.SeedBytes),
		Tr:    bytes.Repeat([]byte{0x44}, params.TRBytes),
	}
	sk.S1 = make(polyvec.Vec, lv.L)
	sk.S2 = make(polyvec.Vec, lv.K)
	sk.T0 = make(polyvec.Vec, lv.K)
	for i := range sk.S1 {
		for j := range sk.S1[i].Coeffs {
			sk.S1[i].Coeffs[j] = int32(j%int(2*lv.Eta+1)) - lv.Eta
		}
	}
	for i := range sk.S2 {
		for j := range sk.S2[i].Coeffs {
			sk.S2[i].Coeffs[j] = int32(j%int(2*lv.Eta+1)) - lv.Eta
		}
	}
	for i := range sk.T0 {
		for j := range sk.T0[i].Coeffs {
			sk.T0[i].Coeffs[j] = int32(j%8190) - 4095
		}
	}

	got, err := ParseSecretKey(name, sk.Bytes())
	if err != nil {
		t.Fatalf("ParseSecretKey: %v", err)
	}
	for i := range sk.S1 {
		if got.S1[i] != sk.S1[i] {
			t.Fatalf("s1[%d] mismatch", i)
		}
	}
	for i := range sk.T0 {
		if got.T0[i] != sk.T0[i] {
			t.Fatalf("t0[%d] mismatch", i)
		}
	}
}

func TestSignatureRoundTrip(t *testing.T) {
	name := params.ML_DSA_44
	lv, _ := params.Get(name)
	sig := &Signature{Level: name, CTilde: bytes.Repeat([]byte{0x55}, lv.CTildeBytes)}
	sig.Z = make(polyvec.Vec, lv.L)
	for i := range sig.Z {
		for j := range sig.Z[i].Coeffs {
			sig.Z[i].Coeffs[j] = lv.Gamma1 - int32(j%int(2*lv.Gamma1))
		}
	}
	sig.H = make(polyvec.Vec, lv.K)
	sig.H[0].Coeffs[3] = 1
	sig.H[2].Coeffs[10] = 1

	got, err := ParseSignature(name, sig.Bytes())
	if err != nil {
		t.Fatalf("ParseSignature: %v", err)
	}
	if !bytes.Equal(got.CTilde, sig.CTilde) {
		t.Fatalf("cTilde mismatch")
	}
	for i := range sig.Z {
		if got.Z[i] != sig.Z[i] {
			t.Fatalf("z[%d] mismatch", i)
		}
	}
	for i := range sig.H {
		if got.H[i] != sig.H[i] {
			t.Fatalf("h[%d] mismatch", i)
		}
	}
}

func TestBundleSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.json")

	b := NewBundle(params.ML_DSA_44)
	b.PublicKey = EncodeField([]byte("fake-pk"))
	if err := Save(path, b); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	decoded, err := DecodeField(got.PublicKey)
	if err != nil {
		t.Fatalf("DecodeField: %v", err)
	}
	if string(decoded) != "fake-pk" {
		t.Fatalf("bundle round trip mismatch: got %q", decoded)
	}
	if got.Level != string(params.ML_DSA_44) {
		t.Fatalf("bundle level mismatch: got %q", got.Level)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected bundle file to exist: %v", err)
	}
}
