// Command mldsa-keygen generates an ML-DSA key pair and writes it to a
// JSON bundle on disk, in the style of the reference layer's
// cmd/ntru_sign key-material handling.
package main

import (
	"flag"
	"fmt"
	"log"

	"mldsa"
	"mldsa/entropy"
	"mldsa/keys"
	"mldsa/params"
)

func main() {
	level := flag.String("level", string(params.ML_DSA_65), "security level: ML-DSA-44, ML-DSA-65, or ML-DSA-87")
	out := flag.String("out", "mldsa_keys.json", "output bundle path")
	flag.Parse()

	lv, err := mldsa.New(params.Name(*level))
	if err != nil {
		log.Fatalf("unknown level: %v", err)
	}

	pk, sk, err := lv.Keygen(entropy.System())
	if err != nil {
		log.Fatalf("keygen: %v", err)
	}

	bundle := keys.NewBundle(params.Name(*level))
	bundle.PublicKey = keys.EncodeField(pk.Bytes())
	bundle.SecretKey = keys.EncodeField(sk.Bytes())

	if err := keys.Save(*out, bundle); err != nil {
		log.Fatalf("save: %v", err)
	}
	fmt.Println(*out)
}
