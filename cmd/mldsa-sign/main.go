// Command mldsa-sign signs a message file with a previously generated
// key bundle, writing the signature back into the same bundle.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"mldsa"
	"mldsa/entropy"
	"mldsa/keys"
	"mldsa/params"
)

func main() {
	keyPath := flag.String("keys", "mldsa_keys.json", "key bundle path (must contain a secret key)")
	msgPath := flag.String("msg", "", "message file path")
	ctx := flag.String("ctx", "", "context string")
	deterministic := flag.Bool("deterministic", false, "sign deterministically (zero nonce) instead of hedged/randomized")
	out := flag.String("out", "", "output bundle path (defaults to overwriting -keys)")
	flag.Parse()

	if *msgPath == "" {
		log.Fatal("-msg is required")
	}
	msg, err := os.ReadFile(*msgPath)
	if err != nil {
		log.Fatalf("read message: %v", err)
	}

	bundle, err := keys.Load(*keyPath)
	if err != nil {
		log.Fatalf("load key bundle: %v", err)
	}
	if bundle.SecretKey == "" {
		log.Fatal("key bundle has no secret key")
	}

	lv, err := mldsa.New(params.Name(bundle.Level))
	if err != nil {
		log.Fatalf("unknown level %q: %v", bundle.Level, err)
	}
	skBytes, err := keys.DecodeField(bundle.SecretKey)
	if err != nil {
		log.Fatalf("decode secret key: %v", err)
	}
	sk, err := keys.ParseSecretKey(params.Name(bundle.Level), skBytes)
	if err != nil {
		log.Fatalf("parse secret key: %v", err)
	}

	mode := mldsa.Randomized
	rnd := entropy.System()
	if *deterministic {
		mode = mldsa.Deterministic
		rnd = nil
	}

	sig, err := lv.Sign(sk, msg, []byte(*ctx), mode, rnd)
	if err != nil {
		log.Fatalf("sign: %v", err)
	}

	bundle.Signature = keys.EncodeField(sig.Bytes())
	bundle.Message = keys.EncodeField(msg)
	bundle.Context = keys.EncodeField([]byte(*ctx))

	outPath := *out
	if outPath == "" {
		outPath = *keyPath
	}
	if err := keys.Save(outPath, bundle); err != nil {
		log.Fatalf("save: %v", err)
	}
	fmt.Println(outPath)
}
