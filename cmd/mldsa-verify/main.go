// Command mldsa-verify checks a signature in a key bundle against a
// message file and reports acceptance via its exit code, in the manner
// of the reference layer's cmd/keycheck residual-check tool.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"mldsa"
	"mldsa/keys"
	"mldsa/params"
)

func main() {
	keyPath := flag.String("keys", "mldsa_keys.json", "key bundle path (must contain a public key and signature)")
	msgPath := flag.String("msg", "", "message file path (defaults to the bundle's stored message)")
	flag.Parse()

	bundle, err := keys.Load(*keyPath)
	if err != nil {
		log.Fatalf("load key bundle: %v", err)
	}
	if bundle.PublicKey == "" || bundle.Signature == "" {
		log.Fatal("key bundle has no public key or signature")
	}

	lv, err := mldsa.New(params.Name(bundle.Level))
	if err != nil {
		log.Fatalf("unknown level %q: %v", bundle.Level, err)
	}

	var msg []byte
	if *msgPath != "" {
		msg, err = os.ReadFile(*msgPath)
		if err != nil {
			log.Fatalf("read message: %v", err)
		}
	} else {
		msg, err = keys.DecodeField(bundle.Message)
		if err != nil {
			log.Fatalf("decode bundled message: %v", err)
		}
	}

	ctx, err := keys.DecodeField(bundle.Context)
	if err != nil {
		ctx = nil
	}

	pkBytes, err := keys.DecodeField(bundle.PublicKey)
	if err != nil {
		log.Fatalf("decode public key: %v", err)
	}
	pk, err := keys.ParsePublicKey(params.Name(bundle.Level), pkBytes)
	if err != nil {
		log.Fatalf("parse public key: %v", err)
	}

	sigBytes, err := keys.DecodeField(bundle.Signature)
	if err != nil {
		log.Fatalf("decode signature: %v", err)
	}
	sig, err := keys.ParseSignature(params.Name(bundle.Level), sigBytes)
	if err != nil {
		log.Fatalf("parse signature: %v", err)
	}

	if err := lv.Verify(pk, msg, ctx, sig); err != nil {
		fmt.Println("INVALID:", err)
		os.Exit(1)
	}
	fmt.Println("OK")
}
