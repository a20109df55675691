package signer

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
)

// LoadKeyFile reads a PEM-encoded PKCS#8 private key from path and returns
// a Signer keyed under name, dispatching on the key's actual type. There is
// no ecosystem TLV/NDN library for this step; it is a direct
// crypto/x509+encoding/pem read, the same primitives ParseRsa/ParseEcdsa
// already build on.
func LoadKeyFile(name enc.Name, path string) (ndn.Signer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading key file %s: %w", path, err)
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("key file %s contains no PEM block", path)
	}
	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parsing key file %s: %w", path, err)
	}
	switch k := key.(type) {
	case *rsa.PrivateKey:
		return NewRsaSigner(name, k), nil
	case *ecdsa.PrivateKey:
		return NewEcdsaSigner(name, k), nil
	default:
		return nil, fmt.Errorf("key file %s: unsupported key type %T", path, key)
	}
}
