package signer

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
)

// ecdsaSigner produces a Sha256WithEcdsa SignatureValue: an ASN.1 DER
// signature over the SHA-256 digest of the signed portion.
type ecdsaSigner struct {
	name enc.Name
	key  *ecdsa.PrivateKey
}

func (s *ecdsaSigner) Type() ndn.SigType        { return ndn.SigTypeSha256WithEcdsa }
func (s *ecdsaSigner) KeyLocatorName() enc.Name { return s.name }

func (s *ecdsaSigner) EstimateSize() int {
	// DER-encoded ECDSA signature: two ASN.1 integers up to the curve's
	// byte size, plus encoding overhead.
	byteLen := (s.key.Curve.Params().BitSize + 7) / 8
	return 2*(byteLen+3) + 3
}

func (s *ecdsaSigner) Sign(covered enc.Wire) ([]byte, error) {
	h := sha256.New()
	for _, buf := range covered {
		h.Write(buf)
	}
	return ecdsa.SignASN1(rand.Reader, s.key, h.Sum(nil))
}

// NewEcdsaSigner returns a signer keyed under name using the given ECDSA
// private key.
func NewEcdsaSigner(name enc.Name, key *ecdsa.PrivateKey) ndn.Signer {
	return &ecdsaSigner{name: name, key: key}
}

// KeygenEcdsa generates a fresh P-256 key and returns a signer using it,
// keyed under name.
func KeygenEcdsa(name enc.Name) (ndn.Signer, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	return NewEcdsaSigner(name, key), nil
}

// ParseEcdsa parses a PKCS#8-encoded ECDSA private key and returns a
// signer keyed under name.
func ParseEcdsa(name enc.Name, der []byte) (ndn.Signer, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, err
	}
	ecKey, ok := key.(*ecdsa.PrivateKey)
	if !ok {
		return nil, enc.ErrUnexpected{Err: keyTypeError{want: "ECDSA"}}
	}
	return NewEcdsaSigner(name, ecKey), nil
}

// ValidateEcdsa reports whether sigValue is a valid ASN.1 DER signature
// over the SHA-256 digest of covered under pub.
func ValidateEcdsa(covered enc.Wire, sigValue []byte, pub *ecdsa.PublicKey) bool {
	h := sha256.New()
	for _, buf := range covered {
		h.Write(buf)
	}
	return ecdsa.VerifyASN1(pub, h.Sum(nil), sigValue)
}
