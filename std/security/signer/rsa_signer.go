package signer

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
)

// rsaSigner produces a Sha256WithRsa SignatureValue: PKCS#1 v1.5 over the
// SHA-256 digest of the signed portion.
type rsaSigner struct {
	name enc.Name
	key  *rsa.PrivateKey
}

func (s *rsaSigner) Type() ndn.SigType        { return ndn.SigTypeSha256WithRsa }
func (s *rsaSigner) KeyLocatorName() enc.Name { return s.name }
func (s *rsaSigner) EstimateSize() int        { return s.key.Size() }

func (s *rsaSigner) Sign(covered enc.Wire) ([]byte, error) {
	h := sha256.New()
	for _, buf := range covered {
		h.Write(buf)
	}
	return rsa.SignPKCS1v15(rand.Reader, s.key, crypto.SHA256, h.Sum(nil))
}

// NewRsaSigner returns a signer keyed under name using the given RSA
// private key.
func NewRsaSigner(name enc.Name, key *rsa.PrivateKey) ndn.Signer {
	return &rsaSigner{name: name, key: key}
}

// KeygenRsa generates a fresh RSA key of the given bit size and returns a
// signer using it, keyed under name.
func KeygenRsa(name enc.Name, bits int) (ndn.Signer, error) {
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, err
	}
	return NewRsaSigner(name, key), nil
}

// ParseRsa parses a PKCS#8-encoded RSA private key and returns a signer
// keyed under name.
func ParseRsa(name enc.Name, der []byte) (ndn.Signer, error) {
	key, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, err
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, enc.ErrUnexpected{Err: keyTypeError{want: "RSA"}}
	}
	return NewRsaSigner(name, rsaKey), nil
}

// ValidateRsa reports whether sigValue is a valid PKCS#1 v1.5 signature
// over the SHA-256 digest of covered under pub.
func ValidateRsa(covered enc.Wire, sigValue []byte, pub *rsa.PublicKey) bool {
	h := sha256.New()
	for _, buf := range covered {
		h.Write(buf)
	}
	return rsa.VerifyPKCS1v15(pub, crypto.SHA256, h.Sum(nil), sigValue) == nil
}
