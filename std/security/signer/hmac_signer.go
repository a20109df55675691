package signer

import (
	"crypto/hmac"
	"crypto/sha256"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
)

// hmacSigner produces a HmacWithSha256 SignatureValue using a shared
// symmetric key.
type hmacSigner struct {
	key []byte
}

func (*hmacSigner) Type() ndn.SigType        { return ndn.SigTypeHmacWithSha256 }
func (*hmacSigner) KeyLocatorName() enc.Name { return nil }
func (*hmacSigner) EstimateSize() int        { return sha256.Size }

func (s *hmacSigner) Sign(covered enc.Wire) ([]byte, error) {
	mac := hmac.New(sha256.New, s.key)
	for _, buf := range covered {
		mac.Write(buf)
	}
	return mac.Sum(nil), nil
}

// NewHmacSigner returns a signer that produces a HmacWithSha256 signature
// using key.
func NewHmacSigner(key []byte) ndn.Signer {
	return &hmacSigner{key: key}
}

// ValidateHmac reports whether sigValue is the correct HMAC-SHA256 over
// covered under key.
func ValidateHmac(covered enc.Wire, sigValue []byte, key []byte) bool {
	mac := hmac.New(sha256.New, key)
	for _, buf := range covered {
		mac.Write(buf)
	}
	return hmac.Equal(mac.Sum(nil), sigValue)
}
