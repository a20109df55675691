package signer

import (
	"bytes"
	"crypto/sha256"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
)

// sha256Signer produces a DigestSha256 SignatureValue: the SHA-256 digest
// of the signed portion, with no key involved.
type sha256Signer struct{}

func (sha256Signer) Type() ndn.SigType        { return ndn.SigTypeDigestSha256 }
func (sha256Signer) KeyLocatorName() enc.Name { return nil }
func (sha256Signer) EstimateSize() int        { return sha256.Size }

func (sha256Signer) Sign(covered enc.Wire) ([]byte, error) {
	h := sha256.New()
	for _, buf := range covered {
		h.Write(buf)
	}
	return h.Sum(nil), nil
}

// NewSha256Signer returns a signer that produces a DigestSha256 signature.
func NewSha256Signer() ndn.Signer {
	return sha256Signer{}
}

// ValidateSha256 reports whether sigValue is the SHA-256 digest of covered.
func ValidateSha256(covered enc.Wire, sigValue []byte) bool {
	h := sha256.New()
	for _, buf := range covered {
		h.Write(buf)
	}
	return bytes.Equal(h.Sum(nil), sigValue)
}
