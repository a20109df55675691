package signer

import (
	"bytes"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
	"golang.org/x/crypto/sha3"
)

// sha3Signer produces a DigestSha3256 SignatureValue: the SHA3-256 digest
// of the signed portion, with no key involved. It exists alongside
// sha256Signer for publishers that already checksum content with
// Keccak/SHA-3 upstream and want the Data packet's digest to match.
type sha3Signer struct{}

func (sha3Signer) Type() ndn.SigType        { return ndn.SigTypeDigestSha3256 }
func (sha3Signer) KeyLocatorName() enc.Name { return nil }
func (sha3Signer) EstimateSize() int        { return sha3.New256().Size() }

func (sha3Signer) Sign(covered enc.Wire) ([]byte, error) {
	h := sha3.New256()
	for _, buf := range covered {
		h.Write(buf)
	}
	return h.Sum(nil), nil
}

// NewSha3Signer returns a signer that produces a DigestSha3256 signature.
func NewSha3Signer() ndn.Signer {
	return sha3Signer{}
}

// ValidateSha3 reports whether sigValue is the SHA3-256 digest of covered.
func ValidateSha3(covered enc.Wire, sigValue []byte) bool {
	h := sha3.New256()
	for _, buf := range covered {
		h.Write(buf)
	}
	return bytes.Equal(h.Sum(nil), sigValue)
}
