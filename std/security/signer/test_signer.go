package signer

import (
	"crypto/rand"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
)

// testSigner is a signer used for tests only. It produces a fixed-size
// random signature value and never validates.
type testSigner struct {
	keyName enc.Name
	sigSize int
}

func (testSigner) Type() ndn.SigType { return ndn.SigTypeGeneric }

func (t testSigner) KeyLocatorName() enc.Name { return t.keyName }

func (t testSigner) EstimateSize() int { return t.sigSize }

func (t testSigner) Sign(covered enc.Wire) ([]byte, error) {
	buf := make([]byte, t.sigSize)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// NewTestSigner returns a signer for tests that don't exercise a real
// cryptographic algorithm, keyed under keyName and producing sigSize
// random bytes per signature.
func NewTestSigner(keyName enc.Name, sigSize int) ndn.Signer {
	return testSigner{keyName: keyName, sigSize: sigSize}
}
