package signer_test

import (
	"testing"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
	"github.com/ndn-go/ndnclient/std/security/signer"
	"github.com/stretchr/testify/require"
)

func TestSha3SignerSignAndValidate(t *testing.T) {
	s := signer.NewSha3Signer()
	require.Equal(t, ndn.SigTypeDigestSha3256, s.Type())
	require.Nil(t, s.KeyLocatorName())

	covered := enc.Wire{enc.Buffer("abc"), enc.Buffer("def")}
	sig, err := s.Sign(covered)
	require.NoError(t, err)
	require.Len(t, sig, s.EstimateSize())

	require.True(t, signer.ValidateSha3(covered, sig))
	require.False(t, signer.ValidateSha3(covered, append([]byte(nil), sig...)[:len(sig)-1]))
}
