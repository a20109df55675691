package encoding_test

import (
	"testing"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/stretchr/testify/require"
)

func TestComponentCompareCanonicalOrder(t *testing.T) {
	shorter := enc.GenericComponent([]byte{0x01})
	longer := enc.GenericComponent([]byte{0x00, 0x00})
	require.Negative(t, shorter.Compare(longer))
	require.Positive(t, longer.Compare(shorter))

	lexSmaller := enc.GenericComponent([]byte{0x01, 0x00})
	lexBigger := enc.GenericComponent([]byte{0x01, 0x01})
	require.Negative(t, lexSmaller.Compare(lexBigger))

	lowType := enc.Component{Typ: 1, Val: enc.Buffer{0xaa}}
	highType := enc.Component{Typ: 2, Val: enc.Buffer{0xaa}}
	require.Negative(t, lowType.Compare(highType))
	require.Zero(t, lowType.Compare(lowType))
}

func TestComponentAllDotsURIRoundTrip(t *testing.T) {
	for n := 3; n <= 6; n++ {
		c := enc.GenericComponent(dots(n))
		str := c.String()
		require.Equal(t, "..."+string(dots(n-3)), str)

		parsed, err := enc.ComponentFromStr(str)
		require.NoError(t, err)
		require.True(t, c.Equal(parsed))
	}
}

func TestComponentShortDotsAreNotAllDotsEncoded(t *testing.T) {
	// A 1- or 2-dot value is too short for the all-dots convention and is
	// percent-escaped normally, since '.' is itself unreserved.
	one := enc.GenericComponent([]byte("."))
	require.Equal(t, ".", one.String())

	two := enc.GenericComponent([]byte(".."))
	require.Equal(t, "..", two.String())
}

func TestComponentImplicitDigestURI(t *testing.T) {
	digest := make([]byte, 32)
	for i := range digest {
		digest[i] = byte(i)
	}
	c, err := enc.ImplicitSha256DigestComponent(digest)
	require.NoError(t, err)
	require.Equal(t, "sha256digest="+hexOf(digest), c.String())

	parsed, err := enc.ComponentFromStr(c.String())
	require.NoError(t, err)
	require.True(t, c.Equal(parsed))
}

func dots(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = '.'
	}
	return b
}

func hexOf(b []byte) string {
	const hex = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hex[v>>4]
		out[i*2+1] = hex[v&0xf]
	}
	return string(out)
}
