package encoding_test

import (
	"testing"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/stretchr/testify/require"
)

func TestNameURIRoundTripWorkedExample(t *testing.T) {
	uri := "/hello/%00%01/.../sha256digest=0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

	name, err := enc.NameFromStr(uri)
	require.NoError(t, err)
	// Only "." and ".." are ignored path segments; "..." is the all-dots
	// naming convention and decodes to a real 3-byte component.
	require.Len(t, name, 4)

	require.Equal(t, enc.TypeGenericNameComponent, name.At(0).Typ)
	require.Equal(t, []byte("hello"), []byte(name.At(0).Val))

	require.Equal(t, enc.TypeGenericNameComponent, name.At(1).Typ)
	require.Equal(t, []byte{0x00, 0x01}, []byte(name.At(1).Val))

	require.Equal(t, enc.TypeGenericNameComponent, name.At(2).Typ)
	require.Equal(t, []byte("..."), []byte(name.At(2).Val))

	require.Equal(t, enc.TypeImplicitSha256DigestComponent, name.At(3).Typ)
	require.Len(t, name.At(3).Val, 32)
	require.Equal(t, byte(0x01), name.At(3).Val[0])
	require.Equal(t, byte(0xef), name.At(3).Val[31])

	require.Equal(t, uri, name.String())
}

func TestNameCompareCanonicalOrderTotality(t *testing.T) {
	// Canonical order compares each component by value length first, then
	// bytes, so a longer first component ("/aa") sorts after every name
	// whose first component is shorter ("/a", "/a/b", "/b"), even though
	// "aa" < "b" lexicographically.
	names := []string{"/", "/a", "/a/b", "/b", "/aa"}
	parsed := make([]enc.Name, len(names))
	for i, s := range names {
		n, err := enc.NameFromStr(s)
		require.NoError(t, err)
		parsed[i] = n
	}
	for i := 0; i < len(parsed); i++ {
		for j := 0; j < len(parsed); j++ {
			got := parsed[i].Compare(parsed[j])
			switch {
			case i < j:
				require.Negativef(t, got, "%s should sort before %s", names[i], names[j])
			case i > j:
				require.Positivef(t, got, "%s should sort after %s", names[i], names[j])
			default:
				require.Zerof(t, got, "%s should equal itself", names[i])
			}
		}
	}
}

func TestNameSuccessorEmptyName(t *testing.T) {
	succ := enc.Name{}.Successor()
	require.Equal(t, "/%00", succ.String())
}

func TestNameSuccessorCarriesOverOnOverflow(t *testing.T) {
	n, err := enc.NameFromStr("/A/%FF%FF")
	require.NoError(t, err)

	succ := n.Successor()
	want, err := enc.NameFromStr("/A/%00%00%00")
	require.NoError(t, err)
	require.True(t, succ.Equal(want))
}

func TestNameSuccessorIsStrictlyGreater(t *testing.T) {
	cases := []string{"/", "/a", "/a/%ff", "/a/%ff%ff", "/z"}
	for _, s := range cases {
		n, err := enc.NameFromStr(s)
		require.NoError(t, err)
		require.Negative(t, n.Compare(n.Successor()), "successor of %s must sort after it", s)
	}
}

func TestNameWireEncodeDecodeRoundTrip(t *testing.T) {
	n, err := enc.NameFromStr("/a/b/%00%01%02")
	require.NoError(t, err)

	wire := n.Bytes()
	d := enc.NewDecoder(wire)
	decoded, err := enc.ReadName(d)
	require.NoError(t, err)
	require.True(t, n.Equal(decoded))
}
