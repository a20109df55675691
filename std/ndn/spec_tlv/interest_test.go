package spec_tlv_test

import (
	"testing"
	"time"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
	"github.com/ndn-go/ndnclient/std/ndn/spec_tlv"
	"github.com/ndn-go/ndnclient/std/types/optional"
	"github.com/stretchr/testify/require"
)

func TestInterestEncodeDecodeRoundTrip(t *testing.T) {
	name, err := enc.NameFromStr("/a/b/c")
	require.NoError(t, err)

	i := &ndn.Interest{
		NameV:     name,
		NonceV:    []byte{0x01, 0x02, 0x03, 0x04},
		LifetimeV: optional.Some(4 * time.Second),
		Scope:     optional.Some(1),
	}
	i.Selectors.MustBeFresh = true

	wire, err := spec_tlv.EncodeInterest(i)
	require.NoError(t, err)

	decoded, err := spec_tlv.DecodeInterest(enc.NewDecoder(wire.Join()))
	require.NoError(t, err)

	require.True(t, decoded.NameV.Equal(i.NameV))
	require.Equal(t, i.NonceV, decoded.NonceV)
	lt, ok := decoded.LifetimeV.Get()
	require.True(t, ok)
	require.Equal(t, 4*time.Second, lt)
	scope, ok := decoded.Scope.Get()
	require.True(t, ok)
	require.Equal(t, 1, scope)
	require.True(t, decoded.Selectors.MustBeFresh)

	require.Equal(t, i.SignedPortion.Join(), decoded.SignedPortion.Join())
}

func TestInterestSignedPortionExcludesLifetimeAndScope(t *testing.T) {
	name, err := enc.NameFromStr("/ndn/register")
	require.NoError(t, err)

	i := &ndn.Interest{
		NameV:     name,
		NonceV:    []byte{0xaa, 0xbb, 0xcc, 0xdd},
		LifetimeV: optional.Some(2 * time.Second),
	}
	wire, err := spec_tlv.EncodeInterest(i)
	require.NoError(t, err)

	withoutLifetime := &ndn.Interest{
		NameV:  name,
		NonceV: i.NonceV,
	}
	wireWithoutLifetime, err := spec_tlv.EncodeInterest(withoutLifetime)
	require.NoError(t, err)

	// The overall encodings differ (one carries InterestLifetime, the
	// other doesn't) but the signed portion must be identical, since it
	// excludes InterestLifetime/Scope.
	require.NotEqual(t, wire.Join(), wireWithoutLifetime.Join())
	require.Equal(t, i.SignedPortion.Join(), withoutLifetime.SignedPortion.Join())
}

func TestInterestGeneratesNonceWhenAbsent(t *testing.T) {
	name, err := enc.NameFromStr("/x")
	require.NoError(t, err)

	i := &ndn.Interest{NameV: name}
	_, err = spec_tlv.EncodeInterest(i)
	require.NoError(t, err)
	require.Len(t, i.NonceV, 4)
}

func TestReadPacketPopulatesInterestSigCovered(t *testing.T) {
	name, err := enc.NameFromStr("/a")
	require.NoError(t, err)
	i := &ndn.Interest{NameV: name, NonceV: []byte{1, 2, 3, 4}}
	wire, err := spec_tlv.EncodeInterest(i)
	require.NoError(t, err)

	pkt, ctx, err := spec_tlv.ReadPacket(enc.NewDecoder(wire.Join()))
	require.NoError(t, err)
	require.NotNil(t, pkt.Interest)
	require.Equal(t, i.SignedPortion.Join(), ctx.InterestSigCovered.Join())
}
