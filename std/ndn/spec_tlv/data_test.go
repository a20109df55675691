package spec_tlv_test

import (
	"testing"
	"time"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
	"github.com/ndn-go/ndnclient/std/ndn/spec_tlv"
	"github.com/ndn-go/ndnclient/std/security/signer"
	"github.com/ndn-go/ndnclient/std/types/optional"
	"github.com/stretchr/testify/require"
)

func TestDataEncodeDecodeRoundTrip(t *testing.T) {
	name, err := enc.NameFromStr("/a/b")
	require.NoError(t, err)

	d := &ndn.Data{
		NameV:    name,
		ContentV: enc.Wire{enc.Buffer("hello")},
		MetaInfoV: ndn.MetaInfo{
			ContentType: optional.Some(ndn.ContentTypeBlob),
			FreshnessV:  optional.Some(10 * time.Second),
		},
	}

	wire, err := spec_tlv.EncodeData(d, signer.NewSha256Signer())
	require.NoError(t, err)

	decoded, err := spec_tlv.DecodeData(enc.NewDecoder(wire.Join()))
	require.NoError(t, err)

	require.True(t, decoded.NameV.Equal(d.NameV))
	require.Equal(t, []byte("hello"), decoded.ContentV.Join())
	ct, ok := decoded.MetaInfoV.ContentType.Get()
	require.True(t, ok)
	require.Equal(t, ndn.ContentTypeBlob, ct)
	require.NotNil(t, decoded.SigInfo)
	require.Equal(t, ndn.SigTypeDigestSha256, decoded.SigInfo.Type)

	require.Equal(t, d.SignedPortion.Join(), decoded.SignedPortion.Join())
	require.True(t, signer.ValidateSha256(decoded.SignedPortion, decoded.SigValue))
}

func TestDataUnsignedRoundTrip(t *testing.T) {
	name, err := enc.NameFromStr("/no-signature")
	require.NoError(t, err)
	d := &ndn.Data{NameV: name}

	wire, err := spec_tlv.EncodeData(d, nil)
	require.NoError(t, err)

	decoded, err := spec_tlv.DecodeData(enc.NewDecoder(wire.Join()))
	require.NoError(t, err)
	require.True(t, decoded.NameV.Equal(name))
	require.Nil(t, decoded.SigInfo)
	require.Empty(t, decoded.SigValue)
}

func TestMakeDataSignsAndDecodes(t *testing.T) {
	name, err := enc.NameFromStr("/make/data")
	require.NoError(t, err)

	keyName, err := enc.NameFromStr("/key")
	require.NoError(t, err)

	d, err := spec_tlv.MakeData(name, &ndn.DataConfig{
		ContentType: optional.Some(ndn.ContentTypeBlob),
	}, enc.Wire{enc.Buffer("payload")}, signer.NewTestSigner(keyName, 16))
	require.NoError(t, err)

	require.True(t, d.NameV.Equal(name))
	require.Equal(t, []byte("payload"), d.ContentV.Join())
	require.Len(t, d.SigValue, 16)
	require.True(t, d.SigInfo.KeyLocator.Equal(keyName))
}
