package face_test

import (
	"testing"

	"github.com/ndn-go/ndnclient/std/config"
	"github.com/ndn-go/ndnclient/std/engine/node"
	"github.com/ndn-go/ndnclient/std/engine/transport"
	"github.com/ndn-go/ndnclient/std/face"
	"github.com/ndn-go/ndnclient/std/ndn"
	sig "github.com/ndn-go/ndnclient/std/security/signer"
	"github.com/stretchr/testify/require"
)

func TestFaceSatisfiesNdnFace(t *testing.T) {
	var _ ndn.Face = face.New(
		transport.NewDummyTransport(true),
		transport.DummyConnectionInfo{},
		node.NewDummyTimer(),
		sig.NewCommandSigner(sig.NewSha256Signer()),
	)
}

func TestNewUnixBuildsFaceWithoutDialing(t *testing.T) {
	f := face.NewUnix("/run/nfd/nfd.sock")
	require.NotNil(t, f)
}

func TestNewTcpRejectsBadAddr(t *testing.T) {
	_, err := face.NewTcp("host:not-a-port")
	require.Error(t, err)
}

func TestNewFromConfigUnsupportedScheme(t *testing.T) {
	_, err := face.NewFromConfig(&config.Config{
		Transport: config.TransportConfig{Uri: "sctp://example.com"},
	})
	require.Error(t, err)
}

func TestNewFromConfigUnix(t *testing.T) {
	f, err := face.NewFromConfig(&config.Config{
		Transport: config.TransportConfig{Uri: "unix:///run/nfd/nfd.sock"},
	})
	require.NoError(t, err)
	require.NotNil(t, f)
}

func TestNewFromConfigHmacKey(t *testing.T) {
	f, err := face.NewFromConfig(&config.Config{
		Transport: config.TransportConfig{Uri: "tcp://127.0.0.1:6363"},
		Key:       config.KeyConfig{HmacKey: "s3cr3t"},
	})
	require.NoError(t, err)
	require.NotNil(t, f)
}
