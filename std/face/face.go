// Package face is the public surface applications hold: a thin
// façade over the Node protocol engine in the tradition of
// NDN-CPP/PyNDN/jNDN's Face class, plus the construction convenience the
// std/engine/factory.go gave NewDefaultFace/NewUnixFace.
package face

import (
	"fmt"
	"net/url"

	"github.com/ndn-go/ndnclient/std/config"
	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/engine/node"
	"github.com/ndn-go/ndnclient/std/engine/transport"
	"github.com/ndn-go/ndnclient/std/ndn"
	"github.com/ndn-go/ndnclient/std/security/signer"
)

// commandKeyName is the KeyLocator name carried on commands signed with
// the zero-configuration fallback (a TestSigner producing 32 random
// signature bytes), and the key name LoadKeyFile signers use; the
// fallback authenticates nothing, it
// only lets RegisterPrefix function against a forwarder that accepts
// unsigned-equivalent commands (e.g. a local NFD with the default
// "accept everything from localhost" authorization).
var commandKeyName = enc.Name{enc.GenericComponent([]byte("anonymous"))}

// Face wraps a Node, exposing ndn.Face through promoted methods and adding
// nothing on top beyond construction. Every field application code needs
// (ExpressInterest, RegisterPrefix, SetInterestFilter, PutData,
// ProcessEvents, ...) is the embedded Node's.
type Face struct {
	*node.Node
}

// New builds a Face directly from its parts, for callers assembling their
// own Transport (e.g. DummyTransport in tests).
func New(tr ndn.Transport, connInfo ndn.ConnectionInfo, timer ndn.Timer, cmdSigner ndn.CommandSigner) *Face {
	return &Face{Node: node.New(tr, connInfo, timer, cmdSigner)}
}

func defaultCommandSigner() ndn.CommandSigner {
	return signer.NewCommandSigner(signer.NewTestSigner(commandKeyName, 32))
}

// NewUnix builds a Face that reaches a forwarder over a Unix domain
// socket, NFD's default local transport (e.g. "/run/nfd/nfd.sock"). The
// socket is not dialed until the Face's first operation.
func NewUnix(path string) *Face {
	return New(transport.NewUnixTransport(), transport.UnixConnectionInfo{Path: path},
		node.NewRealTimer(), defaultCommandSigner())
}

// NewTcp builds a Face that reaches a forwarder over TCP at addr
// ("host[:port]", default port 6363); like NewUnix, it does not dial
// until first use.
func NewTcp(addr string) (*Face, error) {
	ci, err := transport.ParseTcpConnectionInfo(addr)
	if err != nil {
		return nil, err
	}
	return New(transport.NewTcpTransport(), ci, node.NewRealTimer(), defaultCommandSigner()), nil
}

// NewFromConfig builds a Face from cfg's transport URI and key settings,
// mirroring engine.NewDefaultFace factory.
func NewFromConfig(cfg *config.Config) (*Face, error) {
	uri, err := url.Parse(cfg.Transport.Uri)
	if err != nil {
		return nil, fmt.Errorf("invalid transport uri %q: %w", cfg.Transport.Uri, err)
	}

	var (
		tr       ndn.Transport
		connInfo ndn.ConnectionInfo
	)
	switch uri.Scheme {
	case "unix":
		tr = transport.NewUnixTransport()
		connInfo = transport.UnixConnectionInfo{Path: uri.Path}
	case "tcp", "tcp4", "tcp6":
		ci, err := transport.ParseTcpConnectionInfo(uri.Host)
		if err != nil {
			return nil, err
		}
		tr = transport.NewTcpTransport()
		connInfo = ci
	case "ws", "wss":
		tr = transport.NewWebSocketTransport()
		connInfo = transport.WebSocketConnectionInfo{Url: cfg.Transport.Uri}
	case "quic":
		tr = transport.NewQuicTransport()
		connInfo = transport.QuicConnectionInfo{Addr: uri.Host}
	default:
		return nil, fmt.Errorf("unsupported transport uri %q", cfg.Transport.Uri)
	}

	cmdSigner, err := buildCommandSigner(cfg)
	if err != nil {
		return nil, err
	}
	return New(tr, connInfo, node.NewRealTimer(), cmdSigner), nil
}

func buildCommandSigner(cfg *config.Config) (ndn.CommandSigner, error) {
	switch {
	case cfg.Key.HmacKey != "":
		return signer.NewCommandSigner(signer.NewHmacSigner([]byte(cfg.Key.HmacKey))), nil
	case cfg.Key.KeyFile != "":
		s, err := signer.LoadKeyFile(commandKeyName, cfg.Key.KeyFile)
		if err != nil {
			return nil, err
		}
		return signer.NewCommandSigner(s), nil
	default:
		return defaultCommandSigner(), nil
	}
}
