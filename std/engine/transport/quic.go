package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/quic-go/quic-go"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/log"
	"github.com/ndn-go/ndnclient/std/ndn"
)

// QuicConnectionInfo addresses a QUIC face by host:port and the ALPN the
// forwarder negotiates this core's NDN-over-QUIC protocol under.
type QuicConnectionInfo struct {
	Addr  string
	Alpn  string
	Local bool
}

func (c QuicConnectionInfo) String() string { return "quic://" + c.Addr }

// QuicTransport is a Transport carrying the NDN-TLV byte stream over
// a single bidirectional QUIC stream, exercising the same quic-go stack
// forwarder uses for its own face layer.
type QuicTransport struct {
	running atomic.Bool
	sendMu  sync.Mutex
	conn    *quic.Conn
	stream  *quic.Stream
	reader  ElementReader
	sink    ndn.ElementSink
	addr    string
}

func NewQuicTransport() *QuicTransport {
	return &QuicTransport{}
}

func (t *QuicTransport) IsAsync() bool     { return false }
func (t *QuicTransport) IsConnected() bool { return t.running.Load() }
func (t *QuicTransport) IsLocal(info ndn.ConnectionInfo) bool {
	ci, ok := info.(QuicConnectionInfo)
	return ok && ci.Local
}

func (t *QuicTransport) Connect(info ndn.ConnectionInfo, sink ndn.ElementSink, onConnected func()) error {
	if t.running.Load() {
		return fmt.Errorf("transport is already connected")
	}
	ci, ok := info.(QuicConnectionInfo)
	if !ok {
		return fmt.Errorf("quic transport requires a QuicConnectionInfo")
	}
	alpn := ci.Alpn
	if alpn == "" {
		alpn = "ndn"
	}

	ctx := context.Background()
	conn, err := quic.DialAddr(ctx, ci.Addr, &tls.Config{
		NextProtos: []string{alpn},
	}, nil)
	if err != nil {
		return err
	}
	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		conn.CloseWithError(0, "")
		return err
	}

	t.conn = conn
	t.stream = stream
	t.sink = sink
	t.addr = ci.Addr
	t.reader.Reset()
	t.running.Store(true)
	go t.receiveLoop()
	if onConnected != nil {
		onConnected()
	}
	return nil
}

func (t *QuicTransport) Close() error {
	if !t.running.Swap(false) {
		return nil
	}
	t.stream.Close()
	return t.conn.CloseWithError(0, "")
}

func (t *QuicTransport) Send(wire enc.Wire) error {
	if !t.running.Load() {
		return fmt.Errorf("transport is not connected")
	}
	t.sendMu.Lock()
	defer t.sendMu.Unlock()
	_, err := t.stream.Write(wire.Join())
	return err
}

// ProcessEvents is a no-op: the receive loop already runs in the
// background.
func (t *QuicTransport) ProcessEvents() error { return nil }

func (t *QuicTransport) receiveLoop() {
	buf := make([]byte, 1<<16)
	for t.running.Load() {
		n, err := t.stream.Read(buf)
		if err != nil {
			if t.running.Swap(false) {
				log.Warn(t, "quic transport closed", "err", err)
			}
			return
		}
		if err := t.reader.Feed(buf[:n], func(element []byte) {
			if err := recoverableSink(t.sink, element); err != nil {
				log.Error(t, "element sink failed", "err", err)
			}
		}); err != nil {
			log.Error(t, "element reader failed", "err", err)
			t.running.Store(false)
			return
		}
	}
}

func (t *QuicTransport) String() string {
	return fmt.Sprintf("quic-transport(%s)", t.addr)
}
