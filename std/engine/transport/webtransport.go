package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/quic-go/webtransport-go"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/log"
	"github.com/ndn-go/ndnclient/std/ndn"
)

// WebTransportConnectionInfo addresses an NDN-over-WebTransport face by
// its HTTPS URL, the same scheme forwarder speaks for
// browser/WASM clients that cannot open a raw QUIC connection.
type WebTransportConnectionInfo struct {
	Url string
}

func (c WebTransportConnectionInfo) String() string { return c.Url }

// WebTransportTransport is a Transport carrying the NDN-TLV byte
// stream over a single reliable, ordered WebTransport stream (not
// datagrams, which the wire format's reliable-stream contract excludes),
// grounded on HTTP3Transport session handling.
type WebTransportTransport struct {
	running atomic.Bool
	sendMu  sync.Mutex
	sess    *webtransport.Session
	stream  webtransport.Stream
	reader  ElementReader
	sink    ndn.ElementSink
	url     string
}

func NewWebTransportTransport() *WebTransportTransport {
	return &WebTransportTransport{}
}

func (t *WebTransportTransport) IsAsync() bool     { return false }
func (t *WebTransportTransport) IsConnected() bool { return t.running.Load() }
func (t *WebTransportTransport) IsLocal(info ndn.ConnectionInfo) bool {
	return false
}

func (t *WebTransportTransport) Connect(info ndn.ConnectionInfo, sink ndn.ElementSink, onConnected func()) error {
	if t.running.Load() {
		return fmt.Errorf("transport is already connected")
	}
	ci, ok := info.(WebTransportConnectionInfo)
	if !ok {
		return fmt.Errorf("webtransport transport requires a WebTransportConnectionInfo")
	}

	d := &webtransport.Dialer{
		TLSClientConfig: &tls.Config{},
	}
	_, sess, err := d.Dial(context.Background(), ci.Url, nil)
	if err != nil {
		return err
	}
	stream, err := sess.OpenStreamSync(context.Background())
	if err != nil {
		sess.CloseWithError(0, "")
		return err
	}

	t.sess = sess
	t.stream = stream
	t.sink = sink
	t.url = ci.Url
	t.reader.Reset()
	t.running.Store(true)
	go t.receiveLoop()
	if onConnected != nil {
		onConnected()
	}
	return nil
}

func (t *WebTransportTransport) Close() error {
	if !t.running.Swap(false) {
		return nil
	}
	t.stream.Close()
	return t.sess.CloseWithError(0, "")
}

func (t *WebTransportTransport) Send(wire enc.Wire) error {
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
func (t *WebTransportTransport) ProcessEvents() error { return nil }

func (t *WebTransportTransport) receiveLoop() {
	buf := make([]byte, 1<<16)
	for t.running.Load() {
		n, err := t.stream.Read(buf)
		if err != nil {
			if t.running.Swap(false) {
				log.Warn(t, "webtransport transport closed", "err", err)
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

func (t *WebTransportTransport) String() string {
	return fmt.Sprintf("webtransport-transport(%s)", t.url)
}
