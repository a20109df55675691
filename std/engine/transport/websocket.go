package transport

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/log"
	"github.com/ndn-go/ndnclient/std/ndn"
)

// WebSocketConnectionInfo addresses an NDN-over-WebSocket face, e.g. an
// NFD exposing its ws:// port for browser/WASM clients.
type WebSocketConnectionInfo struct {
	Url string
}

func (c WebSocketConnectionInfo) String() string { return c.Url }

// WebSocketTransport is a Transport carrying NDN packets as binary
// WebSocket messages, grounded on WebSocketFace. Unlike
// TcpTransport, it drives a background reader goroutine rather than
// requiring the caller to call ProcessEvents in a loop.
type WebSocketTransport struct {
	running atomic.Bool
	sendMu  sync.Mutex
	conn    *websocket.Conn
	url     string
	sink    ndn.ElementSink
}

func NewWebSocketTransport() *WebSocketTransport {
	return &WebSocketTransport{}
}

func (t *WebSocketTransport) IsAsync() bool     { return false }
func (t *WebSocketTransport) IsConnected() bool { return t.running.Load() }
func (t *WebSocketTransport) IsLocal(info ndn.ConnectionInfo) bool {
	return false
}

func (t *WebSocketTransport) Connect(info ndn.ConnectionInfo, sink ndn.ElementSink, onConnected func()) error {
	if t.running.Load() {
		return fmt.Errorf("transport is already connected")
	}
	ci, ok := info.(WebSocketConnectionInfo)
	if !ok {
		return fmt.Errorf("websocket transport requires a WebSocketConnectionInfo")
	}

	conn, _, err := websocket.DefaultDialer.Dial(ci.Url, nil)
	if err != nil {
		return err
	}

	t.conn = conn
	t.url = ci.Url
	t.sink = sink
	t.running.Store(true)
	go t.receiveLoop()
	if onConnected != nil {
		onConnected()
	}
	return nil
}

func (t *WebSocketTransport) Close() error {
	if !t.running.Swap(false) {
		return nil
	}
	return t.conn.Close()
}

func (t *WebSocketTransport) Send(wire enc.Wire) error {
	if !t.running.Load() {
		return fmt.Errorf("transport is not connected")
	}
	t.sendMu.Lock()
	defer t.sendMu.Unlock()
	return t.conn.WriteMessage(websocket.BinaryMessage, wire.Join())
}

// ProcessEvents is a no-op: the receive loop already runs in the
// background.
func (t *WebSocketTransport) ProcessEvents() error { return nil }

func (t *WebSocketTransport) receiveLoop() {
	for t.running.Load() {
		messageType, pkt, err := t.conn.ReadMessage()
		if err != nil {
			if t.running.Swap(false) {
				log.Warn(t, "websocket transport closed", "err", err)
			}
			return
		}
		if messageType != websocket.BinaryMessage {
			continue
		}
		if err := recoverableSink(t.sink, pkt); err != nil {
			log.Error(t, "element sink failed", "err", err)
		}
	}
}

func (t *WebSocketTransport) String() string {
	return fmt.Sprintf("websocket-transport(%s)", t.url)
}
