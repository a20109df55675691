package transport

import (
	"fmt"
	"sync"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
)

// DummyConnectionInfo is the ndn.ConnectionInfo paired with DummyTransport;
// it carries no real address since DummyTransport never dials anything.
type DummyConnectionInfo struct{}

func (DummyConnectionInfo) String() string { return "dummy" }

// DummyTransport is a synchronous, in-process Transport for tests,
// grounded on DummyFace: Send captures outgoing wire bytes
// for assertions, and FeedElement injects inbound packets as if a
// forwarder had sent them.
type DummyTransport struct {
	mu        sync.Mutex
	connected bool
	local     bool
	sink      ndn.ElementSink
	sent      []enc.Buffer
}

// NewDummyTransport constructs a DummyTransport; local controls what
// IsLocal reports, mirroring how a test harness picks local vs. remote
// prefix-registration behavior.
func NewDummyTransport(local bool) *DummyTransport {
	return &DummyTransport{local: local}
}

func (t *DummyTransport) IsAsync() bool                   { return false }
func (t *DummyTransport) IsConnected() bool               { return t.connected }
func (t *DummyTransport) IsLocal(ndn.ConnectionInfo) bool { return t.local }

func (t *DummyTransport) Connect(info ndn.ConnectionInfo, sink ndn.ElementSink, onConnected func()) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.connected {
		return fmt.Errorf("transport is already connected")
	}
	t.sink = sink
	t.connected = true
	if onConnected != nil {
		onConnected()
	}
	return nil
}

func (t *DummyTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.connected = false
	return nil
}

func (t *DummyTransport) Send(wire enc.Wire) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.connected {
		return fmt.Errorf("transport is not connected")
	}
	t.sent = append(t.sent, wire.Join())
	return nil
}

// ProcessEvents is a no-op; tests drive delivery explicitly via
// FeedElement.
func (t *DummyTransport) ProcessEvents() error { return nil }

// FeedElement hands element directly to the connected sink, as if it had
// just arrived off the wire.
func (t *DummyTransport) FeedElement(element []byte) error {
	t.mu.Lock()
	sink := t.sink
	connected := t.connected
	t.mu.Unlock()
	if !connected {
		return fmt.Errorf("transport is not connected")
	}
	sink(element)
	return nil
}

// SentElements returns (and clears) every element captured by Send so far.
func (t *DummyTransport) SentElements() []enc.Buffer {
	t.mu.Lock()
	defer t.mu.Unlock()
	sent := t.sent
	t.sent = nil
	return sent
}

func (t *DummyTransport) String() string { return "dummy-transport" }
