package transport

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/log"
	"github.com/ndn-go/ndnclient/std/ndn"
)

// UnixConnectionInfo addresses a Unix domain socket face (e.g. NFD's
// default /run/nfd/nfd.sock), always local.
type UnixConnectionInfo struct {
	Path string
}

func (c UnixConnectionInfo) String() string { return "unix://" + c.Path }

// UnixTransport is a Transport over a Unix domain socket stream, the
// same dial-and-frame shape as TcpTransport specialized to "unix".
type UnixTransport struct {
	running atomic.Bool
	sendMu  sync.Mutex
	conn    net.Conn
	reader  ElementReader
	sink    ndn.ElementSink
}

func NewUnixTransport() *UnixTransport {
	return &UnixTransport{}
}

func (t *UnixTransport) IsAsync() bool                        { return false }
func (t *UnixTransport) IsConnected() bool                    { return t.running.Load() }
func (t *UnixTransport) IsLocal(info ndn.ConnectionInfo) bool { return true }

func (t *UnixTransport) Connect(info ndn.ConnectionInfo, sink ndn.ElementSink, onConnected func()) error {
	if t.running.Load() {
		return fmt.Errorf("transport is already connected")
	}
	ci, ok := info.(UnixConnectionInfo)
	if !ok {
		return fmt.Errorf("unix transport requires a UnixConnectionInfo")
	}
	conn, err := net.Dial("unix", ci.Path)
	if err != nil {
		return err
	}

	t.conn = conn
	t.sink = sink
	t.reader.Reset()
	t.running.Store(true)
	if onConnected != nil {
		onConnected()
	}
	return nil
}

func (t *UnixTransport) Close() error {
	if !t.running.Swap(false) {
		return nil
	}
	return t.conn.Close()
}

func (t *UnixTransport) Send(wire enc.Wire) error {
	if !t.running.Load() {
		return fmt.Errorf("transport is not connected")
	}
	t.sendMu.Lock()
	defer t.sendMu.Unlock()
	_, err := t.conn.Write(wire.Join())
	return err
}

func (t *UnixTransport) ProcessEvents() error {
	if !t.running.Load() {
		return fmt.Errorf("transport is not connected")
	}
	buf := make([]byte, 1<<16)
	n, err := t.conn.Read(buf)
	if err != nil {
		t.running.Store(false)
		return err
	}
	return t.reader.Feed(buf[:n], func(element []byte) {
		if err := recoverableSink(t.sink, element); err != nil {
			log.Error(t, "element sink failed", "err", err)
		}
	})
}

func (t *UnixTransport) String() string { return "unix-transport" }
