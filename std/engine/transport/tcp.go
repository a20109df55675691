package transport

import (
	"fmt"
	"net"
	"strings"
	"sync"
	"sync/atomic"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/log"
	"github.com/ndn-go/ndnclient/std/ndn"
)

// TcpConnectionInfo is an ndn.ConnectionInfo addressing a TCP face by
// host and port, per ("TCP transport uses host + port,
// default 6363").
type TcpConnectionInfo struct {
	Host string
	Port uint16
}

func (c TcpConnectionInfo) String() string {
	return fmt.Sprintf("tcp://%s:%d", c.Host, c.Port)
}

func (c TcpConnectionInfo) addr() string {
	port := c.Port
	if port == 0 {
		port = 6363
	}
	return fmt.Sprintf("%s:%d", c.Host, port)
}

// TcpTransport is a Transport over a TCP byte stream, grounded on
// StreamFace.
type TcpTransport struct {
	running atomic.Bool
	sendMu  sync.Mutex
	conn    net.Conn
	reader  ElementReader
	sink    ndn.ElementSink
}

func NewTcpTransport() *TcpTransport {
	return &TcpTransport{}
}

func (t *TcpTransport) IsAsync() bool { return false }

func (t *TcpTransport) IsConnected() bool { return t.running.Load() }

// IsLocal classifies info's resolved address as loopback.
func (t *TcpTransport) IsLocal(info ndn.ConnectionInfo) bool {
	ci, ok := info.(TcpConnectionInfo)
	if !ok {
		return false
	}
	if ips, err := net.LookupIP(ci.Host); err == nil {
		for _, ip := range ips {
			if ip.IsLoopback() {
				return true
			}
		}
		return false
	}
	return ci.Host == "localhost"
}

// Connect dials synchronously; TcpTransport never uses onConnected
// (IsAsync reports false) but still invokes it for callers that always do.
func (t *TcpTransport) Connect(info ndn.ConnectionInfo, sink ndn.ElementSink, onConnected func()) error {
	if t.running.Load() {
		return fmt.Errorf("transport is already connected")
	}
	ci, ok := info.(TcpConnectionInfo)
	if !ok {
		return fmt.Errorf("tcp transport requires a TcpConnectionInfo")
	}

	conn, err := net.Dial("tcp", ci.addr())
	if err != nil {
		return err
	}
	setTcpNoDelay(conn)

	t.conn = conn
	t.sink = sink
	t.reader.Reset()
	t.running.Store(true)
	if onConnected != nil {
		onConnected()
	}
	return nil
}

func (t *TcpTransport) Close() error {
	if !t.running.Swap(false) {
		return nil
	}
	return t.conn.Close()
}

func (t *TcpTransport) Send(wire enc.Wire) error {
	if !t.running.Load() {
		return fmt.Errorf("transport is not connected")
	}
	t.sendMu.Lock()
	defer t.sendMu.Unlock()
	_, err := t.conn.Write(wire.Join())
	return err
}

// ProcessEvents blocks reading one chunk from the socket and feeds it to
// the element reader; single-threaded cooperative model calls
// this in a loop.
func (t *TcpTransport) ProcessEvents() error {
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

func (t *TcpTransport) String() string {
	if t.conn != nil {
		return fmt.Sprintf("tcp-transport(%s)", t.conn.RemoteAddr())
	}
	return "tcp-transport"
}

func recoverableSink(sink ndn.ElementSink, element []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in element sink: %v", r)
		}
	}()
	sink(element)
	return nil
}

// ParseTcpConnectionInfo parses "host[:port]" into a TcpConnectionInfo.
func ParseTcpConnectionInfo(addr string) (TcpConnectionInfo, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		if strings.Contains(err.Error(), "missing port") {
			return TcpConnectionInfo{Host: addr, Port: 6363}, nil
		}
		return TcpConnectionInfo{}, err
	}
	var port uint16
	if _, err := fmt.Sscanf(portStr, "%d", &port); err != nil {
		return TcpConnectionInfo{}, fmt.Errorf("invalid port %q: %w", portStr, err)
	}
	return TcpConnectionInfo{Host: host, Port: port}, nil
}
