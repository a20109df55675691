//go:build unix

package transport

import (
	"net"

	"golang.org/x/sys/unix"
)

// setTcpNoDelay disables Nagle's algorithm on conn's underlying socket, so
// a small Interest or Data packet is not held back waiting for more
// application writes to coalesce with.
func setTcpNoDelay(conn net.Conn) {
	tc, ok := conn.(*net.TCPConn)
	if !ok {
		return
	}
	raw, err := tc.SyscallConn()
	if err != nil {
		return
	}
	raw.Control(func(fd uintptr) {
		_ = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
	})
}
