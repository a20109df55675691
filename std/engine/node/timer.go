package node

import (
	"crypto/rand"
	"time"

	"github.com/ndn-go/ndnclient/std/ndn"
)

// RealTimer is the ndn.Timer backed by the wall clock and Go's runtime
// timers, the default for any Node not under test.
type RealTimer struct{}

// NewRealTimer returns a Timer driven by the real clock.
func NewRealTimer() ndn.Timer {
	return RealTimer{}
}

func (RealTimer) Now() time.Time { return time.Now() }

// Nonce returns 4 cryptographically random bytes, the size // mandates for an Interest's Nonce field.
func (RealTimer) Nonce() []byte {
	buf := make([]byte, 4)
	rand.Read(buf)
	return buf
}

func (RealTimer) Schedule(d time.Duration, fn func()) (cancel func()) {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}
