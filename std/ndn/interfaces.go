// Package ndn collects the interfaces that let the TLV codec, the tables,
// the Node dispatcher, and the Face facade depend on each other only through
// small capability contracts instead of concrete types.
package ndn

import (
	"time"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/types/optional"
)

// SigType identifies the signature algorithm carried by a SignatureInfo.
type SigType int

const (
	SigTypeDigestSha256 SigType = iota
	SigTypeSha256WithRsa
	SigTypeSha256WithEcdsa
	SigTypeHmacWithSha256
	SigTypeGeneric
	// SigTypeDigestSha3256 is a non-standard digest type this client
	// recognizes for content verified against a SHA3-256 checksum
	// instead of the wire-standard SHA-256, e.g. manifests minted by a
	// publisher that already hashes with Keccak/SHA-3 elsewhere in its
	// pipeline.
	SigTypeDigestSha3256
)

// Signer produces a SignatureValue over a byte range the caller has already
// selected (the "signed portion") and describes itself via a KeyLocator so
// the caller can place that information into a SignatureInfo.
type Signer interface {
	// Type returns the algorithm this signer implements.
	Type() SigType
	// KeyLocatorName returns the name to place in the SignatureInfo's
	// KeyLocator, or a nil Name if this signer has none (e.g. DigestSha256).
	KeyLocatorName() enc.Name
	// EstimateSize returns an upper bound on the signature's encoded size,
	// used to size buffers before the actual value is known.
	EstimateSize() int
	// Sign computes the signature over covered, the exact signed-portion
	// wire bytes (Name‖MetaInfo‖Content‖SignatureInfo for Data, or the
	// Interest name through the appended Nonce/Timestamp/... components
	// for a command Interest).
	Sign(covered enc.Wire) ([]byte, error)
}

// SigChecker validates a signature over a name and its covered wire bytes.
// Implementations range from "always true" (no validation) to a full
// trust-schema check; the runtime itself only needs the contract.
type SigChecker func(name enc.Name, covered enc.Wire, sigType SigType, sigValue []byte) bool

// ConnectionInfo identifies where a Transport should connect: a host:port
// pair, a Unix socket path, or a WebSocket/QUIC URL, depending on the
// concrete Transport.
type ConnectionInfo interface {
	// String returns a human-readable description, used in logs.
	String() string
}

// ElementSink receives whole, already-framed top-level TLV elements handed
// up from an ElementReader. The slice is only valid for the duration
// of the call; implementations that need to retain it must copy.
type ElementSink func(element []byte)

// Transport is the byte-stream contract a Node depends on. The
// transport owns the socket; the Node owns the ElementSink.
type Transport interface {
	// Connect opens the underlying connection. If IsAsync is false this
	// call blocks until the connection is ready or failed. If IsAsync is
	// true, Connect returns immediately and onConnected (if non-nil) fires
	// once the connection completes.
	Connect(info ConnectionInfo, sink ElementSink, onConnected func()) error
	// Send writes wire to the connection. Each Buffer in wire is written
	// in order; the transport does not reframe it.
	Send(wire enc.Wire) error
	// Close releases the connection. Idempotent.
	Close() error
	// IsConnected reports whether Connect has completed successfully and
	// Close has not been called since.
	IsConnected() bool
	// IsLocal reports whether info addresses a loopback/local endpoint,
	// used to choose between /localhost and /localhop registration.
	IsLocal(info ConnectionInfo) bool
	// IsAsync reports whether Connect is non-blocking.
	IsAsync() bool
	// ProcessEvents drives one iteration of the transport's I/O loop for
	// transports that do not run a background reader goroutine. A
	// goroutine-backed transport may implement this as a no-op.
	ProcessEvents() error
}

// Timer abstracts wall-clock time, nonce generation, and deferred
// execution so the Node and the command signer can be driven by a virtual
// clock in tests instead of the real clock.
type Timer interface {
	Now() time.Time
	Nonce() []byte
	// Schedule runs fn after d elapses and returns a function that cancels
	// the pending call; cancelling after it has already fired is a no-op.
	Schedule(d time.Duration, fn func()) (cancel func())
}

// OnData is invoked at most once per expressed Interest when matching Data
// arrives.
type OnData func(interest *Interest, data *Data)

// OnTimeout is invoked at most once per expressed Interest when its
// lifetime elapses with no Data or Nack having satisfied it.
type OnTimeout func(interest *Interest)

// OnNetworkNack is invoked at most once per expressed Interest when the
// forwarder returns a Nack.
type OnNetworkNack func(interest *Interest, nack *NetworkNack)

// OnInterest is invoked for every incoming Interest matched against a
// registered filter.
type OnInterest func(prefix enc.Name, interest *Interest, face Face, filterId uint64, filter *InterestFilter)

// OnRegisterFailed is invoked when a registerPrefix command Interest is
// Nacked, times out, decodes to a non-200 ControlResponse, or fails to
// decode at all.
type OnRegisterFailed func(prefix enc.Name)

// OnRegisterSuccess is invoked once a registerPrefix command Interest is
// acknowledged with ControlResponse.statusCode == 200.
type OnRegisterSuccess func(prefix enc.Name, registeredPrefixId uint64)

// CommandSigner turns a bare name into a signed NFD management command
// Interest. std/security/signer.CommandSigner is the concrete
// implementation; Node depends only on this contract so it never imports
// the signer package directly.
type CommandSigner interface {
	MakeCommandInterest(name enc.Name, lifetime optional.Optional[time.Duration]) (*EncodedInterest, error)
}

// Face is the thin, application-facing surface implemented by
// std/face.Face. It is its own interface here so that OnInterest handlers
// (which receive a Face) do not create an import cycle with std/face.
type Face interface {
	ExpressInterest(interest *Interest, onData OnData, onTimeout OnTimeout, onNack OnNetworkNack) (uint64, error)
	RemovePendingInterest(id uint64)
	RegisterPrefix(prefix enc.Name, onInterest OnInterest, onFailed OnRegisterFailed, onSuccess OnRegisterSuccess, flags ForwardingFlags) (uint64, error)
	RemoveRegisteredPrefix(id uint64)
	SetInterestFilter(filter *InterestFilter, onInterest OnInterest) (uint64, error)
	UnsetInterestFilter(id uint64)
	PutData(data *Data) error
	ProcessEvents() error
}
