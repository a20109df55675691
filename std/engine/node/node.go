// Package node implements the Node protocol engine:
// connection bring-up, expressInterest/onData/onTimeout/onNack dispatch,
// registerPrefix against an NFD-compatible forwarder, and incoming
// element dispatch. It is the one component that ties the wire codec,
// the transport, the tables, and the command signer together; std/face
// wraps it in the public-facing Face surface.
package node

import (
	"fmt"
	"regexp"
	"sync"
	"sync/atomic"
	"time"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/log"
	"github.com/ndn-go/ndnclient/std/ndn"
	"github.com/ndn-go/ndnclient/std/ndn/spec_tlv"
	"github.com/ndn-go/ndnclient/std/table"
	"github.com/ndn-go/ndnclient/std/types/optional"
)

// DefaultInterestLifetime is substituted when an expressed Interest
// leaves its lifetime unset.
const DefaultInterestLifetime = 4000 * time.Millisecond

// MaxPacketSize is the hard limit on an encoded wire packet.
const MaxPacketSize = 8800

// PacketTooLarge is returned by ExpressInterest when the encoded Interest
// exceeds MaxPacketSize.
type PacketTooLarge struct {
	Size int
}

func (e PacketTooLarge) Error() string {
	return fmt.Sprintf("encoded packet is %d bytes, exceeds the %d byte limit", e.Size, MaxPacketSize)
}

// reservedTimeoutPrefix never reaches the wire: expressing an Interest
// under it is the protocol's escape valve for purely-local timer
// semantics.
var reservedTimeoutPrefix = enc.Name{
	enc.GenericComponent([]byte("local")),
	enc.GenericComponent([]byte("timeout")),
}

type connectStatus int

const (
	statusUnconnected connectStatus = iota
	statusConnectRequested
	statusConnectComplete
)

// Node is the protocol engine: it owns the transport connection,
// the PIT/filter/registration/delayed-call tables, and drives the
// connection state machine.
type Node struct {
	transport ndn.Transport
	connInfo  ndn.ConnectionInfo
	timer     ndn.Timer
	signer    ndn.CommandSigner

	pit           *table.PendingInterestTable
	filters       *table.InterestFilterTable
	registrations *table.RegisteredPrefixTable
	delayed       *table.DelayedCallTable

	lastEntryId atomic.Uint64

	connMu      sync.Mutex
	status      connectStatus
	onConnected []func()
}

// New constructs a Node over transport, addressed at connInfo, driven by
// timer, and using signer to produce NFD management commands.
func New(tr ndn.Transport, connInfo ndn.ConnectionInfo, timer ndn.Timer, signer ndn.CommandSigner) *Node {
	n := &Node{
		transport: tr,
		connInfo:  connInfo,
		timer:     timer,
		signer:    signer,
		pit:       table.NewPendingInterestTable(),
		delayed:   table.NewDelayedCallTable(),
	}
	n.registrations = table.NewRegisteredPrefixTable()
	n.filters = table.NewInterestFilterTable(matchRegex)
	return n
}

func matchRegex(pattern, suffix string) bool {
	ok, err := regexp.MatchString(pattern, suffix)
	return err == nil && ok
}

func (n *Node) String() string { return "node" }

// nextEntryId allocates a PIT/filter/registration id from lastEntryId,
// an atomically incremented counter shared by all three tables.
func (n *Node) nextEntryId() uint64 {
	return n.lastEntryId.Add(1)
}

// ensureConnected runs the connection state machine before
// continuation executes. continuation runs synchronously if the
// connection is (or becomes, synchronously) ready; otherwise it is
// queued to run once the async transport signals onConnected.
func (n *Node) ensureConnected(continuation func()) error {
	n.connMu.Lock()

	switch n.status {
	case statusConnectComplete:
		n.connMu.Unlock()
		continuation()
		return nil

	case statusConnectRequested:
		n.onConnected = append(n.onConnected, continuation)
		n.connMu.Unlock()
		return nil

	default: // statusUnconnected
		if !n.transport.IsAsync() {
			n.connMu.Unlock()
			sink := n.onElement
			if err := n.transport.Connect(n.connInfo, sink, nil); err != nil {
				return err
			}
			n.connMu.Lock()
			n.status = statusConnectComplete
			n.connMu.Unlock()
			continuation()
			return nil
		}

		n.status = statusConnectRequested
		n.onConnected = append(n.onConnected, continuation)
		n.connMu.Unlock()

		sink := n.onElement
		return n.transport.Connect(n.connInfo, sink, n.flushOnConnected)
	}
}

// flushOnConnected runs every continuation queued while the transport was
// mid-handshake, in FIFO order, then marks the connection ready.
func (n *Node) flushOnConnected() {
	for {
		n.connMu.Lock()
		queued := n.onConnected
		n.onConnected = nil
		if len(queued) == 0 {
			n.status = statusConnectComplete
			n.connMu.Unlock()
			return
		}
		n.connMu.Unlock()

		for _, fn := range queued {
			fn()
		}
	}
}

// Close releases the underlying transport connection.
func (n *Node) Close() error {
	return n.transport.Close()
}

// ProcessEvents drives one iteration of the transport's I/O loop
// (synchronous transports only; background-reactor transports treat this
// as a no-op) and fires any delayed calls whose deadline has passed.
func (n *Node) ProcessEvents() error {
	if err := n.transport.ProcessEvents(); err != nil {
		return err
	}
	n.delayed.CallTimedOut(n.timer.Now())
	return nil
}

// ExpressInterest implements expressInterest.
func (n *Node) ExpressInterest(interest *ndn.Interest, onData ndn.OnData, onTimeout ndn.OnTimeout, onNack ndn.OnNetworkNack) (uint64, error) {
	id := n.nextEntryId()

	icopy := interest.Clone()
	icopy.NonceV = n.timer.Nonce()

	entry := n.pit.Add(id, icopy, onData, onTimeout, onNack)
	if entry == nil {
		// RemoveById(id) somehow ran before Add: id space is private to
		// this Node and monotonic, so this cannot happen in practice.
		return id, nil
	}

	lifetime, hasLifetime := icopy.LifetimeV.Get()
	if (hasLifetime && lifetime >= 0) || onTimeout != nil {
		deadline := lifetime
		if !hasLifetime || lifetime < 0 {
			deadline = DefaultInterestLifetime
		}
		entry.Deadline = n.timer.Now().Add(deadline)
		entry.CancelTimeout = n.timer.Schedule(deadline, func() {
			n.processInterestTimeout(entry)
		})
	}

	if reservedTimeoutPrefix.Match(icopy.NameV) {
		return id, nil
	}

	wire, err := spec_tlv.EncodeInterest(icopy)
	if err != nil {
		return id, err
	}
	if size := len(wire.Join()); size > MaxPacketSize {
		return id, PacketTooLarge{Size: size}
	}

	sendErr := n.ensureConnected(func() {
		if err := n.transport.Send(wire); err != nil {
			log.Error(n, "failed to send interest", "name", icopy.NameV, "err", err)
		}
	})
	return id, sendErr
}

// processInterestTimeout implements processInterestTimeout.
func (n *Node) processInterestTimeout(entry *table.PendingEntry) {
	removed := n.pit.RemoveEntry(entry)
	if !removed {
		return // Data or Nack already satisfied it
	}
	if entry.OnTimeout != nil {
		entry.OnTimeout(entry.Interest)
	}
}

// RemovePendingInterest cancels a previously expressed Interest by id.
func (n *Node) RemovePendingInterest(id uint64) {
	if entry := n.pit.RemoveById(id); entry != nil && entry.CancelTimeout != nil {
		entry.CancelTimeout()
	}
}

// SetInterestFilter registers onInterest to be called for every incoming
// Interest matching filter, independent of any prefix registration.
func (n *Node) SetInterestFilter(filter *ndn.InterestFilter, onInterest ndn.OnInterest) (uint64, error) {
	id := n.nextEntryId()
	n.filters.SetInterestFilter(id, filter, onInterest, n, false)
	return id, nil
}

func (n *Node) UnsetInterestFilter(id uint64) {
	n.filters.UnsetInterestFilter(id)
}

// RegisterPrefix implements prefix registration state
// machine.
func (n *Node) RegisterPrefix(prefix enc.Name, onInterest ndn.OnInterest, onFailed ndn.OnRegisterFailed, onSuccess ndn.OnRegisterSuccess, flags ndn.ForwardingFlags) (uint64, error) {
	id := n.nextEntryId()

	local := n.transport.IsLocal(n.connInfo)
	namespace := registerNamespaceRemote
	lifetime := 4000 * time.Millisecond
	if local {
		namespace = registerNamespaceLocal
		lifetime = 2000 * time.Millisecond
	}

	cp := &ndn.ControlParameters{
		Name:  prefix,
		Flags: optional.Some(flags),
	}
	cpWire := spec_tlv.EncodeControlParameters(cp)
	commandName := namespace.Append(enc.GenericComponent(cpWire.Join()))

	cmdInterest, err := n.signer.MakeCommandInterest(commandName, optional.Some(lifetime))
	if err != nil {
		return id, err
	}

	icopy := &ndn.Interest{NameV: cmdInterest.FinalName, LifetimeV: cmdInterest.Config.Lifetime}

	_, err = n.expressEncoded(icopy, cmdInterest.Wire,
		func(_ *ndn.Interest, data *ndn.Data) {
			n.onRegisterResponse(id, prefix, onInterest, onFailed, onSuccess, data)
		},
		func(*ndn.Interest) {
			if onFailed != nil {
				onFailed(prefix)
			}
		},
		func(*ndn.Interest, *ndn.NetworkNack) {
			if onFailed != nil {
				onFailed(prefix)
			}
		},
	)
	return id, err
}

var (
	registerNamespaceLocal  = mustName("/localhost/nfd/rib/register")
	registerNamespaceRemote = mustName("/localhop/nfd/rib/register")
)

func mustName(s string) enc.Name {
	n, err := enc.NameFromStr(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n *Node) onRegisterResponse(id uint64, prefix enc.Name, onInterest ndn.OnInterest, onFailed ndn.OnRegisterFailed, onSuccess ndn.OnRegisterSuccess, data *ndn.Data) {
	resp, err := spec_tlv.ParseControlResponse(enc.NewDecoder(data.Content().Join()), true)
	if err != nil || resp.StatusCode != 200 {
		if onFailed != nil {
			onFailed(prefix)
		}
		return
	}

	var filterId uint64
	hasFilter := onInterest != nil
	if hasFilter {
		filterId = n.nextEntryId()
		n.filters.SetInterestFilter(filterId, &ndn.InterestFilter{Prefix: prefix}, onInterest, n, true)
	}

	if n.registrations.Add(id, prefix, filterId, hasFilter) == nil {
		// removeRegisteredPrefix(id) already ran before this ack arrived
		//.
		if hasFilter {
			n.filters.UnsetInterestFilter(filterId)
		}
		return
	}

	if onSuccess != nil {
		onSuccess(prefix, id)
	}
}

// RemoveRegisteredPrefix implements cancellation semantics:
// the registration and its linked filter are removed atomically, and no
// un-register command is sent to the forwarder.
func (n *Node) RemoveRegisteredPrefix(id uint64) {
	entry, ok := n.registrations.RemoveRegisteredPrefix(id)
	if !ok {
		// Ack still pending: RegisteredPrefixTable remembers id as
		// cancelled so onRegisterResponse's Add(id, ...) becomes a no-op.
		return
	}
	if entry.HasLinkedFilter() {
		n.filters.UnsetInterestFilter(entry.LinkedInterestFilterId)
	}
}

// PutData sends a previously constructed, signed Data packet.
func (n *Node) PutData(data *ndn.Data) error {
	if data.WireEncoding == nil {
		return fmt.Errorf("data has no cached wire encoding; build it with spec_tlv.MakeData")
	}
	if size := len(data.WireEncoding.Join()); size > MaxPacketSize {
		return PacketTooLarge{Size: size}
	}
	return n.ensureConnected(func() {
		if err := n.transport.Send(data.WireEncoding); err != nil {
			log.Error(n, "failed to send data", "name", data.NameV, "err", err)
		}
	})
}

// expressEncoded is ExpressInterest's shape for callers (registerPrefix)
// that already hold a finished wire encoding and only need PIT/timeout
// bookkeeping plus send.
func (n *Node) expressEncoded(interest *ndn.Interest, wire enc.Wire, onData ndn.OnData, onTimeout ndn.OnTimeout, onNack ndn.OnNetworkNack) (uint64, error) {
	id := n.nextEntryId()
	entry := n.pit.Add(id, interest, onData, onTimeout, onNack)
	if entry == nil {
		return id, nil
	}

	lifetime := DefaultInterestLifetime
	if lt, ok := interest.LifetimeV.Get(); ok {
		lifetime = lt
	}
	entry.Deadline = n.timer.Now().Add(lifetime)
	entry.CancelTimeout = n.timer.Schedule(lifetime, func() {
		n.processInterestTimeout(entry)
	})

	if size := len(wire.Join()); size > MaxPacketSize {
		return id, PacketTooLarge{Size: size}
	}

	err := n.ensureConnected(func() {
		if err := n.transport.Send(wire); err != nil {
			log.Error(n, "failed to send command interest", "name", interest.NameV, "err", err)
		}
	})
	return id, err
}

// onElement implements onElement: it is handed to the
// transport as the ElementSink.
func (n *Node) onElement(element []byte) {
	dec := enc.NewDecoder(enc.Buffer(element))
	pkt, _, err := spec_tlv.ReadPacket(dec)
	if err != nil {
		log.Warn(n, "failed to parse incoming element", "err", err)
		return
	}

	var lp *ndn.LpPacket
	if pkt.LpPacket != nil {
		lp = pkt.LpPacket
		fragDec := enc.NewDecoder(lp.Fragment.Join())
		inner, _, err := spec_tlv.ReadPacket(fragDec)
		if err != nil || (inner.Interest == nil) == (inner.Data == nil) {
			log.Warn(n, "failed to parse lp fragment", "err", err)
			return
		}
		pkt = inner
	}

	switch {
	case pkt.Interest != nil:
		if lp != nil {
			pkt.Interest.AttachTo(lp)
		}
		if lp != nil && lp.Nack != nil {
			n.dispatchNack(pkt.Interest, lp.Nack)
			return
		}
		n.dispatchInterest(pkt.Interest)

	case pkt.Data != nil:
		if lp != nil {
			if lp.Nack != nil {
				log.Warn(n, "dropping nack attached to data", "name", pkt.Data.NameV)
				return
			}
			pkt.Data.AttachTo(lp)
		}
		n.dispatchData(pkt.Data)
	}
}

func (n *Node) dispatchNack(interest *ndn.Interest, nack *ndn.NetworkNack) {
	for _, entry := range n.pit.ExtractEntriesForNackInterest(interest) {
		if entry.CancelTimeout != nil {
			entry.CancelTimeout()
		}
		if entry.OnNack != nil {
			entry.OnNack(entry.Interest, nack)
		}
	}
}

func (n *Node) dispatchInterest(interest *ndn.Interest) {
	for _, f := range n.filters.GetMatchedFilters(interest) {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Error(n, "interest handler panicked", "recover", r)
				}
			}()
			f.OnInterest(f.Filter.Prefix, interest, f.Face, f.Id, f.Filter)
		}()
	}
}

func (n *Node) dispatchData(data *ndn.Data) {
	for _, entry := range n.pit.ExtractEntriesForExpressedInterest(data) {
		if entry.CancelTimeout != nil {
			entry.CancelTimeout()
		}
		if entry.OnData != nil {
			entry.OnData(entry.Interest, data)
		}
	}
}

// pump spins ProcessEvents in a loop until stop fires, the shape a
// synchronous-transport application runs on its own goroutine in a
// single-threaded cooperative model.
func Pump(n *Node, stop <-chan struct{}) error {
	for {
		select {
		case <-stop:
			return nil
		default:
		}
		if err := n.ProcessEvents(); err != nil {
			return err
		}
	}
}
