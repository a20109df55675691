// Package table implements the in-memory coordination tables:
// PendingInterestTable, InterestFilterTable, RegisteredPrefixTable, and
// DelayedCallTable. Names are indexed by a 64-bit hash of
// each of their prefixes (Name.Hash(), xxhash-backed) so a lookup walks at
// most len(name) map probes instead of scanning every table entry.
package table

import (
	"sort"
	"sync"
	"time"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/log"
	"github.com/ndn-go/ndnclient/std/ndn"
	"github.com/ndn-go/ndnclient/std/types/priority_queue"
)

// PendingEntry is a PendingInterestTable row.
type PendingEntry struct {
	Id            uint64
	Interest      *ndn.Interest
	OnData        ndn.OnData
	OnTimeout     ndn.OnTimeout
	OnNack        ndn.OnNetworkNack
	Deadline      time.Time
	CancelTimeout func()
}

// PendingInterestTable tracks outstanding expressed Interests awaiting
// Data, Nack, or timeout.
type PendingInterestTable struct {
	mu      sync.Mutex
	byHash  map[uint64][]*PendingEntry
	byId    map[uint64]*PendingEntry
	removed map[uint64]struct{} // ids cancelled before Add arrived (race with cancel)
}

func NewPendingInterestTable() *PendingInterestTable {
	return &PendingInterestTable{
		byHash:  make(map[uint64][]*PendingEntry),
		byId:    make(map[uint64]*PendingEntry),
		removed: make(map[uint64]struct{}),
	}
}

// Add inserts a new entry, or returns nil if RemoveById(id) already ran
// for this id.
func (t *PendingInterestTable) Add(id uint64, interest *ndn.Interest, onData ndn.OnData, onTimeout ndn.OnTimeout, onNack ndn.OnNetworkNack) *PendingEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, was := t.removed[id]; was {
		delete(t.removed, id)
		return nil
	}

	entry := &PendingEntry{Id: id, Interest: interest, OnData: onData, OnTimeout: onTimeout, OnNack: onNack}
	h := interest.NameV.Hash()
	t.byHash[h] = append(t.byHash[h], entry)
	t.byId[id] = entry
	return entry
}

// RemoveEntry removes entry if present. The bool return indicates whether
// the caller should fire the timeout callback (true iff the entry was
// still present, i.e. not already satisfied by Data/Nack).
func (t *PendingInterestTable) RemoveEntry(entry *PendingEntry) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.removeLocked(entry)
}

func (t *PendingInterestTable) removeLocked(entry *PendingEntry) bool {
	if _, ok := t.byId[entry.Id]; !ok {
		t.removed[entry.Id] = struct{}{}
		return false
	}
	delete(t.byId, entry.Id)
	h := entry.Interest.NameV.Hash()
	bucket := t.byHash[h]
	for i, e := range bucket {
		if e == entry {
			bucket[i] = bucket[len(bucket)-1]
			t.byHash[h] = bucket[:len(bucket)-1]
			break
		}
	}
	return true
}

// RemoveById removes the entry with id, if present, and returns it.
func (t *PendingInterestTable) RemoveById(id uint64) *PendingEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.byId[id]
	if !ok {
		t.removed[id] = struct{}{}
		return nil
	}
	t.removeLocked(entry)
	return entry
}

// ExtractEntriesForExpressedInterest removes and returns every entry
// whose stored Interest name is a name-prefix of data's name (the match
// rule; selectors are advisory and not enforced here).
func (t *PendingInterestTable) ExtractEntriesForExpressedInterest(data *ndn.Data) []*PendingEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	hashes := data.NameV.PrefixHashes()
	var out []*PendingEntry
	for _, h := range hashes {
		bucket := t.byHash[h]
		remaining := bucket[:0]
		for _, e := range bucket {
			if e.Interest.NameV.Match(data.NameV) {
				out = append(out, e)
				delete(t.byId, e.Id)
			} else {
				remaining = append(remaining, e)
			}
		}
		if len(remaining) == 0 {
			delete(t.byHash, h)
		} else {
			t.byHash[h] = remaining
		}
	}
	return out
}

// ExtractEntriesForNackInterest removes and returns every entry whose
// stored Interest has the same name and nonce as interest.
func (t *PendingInterestTable) ExtractEntriesForNackInterest(interest *ndn.Interest) []*PendingEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := interest.NameV.Hash()
	bucket := t.byHash[h]
	var out []*PendingEntry
	remaining := bucket[:0]
	for _, e := range bucket {
		if e.Interest.NameV.Equal(interest.NameV) && bytesEqual(e.Interest.NonceV, interest.NonceV) {
			out = append(out, e)
			delete(t.byId, e.Id)
		} else {
			remaining = append(remaining, e)
		}
	}
	if len(remaining) == 0 {
		delete(t.byHash, h)
	} else {
		t.byHash[h] = remaining
	}
	return out
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FilterEntry is an InterestFilterTable row.
type FilterEntry struct {
	Id         uint64
	Filter     *ndn.InterestFilter
	OnInterest ndn.OnInterest
	Face       ndn.Face

	// autoCreated marks a filter created implicitly by RegisterPrefix, so
	// RegisteredPrefixTable can remove it in concert.
	autoCreated bool
}

// RegexMatcher matches an Interest name's suffix (rendered as a URI)
// against an InterestFilter's optional regular expression. Injected so
// std/table does not itself depend on a specific regex dialect.
type RegexMatcher func(pattern, suffix string) bool

// InterestFilterTable tracks registered onInterest handlers.
type InterestFilterTable struct {
	mu      sync.Mutex
	byHash  map[uint64][]*FilterEntry
	byId    map[uint64]*FilterEntry
	matcher RegexMatcher
}

func NewInterestFilterTable(matcher RegexMatcher) *InterestFilterTable {
	return &InterestFilterTable{
		byHash:  make(map[uint64][]*FilterEntry),
		byId:    make(map[uint64]*FilterEntry),
		matcher: matcher,
	}
}

func (t *InterestFilterTable) SetInterestFilter(id uint64, filter *ndn.InterestFilter, onInterest ndn.OnInterest, face ndn.Face, autoCreated bool) *FilterEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry := &FilterEntry{Id: id, Filter: filter, OnInterest: onInterest, Face: face, autoCreated: autoCreated}
	h := filter.Prefix.Hash()
	t.byHash[h] = append(t.byHash[h], entry)
	t.byId[id] = entry
	return entry
}

func (t *InterestFilterTable) UnsetInterestFilter(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok := t.byId[id]
	if !ok {
		return
	}
	delete(t.byId, id)
	h := entry.Filter.Prefix.Hash()
	bucket := t.byHash[h]
	for i, e := range bucket {
		if e == entry {
			bucket[i] = bucket[len(bucket)-1]
			t.byHash[h] = bucket[:len(bucket)-1]
			break
		}
	}
}

// GetMatchedFilters returns a snapshot of every filter whose prefix is a
// name-prefix of interest's name (and whose regex, if any, matches the
// suffix). Callbacks must fire outside the table lock, so this returns a
// plain slice rather than invoking callbacks itself.
func (t *InterestFilterTable) GetMatchedFilters(interest *ndn.Interest) []*FilterEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	hashes := interest.NameV.PrefixHashes()
	var out []*FilterEntry
	for _, h := range hashes {
		for _, e := range t.byHash[h] {
			if e.Filter.Match(interest.NameV, t.matcher) {
				out = append(out, e)
			}
		}
	}
	return out
}

// RegisteredEntry is a RegisteredPrefixTable row.
type RegisteredEntry struct {
	Id                     uint64
	Prefix                 enc.Name
	LinkedInterestFilterId uint64
	hasLinkedFilter        bool
}

// RegisteredPrefixTable tracks the registeredPrefixId -> linkedFilterId
// relation.
type RegisteredPrefixTable struct {
	mu        sync.Mutex
	m         map[uint64]*RegisteredEntry
	cancelled map[uint64]struct{} // ids removed before their ack-driven Add arrived
}

func NewRegisteredPrefixTable() *RegisteredPrefixTable {
	return &RegisteredPrefixTable{
		m:         make(map[uint64]*RegisteredEntry),
		cancelled: make(map[uint64]struct{}),
	}
}

// Add inserts id's entry, or returns nil if RemoveRegisteredPrefix(id) ran
// before the registration's command-interest ack arrived.
func (t *RegisteredPrefixTable) Add(id uint64, prefix enc.Name, linkedFilterId uint64, hasLinkedFilter bool) *RegisteredEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, cancelled := t.cancelled[id]; cancelled {
		delete(t.cancelled, id)
		return nil
	}
	entry := &RegisteredEntry{Id: id, Prefix: prefix, LinkedInterestFilterId: linkedFilterId, hasLinkedFilter: hasLinkedFilter}
	t.m[id] = entry
	return entry
}

// RemoveRegisteredPrefix removes id's entry and returns it (and whether a
// linked filter should also be removed by the caller). If id was not yet
// present, it is recorded as cancelled so a subsequent Add(id, ...)
// becomes a no-op, and ok is false.
func (t *RegisteredPrefixTable) RemoveRegisteredPrefix(id uint64) (entry *RegisteredEntry, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry, ok = t.m[id]
	if ok {
		delete(t.m, id)
		return entry, true
	}
	t.cancelled[id] = struct{}{}
	return nil, false
}

// HasLinkedFilter reports whether entry has a linked InterestFilterTable
// entry that should be removed alongside it.
func (e *RegisteredEntry) HasLinkedFilter() bool { return e.hasLinkedFilter }

// delayedCall is a DelayedCallTable row: task is due at deadline.
type delayedCall struct {
	id        uint64
	task      func()
	deadline  time.Time
	cancelled bool
}

// DelayedCallTable is an insertion-ordered min-heap keyed on deadline. It
// is passive: nothing inside the table drives time forward. A caller
// (std/engine/node's event loop, in either a single-threaded cooperative
// or thread-pool deployment) calls CallTimedOut periodically, typically
// after arming one ndn.Timer alarm for NextDeadline. Min-heap built on
// std/types/priority_queue.
type DelayedCallTable struct {
	mu     sync.Mutex
	heap   priority_queue.Queue[*delayedCall, int64]
	byId   map[uint64]*delayedCall
	nextId uint64
}

func NewDelayedCallTable() *DelayedCallTable {
	return &DelayedCallTable{
		heap: priority_queue.New[*delayedCall, int64](),
		byId: make(map[uint64]*delayedCall),
	}
}

// CallLater inserts task to run at now.Add(delay) and returns an id that
// Cancel accepts to suppress it before it fires.
func (t *DelayedCallTable) CallLater(now time.Time, delay time.Duration, task func()) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextId++
	id := t.nextId
	deadline := now.Add(delay)
	call := &delayedCall{id: id, task: task, deadline: deadline}
	t.byId[id] = call
	t.heap.Push(call, deadline.UnixNano())
	return id
}

// Cancel suppresses the task registered under id, if it has not already
// fired. Safe to call more than once.
func (t *DelayedCallTable) Cancel(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if call, ok := t.byId[id]; ok {
		call.cancelled = true
		delete(t.byId, id)
	}
}

// NextDeadline reports the deadline of the earliest not-yet-cancelled
// entry, for a caller to arm a single wakeup timer against.
func (t *DelayedCallTable) NextDeadline() (deadline time.Time, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for t.heap.Len() > 0 {
		head := t.heap.Peek()
		if head.cancelled {
			t.heap.Pop()
			continue
		}
		return head.deadline, true
	}
	return time.Time{}, false
}

// CallTimedOut pops every entry whose deadline is <= now and invokes its
// task outside the table lock. A task that panics is logged and does not
// propagate.
func (t *DelayedCallTable) CallTimedOut(now time.Time) {
	var due []*delayedCall
	func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		for t.heap.Len() > 0 {
			head := t.heap.Peek()
			if head.deadline.After(now) {
				break
			}
			t.heap.Pop()
			if !head.cancelled {
				delete(t.byId, head.id)
				due = append(due, head)
			}
		}
	}()
	// The heap does not order equal deadlines; run those in insertion order.
	sort.SliceStable(due, func(i, j int) bool {
		if !due[i].deadline.Equal(due[j].deadline) {
			return due[i].deadline.Before(due[j].deadline)
		}
		return due[i].id < due[j].id
	})
	for _, call := range due {
		runDelayedCall(call.task)
	}
}

func runDelayedCall(task func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(nil, "delayed call task panicked", "recover", r)
		}
	}()
	task()
}
