package ndn

import (
	"time"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/types/optional"
)

// ContentType is the Data MetaInfo content-type field.
type ContentType uint64

const (
	ContentTypeBlob ContentType = 0
	ContentTypeLink ContentType = 1
	ContentTypeKey  ContentType = 2
	ContentTypeNack ContentType = 3
)

// NackReason mirrors the NDNLPv2 NackReason field. NackReasonNone (0) means
// "not a Nack" and is never placed on the wire as an actual reason value;
// it is the zero value used internally to mean "no Nack present".
type NackReason uint64

const (
	NackReasonNone       NackReason = 0
	NackReasonCongestion NackReason = 50
	NackReasonDuplicate  NackReason = 100
	NackReasonNoRoute    NackReason = 150
)

// NetworkNack is the decoded Nack header, handed to an OnNetworkNack
// callback alongside the Nacked Interest; it holds only the reason.
type NetworkNack struct {
	Reason NackReason
}

// Selectors carry the legacy Interest selector fields. They
// are informational for this codec: PIT matching never enforces them,
// as that is the forwarder's job.
type Selectors struct {
	MinSuffixComponents    optional.Optional[int]
	MaxSuffixComponents    optional.Optional[int]
	KeyLocatorName         enc.Name
	Exclude                DelegationSet
	ChildSelector          optional.Optional[int]
	MustBeFresh            bool
	PublisherPublicKeyHash []byte
}

// Interest is the decoded (or about-to-be-encoded) Interest packet model.
type Interest struct {
	NameV     enc.Name
	Selectors Selectors
	Scope     optional.Optional[int]
	LifetimeV optional.Optional[time.Duration]
	NonceV    []byte

	// SignedPortion is the exact byte range from the Name's first byte
	// through the Nonce (exclusive of any appended signature name
	// components), the range a command-Interest signer covers. Set by
	// spec_tlv.EncodeInterest/DecodeInterest.
	SignedPortion enc.Wire

	// lpPacket is a read-only back-reference set by the Node's dispatch
	// when this Interest arrived wrapped in an NDNLPv2 envelope, so the
	// application can read IncomingFaceId or a carried Nack.
	lpPacket *LpPacket
}

func (i *Interest) Name() enc.Name                             { return i.NameV }
func (i *Interest) Lifetime() optional.Optional[time.Duration] { return i.LifetimeV }
func (i *Interest) Nonce() []byte                              { return i.NonceV }
func (i *Interest) IncomingFaceId() optional.Optional[uint64] {
	if i.lpPacket == nil {
		return optional.None[uint64]()
	}
	return i.lpPacket.IncomingFaceId
}

// Clone returns a defensive copy of i, matching the "Interests handed to
// the engine are copied defensively at the entry point" invariant.
func (i *Interest) Clone() *Interest {
	c := *i
	c.NameV = i.NameV.Clone()
	if i.NonceV != nil {
		c.NonceV = append([]byte(nil), i.NonceV...)
	}
	return &c
}

// MetaInfo carries a Data packet's non-signature, non-content fields.
type MetaInfo struct {
	ContentType  optional.Optional[ContentType]
	FreshnessV   optional.Optional[time.Duration]
	FinalBlockID optional.Optional[enc.Component]
}

// SignatureInfo names the algorithm and key used to produce a
// SignatureValue.
type SignatureInfo struct {
	Type       SigType
	KeyLocator enc.Name
	SigNonce   []byte
	SigTime    optional.Optional[time.Duration]
	SigSeqNum  optional.Optional[uint64]
}

// Data is the decoded (or about-to-be-encoded) Data packet model.
type Data struct {
	NameV     enc.Name
	MetaInfoV MetaInfo
	ContentV  enc.Wire
	SigInfo   *SignatureInfo
	SigValue  []byte

	// SignedPortion is the exact Name‖MetaInfo‖Content‖SignatureInfo byte
	// range used to produce/verify SigValue.
	SignedPortion enc.Wire

	// WireEncoding caches the fully-encoded packet (including
	// SignatureValue) so Face.PutData can send it without re-signing.
	// Set by spec_tlv.EncodeData on success.
	WireEncoding enc.Wire

	lpPacket *LpPacket
}

func (d *Data) Name() enc.Name            { return d.NameV }
func (d *Data) MetaInfo_() MetaInfo       { return d.MetaInfoV }
func (d *Data) Content() enc.Wire         { return d.ContentV }
func (d *Data) Signature() *SignatureInfo { return d.SigInfo }

// Clone returns a defensive copy of d.
func (d *Data) Clone() *Data {
	c := *d
	c.NameV = d.NameV.Clone()
	return &c
}

// InterestConfig carries the per-call parameters for expressing an
// Interest, mirroring expressInterest step 2-3.
type InterestConfig struct {
	CanBePrefix bool
	MustBeFresh bool
	Lifetime    optional.Optional[time.Duration]
	Nonce       []byte
	HopLimit    optional.Optional[uint8]
	NextHopId   optional.Optional[uint64]

	// SigNonce/SigTime are set by the command-Interest signer for
	// signed commands; ordinary application Interests leave them unset.
	SigNonce []byte
	SigTime  optional.Optional[time.Duration]
}

// DataConfig carries the per-call parameters for constructing a Data
// packet.
type DataConfig struct {
	ContentType  optional.Optional[ContentType]
	Freshness    optional.Optional[time.Duration]
	FinalBlockID optional.Optional[enc.Component]
}

// EncodedInterest is the wire-encode result of an Interest plus the
// parameters needed to drive the Node's PIT/timeout bookkeeping.
type EncodedInterest struct {
	FinalName enc.Name
	Wire      enc.Wire
	Config    *InterestConfig
}

// ForwardingFlags is the NFD-compatible bit set on ControlParameters
// . The bit layout matches NFD's ControlParameters encoding:
// bit 0 is ChildInherit, bit 1 is Capture.
type ForwardingFlags struct {
	ChildInherit bool
	Capture      bool
}

const (
	forwardingFlagChildInherit = 1 << 0
	forwardingFlagCapture      = 1 << 1
)

// DefaultForwardingFlags matches NFD's default of ChildInherit set,
// Capture clear.
func DefaultForwardingFlags() ForwardingFlags {
	return ForwardingFlags{ChildInherit: true}
}

func (f ForwardingFlags) Uint64() uint64 {
	var v uint64
	if f.ChildInherit {
		v |= forwardingFlagChildInherit
	}
	if f.Capture {
		v |= forwardingFlagCapture
	}
	return v
}

func ForwardingFlagsFromUint64(v uint64) ForwardingFlags {
	return ForwardingFlags{
		ChildInherit: v&forwardingFlagChildInherit != 0,
		Capture:      v&forwardingFlagCapture != 0,
	}
}

// ControlParameters is the body of an NFD management command.
// Absent fields are omitted from the wire encoding; in Go they are
// represented with optional.Optional so callers never confuse "absent"
// with "zero".
type ControlParameters struct {
	Name                enc.Name
	FaceId              optional.Optional[int]
	Uri                 optional.Optional[string]
	LocalControlFeature optional.Optional[int]
	Origin              optional.Optional[int]
	Cost                optional.Optional[int]
	Flags               optional.Optional[ForwardingFlags]
	Strategy            enc.Name
	ExpirationPeriod    optional.Optional[time.Duration]
}

// ControlResponse is the body of a Data packet replying to a management
// command.
type ControlResponse struct {
	StatusCode uint32
	StatusText string
	Body       []byte
}

// Delegation is one entry of a DelegationSet.
type Delegation struct {
	Preference int32
	Name       enc.Name
}

// DelegationSet is a list of (preference, name) pairs.
// Add maintains the sorted invariant; AddUnsorted is used when decoding
// preserves wire order (duplicates may then remain).
type DelegationSet []Delegation

// Add removes every existing entry whose name equals n, then inserts
// (p, n) in (preference, canonical-name) order.
func (s *DelegationSet) Add(p int32, n enc.Name) {
	filtered := make(DelegationSet, 0, len(*s)+1)
	for _, d := range *s {
		if !d.Name.Equal(n) {
			filtered = append(filtered, d)
		}
	}
	i := 0
	for ; i < len(filtered); i++ {
		if filtered[i].Preference > p {
			break
		}
		if filtered[i].Preference == p && filtered[i].Name.Compare(n) > 0 {
			break
		}
	}
	filtered = append(filtered, Delegation{})
	copy(filtered[i+1:], filtered[i:])
	filtered[i] = Delegation{Preference: p, Name: n}
	*s = filtered
}

// AddUnsorted appends (p, n) without maintaining sorted order.
func (s *DelegationSet) AddUnsorted(p int32, n enc.Name) {
	*s = append(*s, Delegation{Preference: p, Name: n})
}

// InterestFilter matches incoming Interests against a registered prefix
// and, optionally, a regular expression over the Interest name's suffix.
type InterestFilter struct {
	Prefix enc.Name
	Regex  optional.Optional[string]
}

// Match reports whether name is matched by f: name has Prefix as a
// name-prefix, and, if Regex is set, the remaining suffix (rendered as a
// URI) matches it.
func (f *InterestFilter) Match(name enc.Name, matcher func(pattern, suffix string) bool) bool {
	if !f.Prefix.Match(name) {
		return false
	}
	pattern, ok := f.Regex.Get()
	if !ok {
		return true
	}
	suffix := name.GetSubName(len(f.Prefix), len(name)-len(f.Prefix)).String()
	return matcher(pattern, suffix)
}
