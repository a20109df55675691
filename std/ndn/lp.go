package ndn

import (
	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/types/optional"
)

// LpPacket is the decoded NDNLPv2 envelope: a TLV
// container of header fields plus a Fragment holding the wrapped
// Interest or Data. The wire codec lives in std/ndn/spec_tlv since it
// depends on the TLV primitives; this type is the shared model both the
// codec and the Node dispatch operate on.
type LpPacket struct {
	Fragment       enc.Wire
	Sequence       optional.Optional[uint64]
	FragIndex      optional.Optional[uint64]
	FragCount      optional.Optional[uint64]
	Nack           *NetworkNack
	NextHopFaceId  optional.Optional[uint64]
	IncomingFaceId optional.Optional[uint64]
	CachePolicy    optional.Optional[CachePolicyType]
	PitToken       []byte
}

// CachePolicyType is the NDNLPv2 CachePolicyType field.
type CachePolicyType uint64

const (
	CachePolicyNoCache CachePolicyType = 1
)

// AttachTo sets i's back-reference to lp, exposing IncomingFaceId and any
// carried Nack to the application without copying the envelope fields
// onto the Interest itself.
func (i *Interest) AttachTo(lp *LpPacket) { i.lpPacket = lp }

// AttachTo sets d's back-reference to lp.
func (d *Data) AttachTo(lp *LpPacket) { d.lpPacket = lp }
