package spec_tlv

import (
	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
	"github.com/ndn-go/ndnclient/std/types/optional"
)

// EncodeLpPacket writes lp as an NDNLPv2 envelope:
// header fields followed by the Fragment.
func EncodeLpPacket(lp *ndn.LpPacket) enc.Wire {
	e := enc.NewEncoder(64 + len(lp.Fragment.Join()))
	start := e.WriteNestedTlvStart()

	if lp.Fragment != nil {
		fragStart := e.WriteNestedTlvStart()
		for i := len(lp.Fragment) - 1; i >= 0; i-- {
			e.WriteBlob(lp.Fragment[i])
		}
		e.FinishNestedTlv(fragStart, TypeFragment)
	}
	if lp.Nack != nil {
		nackStart := e.WriteNestedTlvStart()
		e.WriteNonNegativeIntegerTlv(TypeNackReason, uint64(lp.Nack.Reason))
		e.FinishNestedTlv(nackStart, TypeNack)
	}
	if cp, ok := lp.CachePolicy.Get(); ok {
		cpStart := e.WriteNestedTlvStart()
		e.WriteNonNegativeIntegerTlv(TypeCachePolicyType, uint64(cp))
		e.FinishNestedTlv(cpStart, TypeCachePolicy)
	}
	if id, ok := lp.NextHopFaceId.Get(); ok {
		e.WriteNonNegativeIntegerTlv(TypeNextHopFaceId, id)
	}
	if id, ok := lp.IncomingFaceId.Get(); ok {
		e.WriteNonNegativeIntegerTlv(TypeIncomingFaceId, id)
	}
	if lp.PitToken != nil {
		e.WriteBlobTlv(TypePitToken, lp.PitToken)
	}
	if v, ok := lp.FragCount.Get(); ok {
		e.WriteNonNegativeIntegerTlv(TypeFragCount, v)
	}
	if v, ok := lp.FragIndex.Get(); ok {
		e.WriteNonNegativeIntegerTlv(TypeFragIndex, v)
	}
	if v, ok := lp.Sequence.Get(); ok {
		e.WriteNonNegativeIntegerTlv(TypeSequence, v)
	}

	e.FinishNestedTlv(start, TypeLpPacket)
	return e.Wire()
}

// DecodeLpPacket reads an NDNLPv2 envelope.
func DecodeLpPacket(d *enc.Decoder) (*ndn.LpPacket, error) {
	lp := &ndn.LpPacket{}
	end, err := d.ReadNestedTlvsStart(TypeLpPacket)
	if err != nil {
		return nil, err
	}
	for d.Pos() < end {
		t, err := d.PeekType()
		if err != nil {
			return nil, err
		}
		switch t {
		case TypeSequence:
			v, err := d.ReadNonNegativeIntegerTlv(TypeSequence)
			if err != nil {
				return nil, err
			}
			lp.Sequence = optional.Some(v)
		case TypeFragIndex:
			v, err := d.ReadNonNegativeIntegerTlv(TypeFragIndex)
			if err != nil {
				return nil, err
			}
			lp.FragIndex = optional.Some(v)
		case TypeFragCount:
			v, err := d.ReadNonNegativeIntegerTlv(TypeFragCount)
			if err != nil {
				return nil, err
			}
			lp.FragCount = optional.Some(v)
		case TypePitToken:
			v, err := d.ReadBlobTlv(TypePitToken)
			if err != nil {
				return nil, err
			}
			lp.PitToken = v
		case TypeIncomingFaceId:
			v, err := d.ReadNonNegativeIntegerTlv(TypeIncomingFaceId)
			if err != nil {
				return nil, err
			}
			lp.IncomingFaceId = optional.Some(v)
		case TypeNextHopFaceId:
			v, err := d.ReadNonNegativeIntegerTlv(TypeNextHopFaceId)
			if err != nil {
				return nil, err
			}
			lp.NextHopFaceId = optional.Some(v)
		case TypeCachePolicy:
			cpEnd, err := d.ReadNestedTlvsStart(TypeCachePolicy)
			if err != nil {
				return nil, err
			}
			v, err := d.ReadNonNegativeIntegerTlv(TypeCachePolicyType)
			if err != nil {
				return nil, err
			}
			lp.CachePolicy = optional.Some(ndn.CachePolicyType(v))
			if err := d.FinishNestedTlvs(cpEnd, true); err != nil {
				return nil, err
			}
		case TypeNack:
			nackEnd, err := d.ReadNestedTlvsStart(TypeNack)
			if err != nil {
				return nil, err
			}
			reason := ndn.NackReasonNone
			if nt, perr := d.PeekType(); perr == nil && nt == TypeNackReason {
				v, err := d.ReadNonNegativeIntegerTlv(TypeNackReason)
				if err != nil {
					return nil, err
				}
				reason = ndn.NackReason(v)
			}
			lp.Nack = &ndn.NetworkNack{Reason: reason}
			if err := d.FinishNestedTlvs(nackEnd, true); err != nil {
				return nil, err
			}
		case TypeFragment:
			v, err := d.ReadBlobTlv(TypeFragment)
			if err != nil {
				return nil, err
			}
			lp.Fragment = enc.Wire{v}
		default:
			if enc.IsCriticalType(t) {
				return nil, enc.ErrUnrecognizedField{TypeNum: t}
			}
			_, _, valueEnd, err := d.ReadTypeAndLength()
			if err != nil {
				return nil, err
			}
			if err := d.Skip(valueEnd - d.Pos()); err != nil {
				return nil, err
			}
		}
	}
	if err := d.FinishNestedTlvs(end, true); err != nil {
		return nil, err
	}
	return lp, nil
}
