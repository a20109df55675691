package spec_tlv

import (
	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
)

// TypeDelegation and its sub-fields (NDN-TLV Link payload); not part of the
// base type table but required to round-trip a DelegationSet.
const (
	TypeDelegationSet enc.TLNum = 1154
	TypeDelegation    enc.TLNum = 1155
	TypePreference    enc.TLNum = 1156
)

// EncodeDelegationSet writes s as a Link payload: a sequence of
// Delegation{Preference, Name} pairs in s's current order.
func EncodeDelegationSet(e *enc.Encoder, s ndn.DelegationSet) {
	start := e.WriteNestedTlvStart()
	for i := len(s) - 1; i >= 0; i-- {
		delStart := e.WriteNestedTlvStart()
		s[i].Name.WireEncode(e)
		e.WriteNonNegativeIntegerTlv(TypePreference, uint64(s[i].Preference))
		e.FinishNestedTlv(delStart, TypeDelegation)
	}
	e.FinishNestedTlv(start, TypeDelegationSet)
}

// DecodeDelegationSet reads a Link payload, preserving wire order
// (equivalent to repeated AddUnsorted calls).
func DecodeDelegationSet(d *enc.Decoder) (ndn.DelegationSet, error) {
	end, err := d.ReadNestedTlvsStart(TypeDelegationSet)
	if err != nil {
		return nil, err
	}
	var s ndn.DelegationSet
	for d.Pos() < end {
		delEnd, err := d.ReadNestedTlvsStart(TypeDelegation)
		if err != nil {
			return nil, err
		}
		pref, err := d.ReadNonNegativeIntegerTlv(TypePreference)
		if err != nil {
			return nil, err
		}
		name, err := enc.ReadName(d)
		if err != nil {
			return nil, err
		}
		if err := d.FinishNestedTlvs(delEnd, true); err != nil {
			return nil, err
		}
		s.AddUnsorted(int32(pref), name)
	}
	if err := d.FinishNestedTlvs(end, true); err != nil {
		return nil, err
	}
	return s, nil
}
