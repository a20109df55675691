package spec_tlv

import (
	"time"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
	"github.com/ndn-go/ndnclient/std/types/optional"
)

// EncodeInterest writes i's NDN-TLV encoding: Interest{Name, Selectors?,
// Nonce, InterestLifetime?, Scope?}, and returns the encoded wire. If
// i.NonceV is empty, a random 4-byte nonce is generated and stored on i.
// i.SignedPortion is set to the exact range from the Name's first byte
// through the Nonce, exclusive of InterestLifetime/Scope, the range a
// command-Interest signer covers.
func EncodeInterest(i *ndn.Interest) (enc.Wire, error) {
	if i.NonceV == nil || len(i.NonceV) == 0 {
		i.NonceV = enc.Buffer(randomBytes(4))
	}

	nameLen := i.NameV.EncodingLength()
	selLen := selectorsEncodingLength(&i.Selectors)
	nonceLen := int(TypeNonce.EncodingLength()) + enc.TLNum(4).EncodingLength() + 4

	lifetimeLen := 0
	if ms, ok := i.LifetimeV.Get(); ok {
		lifetimeLen = natTlvLen(TypeInterestLifetime, uint64(ms/time.Millisecond))
	}
	scopeLen := 0
	if s, ok := i.Scope.Get(); ok {
		scopeLen = natTlvLen(TypeScope, uint64(s))
	}

	body := nameLen + selLen + nonceLen + lifetimeLen + scopeLen
	e := enc.NewEncoder(body + 8)

	start := e.WriteNestedTlvStart()
	if s, ok := i.Scope.Get(); ok {
		e.WriteNonNegativeIntegerTlv(TypeScope, uint64(s))
	}
	if ms, ok := i.LifetimeV.Get(); ok {
		e.WriteNonNegativeIntegerTlv(TypeInterestLifetime, uint64(ms/time.Millisecond))
	}
	tailMark := e.Len() // bytes after the signed portion: InterestLifetime? + Scope?

	e.WriteBlobTlv(TypeNonce, i.NonceV)
	writeSelectors(e, &i.Selectors)
	i.NameV.WireEncode(e)
	headMark := e.Len() // everything written so far: signed portion + tail

	e.FinishNestedTlv(start, TypeInterest)
	wire := e.Output()
	total := len(wire)

	i.SignedPortion = enc.Wire{wire[total-headMark : total-tailMark]}

	return enc.Wire{wire}, nil
}

func selectorsEncodingLength(s *ndn.Selectors) int {
	e := enc.NewEncoder(0)
	writeSelectorsBody(e, s)
	if e.Len() == 0 {
		return 0
	}
	return int(TypeSelectors.EncodingLength()) + enc.TLNum(e.Len()).EncodingLength() + e.Len()
}

func writeSelectors(e *enc.Encoder, s *ndn.Selectors) {
	start := e.WriteNestedTlvStart()
	writeSelectorsBody(e, s)
	if e.Len() == int(start) {
		return
	}
	e.FinishNestedTlv(start, TypeSelectors)
}

// writeSelectorsBody writes the selector children in reverse field order so
// the container reads MinSuffix..PublisherKeyHash forward once finished.
func writeSelectorsBody(e *enc.Encoder, s *ndn.Selectors) {
	if s.PublisherPublicKeyHash != nil {
		e.WriteBlobTlv(TypeKeyLocatorDigest, s.PublisherPublicKeyHash)
	}
	if s.MustBeFresh {
		e.WriteBlobTlv(TypeMustBeFresh, nil)
	}
	if v, ok := s.ChildSelector.Get(); ok {
		e.WriteNonNegativeIntegerTlv(TypeChildSelector, uint64(v))
	}
	// Exclude is encoded as Any/component alternation; this codec only
	// round-trips an Exclude that is empty or entirely Any, matching the
	// "selectors are informational" contract.
	if len(s.Exclude) > 0 {
		excStart := e.WriteNestedTlvStart()
		e.WriteBlobTlv(TypeAny, nil)
		e.FinishNestedTlv(excStart, TypeExclude)
	}
	if s.KeyLocatorName != nil {
		klStart := e.WriteNestedTlvStart()
		s.KeyLocatorName.WireEncode(e)
		e.FinishNestedTlv(klStart, TypeKeyLocator)
	}
	if v, ok := s.MaxSuffixComponents.Get(); ok {
		e.WriteNonNegativeIntegerTlv(TypeMaxSuffixComponents, uint64(v))
	}
	if v, ok := s.MinSuffixComponents.Get(); ok {
		e.WriteNonNegativeIntegerTlv(TypeMinSuffixComponents, uint64(v))
	}
}

// DecodeInterest reads an Interest TLV (including its own framing) from d,
// leaving i.SignedPortion set to the exact range from the Name's first
// byte through the Nonce.
func DecodeInterest(d *enc.Decoder) (*ndn.Interest, error) {
	end, err := d.ReadNestedTlvsStart(TypeInterest)
	if err != nil {
		return nil, err
	}
	signedStart := d.Pos()

	i := &ndn.Interest{}
	i.NameV, err = enc.ReadName(d)
	if err != nil {
		return nil, err
	}

	if t, err := d.PeekType(); err == nil && t == TypeSelectors {
		i.Selectors, err = readSelectors(d)
		if err != nil {
			return nil, err
		}
	}

	i.NonceV, err = d.ReadBlobTlv(TypeNonce)
	if err != nil {
		return nil, err
	}
	signedEnd := d.Pos()

	if t, err := d.PeekType(); err == nil && t == TypeInterestLifetime {
		ms, err := d.ReadNonNegativeIntegerTlv(TypeInterestLifetime)
		if err != nil {
			return nil, err
		}
		i.LifetimeV = optional.Some(time.Duration(ms) * time.Millisecond)
	}
	if t, err := d.PeekType(); err == nil && t == TypeScope {
		s, err := d.ReadNonNegativeIntegerTlv(TypeScope)
		if err != nil {
			return nil, err
		}
		i.Scope = optional.Some(int(s))
	}

	if err := d.FinishNestedTlvs(end, true); err != nil {
		return nil, err
	}
	i.SignedPortion = enc.Wire{d.Range(signedStart, signedEnd)}
	return i, nil
}

func readSelectors(d *enc.Decoder) (ndn.Selectors, error) {
	var s ndn.Selectors
	end, err := d.ReadNestedTlvsStart(TypeSelectors)
	if err != nil {
		return s, err
	}
	if t, err := d.PeekType(); err == nil && t == TypeMinSuffixComponents {
		v, err := d.ReadNonNegativeIntegerTlv(TypeMinSuffixComponents)
		if err != nil {
			return s, err
		}
		s.MinSuffixComponents = optional.Some(int(v))
	}
	if t, err := d.PeekType(); err == nil && t == TypeMaxSuffixComponents {
		v, err := d.ReadNonNegativeIntegerTlv(TypeMaxSuffixComponents)
		if err != nil {
			return s, err
		}
		s.MaxSuffixComponents = optional.Some(int(v))
	}
	if t, err := d.PeekType(); err == nil && t == TypeKeyLocator {
		klEnd, err := d.ReadNestedTlvsStart(TypeKeyLocator)
		if err != nil {
			return s, err
		}
		s.KeyLocatorName, err = enc.ReadName(d)
		if err != nil {
			return s, err
		}
		if err := d.FinishNestedTlvs(klEnd, true); err != nil {
			return s, err
		}
	}
	if t, err := d.PeekType(); err == nil && t == TypeExclude {
		excEnd, err := d.ReadNestedTlvsStart(TypeExclude)
		if err != nil {
			return s, err
		}
		s.Exclude = ndn.DelegationSet{}
		if err := d.FinishNestedTlvs(excEnd, true); err != nil {
			return s, err
		}
	}
	if t, err := d.PeekType(); err == nil && t == TypeChildSelector {
		v, err := d.ReadNonNegativeIntegerTlv(TypeChildSelector)
		if err != nil {
			return s, err
		}
		s.ChildSelector = optional.Some(int(v))
	}
	if t, err := d.PeekType(); err == nil && t == TypeMustBeFresh {
		if _, err := d.ReadBlobTlv(TypeMustBeFresh); err != nil {
			return s, err
		}
		s.MustBeFresh = true
	}
	if t, err := d.PeekType(); err == nil && t == TypeKeyLocatorDigest {
		v, err := d.ReadBlobTlv(TypeKeyLocatorDigest)
		if err != nil {
			return s, err
		}
		s.PublisherPublicKeyHash = v
	}
	if err := d.FinishNestedTlvs(end, true); err != nil {
		return s, err
	}
	return s, nil
}

func natTlvLen(t enc.TLNum, v uint64) int {
	nat := enc.Nat(v)
	return int(t.EncodingLength()) + enc.TLNum(nat.EncodingLength()).EncodingLength() + nat.EncodingLength()
}
