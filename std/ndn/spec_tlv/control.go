package spec_tlv

import (
	"time"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
	"github.com/ndn-go/ndnclient/std/types/optional"
)

// EncodeControlParameters writes cp as an NFD ControlParameters TLV.
func EncodeControlParameters(cp *ndn.ControlParameters) enc.Wire {
	e := enc.NewEncoder(64)
	start := e.WriteNestedTlvStart()

	if exp, ok := cp.ExpirationPeriod.Get(); ok {
		e.WriteNonNegativeIntegerTlv(TypeExpirationPeriod, uint64(exp/time.Millisecond))
	}
	if cp.Strategy != nil {
		stratStart := e.WriteNestedTlvStart()
		cp.Strategy.WireEncode(e)
		e.FinishNestedTlv(stratStart, TypeStrategy)
	}
	if f, ok := cp.Flags.Get(); ok {
		e.WriteNonNegativeIntegerTlv(TypeFlags, f.Uint64())
	}
	if cost, ok := cp.Cost.Get(); ok {
		e.WriteNonNegativeIntegerTlv(TypeCost, uint64(cost))
	}
	if origin, ok := cp.Origin.Get(); ok {
		e.WriteNonNegativeIntegerTlv(TypeOrigin, uint64(origin))
	}
	if lcf, ok := cp.LocalControlFeature.Get(); ok {
		e.WriteNonNegativeIntegerTlv(TypeLocalControlFeature, uint64(lcf))
	}
	if uri, ok := cp.Uri.Get(); ok {
		e.WriteBlobTlv(TypeUri, []byte(uri))
	}
	if faceId, ok := cp.FaceId.Get(); ok {
		e.WriteNonNegativeIntegerTlv(TypeFaceId, uint64(faceId))
	}
	if cp.Name != nil {
		cp.Name.WireEncode(e)
	}

	e.FinishNestedTlv(start, TypeControlParameters)
	return e.Wire()
}

// DecodeControlParameters reads an NFD ControlParameters TLV.
func DecodeControlParameters(d *enc.Decoder) (*ndn.ControlParameters, error) {
	cp := &ndn.ControlParameters{}
	end, err := d.ReadNestedTlvsStart(TypeControlParameters)
	if err != nil {
		return nil, err
	}
	if t, perr := d.PeekType(); perr == nil && t == enc.TypeName {
		cp.Name, err = enc.ReadName(d)
		if err != nil {
			return nil, err
		}
	}
	if t, perr := d.PeekType(); perr == nil && t == TypeFaceId {
		v, err := d.ReadNonNegativeIntegerTlv(TypeFaceId)
		if err != nil {
			return nil, err
		}
		cp.FaceId = optional.Some(int(v))
	}
	if t, perr := d.PeekType(); perr == nil && t == TypeUri {
		v, err := d.ReadBlobTlv(TypeUri)
		if err != nil {
			return nil, err
		}
		cp.Uri = optional.Some(string(v))
	}
	if t, perr := d.PeekType(); perr == nil && t == TypeLocalControlFeature {
		v, err := d.ReadNonNegativeIntegerTlv(TypeLocalControlFeature)
		if err != nil {
			return nil, err
		}
		cp.LocalControlFeature = optional.Some(int(v))
	}
	if t, perr := d.PeekType(); perr == nil && t == TypeOrigin {
		v, err := d.ReadNonNegativeIntegerTlv(TypeOrigin)
		if err != nil {
			return nil, err
		}
		cp.Origin = optional.Some(int(v))
	}
	if t, perr := d.PeekType(); perr == nil && t == TypeCost {
		v, err := d.ReadNonNegativeIntegerTlv(TypeCost)
		if err != nil {
			return nil, err
		}
		cp.Cost = optional.Some(int(v))
	}
	if t, perr := d.PeekType(); perr == nil && t == TypeFlags {
		v, err := d.ReadNonNegativeIntegerTlv(TypeFlags)
		if err != nil {
			return nil, err
		}
		cp.Flags = optional.Some(ndn.ForwardingFlagsFromUint64(v))
	}
	if t, perr := d.PeekType(); perr == nil && t == TypeStrategy {
		stratEnd, err := d.ReadNestedTlvsStart(TypeStrategy)
		if err != nil {
			return nil, err
		}
		cp.Strategy, err = enc.ReadName(d)
		if err != nil {
			return nil, err
		}
		if err := d.FinishNestedTlvs(stratEnd, true); err != nil {
			return nil, err
		}
	}
	if t, perr := d.PeekType(); perr == nil && t == TypeExpirationPeriod {
		v, err := d.ReadNonNegativeIntegerTlv(TypeExpirationPeriod)
		if err != nil {
			return nil, err
		}
		cp.ExpirationPeriod = optional.Some(time.Duration(v) * time.Millisecond)
	}
	if err := d.FinishNestedTlvs(end, true); err != nil {
		return nil, err
	}
	return cp, nil
}

// EncodeControlResponse writes resp as a ControlResponse TLV.
func EncodeControlResponse(resp *ndn.ControlResponse) enc.Wire {
	e := enc.NewEncoder(32 + len(resp.StatusText) + len(resp.Body))
	start := e.WriteNestedTlvStart()
	if resp.Body != nil {
		e.WriteBlob(resp.Body)
	}
	e.WriteBlobTlv(TypeControlResponseStatusText, []byte(resp.StatusText))
	e.WriteNonNegativeIntegerTlv(TypeControlResponseStatusCode, uint64(resp.StatusCode))
	e.FinishNestedTlv(start, TypeControlResponse)
	return e.Wire()
}

// ParseControlResponse reads a ControlResponse TLV. When body is true, any
// bytes following StatusText inside the container are captured as Body.
func ParseControlResponse(d *enc.Decoder, body bool) (*ndn.ControlResponse, error) {
	resp := &ndn.ControlResponse{}
	end, err := d.ReadNestedTlvsStart(TypeControlResponse)
	if err != nil {
		return nil, err
	}
	code, err := d.ReadNonNegativeIntegerTlv(TypeControlResponseStatusCode)
	if err != nil {
		return nil, err
	}
	resp.StatusCode = uint32(code)
	text, err := d.ReadBlobTlv(TypeControlResponseStatusText)
	if err != nil {
		return nil, err
	}
	resp.StatusText = string(text)
	if body && d.Pos() < end {
		resp.Body = d.Range(d.Pos(), end)
		if err := d.Skip(end - d.Pos()); err != nil {
			return nil, err
		}
	}
	if err := d.FinishNestedTlvs(end, true); err != nil {
		return nil, err
	}
	return resp, nil
}
