package spec_tlv

import (
	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
)

// Packet is a discriminated union over the three top-level element kinds a
// Node can receive: exactly one field is non-nil. LpPacket wraps one of
// Interest or Data when the incoming bytes used NDNLPv2 framing.
type Packet struct {
	Interest *ndn.Interest
	Data     *ndn.Data
	LpPacket *ndn.LpPacket
}

// PacketContext carries decode-time metadata a caller may need after
// ReadPacket returns, beyond what's on the packet model itself.
type PacketContext struct {
	InterestSigCovered enc.Wire
	DataSigCovered     enc.Wire
}

// ReadPacket peeks the first TLV type of element and decodes it as an
// LpPacket, an Interest, or a Data, per onElement step 1-2.
func ReadPacket(d *enc.Decoder) (*Packet, *PacketContext, error) {
	t, err := d.PeekType()
	if err != nil {
		return nil, nil, err
	}

	switch t {
	case TypeLpPacket:
		lp, err := DecodeLpPacket(d)
		if err != nil {
			return nil, nil, err
		}
		return &Packet{LpPacket: lp}, &PacketContext{}, nil
	case TypeInterest:
		i, err := DecodeInterest(d)
		if err != nil {
			return nil, nil, err
		}
		return &Packet{Interest: i}, &PacketContext{InterestSigCovered: i.SignedPortion}, nil
	case TypeData:
		data, err := DecodeData(d)
		if err != nil {
			return nil, nil, err
		}
		return &Packet{Data: data}, &PacketContext{DataSigCovered: data.SignedPortion}, nil
	default:
		return nil, nil, enc.ErrUnrecognizedField{TypeNum: t}
	}
}

// Spec groups the package's encode/decode functions as methods
// for the NDN-TLV format, the only format this core supports.
type Spec struct{}

func (Spec) EncodeInterest(i *ndn.Interest) (enc.Wire, error) { return EncodeInterest(i) }
func (Spec) DecodeInterest(buf enc.Buffer) (*ndn.Interest, error) {
	return DecodeInterest(enc.NewDecoder(buf))
}
func (Spec) EncodeData(d *ndn.Data, signer ndn.Signer) (enc.Wire, error) {
	return EncodeData(d, signer)
}
func (Spec) DecodeData(buf enc.Buffer) (*ndn.Data, error) {
	return DecodeData(enc.NewDecoder(buf))
}
func (Spec) EncodeLpPacket(lp *ndn.LpPacket) enc.Wire { return EncodeLpPacket(lp) }
func (Spec) DecodeLpPacket(buf enc.Buffer) (*ndn.LpPacket, error) {
	return DecodeLpPacket(enc.NewDecoder(buf))
}
func (Spec) EncodeControlParameters(cp *ndn.ControlParameters) enc.Wire {
	return EncodeControlParameters(cp)
}
func (Spec) DecodeControlParameters(buf enc.Buffer) (*ndn.ControlParameters, error) {
	return DecodeControlParameters(enc.NewDecoder(buf))
}

// MakeInterest builds a finalized, not-yet-signed Interest ready for
// Node.Express, applying config's MustBeFresh onto the Selectors the
// legacy codec still carries; CanBePrefix is not encoded.
func MakeInterest(name enc.Name, config *ndn.InterestConfig) (*ndn.EncodedInterest, error) {
	i := &ndn.Interest{
		NameV:     name,
		LifetimeV: config.Lifetime,
		NonceV:    config.Nonce,
	}
	// CanBePrefix has no NDN-TLV v0.2 wire representation; it stays on
	// ndn.InterestConfig/EncodedInterest, and the PIT does not read it
	// (it always matches Data by name prefix).
	i.Selectors.MustBeFresh = config.MustBeFresh
	wire, err := EncodeInterest(i)
	if err != nil {
		return nil, err
	}
	return &ndn.EncodedInterest{
		FinalName: i.NameV,
		Wire:      wire,
		Config:    config,
	}, nil
}
