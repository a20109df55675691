package spec_tlv

import (
	"time"

	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
	"github.com/ndn-go/ndnclient/std/types/optional"
)

// EncodeData writes d's NDN-TLV encoding: Data{Name, MetaInfo, Content,
// SignatureInfo, SignatureValue}. The signed portion
// (Name‖MetaInfo‖Content‖SignatureInfo) is recorded on d.SignedPortion so
// a Signer can be invoked over exactly that range, and SigValue is then
// appended. If signer is nil the Data is left unsigned (no SignatureInfo
// or SignatureValue), matching behavior of allowing a nil
// signer for tests.
func EncodeData(d *ndn.Data, signer ndn.Signer) (enc.Wire, error) {
	e := enc.NewEncoder(d.NameV.EncodingLength() + len(d.ContentV.Join()) + 64)
	start := e.WriteNestedTlvStart()

	var sigValueLen int
	if signer != nil {
		sigValueLen = signer.EstimateSize()
		e.WriteBlobTlv(TypeSignatureValue, make([]byte, sigValueLen))
	}
	tailMark := e.Len() // bytes after the signed portion: the SignatureValue TLV

	sigInfoStart := e.WriteNestedTlvStart()
	if signer != nil {
		writeSignatureInfoBody(e, signer)
		e.FinishNestedTlv(sigInfoStart, TypeSignatureInfo)
	}

	writeContent(e, d.ContentV)
	writeMetaInfo(e, &d.MetaInfoV)
	d.NameV.WireEncode(e)
	headMark := e.Len() // everything written so far: signed portion + tail

	e.FinishNestedTlv(start, TypeData)
	wire := e.Output()
	total := len(wire)

	d.SignedPortion = enc.Wire{wire[total-headMark : total-tailMark]}

	if signer != nil {
		sigValue, err := signer.Sign(d.SignedPortion)
		if err != nil {
			return nil, err
		}
		if len(sigValue) != sigValueLen {
			return nil, ndn.ErrInvalidValue{Item: "signature length", Value: len(sigValue)}
		}
		// The SignatureValue TLV is the last field in the Data packet;
		// its Value occupies exactly the final len(sigValue) bytes.
		copy(wire[total-sigValueLen:], sigValue)
	}

	d.WireEncoding = enc.Wire{wire}
	return d.WireEncoding, nil
}

func writeContent(e *enc.Encoder, content enc.Wire) {
	if content == nil {
		return
	}
	start := e.WriteNestedTlvStart()
	for i := len(content) - 1; i >= 0; i-- {
		e.WriteBlob(content[i])
	}
	e.FinishNestedTlv(start, TypeContent)
}

func writeMetaInfo(e *enc.Encoder, m *ndn.MetaInfo) {
	start := e.WriteNestedTlvStart()
	if c, ok := m.FinalBlockID.Get(); ok {
		fbStart := e.WriteNestedTlvStart()
		c.WireEncode(e)
		e.FinishNestedTlv(fbStart, TypeFinalBlockId)
	}
	if fp, ok := m.FreshnessV.Get(); ok {
		e.WriteNonNegativeIntegerTlv(TypeFreshnessPeriod, uint64(fp/time.Millisecond))
	}
	if ct, ok := m.ContentType.Get(); ok {
		e.WriteNonNegativeIntegerTlv(TypeContentType, uint64(ct))
	}
	e.FinishNestedTlv(start, TypeMetaInfo)
}

func writeSignatureInfoBody(e *enc.Encoder, signer ndn.Signer) {
	if kl := signer.KeyLocatorName(); kl != nil {
		klStart := e.WriteNestedTlvStart()
		kl.WireEncode(e)
		e.FinishNestedTlv(klStart, TypeKeyLocator)
	}
	e.WriteNonNegativeIntegerTlv(TypeSignatureType, uint64(signer.Type()))
}

// DecodeData reads a Data TLV (including its own framing) from d, leaving
// pkt.SignedPortion set to the exact signed byte range within d's backing
// buffer.
func DecodeData(d *enc.Decoder) (*ndn.Data, error) {
	end, err := d.ReadNestedTlvsStart(TypeData)
	if err != nil {
		return nil, err
	}
	signedStart := d.Pos()

	pkt := &ndn.Data{}
	pkt.NameV, err = enc.ReadName(d)
	if err != nil {
		return nil, err
	}
	pkt.MetaInfoV, err = readMetaInfo(d)
	if err != nil {
		return nil, err
	}
	if t, perr := d.PeekType(); perr == nil && t == TypeContent {
		c, err := d.ReadBlobTlv(TypeContent)
		if err != nil {
			return nil, err
		}
		pkt.ContentV = enc.Wire{c}
	}

	if t, perr := d.PeekType(); perr == nil && t == TypeSignatureInfo {
		pkt.SigInfo, err = readSignatureInfo(d)
		if err != nil {
			return nil, err
		}
	}
	sigInfoEnd := d.Pos()
	if t, perr := d.PeekType(); perr == nil && t == TypeSignatureValue {
		pkt.SigValue, err = d.ReadBlobTlv(TypeSignatureValue)
		if err != nil {
			return nil, err
		}
	}

	if err := d.FinishNestedTlvs(end, true); err != nil {
		return nil, err
	}

	pkt.SignedPortion = enc.Wire{d.Range(signedStart, sigInfoEnd)}
	return pkt, nil
}

func readMetaInfo(d *enc.Decoder) (ndn.MetaInfo, error) {
	var m ndn.MetaInfo
	end, err := d.ReadNestedTlvsStart(TypeMetaInfo)
	if err != nil {
		return m, err
	}
	if t, perr := d.PeekType(); perr == nil && t == TypeContentType {
		v, err := d.ReadNonNegativeIntegerTlv(TypeContentType)
		if err != nil {
			return m, err
		}
		m.ContentType = optional.Some(ndn.ContentType(v))
	}
	if t, perr := d.PeekType(); perr == nil && t == TypeFreshnessPeriod {
		v, err := d.ReadNonNegativeIntegerTlv(TypeFreshnessPeriod)
		if err != nil {
			return m, err
		}
		m.FreshnessV = optional.Some(time.Duration(v) * time.Millisecond)
	}
	if t, perr := d.PeekType(); perr == nil && t == TypeFinalBlockId {
		fbEnd, err := d.ReadNestedTlvsStart(TypeFinalBlockId)
		if err != nil {
			return m, err
		}
		c, err := enc.ReadComponent(d)
		if err != nil {
			return m, err
		}
		m.FinalBlockID = optional.Some(c)
		if err := d.FinishNestedTlvs(fbEnd, true); err != nil {
			return m, err
		}
	}
	if err := d.FinishNestedTlvs(end, true); err != nil {
		return m, err
	}
	return m, nil
}

func readSignatureInfo(d *enc.Decoder) (*ndn.SignatureInfo, error) {
	info := &ndn.SignatureInfo{}
	end, err := d.ReadNestedTlvsStart(TypeSignatureInfo)
	if err != nil {
		return nil, err
	}
	sigType, err := d.ReadNonNegativeIntegerTlv(TypeSignatureType)
	if err != nil {
		return nil, err
	}
	info.Type = ndn.SigType(sigType)
	if t, perr := d.PeekType(); perr == nil && t == TypeKeyLocator {
		klEnd, err := d.ReadNestedTlvsStart(TypeKeyLocator)
		if err != nil {
			return nil, err
		}
		if t2, perr2 := d.PeekType(); perr2 == nil && t2 == enc.TypeName {
			info.KeyLocator, err = enc.ReadName(d)
			if err != nil {
				return nil, err
			}
		}
		if err := d.FinishNestedTlvs(klEnd, true); err != nil {
			return nil, err
		}
	}
	if err := d.FinishNestedTlvs(end, true); err != nil {
		return nil, err
	}
	return info, nil
}

// MakeData builds and signs a Data packet from name/config/content/signer
// and returns it decoded from its own wire, with WireEncoding set.
func MakeData(name enc.Name, config *ndn.DataConfig, content enc.Wire, signer ndn.Signer) (*ndn.Data, error) {
	d := &ndn.Data{
		NameV:    name,
		ContentV: content,
	}
	if config != nil {
		d.MetaInfoV = ndn.MetaInfo{
			ContentType:  config.ContentType,
			FreshnessV:   config.Freshness,
			FinalBlockID: config.FinalBlockID,
		}
	}
	wire, err := EncodeData(d, signer)
	if err != nil {
		return nil, err
	}
	dec := enc.NewDecoder(wire.Join())
	decoded, err := DecodeData(dec)
	if err != nil {
		return nil, err
	}
	decoded.WireEncoding = wire
	return decoded, nil
}
