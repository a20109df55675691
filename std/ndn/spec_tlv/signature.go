package spec_tlv

import (
	enc "github.com/ndn-go/ndnclient/std/encoding"
	"github.com/ndn-go/ndnclient/std/ndn"
)

// EncodeSignatureInfo returns the standalone SignatureInfo TLV for signer,
// used both inside a Data packet and, as the value of a generic name
// component, by a signed command Interest.
func EncodeSignatureInfo(signer ndn.Signer) enc.Wire {
	e := enc.NewEncoder(32)
	start := e.WriteNestedTlvStart()
	writeSignatureInfoBody(e, signer)
	e.FinishNestedTlv(start, TypeSignatureInfo)
	return e.Wire()
}

// DecodeSignatureInfo reads a standalone SignatureInfo TLV.
func DecodeSignatureInfo(d *enc.Decoder) (*ndn.SignatureInfo, error) {
	return readSignatureInfo(d)
}

// EncodeSignatureValue returns the standalone SignatureValue TLV wrapping
// sig.
func EncodeSignatureValue(sig []byte) enc.Wire {
	e := enc.NewEncoder(len(sig) + 8)
	e.WriteBlobTlv(TypeSignatureValue, sig)
	return e.Wire()
}
