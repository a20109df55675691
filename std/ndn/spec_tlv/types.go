// Package spec_tlv implements the NDN-TLV wire format: the
// bidirectional mapping between the ndn package's packet model and its
// byte encoding. Only NDN-TLV is implemented; the legacy Binary-XML format
// is an explicit non-goal.
package spec_tlv

import enc "github.com/ndn-go/ndnclient/std/encoding"

// Wire type codes the codec must recognize.
const (
	TypeInterest            enc.TLNum = 5
	TypeSelectors           enc.TLNum = 9
	TypeMinSuffixComponents enc.TLNum = 13
	TypeMaxSuffixComponents enc.TLNum = 14
	TypeKeyLocator          enc.TLNum = 28
	TypeExclude             enc.TLNum = 16
	TypeChildSelector       enc.TLNum = 17
	TypeMustBeFresh         enc.TLNum = 18
	TypeAny                 enc.TLNum = 19
	TypeNonce               enc.TLNum = 10
	TypeInterestLifetime    enc.TLNum = 12
	TypeScope               enc.TLNum = 11

	TypeData             enc.TLNum = 6
	TypeMetaInfo         enc.TLNum = 20
	TypeContentType      enc.TLNum = 24
	TypeFreshnessPeriod  enc.TLNum = 25
	TypeFinalBlockId     enc.TLNum = 26
	TypeContent          enc.TLNum = 21
	TypeSignatureInfo    enc.TLNum = 22
	TypeSignatureType    enc.TLNum = 27
	TypeKeyLocatorDigest enc.TLNum = 29
	TypeSignatureValue   enc.TLNum = 23

	TypeLpPacket        enc.TLNum = 100
	TypeFragment        enc.TLNum = 80
	TypeSequence        enc.TLNum = 81
	TypeFragIndex       enc.TLNum = 82
	TypeFragCount       enc.TLNum = 83
	TypeNack            enc.TLNum = 800
	TypeNackReason      enc.TLNum = 801
	TypeNextHopFaceId   enc.TLNum = 816
	TypeIncomingFaceId  enc.TLNum = 817
	TypeCachePolicy     enc.TLNum = 820
	TypeCachePolicyType enc.TLNum = 821
	TypePitToken        enc.TLNum = 98

	TypeControlResponse           enc.TLNum = 101
	TypeControlResponseStatusCode enc.TLNum = 102
	TypeControlResponseStatusText enc.TLNum = 103

	// ControlParameters and its sub-fields (NFD management protocol).
	TypeControlParameters   enc.TLNum = 104
	TypeFaceId              enc.TLNum = 105
	TypeCost                enc.TLNum = 106
	TypeStrategy            enc.TLNum = 107
	TypeFlags               enc.TLNum = 108
	TypeExpirationPeriod    enc.TLNum = 109
	TypeLocalControlFeature enc.TLNum = 110
	TypeOrigin              enc.TLNum = 111
	TypeMask                enc.TLNum = 112
	TypeUri                 enc.TLNum = 114
)
