package encoding

import (
	"bytes"
	"crypto/sha256"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"
)

// Component TLV type codes the core recognizes.
const (
	TypeInvalidComponent              TLNum = 0x00
	TypeImplicitSha256DigestComponent TLNum = 0x01
	TypeGenericNameComponent          TLNum = 0x08
)

// Naming convention marker bytes.
const (
	MarkerSegment    byte = 0x00
	MarkerByteOffset byte = 0xFB
	MarkerTimestamp  byte = 0xFC
	MarkerVersion    byte = 0xFD
	MarkerSequenceNo byte = 0xFE
)

// DigestShaNameConvention is the URI scheme prefix for an implicit SHA-256
// digest component, e.g. "sha256digest=<hex>".
const DigestShaNameConvention = "sha256digest"

// Component is a single, typed, immutable name component.
type Component struct {
	Typ TLNum
	Val Buffer
}

// Clone returns a deep copy of c.
func (c Component) Clone() Component {
	v := make(Buffer, len(c.Val))
	copy(v, c.Val)
	return Component{Typ: c.Typ, Val: v}
}

// EncodingLength returns the number of bytes needed to encode c as a TLV.
func (c Component) EncodingLength() int {
	l := len(c.Val)
	return c.Typ.EncodingLength() + TLNum(l).EncodingLength() + l
}

// WireEncode appends c's TLV encoding (Type-Length-Value) onto e in the
// correct backward-write order: callers encoding a Name must therefore
// invoke WireEncode on components from last to first.
func (c Component) WireEncode(e *Encoder) {
	e.WriteBlobTlv(c.Typ, c.Val)
}

// ReadComponent decodes a single Component from d.
func ReadComponent(d *Decoder) (Component, error) {
	t, _, end, err := d.ReadTypeAndLength()
	if err != nil {
		return Component{}, err
	}
	val := d.Range(d.Pos(), end)
	if err := d.Skip(end - d.Pos()); err != nil {
		return Component{}, err
	}
	return Component{Typ: t, Val: val}, nil
}

// NumberVal interprets Val as a non-negative big-endian integer.
func (c Component) NumberVal() uint64 {
	ret := uint64(0)
	for _, v := range c.Val {
		ret = (ret << 8) | uint64(v)
	}
	return ret
}

// Hash returns a 64-bit hash of the component's TLV encoding, used to
// index table lookups by name without a full byte comparison on the
// common (non-colliding) path.
func (c Component) Hash() uint64 {
	buf := make(Buffer, c.EncodingLength())
	p := c.Typ.EncodeInto(buf)
	p += TLNum(len(c.Val)).EncodeInto(buf[p:])
	copy(buf[p:], c.Val)
	return xxhash.Sum64(buf)
}

// Equal reports whether two components have the same type and value.
func (c Component) Equal(rhs Component) bool {
	return c.Typ == rhs.Typ && bytes.Equal(c.Val, rhs.Val)
}

// Compare implements the canonical per-component order: shorter value
// before longer, then byte-lexicographic, then lower type code first.
func (c Component) Compare(rhs Component) int {
	if len(c.Val) != len(rhs.Val) {
		if len(c.Val) < len(rhs.Val) {
			return -1
		}
		return 1
	}
	if d := bytes.Compare(c.Val, rhs.Val); d != 0 {
		return d
	}
	if c.Typ != rhs.Typ {
		if c.Typ < rhs.Typ {
			return -1
		}
		return 1
	}
	return 0
}

// ImplicitSha256DigestComponent builds the fixed 32-byte digest component
// type used to refer to a Data packet by the SHA-256 of its encoding.
func ImplicitSha256DigestComponent(digest []byte) (Component, error) {
	if len(digest) != sha256.Size {
		return Component{}, ErrFormat{"sha256 digest component must be exactly 32 bytes"}
	}
	return Component{Typ: TypeImplicitSha256DigestComponent, Val: Buffer(digest)}, nil
}

// GenericComponent builds a GENERIC (type 8) component from val.
func GenericComponent(val []byte) Component {
	return Component{Typ: TypeGenericNameComponent, Val: Buffer(val)}
}

// namingConventionComponent builds a component carrying a marker byte
// followed by the minimal big-endian encoding of v.
func namingConventionComponent(marker byte, v uint64) Component {
	n := Nat(v)
	val := make(Buffer, 1+n.EncodingLength())
	val[0] = marker
	n.EncodeInto(val[1:])
	return Component{Typ: TypeGenericNameComponent, Val: val}
}

// SegmentComponent builds a segment-number component (marker 0x00).
func SegmentComponent(seg uint64) Component { return namingConventionComponent(MarkerSegment, seg) }

// ByteOffsetComponent builds a byte-offset component (marker 0xFB).
func ByteOffsetComponent(off uint64) Component {
	return namingConventionComponent(MarkerByteOffset, off)
}

// TimestampComponent builds a timestamp component (marker 0xFC) holding a
// microsecond count since epoch.
func TimestampComponent(micros uint64) Component {
	return namingConventionComponent(MarkerTimestamp, micros)
}

// VersionComponent builds a version component (marker 0xFD).
func VersionComponent(v uint64) Component { return namingConventionComponent(MarkerVersion, v) }

// SequenceNumComponent builds a sequence-number component (marker 0xFE).
func SequenceNumComponent(seq uint64) Component {
	return namingConventionComponent(MarkerSequenceNo, seq)
}

// conventionValue reads the integer following marker out of c, failing if
// c is not a generic component carrying that marker.
func conventionValue(c Component, marker byte) (uint64, bool) {
	if c.Typ != TypeGenericNameComponent || len(c.Val) < 1 || c.Val[0] != marker {
		return 0, false
	}
	return Component{Val: c.Val[1:]}.NumberVal(), true
}

// IsSegment reports whether c is a segment component and returns its value.
func (c Component) IsSegment() (uint64, bool) { return conventionValue(c, MarkerSegment) }

// IsByteOffset reports whether c is a byte-offset component and returns its value.
func (c Component) IsByteOffset() (uint64, bool) { return conventionValue(c, MarkerByteOffset) }

// IsTimestamp reports whether c is a timestamp component and returns its value.
func (c Component) IsTimestamp() (uint64, bool) { return conventionValue(c, MarkerTimestamp) }

// IsVersion reports whether c is a version component and returns its value.
func (c Component) IsVersion() (uint64, bool) { return conventionValue(c, MarkerVersion) }

// IsSequenceNum reports whether c is a sequence-number component and returns its value.
func (c Component) IsSequenceNum() (uint64, bool) { return conventionValue(c, MarkerSequenceNo) }

// String returns the URI form of a single component.
func (c Component) String() string {
	sb := strings.Builder{}
	c.writeURI(&sb)
	return sb.String()
}

// writeURI writes c's URI-escaped textual form into sb, per :
// bytes outside [0-9A-Za-z+-._] are percent-escaped; the implicit-digest
// type is written as "sha256digest=<hex>"; an all-dots component of length
// n>=3 is written as "..." followed by (n-3) more dots.
func (c Component) writeURI(sb *strings.Builder) {
	if c.Typ == TypeImplicitSha256DigestComponent {
		sb.WriteString(DigestShaNameConvention)
		sb.WriteByte('=')
		sb.WriteString(hexLower(c.Val))
		return
	}
	if c.Typ != TypeGenericNameComponent {
		sb.WriteString(strconv.FormatUint(uint64(c.Typ), 10))
		sb.WriteByte('=')
	}
	writeEscaped(sb, c.Val)
}

const hexDigits = "0123456789abcdef"

func hexLower(b []byte) string {
	sb := strings.Builder{}
	sb.Grow(len(b) * 2)
	for _, v := range b {
		sb.WriteByte(hexDigits[v>>4])
		sb.WriteByte(hexDigits[v&0xf])
	}
	return sb.String()
}

func isUnreserved(b byte) bool {
	switch {
	case '0' <= b && b <= '9':
		return true
	case 'A' <= b && b <= 'Z':
		return true
	case 'a' <= b && b <= 'z':
		return true
	case b == '+' || b == '-' || b == '.' || b == '_':
		return true
	}
	return false
}

// writeEscaped writes val percent-escaped, with the special all-dots
// encoding where a value of n >= 3 dots is written as "..." followed by
// n-3 further dots, i.e. as the n dots themselves; a 1- or 2-dot value is
// too short for that convention and is percent-escaped normally.
func writeEscaped(sb *strings.Builder, val []byte) {
	allDots := len(val) >= 3
	for _, b := range val {
		if b != '.' {
			allDots = false
			break
		}
	}
	if allDots {
		sb.WriteString("...")
		for i := 0; i < len(val)-3; i++ {
			sb.WriteByte('.')
		}
		return
	}
	for _, b := range val {
		if isUnreserved(b) {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('%')
			sb.WriteByte(hexDigits[b>>4])
			sb.WriteByte(hexDigits[b&0xf])
		}
	}
}
