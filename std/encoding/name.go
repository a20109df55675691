package encoding

import (
	"strings"
)

// TypeName is the TLV type of a Name container.
const TypeName TLNum = 0x07

// Name is an ordered, append-only sequence of components. The exported
// operations never mutate a component in place; Append and AppendName
// return a new Name and leave the receiver unchanged.
type Name []Component

// NameFromStr parses a Name from its URI form: an optional
// scheme ("ndn:"), an optional authority ("//host/"), then components
// split on '/'. Empty components and the all-dot components "." and ".."
// are ignored, matching a browser URL's handling of empty/dot segments.
func NameFromStr(s string) (Name, error) {
	// Strip URI scheme, e.g. "ndn:/a/b" -> "/a/b". A colon only counts as
	// a scheme separator if nothing before it is itself a path separator.
	if idx := strings.IndexByte(s, ':'); idx >= 0 && !strings.Contains(s[:idx], "/") {
		s = s[idx+1:]
	}

	// Strip an authority of the form "//host/...".
	if strings.HasPrefix(s, "//") {
		rest := s[2:]
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			s = rest[idx:]
		} else {
			s = ""
		}
	}

	parts := strings.Split(s, "/")
	name := make(Name, 0, len(parts))
	for _, p := range parts {
		if p == "" || p == "." || p == ".." {
			continue
		}
		c, err := ComponentFromStr(p)
		if err != nil {
			return nil, err
		}
		name = append(name, c)
	}
	return name, nil
}

// String returns the URI form of n.
func (n Name) String() string {
	sb := strings.Builder{}
	for _, c := range n {
		sb.WriteByte('/')
		c.writeURI(&sb)
	}
	if len(n) == 0 {
		return "/"
	}
	return sb.String()
}

// Append returns a new Name with comps appended after n's components. n
// itself is not mutated.
func (n Name) Append(comps ...Component) Name {
	ret := make(Name, len(n), len(n)+len(comps))
	copy(ret, n)
	return append(ret, comps...)
}

// AppendName returns a new Name with other's components appended after n's.
func (n Name) AppendName(other Name) Name {
	return n.Append(other...)
}

// Clone returns a deep copy of n.
func (n Name) Clone() Name {
	ret := make(Name, len(n))
	for i, c := range n {
		ret[i] = c.Clone()
	}
	return ret
}

// At returns the component at index i; a negative i counts from the end
// (-1 is the last component).
func (n Name) At(i int) Component {
	if i < 0 {
		i += len(n)
	}
	return n[i]
}

// GetSubName returns the n components of n starting at start (negative
// start counts from the end).
func (n Name) GetSubName(start int, count int) Name {
	if start < 0 {
		start += len(n)
	}
	if start < 0 {
		start = 0
	}
	if start > len(n) {
		start = len(n)
	}
	end := start + count
	if end > len(n) {
		end = len(n)
	}
	if end < start {
		end = start
	}
	return n[start:end]
}

// GetPrefix returns the first n components of the name. A negative n
// means "all but the last |n| components".
func (n Name) GetPrefix(count int) Name {
	if count < 0 {
		count = len(n) + count
	}
	if count < 0 {
		count = 0
	}
	if count > len(n) {
		count = len(n)
	}
	return n[:count]
}

// Match reports whether n is a name-prefix of other: every component of n
// equals, byte-exactly, the component at the same position in other.
func (n Name) Match(other Name) bool {
	if len(n) > len(other) {
		return false
	}
	for i, c := range n {
		if !c.Equal(other[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether n and other have the same components.
func (n Name) Equal(other Name) bool {
	if len(n) != len(other) {
		return false
	}
	for i, c := range n {
		if !c.Equal(other[i]) {
			return false
		}
	}
	return true
}

// Hash returns a 64-bit hash of n, mixing each component's Hash in order.
// Hash(n.GetPrefix(k)) for every k equals PrefixHashes(n)[k], so table
// lookups can probe every ancestor name of n without re-hashing.
func (n Name) Hash() uint64 {
	hashes := n.PrefixHashes()
	return hashes[len(hashes)-1]
}

// PrefixHashes returns, for i in [0, len(n)], the Hash of n.GetPrefix(i):
// index 0 is the empty name, index len(n) is n itself.
func (n Name) PrefixHashes() []uint64 {
	const offset64 = uint64(14695981039346656037)
	const prime64 = uint64(1099511628211)

	hashes := make([]uint64, len(n)+1)
	h := offset64
	hashes[0] = h
	for i, c := range n {
		h = (h ^ c.Hash()) * prime64
		hashes[i+1] = h
	}
	return hashes
}

// Compare implements the canonical total order on names: per-component
// comparison in order; if one name is a prefix of the other, the shorter
// sorts first.
func (n Name) Compare(other Name) int {
	l := len(n)
	if len(other) < l {
		l = len(other)
	}
	for i := 0; i < l; i++ {
		if d := n[i].Compare(other[i]); d != 0 {
			return d
		}
	}
	switch {
	case len(n) < len(other):
		return -1
	case len(n) > len(other):
		return 1
	default:
		return 0
	}
}

// Successor returns the immediate successor of n in canonical order: the
// last component's value is incremented as a big-endian integer with
// carry; on carry-out a component of all-zero bytes one byte longer is
// produced. The empty name's successor is a single zero-byte component.
func (n Name) Successor() Name {
	if len(n) == 0 {
		return Name{{Typ: TypeGenericNameComponent, Val: Buffer{0x00}}}
	}
	last := n[len(n)-1]
	val := make(Buffer, len(last.Val))
	copy(val, last.Val)

	carry := true
	for i := len(val) - 1; i >= 0 && carry; i-- {
		if val[i] == 0xff {
			val[i] = 0x00
		} else {
			val[i]++
			carry = false
		}
	}
	if carry {
		val = make(Buffer, len(last.Val)+1)
	}

	ret := n.GetPrefix(len(n) - 1).Clone()
	return append(ret, Component{Typ: last.Typ, Val: val})
}

// EncodingLength returns the number of bytes needed to encode n, including
// the outer Name Type-Length framing.
func (n Name) EncodingLength() int {
	body := 0
	for _, c := range n {
		body += c.EncodingLength()
	}
	return int(TypeName.EncodingLength()) + TLNum(body).EncodingLength() + body
}

// WireEncode appends n's TLV encoding onto e. Per the Encoder's
// backward-write contract, components must be pushed in reverse order so
// the final layout reads first-to-last.
func (n Name) WireEncode(e *Encoder) {
	start := e.WriteNestedTlvStart()
	for i := len(n) - 1; i >= 0; i-- {
		n[i].WireEncode(e)
	}
	e.FinishNestedTlv(start, TypeName)
}

// Bytes returns n's standalone TLV encoding.
func (n Name) Bytes() Buffer {
	e := NewEncoder(n.EncodingLength())
	n.WireEncode(e)
	return e.Output()
}

// ReadName decodes a Name container (including its own Type-Length
// framing) from d.
func ReadName(d *Decoder) (Name, error) {
	end, err := d.ReadNestedTlvsStart(TypeName)
	if err != nil {
		return nil, err
	}
	name := make(Name, 0, 4)
	for d.Pos() < end {
		c, err := ReadComponent(d)
		if err != nil {
			return nil, err
		}
		name = append(name, c)
	}
	if err := d.FinishNestedTlvs(end, false); err != nil {
		return nil, err
	}
	return name, nil
}
