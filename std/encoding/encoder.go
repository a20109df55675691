package encoding

// Encoder builds a TLV-encoded byte sequence by writing backward into a
// growing buffer. Writing backward lets a nested container prepend its own
// Type and Length once the size of its body is known, without first
// encoding the body into a side buffer and copying it. Output returns the
// buffer in forward (wire) order.
type Encoder struct {
	buf []byte
}

// NewEncoder constructs an Encoder with capacity pre-reserved for a packet
// of approximately sizeHint bytes.
func NewEncoder(sizeHint int) *Encoder {
	if sizeHint <= 0 {
		sizeHint = 64
	}
	return &Encoder{buf: make([]byte, 0, sizeHint)}
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// grow reserves n more bytes at the front of the buffer; e.buf is kept in
// forward (wire) order, so the new gap is the start of the slice.
func (e *Encoder) grow(n int) []byte {
	old := len(e.buf)
	e.buf = append(e.buf, make([]byte, n)...)
	// Shift existing content to the end, leaving a fresh gap at the front
	// of logical (output) order, which is the head of e.buf.
	copy(e.buf[n:], e.buf[:old])
	return e.buf[:n]
}

// prepend writes p immediately before everything written so far.
func (e *Encoder) prepend(p []byte) {
	dst := e.grow(len(p))
	copy(dst, p)
}

// WriteType prepends a TLV Type field.
func (e *Encoder) WriteType(t TLNum) {
	buf := make(Buffer, t.EncodingLength())
	t.EncodeInto(buf)
	e.prepend(buf)
}

// WriteLength prepends a TLV Length field.
func (e *Encoder) WriteLength(l int) {
	n := TLNum(l)
	buf := make(Buffer, n.EncodingLength())
	n.EncodeInto(buf)
	e.prepend(buf)
}

// WriteBlob prepends raw bytes with no Type/Length framing.
func (e *Encoder) WriteBlob(b []byte) {
	e.prepend(b)
}

// WriteNonNegativeIntegerTlv prepends a complete Type-Length-Value record
// whose Value is the minimal big-endian encoding of v.
func (e *Encoder) WriteNonNegativeIntegerTlv(t TLNum, v uint64) {
	nat := Nat(v)
	buf := make(Buffer, nat.EncodingLength())
	nat.EncodeInto(buf)
	e.prepend(buf)
	e.WriteLength(len(buf))
	e.WriteType(t)
}

// WriteBlobTlv prepends a complete Type-Length-Value record whose Value is
// exactly val.
func (e *Encoder) WriteBlobTlv(t TLNum, val []byte) {
	e.prepend(val)
	e.WriteLength(len(val))
	e.WriteType(t)
}

// mark is an opaque checkpoint returned by WriteNestedTlvStart.
type mark int

// WriteNestedTlvStart records the current position so that FinishNestedTlv
// can later compute the body length of a nested container and prepend its
// Type and Length once the body has been written.
func (e *Encoder) WriteNestedTlvStart() mark {
	return mark(len(e.buf))
}

// FinishNestedTlv prepends the Length (computed from the bytes written
// since start) and the Type of a nested container whose body has already
// been written via start.
func (e *Encoder) FinishNestedTlv(start mark, t TLNum) {
	bodyLen := len(e.buf) - int(start)
	e.WriteLength(bodyLen)
	e.WriteType(t)
}

// Output returns the final, forward-ordered encoded byte sequence.
func (e *Encoder) Output() Buffer {
	return Buffer(e.buf)
}

// Wire returns the final encoded byte sequence as a single-buffer Wire.
func (e *Encoder) Wire() Wire {
	return Wire{e.Output()}
}
