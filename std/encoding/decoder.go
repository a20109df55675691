package encoding

// Decoder is a random-access reader over an immutable input buffer with an
// explicit read offset, implementing the TLV decoder contract of §4.1: peek
// a Type without consuming it, read Type+Length pairs, read integer and
// blob payloads, and bound child reads inside a nested container via
// ReadNestedTlvsStart/FinishNestedTlvs.
type Decoder struct {
	buf Buffer
	pos int
}

// NewDecoder wraps buf for decoding starting at offset 0.
func NewDecoder(buf Buffer) *Decoder {
	return &Decoder{buf: buf}
}

// Pos returns the current read offset.
func (d *Decoder) Pos() int {
	return d.pos
}

// Length returns the total length of the underlying buffer.
func (d *Decoder) Length() int {
	return len(d.buf)
}

// Done returns true if the decoder has consumed the whole buffer.
func (d *Decoder) Done() bool {
	return d.pos >= len(d.buf)
}

// Range returns the bytes between [start, end) without copying.
func (d *Decoder) Range(start, end int) Buffer {
	return d.buf[start:end]
}

func (d *Decoder) need(n int) error {
	if d.pos+n > len(d.buf) || n < 0 {
		return ErrBufferOverflow
	}
	return nil
}

// PeekType reads the next TLV Type number without advancing the decoder.
func (d *Decoder) PeekType() (TLNum, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	t, n := ParseTLNum(d.buf[d.pos:])
	if err := d.need(n); err != nil {
		return 0, err
	}
	return t, nil
}

// ReadTypeAndLength reads a TLV Type followed by a Length, and returns the
// Type, the Length, and the offset immediately following the Value (the
// caller's bound for reading the Value).
func (d *Decoder) ReadTypeAndLength() (t TLNum, length int, valueEnd int, err error) {
	if err = d.need(1); err != nil {
		return
	}
	var n int
	t, n = ParseTLNum(d.buf[d.pos:])
	if err = d.need(n); err != nil {
		return
	}
	d.pos += n

	if err = d.need(1); err != nil {
		return
	}
	var l TLNum
	l, n = ParseTLNum(d.buf[d.pos:])
	if err = d.need(n); err != nil {
		return
	}
	d.pos += n

	length = int(l)
	valueEnd = d.pos + length
	if valueEnd > len(d.buf) || length < 0 {
		return 0, 0, 0, ErrBufferOverflow
	}
	return
}

// ReadNonNegativeIntegerTlv reads a complete Type-Length-Value record whose
// Value is a minimally-encoded big-endian non-negative integer, checking
// that the Type matches expected.
func (d *Decoder) ReadNonNegativeIntegerTlv(expected TLNum) (uint64, error) {
	t, length, end, err := d.ReadTypeAndLength()
	if err != nil {
		return 0, err
	}
	if t != expected {
		return 0, ErrSkipRequired{Name: "non-negative-integer", TypeNum: expected}
	}
	val, err := ParseNat(d.buf[d.pos:end])
	if err != nil {
		return 0, err
	}
	d.pos = end
	return uint64(val), nil
}

// ReadBlobTlv reads a complete Type-Length-Value record whose Value is
// returned verbatim, checking that the Type matches expected.
func (d *Decoder) ReadBlobTlv(expected TLNum) (Buffer, error) {
	t, _, end, err := d.ReadTypeAndLength()
	if err != nil {
		return nil, err
	}
	if t != expected {
		return nil, ErrSkipRequired{Name: "blob", TypeNum: expected}
	}
	val := d.buf[d.pos:end]
	d.pos = end
	return val, nil
}

// ReadOptionalBlobTlv reads a Type-Length-Value record only if the next
// Type in the stream matches expected; otherwise it leaves the decoder
// untouched and returns (nil, false, nil).
func (d *Decoder) ReadOptionalBlobTlv(expected TLNum) (Buffer, bool, error) {
	if d.Done() {
		return nil, false, nil
	}
	t, err := d.PeekType()
	if err != nil {
		return nil, false, err
	}
	if t != expected {
		return nil, false, nil
	}
	v, err := d.ReadBlobTlv(expected)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// ReadNestedTlvsStart reads the Type and Length of a nested container and
// returns the offset at which its children end; child reads are bounded by
// passing that offset to FinishNestedTlvs.
func (d *Decoder) ReadNestedTlvsStart(expected TLNum) (end int, err error) {
	t, _, valueEnd, err := d.ReadTypeAndLength()
	if err != nil {
		return 0, err
	}
	if t != expected {
		return 0, ErrSkipRequired{Name: "nested", TypeNum: expected}
	}
	return valueEnd, nil
}

// FinishNestedTlvs verifies that decoding the children of a nested
// container consumed exactly up to end. If allowUnknown is true,
// unrecognized trailing elements with non-critical type numbers (even
// numbers above 31, see IsCriticalType) are skipped; critical ones are
// still rejected.
func (d *Decoder) FinishNestedTlvs(end int, allowUnknown bool) error {
	for d.pos < end {
		if !allowUnknown {
			return ErrNestedOverflow
		}
		t, _, valueEnd, err := d.ReadTypeAndLength()
		if err != nil {
			return err
		}
		if valueEnd > end {
			return ErrBufferOverflow
		}
		if IsCriticalType(t) {
			return ErrUnrecognizedField{TypeNum: t}
		}
		d.pos = valueEnd
	}
	if d.pos != end {
		return ErrNestedOverflow
	}
	return nil
}

// IsCriticalType reports whether an unrecognized TLV type number must cause
// decoding to fail rather than be skipped, per the NDN-TLV evolvability
// rule: type numbers <= 31, or odd type numbers, are critical.
func IsCriticalType(t TLNum) bool {
	return t <= 31 || t%2 == 1
}

// Skip advances the decoder by n bytes without interpreting them.
func (d *Decoder) Skip(n int) error {
	if err := d.need(n); err != nil {
		return err
	}
	d.pos += n
	return nil
}
