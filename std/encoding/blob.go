package encoding

import "bytes"

// Blob is an immutable reference to a byte region. Producers emit a new
// Blob; consumers only ever hold references, never mutate one in place.
// Equality is by byte value. SubBlob is a cheap, zero-copy view into the
// same backing array.
type Blob struct {
	buf Buffer
}

// NewBlob wraps buf as a Blob. Callers must not mutate buf afterwards.
func NewBlob(buf []byte) Blob {
	return Blob{buf: buf}
}

// Bytes returns the Blob's bytes. The caller must not mutate the result.
func (b Blob) Bytes() Buffer {
	return b.buf
}

// Size returns the number of bytes in the Blob.
func (b Blob) Size() int {
	return len(b.buf)
}

// IsNil reports whether the Blob holds no backing array at all (as opposed
// to a zero-length one).
func (b Blob) IsNil() bool {
	return b.buf == nil
}

// Equal reports whether two Blobs hold the same byte value.
func (b Blob) Equal(o Blob) bool {
	return bytes.Equal(b.buf, o.buf)
}

// SubBlob returns a zero-copy view of b over [start, end).
func (b Blob) SubBlob(start, end int) Blob {
	return Blob{buf: b.buf[start:end]}
}

// SignedBlob is a Blob together with the byte range within it that a
// signature was computed over (or will be computed over, for a packet
// being assembled). Begin/End are relative to Bytes(), not to any larger
// packet the Blob may have been sliced out of.
type SignedBlob struct {
	Blob
	SignedBegin int
	SignedEnd   int
}

// NewSignedBlob wraps buf as a SignedBlob with the given signed byte range.
func NewSignedBlob(buf []byte, signedBegin, signedEnd int) SignedBlob {
	return SignedBlob{Blob: NewBlob(buf), SignedBegin: signedBegin, SignedEnd: signedEnd}
}

// SignedPortion returns the byte range covered by the signature.
func (s SignedBlob) SignedPortion() Buffer {
	return s.buf[s.SignedBegin:s.SignedEnd]
}
