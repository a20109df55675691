// Package transport provides the byte-stream Transport capability and the
// element reader that sits above it: concrete transports own a socket
// and hand raw bytes to an
// ElementReader, which re-emits them as whole top-level TLV elements.
package transport

import enc "github.com/ndn-go/ndnclient/std/encoding"

// ElementReader re-assembles top-level TLV elements out of byte chunks
// delivered from a Transport. It never blocks: Feed parses
// as many complete elements as the buffered bytes allow and leaves any
// trailing partial element buffered for the next call.
type ElementReader struct {
	buf enc.Buffer
}

// Feed appends chunk to the reader's buffer, then calls sink once per
// complete element found, in order. Returns an error (and stops) if the
// leading byte of a to-be-parsed element is not a recognized TLV type.
func (r *ElementReader) Feed(chunk []byte, sink func(element []byte)) error {
	r.buf = append(r.buf, chunk...)

	for len(r.buf) > 0 {
		n, ok := elementLength(r.buf)
		if !ok {
			return nil // not enough bytes yet for type+length
		}
		if n < 0 {
			return enc.ErrFormat{Msg: "element reader: unrecognized leading TLV type"}
		}
		if n > len(r.buf) {
			return nil // whole element not buffered yet
		}

		element := r.buf[:n]
		r.buf = r.buf[n:]
		sink(element)
	}
	return nil
}

// Reset discards any buffered partial element, used after a transport
// reconnects so stale bytes are never reinterpreted.
func (r *ElementReader) Reset() {
	r.buf = nil
}

// elementLength returns the total byte length (type_size + length_size +
// length) of the element starting at buf[0], or ok=false if buf does not
// yet contain the full type+length prefix. n is negative if the leading
// type is not Interest (5), Data (6) or LpPacket (100).
func elementLength(buf enc.Buffer) (n int, ok bool) {
	if len(buf) < 1 {
		return 0, false
	}
	typeLen := tlNumLen(buf[0])
	if typeLen < 0 {
		return -1, true
	}
	if len(buf) < typeLen {
		return 0, false
	}
	typ, tp := enc.ParseTLNum(buf)
	switch typ {
	case 5, 6, 100: // Interest, Data, LpPacket
	default:
		return -1, true
	}
	if len(buf) < tp+1 {
		return 0, false
	}
	lenLen := tlNumLen(buf[tp])
	if lenLen < 0 {
		return -1, true
	}
	if len(buf) < tp+lenLen {
		return 0, false
	}
	length, lp := enc.ParseTLNum(buf[tp:])
	return tp + lp + int(length), true
}

// tlNumLen returns the total encoded length of a TLNum given its leading
// byte, or -1 if the marker byte is malformed (only possible for the
// reserved value between 0xfd..0xff, all of which are in fact valid
// markers for this encoding; kept for symmetry with the decoder's
// bounds-checked path).
func tlNumLen(b byte) int {
	switch {
	case b <= 0xfc:
		return 1
	case b == 0xfd:
		return 3
	case b == 0xfe:
		return 5
	default:
		return 9
	}
}
