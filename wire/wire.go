/*package wire reads and writes the flat float64 word streams shared
by the live-communication, migration and snapshot protocols.

Every record is a run of 8-byte words. Integer fields are stored as
rounded float64 values; fields that must survive bit-for-bit (image
codes) are stored as the raw bit pattern of the word instead. A Writer
or Reader tracks the cursor so the per-protocol code never does offset
arithmetic by hand.
*/
package wire

import (
	"math"
)

// Writer appends words to a caller-supplied buffer. The buffer must be
// pre-sized; Writer never allocates.
type Writer struct {
	buf []float64
	n   int
}

// NewWriter returns a Writer positioned at the start of buf.
func NewWriter(buf []float64) *Writer {
	return &Writer{buf: buf}
}

// Len returns the number of words written so far.
func (w *Writer) Len() int { return w.n }

// PutFloat writes one floating-point word.
func (w *Writer) PutFloat(x float64) {
	w.buf[w.n] = x
	w.n++
}

// PutInt writes an integer-valued word.
func (w *Writer) PutInt(v int) {
	w.buf[w.n] = float64(v)
	w.n++
}

// PutBits writes v into one word bit-for-bit. The word is not a valid
// float and must be read back with Bits.
func (w *Writer) PutBits(v int64) {
	w.buf[w.n] = math.Float64frombits(uint64(v))
	w.n++
}

// Skip reserves one word, to be patched later with PatchInt. Used for
// self-describing records whose first word is their own total length.
func (w *Writer) Skip() {
	w.buf[w.n] = 0
	w.n++
}

// PatchInt overwrites the word at index i with an integer value.
func (w *Writer) PatchInt(i, v int) {
	w.buf[i] = float64(v)
}

// Reader consumes words from a buffer written by a Writer.
type Reader struct {
	buf []float64
	n   int
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []float64) *Reader {
	return &Reader{buf: buf}
}

// Len returns the number of words consumed so far.
func (r *Reader) Len() int { return r.n }

// Float reads one floating-point word.
func (r *Reader) Float() float64 {
	x := r.buf[r.n]
	r.n++
	return x
}

// Int reads one integer-valued word.
func (r *Reader) Int() int {
	v := int(r.buf[r.n])
	r.n++
	return v
}

// Bits reads one word bit-for-bit.
func (r *Reader) Bits() int64 {
	v := int64(math.Float64bits(r.buf[r.n]))
	r.n++
	return v
}
