package dns

import (
	"encoding/binary"
	"fmt"
)

// Size limits for wire data.
const (
	MaxMessageSize = 65535 // Largest DNS message (TCP length prefix is 16 bits)
	MaxRDataLength = 65535 // RDLENGTH is a 16-bit field (RFC 1035 §3.2.1)
)

// Reader is a bounds-checked cursor over a DNS message.
//
// All multi-byte integers are read big-endian (network order). A read that
// would run past the end of the message fails with ErrTruncated and leaves
// the cursor where it was. The Reader keeps the whole message so that name
// decoding can follow compression pointers.
//
// A Reader must not be shared between goroutines.
type Reader struct {
	msg []byte
	off int
}

// NewReader returns a Reader positioned at the start of msg.
func NewReader(msg []byte) *Reader {
	return &Reader{msg: msg}
}

// NewReaderAt returns a Reader positioned at off within msg.
func NewReaderAt(msg []byte, off int) *Reader {
	return &Reader{msg: msg, off: off}
}

// Offset returns the current position within the message.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	if r.off < 0 || r.off >= len(r.msg) {
		return 0
	}
	return len(r.msg) - r.off
}

func (r *Reader) need(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative read length %d", ErrDNSError, n)
	}
	if have := r.Remaining(); n > have {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, r.off, have)
	}
	return nil
}

// ReadUint8 reads one octet.
func (r *Reader) ReadUint8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.msg[r.off]
	r.off++
	return v, nil
}

// ReadUint16 reads a big-endian 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.msg[r.off:])
	r.off += 2
	return v, nil
}

// ReadUint32 reads a big-endian 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.msg[r.off:])
	r.off += 4
	return v, nil
}

// ReadBytes reads exactly n bytes and returns a copy that does not alias the message.
// n == 0 returns an empty, non-nil slice.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	copy(b, r.msg[r.off:r.off+n])
	r.off += n
	return b, nil
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.off += n
	return nil
}

// Writer appends big-endian wire data to a growing buffer.
//
// A positive limit caps the total buffer length; a write that would exceed
// it fails with ErrRDataOverflow and appends nothing.
type Writer struct {
	buf   []byte
	limit int
}

// NewWriter returns an empty Writer. limit <= 0 means unlimited.
func NewWriter(limit int) *Writer {
	return &Writer{limit: limit}
}

// NewRDataWriter returns a Writer capped at MaxRDataLength bytes.
func NewRDataWriter() *Writer {
	return NewWriter(MaxRDataLength)
}

// Bytes returns the written bytes. The slice aliases the Writer's buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written.
func (w *Writer) Len() int { return len(w.buf) }

func (w *Writer) reserve(n int) error {
	if w.limit > 0 && len(w.buf)+n > w.limit {
		return fmt.Errorf("%w: %d+%d bytes > %d", ErrRDataOverflow, len(w.buf), n, w.limit)
	}
	return nil
}

// WriteUint8 appends one octet.
func (w *Writer) WriteUint8(v uint8) error {
	if err := w.reserve(1); err != nil {
		return err
	}
	w.buf = append(w.buf, v)
	return nil
}

// WriteUint16 appends a big-endian 16-bit integer.
func (w *Writer) WriteUint16(v uint16) error {
	if err := w.reserve(2); err != nil {
		return err
	}
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
	return nil
}

// WriteUint32 appends a big-endian 32-bit integer.
func (w *Writer) WriteUint32(v uint32) error {
	if err := w.reserve(4); err != nil {
		return err
	}
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
	return nil
}

// WriteBytes appends b verbatim, without a length prefix.
func (w *Writer) WriteBytes(b []byte) error {
	if err := w.reserve(len(b)); err != nil {
		return err
	}
	w.buf = append(w.buf, b...)
	return nil
}

// PutUint16At overwrites two already-written bytes at off.
// Used to backpatch length fields once the data they cover is known.
func (w *Writer) PutUint16At(off int, v uint16) error {
	if off < 0 || off+2 > len(w.buf) {
		return fmt.Errorf("%w: backpatch offset %d outside %d written bytes", ErrDNSError, off, len(w.buf))
	}
	binary.BigEndian.PutUint16(w.buf[off:], v)
	return nil
}
