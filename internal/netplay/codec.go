package netplay

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrShortBuffer indicates a payload ended before a field was fully read.
var ErrShortBuffer = errors.New("short buffer")

// ErrStringTooLong indicates a string exceeded its length-prefix range.
var ErrStringTooLong = errors.New("string too long for length prefix")

// Writer builds a length-prefixed little-endian payload. All variable-length
// fields carry an explicit length prefix; strings are never null-terminated.
type Writer struct {
	buf []byte
}

// NewWriter creates a writer whose first byte is the signal discriminant.
func NewWriter(sig Signal) *Writer {
	return &Writer{buf: []byte{byte(sig)}}
}

// Bytes returns the assembled payload.
func (w *Writer) Bytes() []byte { return w.buf }

// Uint8 appends a single byte.
func (w *Writer) Uint8(v uint8) { w.buf = append(w.buf, v) }

// Bool appends a bool as one byte.
func (w *Writer) Bool(v bool) {
	if v {
		w.Uint8(1)
		return
	}
	w.Uint8(0)
}

// Uint16 appends a little-endian uint16.
func (w *Writer) Uint16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// Uint32 appends a little-endian uint32.
func (w *Writer) Uint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// Int32 appends a little-endian int32.
func (w *Writer) Int32(v int32) { w.Uint32(uint32(v)) }

// Uint64 appends a little-endian uint64.
func (w *Writer) Uint64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

// String8 appends a string with a uint8 length prefix. Card ids and input
// event names fit comfortably in 255 bytes.
func (w *Writer) String8(s string) error {
	if len(s) > 0xff {
		return fmt.Errorf("%w: %d bytes", ErrStringTooLong, len(s))
	}
	w.Uint8(uint8(len(s)))
	w.buf = append(w.buf, s...)
	return nil
}

// Reader decodes a length-prefixed little-endian payload with bounds checks.
// Any read past the end returns ErrShortBuffer instead of panicking; the
// dispatch site treats that as a bad datagram, not a fatal condition.
type Reader struct {
	buf []byte
	off int
}

// NewReader creates a reader over a payload (the bytes after the signal).
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

func (r *Reader) take(n int) ([]byte, error) {
	if r.off+n > len(r.buf) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d of %d", ErrShortBuffer, n, r.off, len(r.buf))
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Uint8 reads a single byte.
func (r *Reader) Uint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Bool reads one byte as a bool.
func (r *Reader) Bool() (bool, error) {
	v, err := r.Uint8()
	return v != 0, err
}

// Uint16 reads a little-endian uint16.
func (r *Reader) Uint16() (uint16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Int32 reads a little-endian int32.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// String8 reads a string with a uint8 length prefix.
func (r *Reader) String8() (string, error) {
	n, err := r.Uint8()
	if err != nil {
		return "", err
	}
	b, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Remaining returns how many undecoded bytes are left.
func (r *Reader) Remaining() int { return len(r.buf) - r.off }

// SplitSignal separates a raw message into its discriminant and payload.
func SplitSignal(msg []byte) (Signal, []byte, error) {
	if len(msg) < 1 {
		return SignalNone, nil, ErrShortBuffer
	}
	return Signal(msg[0]), msg[1:], nil
}
