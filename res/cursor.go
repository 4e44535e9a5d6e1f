package res

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/reskit-dev/reskit/internal/buf"
)

// Cursor is a little-endian binary reader over an in-memory byte stream with
// an absolute position. All reads advance the position by exactly the bytes
// consumed; the position itself is never validated against the stream
// length, so a wild offset surfaces as a failed read rather than a failed
// seek.
type Cursor struct {
	data []byte
	pos  int64
	enc  encoding.Encoding // default text encoding for ReadString
}

// NewCursor returns a cursor positioned at the start of data. Strings decode
// as Windows-1252 unless a different default is set.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data, enc: charmap.Windows1252}
}

// Position returns the cursor's absolute byte offset.
func (c *Cursor) Position() int64 { return c.pos }

// SetPosition moves the cursor to an absolute byte offset.
func (c *Cursor) SetPosition(pos int64) { c.pos = pos }

// Len returns the total stream length in bytes.
func (c *Cursor) Len() int64 { return int64(len(c.data)) }

// Has reports whether n more bytes exist at the current position without
// consuming anything. Parsers use it to validate stream-supplied counts
// before sizing allocations from them.
func (c *Cursor) Has(n int64) bool { return buf.Has(c.data, c.pos, n) }

// SetDefaultEncoding replaces the encoding used when ReadString is called
// with a nil encoding.
func (c *Cursor) SetDefaultEncoding(enc encoding.Encoding) {
	if enc != nil {
		c.enc = enc
	}
}

// take consumes n bytes, returning a zero-copy view into the stream.
func (c *Cursor) take(n int64) ([]byte, error) {
	b, ok := buf.Slice(c.data, c.pos, n)
	if !ok {
		return nil, fmt.Errorf("%w: %d bytes at 0x%X (stream length %d)",
			ErrTruncated, n, c.pos, len(c.data))
	}
	c.pos += n
	return b, nil
}

// ReadBytes consumes and returns the next n bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	return c.take(int64(n))
}

// ReadUint8 consumes one byte.
func (c *Cursor) ReadUint8() (uint8, error) {
	b, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadUint16 consumes a little-endian uint16.
func (c *Cursor) ReadUint16() (uint16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return buf.U16LE(b), nil
}

// ReadUint32 consumes a little-endian uint32.
func (c *Cursor) ReadUint32() (uint32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return buf.U32LE(b), nil
}

// ReadUint64 consumes a little-endian uint64.
func (c *Cursor) ReadUint64() (uint64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return buf.U64LE(b), nil
}

// ReadInt16 consumes a little-endian int16.
func (c *Cursor) ReadInt16() (int16, error) {
	b, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return buf.I16LE(b), nil
}

// ReadInt32 consumes a little-endian int32.
func (c *Cursor) ReadInt32() (int32, error) {
	b, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return buf.I32LE(b), nil
}

// ReadInt64 consumes a little-endian int64.
func (c *Cursor) ReadInt64() (int64, error) {
	b, err := c.take(8)
	if err != nil {
		return 0, err
	}
	return buf.I64LE(b), nil
}

// ReadSignature consumes n raw bytes and returns them as text, uninterpreted.
func (c *Cursor) ReadSignature(n int) (string, error) {
	b, err := c.take(int64(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadString reads a string stored as a 2-byte length field followed by text
// bytes terminated by a zero byte. The length field is informational only
// and does not bound the read; decoding stops at the terminator. A nil enc
// selects the cursor's default encoding.
func (c *Cursor) ReadString(enc encoding.Encoding) (string, error) {
	if _, err := c.ReadUint16(); err != nil {
		return "", err
	}
	start := c.pos
	i := bytes.IndexByte(c.data[start:], 0)
	if i < 0 {
		return "", fmt.Errorf("%w: at 0x%X", ErrUnterminatedString, start)
	}
	raw := c.data[start : start+int64(i)]
	c.pos = start + int64(i) + 1
	if enc == nil {
		enc = c.enc
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("res: decode string at 0x%X: %w", start, err)
	}
	return string(decoded), nil
}

// TempSeek moves the cursor to off and returns a restore function that puts
// it back where it was. Callers must run restore on every exit path,
// normally via defer, so sibling reads in an enclosing record resume at the
// correct offset even when a nested parse fails.
func (c *Cursor) TempSeek(off int64) (restore func()) {
	saved := c.pos
	c.pos = off
	return func() { c.pos = saved }
}

// Mark captures the current position without moving, for callers that
// perform several manual position changes within one restoration scope.
func (c *Cursor) Mark() (restore func()) {
	saved := c.pos
	return func() { c.pos = saved }
}
