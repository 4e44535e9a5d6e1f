package res

import (
	"errors"
	"testing"

	"golang.org/x/text/encoding/japanese"
)

func TestCursorReadsAdvance(t *testing.T) {
	s := newSynth(32)
	s.u16(0, 0x1234)
	s.u32(2, 0xDEADBEEF)
	s.u64(6, 0x0102030405060708)
	s.i32(14, -7)

	c := NewCursor(s.bytes())
	v16, err := c.ReadUint16()
	if err != nil || v16 != 0x1234 {
		t.Fatalf("ReadUint16 = 0x%X, %v", v16, err)
	}
	v32, err := c.ReadUint32()
	if err != nil || v32 != 0xDEADBEEF {
		t.Fatalf("ReadUint32 = 0x%X, %v", v32, err)
	}
	v64, err := c.ReadUint64()
	if err != nil || v64 != 0x0102030405060708 {
		t.Fatalf("ReadUint64 = 0x%X, %v", v64, err)
	}
	i32, err := c.ReadInt32()
	if err != nil || i32 != -7 {
		t.Fatalf("ReadInt32 = %d, %v", i32, err)
	}
	if c.Position() != 18 {
		t.Fatalf("position = %d, want 18", c.Position())
	}
}

func TestCursorTruncatedRead(t *testing.T) {
	c := NewCursor([]byte{1, 2})
	if _, err := c.ReadUint32(); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	// A failed read consumes nothing.
	if c.Position() != 0 {
		t.Fatalf("position = %d, want 0 after failed read", c.Position())
	}

	c.SetPosition(1 << 40) // wild position is legal until read
	if _, err := c.ReadUint8(); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated at wild position, got %v", err)
	}
}

func TestCursorStringLengthFieldIsAdvisory(t *testing.T) {
	// The 2-byte length field deliberately disagrees with the actual text;
	// the zero terminator alone bounds the read.
	s := newSynth(16)
	s.u16(0, 99)
	copy(s.bytes()[2:], "abc")

	c := NewCursor(s.bytes())
	got, err := c.ReadString(nil)
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if got != "abc" {
		t.Fatalf("ReadString = %q, want \"abc\"", got)
	}
	if c.Position() != 6 {
		t.Fatalf("position = %d, want 6 (length + text + terminator)", c.Position())
	}
}

func TestCursorStringUnterminated(t *testing.T) {
	blob := []byte{3, 0, 'a', 'b', 'c'} // no zero byte before EOF
	c := NewCursor(blob)
	if _, err := c.ReadString(nil); !errors.Is(err, ErrUnterminatedString) {
		t.Fatalf("expected ErrUnterminatedString, got %v", err)
	}
}

func TestCursorStringEncodings(t *testing.T) {
	// 0xE9 is 'é' in the default Windows-1252.
	c := NewCursor([]byte{1, 0, 0xE9, 0x00})
	got, err := c.ReadString(nil)
	if err != nil || got != "é" {
		t.Fatalf("Windows-1252 decode = %q, %v", got, err)
	}

	// 0x82 0xA0 is 'あ' in Shift JIS.
	c = NewCursor([]byte{2, 0, 0x82, 0xA0, 0x00})
	got, err = c.ReadString(japanese.ShiftJIS)
	if err != nil || got != "あ" {
		t.Fatalf("Shift JIS decode = %q, %v", got, err)
	}

	// The session default can be swapped wholesale.
	c = NewCursor([]byte{2, 0, 0x82, 0xA0, 0x00})
	c.SetDefaultEncoding(japanese.ShiftJIS)
	got, err = c.ReadString(nil)
	if err != nil || got != "あ" {
		t.Fatalf("default Shift JIS decode = %q, %v", got, err)
	}
}

func TestCursorTempSeekRestores(t *testing.T) {
	c := NewCursor(make([]byte, 64))
	c.SetPosition(10)
	restore := c.TempSeek(40)
	if c.Position() != 40 {
		t.Fatalf("position = %d, want 40", c.Position())
	}
	c.SetPosition(50) // manual moves inside the scope are fine
	restore()
	if c.Position() != 10 {
		t.Fatalf("position = %d, want 10 after restore", c.Position())
	}

	restore = c.Mark()
	c.SetPosition(3)
	restore()
	if c.Position() != 10 {
		t.Fatalf("position = %d, want 10 after Mark restore", c.Position())
	}
}

func TestCursorReadSignature(t *testing.T) {
	c := NewCursor([]byte("FRES...."))
	sig, err := c.ReadSignature(4)
	if err != nil || sig != "FRES" {
		t.Fatalf("ReadSignature = %q, %v", sig, err)
	}
	if c.Position() != 4 {
		t.Fatalf("position = %d, want 4", c.Position())
	}
}
