package res

import "encoding/binary"

// synth builds little-endian test blobs with explicit absolute offsets, the
// same way the archives under test lay their structures out.
type synth struct{ buf []byte }

func newSynth(n int) *synth { return &synth{buf: make([]byte, n)} }

func (s *synth) bytes() []byte { return s.buf }

func (s *synth) sig(off int, sig string) { copy(s.buf[off:], sig) }

func (s *synth) u8(off int, v uint8) { s.buf[off] = v }

func (s *synth) u16(off int, v uint16) { binary.LittleEndian.PutUint16(s.buf[off:], v) }

func (s *synth) u32(off int, v uint32) { binary.LittleEndian.PutUint32(s.buf[off:], v) }

func (s *synth) i32(off int, v int32) { binary.LittleEndian.PutUint32(s.buf[off:], uint32(v)) }

func (s *synth) u64(off int, v uint64) { binary.LittleEndian.PutUint64(s.buf[off:], v) }

// ptr writes an 8-byte absolute offset field.
func (s *synth) ptr(off, target int) { s.u64(off, uint64(target)) }

// str writes a string value: 2-byte length, text bytes, zero terminator.
func (s *synth) str(off int, v string) {
	s.u16(off, uint16(len(v)))
	copy(s.buf[off+2:], v)
	s.buf[off+2+len(v)] = 0
}

// dictHeader writes a dictionary header plus its all-zero root node.
func (s *synth) dictHeader(off, count int) {
	s.u32(off, uint32(8+(count+1)*24))
	s.i32(off+4, int32(count))
	// root node at off+8 stays zero: no key, no value
}

// dictNode writes entry i (1-based; 0 is the root) of a dictionary at off.
func (s *synth) dictNode(off, i, keyOff, valOff int) {
	n := off + 8 + i*24
	// reference bits and child indices stay zero; the loader preserves
	// storage order and does not walk the radix links
	s.ptr(n+8, keyOff)
	s.ptr(n+16, valOff)
}
