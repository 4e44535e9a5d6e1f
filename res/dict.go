package res

import (
	"fmt"

	"github.com/reskit-dev/reskit/internal/buf"
)

// Dict is an ordered dictionary of named records, stored in the archive as a
// self-describing radix key table. It is itself a Loadable: given a cursor
// at its start it parses its own header and node entries.
//
// Entry order is the storage order of the key table; it carries no semantic
// meaning beyond deterministic iteration.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    4    Total byte size of the table (advisory)
//	 0x04    4    Entry count, excluding the root node
//	 0x08   24*N  Node entries (root node first):
//	               u32 reference bits, u16 left index, u16 right index,
//	               u64 key string offset, u64 value offset
//
// The root node anchors the radix tree and contributes no entry; its key and
// value offsets are 0.
type Dict[T any, PT loadablePtr[T]] struct {
	keys   []string
	values []PT
}

// Parse reads the key table at the cursor's current position, materializing
// every named value through the identity cache.
func (d *Dict[T, PT]) Parse(l *Loader) error {
	if _, err := l.ReadUint32(); err != nil { // total byte size, advisory
		return fmt.Errorf("res: dict header: %w", err)
	}
	n, err := l.ReadInt32()
	if err != nil {
		return fmt.Errorf("res: dict header: %w", err)
	}
	if n < 0 {
		return fmt.Errorf("res: dict entry count %d is negative", n)
	}
	// The count is stream-supplied; prove the node table fits before
	// allocating anything sized by it.
	need, ok := buf.MulOverflowSafe(int64(n)+1, 24)
	if !ok || !l.Has(need) {
		return fmt.Errorf("%w: dict claims %d entries (%d node bytes) at 0x%X",
			ErrTruncated, n, need, l.Position())
	}
	d.keys = make([]string, 0, n)
	d.values = make([]PT, 0, n)
	for i := 0; i <= int(n); i++ {
		if _, err := l.ReadUint32(); err != nil { // reference bits
			return fmt.Errorf("res: dict node %d: %w", i, err)
		}
		if _, err := l.ReadUint16(); err != nil { // left child index
			return fmt.Errorf("res: dict node %d: %w", i, err)
		}
		if _, err := l.ReadUint16(); err != nil { // right child index
			return fmt.Errorf("res: dict node %d: %w", i, err)
		}
		key, err := l.LoadString(nil)
		if err != nil {
			return fmt.Errorf("res: dict node %d key: %w", i, err)
		}
		off, err := l.ReadOffset()
		if err != nil {
			return fmt.Errorf("res: dict node %d: %w", i, err)
		}
		if i == 0 {
			continue // root node anchors the tree only
		}
		v, err := LoadAt[T, PT](l, off)
		if err != nil {
			return fmt.Errorf("res: dict node %d value: %w", i, err)
		}
		name := ""
		if key != nil {
			name = *key
		}
		d.keys = append(d.keys, name)
		d.values = append(d.values, v)
	}
	return nil
}

// Len returns the number of entries.
func (d *Dict[T, PT]) Len() int { return len(d.keys) }

// At returns the i-th entry in storage order.
func (d *Dict[T, PT]) At(i int) (string, PT) { return d.keys[i], d.values[i] }

// Keys returns the entry names in storage order. The slice is shared with
// the dictionary and must not be mutated.
func (d *Dict[T, PT]) Keys() []string { return d.keys }

// Get returns the value stored under name, or false when absent. Lookup is
// linear; dictionaries in practice hold tens of entries.
func (d *Dict[T, PT]) Get(name string) (PT, bool) {
	for i, k := range d.keys {
		if k == name {
			return d.values[i], true
		}
	}
	return nil, false
}
