package res

import "fmt"

// Loadable is the capability every record type implements: parse your own
// fields starting at the cursor's current position, using the generic
// loaders for any offset-valued field, and leave the cursor exactly past
// your fixed-size footprint. The loaders depend only on this capability,
// never on a record's concrete layout.
type Loadable interface {
	Parse(l *Loader) error
}

// loadablePtr constrains PT to a pointer to T implementing Loadable, so the
// loaders can default-construct records without reflection.
type loadablePtr[T any] interface {
	Loadable
	*T
}

// readValue parses one record at the cursor's current position and folds it
// into the identity cache keyed by that position. The parse always runs,
// even on a cache hit, so sequential consumers such as list iteration see
// the cursor advance by the record's full footprint; only the duplicate
// result is discarded. Side effects of a duplicate parse (cache entries for
// offsets nested inside it) are kept, matching the format's reference
// semantics exactly.
func readValue[T any, PT loadablePtr[T]](l *Loader) (PT, error) {
	key := l.Position()
	v := PT(new(T))
	if err := v.Parse(l); err != nil {
		return nil, err
	}
	if prev, ok := l.cache[key]; ok {
		shared, ok := prev.(PT)
		if !ok {
			return nil, fmt.Errorf("%w 0x%X: cached %T, requested %T",
				ErrOffsetConflict, key, prev, v)
		}
		return shared, nil
	}
	l.cache[key] = v
	return v, nil
}

// Load consumes the next offset field and materializes the record at its
// target, or returns nil when the offset is 0. The record participates in
// the identity cache: loading the same offset twice yields the same
// instance.
func Load[T any, PT loadablePtr[T]](l *Loader) (PT, error) {
	off, err := l.ReadOffset()
	if err != nil {
		return nil, err
	}
	return LoadAt[T, PT](l, off)
}

// LoadAt is Load with an explicit offset; no offset field is consumed from
// the stream.
func LoadAt[T any, PT loadablePtr[T]](l *Loader, off int64) (PT, error) {
	if off == 0 {
		return nil, nil
	}
	restore := l.TempSeek(off)
	defer restore()
	return readValue[T, PT](l)
}

// LoadCustom consumes the next offset field and invokes parse at its target,
// returning the zero value of T when the offset is 0. It exists for shapes a
// record type cannot own, typically an offset whose payload depends on
// fields stored after it.
func LoadCustom[T any](l *Loader, parse func(*Loader) (T, error)) (T, error) {
	off, err := l.ReadOffset()
	if err != nil {
		var zero T
		return zero, err
	}
	return LoadCustomAt(l, parse, off)
}

// LoadCustomAt is LoadCustom with an explicit offset; no offset field is
// consumed from the stream.
func LoadCustomAt[T any](l *Loader, parse func(*Loader) (T, error), off int64) (T, error) {
	if off == 0 {
		var zero T
		return zero, nil
	}
	restore := l.TempSeek(off)
	defer restore()
	return parse(l)
}

// LoadList consumes the next offset field and materializes count records laid
// out back to back at its target. A zero offset or a zero count yields an
// empty, non-nil slice. Each element participates in the identity cache
// independently.
func LoadList[T any, PT loadablePtr[T]](l *Loader, count int) ([]PT, error) {
	off, err := l.ReadOffset()
	if err != nil {
		return nil, err
	}
	return LoadListAt[T, PT](l, count, off)
}

// LoadListAt is LoadList with an explicit offset; no offset field is
// consumed from the stream.
func LoadListAt[T any, PT loadablePtr[T]](l *Loader, count int, off int64) ([]PT, error) {
	out := make([]PT, 0, count)
	if off == 0 || count == 0 {
		return out, nil
	}
	restore := l.TempSeek(off)
	defer restore()
	for i := 0; i < count; i++ {
		v, err := readValue[T, PT](l)
		if err != nil {
			return nil, fmt.Errorf("res: list element %d of %d: %w", i, count, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// LoadDict consumes the next offset field and materializes the keyed
// dictionary at its target. A zero offset yields an empty, non-nil
// dictionary. The dictionary owns its key-table format; its values are
// loaded through the identity cache like any other record.
func LoadDict[T any, PT loadablePtr[T]](l *Loader) (*Dict[T, PT], error) {
	off, err := l.ReadOffset()
	if err != nil {
		return nil, err
	}
	d := &Dict[T, PT]{}
	if off == 0 {
		return d, nil
	}
	restore := l.TempSeek(off)
	defer restore()
	if err := d.Parse(l); err != nil {
		return nil, err
	}
	return d, nil
}
