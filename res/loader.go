package res

import (
	"fmt"

	"golang.org/x/text/encoding"
)

// Loader is one load session: a Cursor bound to one stream plus the
// offset-keyed identity cache that keeps values referenced from multiple
// offsets reference-equal. A Loader is created for a single top-level load,
// is never reused across streams, and must not be shared between goroutines.
type Loader struct {
	*Cursor
	cache map[int64]any

	archive *Archive
	shader  *ShaderArchive
}

// Option configures a Loader.
type Option func(*Loader)

// WithEncoding sets the default text encoding used for strings that do not
// specify their own, replacing Windows-1252. Legacy archives with Japanese
// names typically need japanese.ShiftJIS here.
func WithEncoding(enc encoding.Encoding) Option {
	return func(l *Loader) { l.SetDefaultEncoding(enc) }
}

// NewLoader returns a session over data with an empty identity cache and no
// roots configured.
func NewLoader(data []byte, opts ...Option) *Loader {
	l := &Loader{
		Cursor: NewCursor(data),
		cache:  make(map[int64]any),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetArchive configures the model-archive root parsed by Execute.
func (l *Loader) SetArchive(a *Archive) { l.archive = a }

// SetShaderArchive configures the shader-binary root parsed by Execute.
func (l *Loader) SetShaderArchive(s *ShaderArchive) { l.shader = s }

// Execute triggers the self-parse of each configured root from the start of
// the stream. Unconfigured roots are skipped. Each root drives its own
// reachable subgraph; any failure aborts the session and the stream contents
// must be considered unmaterialized.
func (l *Loader) Execute() error {
	if l.archive != nil {
		l.SetPosition(0)
		if err := l.archive.Parse(l); err != nil {
			return err
		}
	}
	if l.shader != nil {
		l.SetPosition(0)
		if err := l.shader.Parse(l); err != nil {
			return err
		}
	}
	return nil
}

// CheckSignature consumes a 4-byte structure magic and compares it
// byte-for-byte against want. A mismatch is fatal for the load and is
// reported as a *FormatError naming both tokens.
func (l *Loader) CheckSignature(want string) error {
	got, err := l.ReadSignature(SignatureSize)
	if err != nil {
		return fmt.Errorf("res: read signature: %w", err)
	}
	if got != want {
		return &FormatError{Expected: want, Actual: got}
	}
	return nil
}

// ReadOffset consumes the next pointer field. Offsets are absolute in this
// format revision and are returned unchanged; 0 is the universal "absent"
// sentinel.
func (l *Loader) ReadOffset() (int64, error) {
	v, err := l.ReadUint64()
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// ReadOffsets consumes count pointer fields in sequence, preserving order.
func (l *Loader) ReadOffsets(count int) ([]int64, error) {
	offs := make([]int64, count)
	for i := range offs {
		off, err := l.ReadOffset()
		if err != nil {
			return nil, err
		}
		offs[i] = off
	}
	return offs, nil
}

// LoadString consumes the next offset field and returns the string stored at
// its target, or nil when the offset is 0. The cursor ends up exactly past
// the offset field regardless of where the string itself lives.
func (l *Loader) LoadString(enc encoding.Encoding) (*string, error) {
	off, err := l.ReadOffset()
	if err != nil {
		return nil, err
	}
	if off == 0 {
		return nil, nil
	}
	restore := l.TempSeek(off)
	defer restore()
	s, err := l.ReadString(enc)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadStrings consumes count offset fields up front, then fills the
// corresponding output slots by seeking to each non-zero offset in turn
// within a single restoration scope. Zero offsets leave their slot nil. The
// result is index-aligned with the offsets as stored, independent of where
// the strings physically sit in the stream.
func (l *Loader) LoadStrings(count int, enc encoding.Encoding) ([]*string, error) {
	offs, err := l.ReadOffsets(count)
	if err != nil {
		return nil, err
	}
	out := make([]*string, count)
	restore := l.Mark()
	defer restore()
	for i, off := range offs {
		if off == 0 {
			continue
		}
		l.SetPosition(off)
		s, err := l.ReadString(enc)
		if err != nil {
			return nil, fmt.Errorf("res: string %d of %d: %w", i, count, err)
		}
		out[i] = &s
	}
	return out, nil
}
