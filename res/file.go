package res

import (
	"fmt"

	"github.com/reskit-dev/reskit/internal/mmfile"
)

// File is a fully materialized archive: whichever root record matched the
// leading signature, with its complete reachable graph behind it. Exactly
// one of Archive and ShaderArchive is non-nil for files opened through Open
// or OpenBytes.
type File struct {
	Archive       *Archive
	ShaderArchive *ShaderArchive

	size  int64
	unmap func() error
}

// OpenBytes reconstructs the object graph from an in-memory archive. The
// leading 4-byte signature selects the root kind; an unrecognized signature
// is reported as a *FormatError.
func OpenBytes(data []byte, opts ...Option) (*File, error) {
	if len(data) < SignatureSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d for a signature",
			ErrTruncated, len(data), SignatureSize)
	}
	l := NewLoader(data, opts...)
	f := &File{size: int64(len(data))}
	switch sig := string(data[:SignatureSize]); sig {
	case ArchiveSignature:
		f.Archive = new(Archive)
		l.SetArchive(f.Archive)
	case ShaderArchiveSignature:
		f.ShaderArchive = new(ShaderArchive)
		l.SetShaderArchive(f.ShaderArchive)
	default:
		return nil, &FormatError{
			Expected: ArchiveSignature + "|" + ShaderArchiveSignature,
			Actual:   sig,
		}
	}
	if err := l.Execute(); err != nil {
		return nil, err
	}
	return f, nil
}

// Open memory-maps the archive at path and reconstructs its object graph.
// The caller must Close the file to release the mapping; the materialized
// graph holds views into it.
func Open(path string, opts ...Option) (*File, error) {
	data, unmap, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("res: open archive: %w", err)
	}
	f, err := OpenBytes(data, opts...)
	if err != nil {
		if unmap != nil {
			_ = unmap()
		}
		return nil, err
	}
	f.unmap = unmap
	return f, nil
}

// Size returns the length of the underlying stream in bytes.
func (f *File) Size() int64 { return f.size }

// Close releases the file mapping, if any. The graph must not be used
// afterwards. Close is a no-op for files opened from caller-owned bytes.
func (f *File) Close() error {
	if f.unmap == nil {
		return nil
	}
	unmap := f.unmap
	f.unmap = nil
	return unmap()
}
