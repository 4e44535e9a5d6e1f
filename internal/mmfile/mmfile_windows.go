//go:build windows

package mmfile

import "os"

// Map reads the archive at path into memory and returns its contents.
// Windows has no mmap equivalent wired here, so the whole file is read; the
// cleanup function is a no-op.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return data, func() error { return nil }, nil
}
