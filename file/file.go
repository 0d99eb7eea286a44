package file

import (
	"mime"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// ErrUnavailable covers open, stat and lock failures. Nothing has been
// written to the client when this comes back.
var ErrUnavailable = errors.New("file unavailable")

// TypeResolver maps a path to a MIME type, or "" when unknown.
type TypeResolver func(path string) string

// ResolveByExtension is the default resolver.
func ResolveByExtension(path string) string {
	return mime.TypeByExtension(filepath.Ext(path))
}

// Descriptor is an open file held under a shared, non-blocking lock for
// the lifetime of one request.
type Descriptor struct {
	Path        string
	Size        uint64
	ContentType string

	handle *os.File
}

// Open opens path for reading and takes a shared non-blocking flock.
// If another process holds an exclusive lock the call fails immediately
// rather than waiting.
func Open(path string, resolve TypeResolver) (*Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrUnavailable, "open %s: %v", path, err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_SH|unix.LOCK_NB); err != nil {
		f.Close()
		return nil, errors.Wrapf(ErrUnavailable, "lock %s: %v", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(ErrUnavailable, "stat %s: %v", path, err)
	}

	if resolve == nil {
		resolve = ResolveByExtension
	}

	return &Descriptor{
		Path:        path,
		Size:        uint64(info.Size()),
		ContentType: resolve(path),
		handle:      f,
	}, nil
}

func (d *Descriptor) Read(p []byte) (int, error) {
	return d.handle.Read(p)
}

func (d *Descriptor) Seek(offset int64, whence int) (int64, error) {
	return d.handle.Seek(offset, whence)
}

// Close releases the lock and the handle.
func (d *Descriptor) Close() error {
	// The flock goes away with the descriptor; no explicit unlock needed.
	return d.handle.Close()
}
