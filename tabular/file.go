package tabular

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/hewlib/hew/resource"
)

// Stdio is the path that selects stdin for Open and stdout for Create.
const Stdio = "-"

type options struct {
	compression    Compression
	compressionSet bool
	rc             *resource.Controller
}

// Option configures Open and Create.
type Option func(*options)

// WithCompression overrides the codec chosen from the file extension.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
		o.compressionSet = true
	}
}

// WithResourceController throttles reads by the controller's IO limit.
// Create ignores it.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

func applyOptions(path string, optFns []Option) options {
	var o options
	for _, fn := range optFns {
		fn(&o)
	}
	if !o.compressionSet && path != Stdio {
		o.compression = CompressionFromPath(path)
	}
	return o
}

// readStream closes a codec layer and then the file below it.
type readStream struct {
	io.ReadCloser
	file io.Closer
}

func (s *readStream) Close() error {
	return errors.Join(s.ReadCloser.Close(), s.file.Close())
}

type writeStream struct {
	io.WriteCloser
	file io.Closer
}

func (s *writeStream) Close() error {
	return errors.Join(s.WriteCloser.Close(), s.file.Close())
}

// Open opens path for reading, decompressing it when the extension asks for
// it. "-" reads stdin, which is never closed.
func Open(ctx context.Context, path string, opts ...Option) (io.ReadCloser, error) {
	o := applyOptions(path, opts)

	var f io.ReadCloser
	if path == Stdio {
		f = io.NopCloser(os.Stdin)
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		f = file
	}

	var src io.Reader = f
	if o.rc != nil {
		src = resource.NewRateLimitedReader(ctx, f, o.rc)
	}

	r, err := NewReader(src, o.compression)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &readStream{ReadCloser: r, file: f}, nil
}

// Create truncates or creates path and returns a writer that compresses by
// extension. "-" writes stdout, which is never closed.
func Create(path string, opts ...Option) (io.WriteCloser, error) {
	o := applyOptions(path, opts)

	var f io.WriteCloser
	if path == Stdio {
		f = nopWriteCloser{os.Stdout}
	} else {
		file, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		f = file
	}

	w, err := NewWriter(f, o.compression)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &writeStream{WriteCloser: w, file: f}, nil
}

// ReadFile opens and parses path in one step.
func ReadFile(ctx context.Context, path string, opts ...Option) (*Table, error) {
	r, err := Open(ctx, path, opts...)
	if err != nil {
		return nil, err
	}
	t, err := Read(r)
	if cerr := r.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// WriteFile writes t and its cluster column to path.
func WriteFile(path string, t *Table, resultColumn string, assignment []int, opts ...Option) error {
	w, err := Create(path, opts...)
	if err != nil {
		return err
	}
	if err := Write(w, t, resultColumn, assignment); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
