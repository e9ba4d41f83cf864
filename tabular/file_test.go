package tabular

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hewlib/hew/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressionFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Compression
	}{
		{"data.tsv", CompressionNone},
		{"data.tsv.gz", CompressionGzip},
		{"DATA.TSV.GZ", CompressionGzip},
		{"data.zst", CompressionZstd},
		{"data.tsv.zstd", CompressionZstd},
		{"data.lz4", CompressionLZ4},
		{"noext", CompressionNone},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, CompressionFromPath(tt.path))
		})
	}
}

func TestCompression_String(t *testing.T) {
	assert.Equal(t, "gzip", CompressionGzip.String())
	assert.Equal(t, "unknown(9)", Compression(9).String())
}

func TestStreams_RoundTrip(t *testing.T) {
	payload := strings.Repeat("x\ty\n1\t2\n", 500)

	for _, c := range []Compression{CompressionNone, CompressionGzip, CompressionZstd, CompressionLZ4} {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, c)
			require.NoError(t, err)
			_, err = io.WriteString(w, payload)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			if c != CompressionNone {
				assert.Less(t, buf.Len(), len(payload))
			}

			r, err := NewReader(&buf, c)
			require.NoError(t, err)
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			require.NoError(t, r.Close())
			assert.Equal(t, payload, string(got))
		})
	}
}

func TestStreams_Unsupported(t *testing.T) {
	_, err := NewReader(strings.NewReader(""), Compression(42))
	require.ErrorIs(t, err, ErrUnsupportedCompression)
	_, err = NewWriter(io.Discard, Compression(42))
	require.ErrorIs(t, err, ErrUnsupportedCompression)
}

func TestFile_RoundTripByExtension(t *testing.T) {
	tbl, err := Read(strings.NewReader(sample))
	require.NoError(t, err)
	assignment := []int{0, 1, 0}

	for _, name := range []string{"out.tsv", "out.tsv.gz", "out.tsv.zst", "out.tsv.lz4"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, WriteFile(path, tbl, "cluster", assignment))

			back, err := ReadFile(context.Background(), path)
			require.NoError(t, err)
			assert.Equal(t, []string{"name", "x", "y", "active", "cluster"}, back.Columns)
			require.Len(t, back.Rows, 3)
			assert.Equal(t, "2", back.Rows[1]["cluster"])
		})
	}
}

func TestFile_ExtensionIsEnforced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.gz")
	require.NoError(t, os.WriteFile(path, []byte("x\n1\n"), 0o644))

	_, err := ReadFile(context.Background(), path)
	require.Error(t, err)

	tbl, err := ReadFile(context.Background(), path, WithCompression(CompressionNone))
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 1)
}

func TestFile_RateLimited(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.tsv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})
	tbl, err := ReadFile(context.Background(), path, WithResourceController(rc))
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 3)
}

func TestFile_RateLimitedCanceled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.tsv")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})
	_, err := ReadFile(ctx, path, WithResourceController(rc))
	require.ErrorIs(t, err, context.Canceled)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope.tsv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
