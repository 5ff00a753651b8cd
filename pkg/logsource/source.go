package logsource

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"path"
	"strings"

	"github.com/arthur-debert/semtparser/pkg/errors"
	"github.com/arthur-debert/semtparser/pkg/filesystem"
	"github.com/arthur-debert/semtparser/pkg/logging"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// MaxLineSize bounds a single log line. AdditionalData blobs can be large.
const MaxLineSize = 16 * 1024 * 1024

// Compression of a log stream.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	}
	return "none"
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Options configures a Reader.
type Options struct {
	FS filesystem.FS

	// S3 fetches s3:// locations. When nil a client is built from S3Config
	// on first use.
	S3       ObjectGetter
	S3Config S3Config
}

// Reader opens logs from any supported location.
type Reader struct {
	fs       filesystem.FS
	s3       ObjectGetter
	s3Config S3Config
}

// NewReader creates a Reader. A nil FS means the OS filesystem.
func NewReader(opts Options) *Reader {
	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	return &Reader{fs: fsys, s3: opts.S3, s3Config: opts.S3Config}
}

// Open returns the decompressed log stream at location.
func (r *Reader) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	log := logging.GetLogger("logsource")

	var raw io.ReadCloser
	if IsS3(location) {
		bucket, key, err := ParseS3URI(location)
		if err != nil {
			return nil, err
		}
		if r.s3 == nil {
			r.s3 = NewS3Client(r.s3Config)
		}
		raw, err = getObject(ctx, r.s3, bucket, key)
		if err != nil {
			return nil, err
		}
	} else {
		f, err := r.fs.Open(location)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrLogRead, "cannot open log file %s", location).
				WithDetail("path", location)
		}
		raw = f
	}

	br := bufio.NewReader(raw)
	compression := Detect(location, br)
	log.Debug().
		Str("location", location).
		Str("compression", compression.String()).
		Msg("Opening log")

	rc, err := decompress(br, compression)
	if err != nil {
		_ = raw.Close()
		return nil, errors.Wrapf(err, errors.ErrLogDecompress, "cannot decompress %s", location).
			WithDetail("path", location).
			WithDetail("compression", compression.String())
	}
	return &stackedCloser{ReadCloser: rc, under: raw}, nil
}

// ReadLines reads the whole log at location as lines, oldest first. A
// trailing carriage return is stripped from each line.
func (r *Reader) ReadLines(ctx context.Context, location string) ([]string, error) {
	rc, err := r.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	lines, err := ScanLines(rc)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrLogRead, "cannot read log %s", location).
			WithDetail("path", location)
	}

	log := logging.GetLogger("logsource")
	log.Info().
		Str("location", location).
		Int("lines", len(lines)).
		Msg("Read operation log")
	return lines, nil
}

// ScanLines splits r into lines. A line longer than MaxLineSize is skipped
// with a warning instead of failing the read.
func ScanLines(r io.Reader) ([]string, error) {
	return scanLines(r, MaxLineSize)
}

func scanLines(r io.Reader, maxLen int) ([]string, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	lines := []string{}
	var buf []byte
	lineNo := 0
	started, oversized := false, false
	for {
		chunk, err := br.ReadSlice('\n')
		if len(chunk) > 0 {
			started = true
		}
		if !oversized {
			if len(buf)+len(bytes.TrimSuffix(chunk, []byte("\n"))) > maxLen {
				oversized = true
				buf = buf[:0]
			} else {
				buf = append(buf, chunk...)
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if err != nil && err != io.EOF {
			return nil, err
		}

		if started {
			lineNo++
			if oversized {
				log := logging.GetLogger("logsource")
				log.Warn().
					Int("line", lineNo).
					Int("max_bytes", maxLen).
					Msg("Skipping oversized log line")
			} else {
				line := strings.TrimSuffix(string(buf), "\n")
				lines = append(lines, strings.TrimSuffix(line, "\r"))
			}
		}
		if err == io.EOF {
			return lines, nil
		}
		buf = buf[:0]
		started, oversized = false, false
	}
}

// Detect picks the compression from the location's extension, falling back
// to the stream's magic bytes.
func Detect(location string, br *bufio.Reader) Compression {
	name := location
	if IsS3(location) {
		name = strings.TrimPrefix(location, s3Scheme)
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".gz", ".gzip":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	}

	head, _ := br.Peek(len(zstdMagic))
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(head, zstdMagic):
		return CompressionZstd
	}
	return CompressionNone
}

func decompress(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionGzip:
		return gzip.NewReader(r)
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	}
	return io.NopCloser(r), nil
}

// stackedCloser closes the decompressor and then the underlying stream.
type stackedCloser struct {
	io.ReadCloser
	under io.Closer
}

func (s *stackedCloser) Close() error {
	err := s.ReadCloser.Close()
	if uerr := s.under.Close(); err == nil {
		err = uerr
	}
	return err
}
