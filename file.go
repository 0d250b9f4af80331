package fwfcsv

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pierrec/lz4"
	"golang.org/x/text/encoding"
)

const lz4Ext = ".lz4"

func isLZ4(path string) bool {
	return strings.EqualFold(filepath.Ext(path), lz4Ext)
}

// fileSink is a destination file owned for the duration of one write.
// Writes pass through the text encoder, then lz4 for ".lz4" paths.
type fileSink struct {
	f    *os.File
	path string
	tmp  string // temporary path renamed onto path by commit, if atomic

	w      io.Writer
	layers []io.Closer // outermost first
}

// createSink creates path, along with any missing parent directories.
// If atomic is set the data goes to a temporary file in the same
// directory, which replaces path only when the sink is committed.
func createSink(path string, enc encoding.Encoding, atomic bool) (*fileSink, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, ioError("create", dir, err)
	}
	s := &fileSink{path: path}
	var err error
	if atomic {
		s.f, err = os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
		if err == nil {
			s.tmp = s.f.Name()
		}
	} else {
		s.f, err = os.Create(path)
	}
	if err != nil {
		return nil, ioError("create", path, err)
	}

	var w io.Writer = s.f
	if isLZ4(path) {
		zw := lz4.NewWriter(w)
		s.layers = append(s.layers, zw)
		w = zw
	}
	tw := encodeWriter(w, enc)
	s.layers = append([]io.Closer{tw}, s.layers...)
	s.w = tw
	return s, nil
}

func (s *fileSink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// close flushes every layer and closes the file. With commit set, a
// temporary file is renamed onto the destination; otherwise it is
// removed. A plain destination is left as written, which may be partial.
func (s *fileSink) close(commit bool) error {
	var result *multierror.Error
	for _, c := range s.layers {
		if err := c.Close(); err != nil {
			result = multierror.Append(result, ioError("write", s.path, err))
		}
	}
	if err := s.f.Close(); err != nil {
		result = multierror.Append(result, ioError("close", s.path, err))
	}
	if s.tmp != "" {
		if commit && result.ErrorOrNil() == nil {
			if err := os.Rename(s.tmp, s.path); err != nil {
				result = multierror.Append(result, ioError("rename", s.path, err))
			}
		}
		// no-op after a successful rename
		_ = os.Remove(s.tmp)
	}
	if err := result.ErrorOrNil(); err != nil {
		if len(result.Errors) == 1 {
			return result.Errors[0]
		}
		return &IOError{Op: "close", Path: s.path, Cause: err}
	}
	return nil
}

// openSource opens path for reading, decompressing ".lz4" files. Text
// decoding is left to the Decoder.
func openSource(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError("open", path, err)
	}
	if !isLZ4(path) {
		return &pathReader{r: f, f: f, path: path}, nil
	}
	return &pathReader{r: lz4.NewReader(f), f: f, path: path}, nil
}

// pathReader labels read errors with the file path.
type pathReader struct {
	r    io.Reader
	f    *os.File
	path string
}

func (p *pathReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if err != nil && err != io.EOF {
		err = ioError("read", p.path, err)
	}
	return n, err
}

func (p *pathReader) Close() error {
	return ioError("close", p.path, p.f.Close())
}
