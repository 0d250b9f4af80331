package fwfcsv

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// A WriteOption customizes how a destination file is written.
type WriteOption func(*writeConfig)

type writeConfig struct {
	atomic bool
}

// Atomic writes to a temporary file next to the destination and renames
// it into place only once everything was written. Without it, a failure
// part way through leaves a partial destination behind.
func Atomic() WriteOption {
	return func(c *writeConfig) { c.atomic = true }
}

func newWriteConfig(opts []WriteOption) writeConfig {
	var c writeConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// GenerateFile synthesizes count lines for spec into path, encoded with
// the spec's encoding. Missing parent directories are created. A count
// that is not positive yields a *ValueError before anything is created.
func GenerateFile(spec *FixedWidthSpec, count int, path string, gen FieldGenerator, opts ...WriteOption) (err error) {
	lines, err := Generate(spec, count, gen)
	if err != nil {
		return err
	}
	cfg := newWriteConfig(opts)
	sink, err := createSink(path, spec.enc, cfg.atomic)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.close(err == nil); err == nil {
			err = cerr
		}
	}()
	return withPath(NewEncoder(sink).Encode(lines), path)
}

// OpenDecoder opens the fixed-width file at path for parsing with spec.
// The returned decoder owns the file and closes it once its rows are
// exhausted or Close is called. Files ending in ".lz4" are decompressed.
func OpenDecoder(path string, spec *FixedWidthSpec, opts ...DecoderOption) (*Decoder, error) {
	src, err := openSource(path)
	if err != nil {
		return nil, err
	}
	return NewDecoder(src, spec, opts...), nil
}

// WriteFile drains rows into a delimited file at path, writing a header
// row first if spec.HasHeader(). Missing parent directories are created.
// The file is flushed and closed on every exit path.
func WriteFile(spec *DelimitedSpec, rows RowIterator, path string, opts ...WriteOption) (err error) {
	cfg := newWriteConfig(opts)
	sink, err := createSink(path, spec.enc, cfg.atomic)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.close(err == nil); err == nil {
			err = cerr
		}
	}()

	w := NewWriter(sink, spec)
	if spec.HasHeader() {
		if err := w.WriteHeader(); err != nil {
			return withPath(err, path)
		}
	}
	return withPath(w.WriteAll(rows), path)
}

// ConvertFile parses the fixed-width file at fwfPath with fwf and writes
// its rows to csvPath with csv. The two specs are cross-checked first; a
// disagreement is a *SpecError and no file is touched. An output path
// that names the input file is a *ValueError.
func ConvertFile(fwf *FixedWidthSpec, csv *DelimitedSpec, fwfPath, csvPath string, policy ShortLinePolicy, opts ...WriteOption) error {
	if err := CheckCompatible(fwf, csv); err != nil {
		return err
	}
	if sameFile(fwfPath, csvPath) {
		return &ValueError{Msg: fmt.Sprintf("%s is both the input and the output", csvPath)}
	}
	if policy == "" {
		policy = Lenient
	}
	dec, err := OpenDecoder(fwfPath, fwf, WithShortLinePolicy(policy))
	if err != nil {
		return err
	}
	defer dec.Close()
	return WriteFile(csv, dec, csvPath, opts...)
}

// sameFile reports whether a and b name the same file, either as
// equal cleaned absolute paths or as links to one existing file.
func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}

// withPath fills in the path of an *IOError raised by a stream that did
// not know it.
func withPath(err error, path string) error {
	var ioErr *IOError
	if errors.As(err, &ioErr) && ioErr.Path == "" {
		ioErr.Path = path
	}
	return err
}
