package fwfcsv

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// A Decoder reads fixed-width lines from an input stream and splits
// them into fields. It is a lazy, single-pass sequence of rows:
//
//	dec := fwfcsv.NewDecoder(r, spec)
//	defer dec.Close()
//	for dec.Next() {
//		row := dec.Row()
//		...
//	}
//	if err := dec.Err(); err != nil {
//		...
//	}
type Decoder struct {
	data     *bufio.Reader
	spec     *FixedWidthSpec
	policy   ShortLinePolicy
	sentinel string
	closer   io.Closer

	line   int // number of source lines read
	row    []string
	done   bool
	closed bool
	err    error
}

// A DecoderOption customizes a Decoder.
type DecoderOption func(*Decoder)

// WithShortLinePolicy sets how lines shorter than the spec width are
// handled. The default is Lenient.
func WithShortLinePolicy(p ShortLinePolicy) DecoderOption {
	return func(d *Decoder) { d.policy = p }
}

// WithSentinel sets the value used under the Lenient policy for a column
// that starts past the end of a short line. The default is the empty
// string.
func WithSentinel(s string) DecoderOption {
	return func(d *Decoder) { d.sentinel = s }
}

// NewDecoder returns a decoder that reads from r, which is expected to
// hold text in the spec's encoding. If r is an io.Closer the decoder
// owns it and closes it once the rows are exhausted or Close is called.
func NewDecoder(r io.Reader, spec *FixedWidthSpec, opts ...DecoderOption) *Decoder {
	d := &Decoder{
		data:     bufio.NewReader(decodeReader(r, spec.enc)),
		spec:     spec,
		policy:   Lenient,
		sentinel: defaultSentinel,
	}
	for _, opt := range opts {
		opt(d)
	}
	if !d.policy.Valid() {
		d.err = &ValueError{Msg: fmt.Sprintf("unknown short line policy %q", d.policy)}
		d.done = true
	}
	if rc, ok := r.(io.Closer); ok {
		d.closer = rc
	}
	return d
}

// Next reads the next data line. The header line, if the spec has one,
// is skipped without being inspected. Next returns false at the end of
// the input or on error; the decoder then releases its input.
func (d *Decoder) Next() bool {
	d.row = nil
	for !d.done {
		line, ok := d.readLine()
		if !ok {
			break
		}
		if d.line == 1 && d.spec.HasHeader() {
			continue
		}
		row, err := d.split(line)
		if err != nil {
			d.err = err
			break
		}
		d.row = row
		return true
	}
	d.done = true
	if err := d.Close(); err != nil && d.err == nil {
		d.err = err
	}
	return false
}

// Row returns the fields of the current line, trimmed of surrounding
// whitespace, one per column in spec order.
func (d *Decoder) Row() []string { return d.row }

// Line returns the 1-based number of the source line the current row
// was read from.
func (d *Decoder) Line() int { return d.line }

// Err returns the error that stopped the decoder, if any.
func (d *Decoder) Err() error { return d.err }

// Close releases the decoder's input if it is closeable. It is safe to
// call Close more than once and before the input is exhausted.
func (d *Decoder) Close() error {
	d.done = true
	if d.closed {
		return nil
	}
	d.closed = true
	if d.closer == nil {
		return nil
	}
	return ioError("close", "", d.closer.Close())
}

// readLine returns the next line without its terminator. ok is false at
// the end of the input or on a read error.
func (d *Decoder) readLine() (line string, ok bool) {
	s, err := d.data.ReadString('\n')
	if err != nil && err != io.EOF {
		var valueErr *ValueError
		if errors.As(err, &valueErr) && valueErr.Line == 0 {
			// undecodable text on the line being read
			valueErr.Line = d.line + 1
		}
		d.err = ioError("read", "", err)
		return "", false
	}
	if err == io.EOF && len(s) == 0 {
		// a trailing newline does not start another line
		return "", false
	}
	d.line++
	s = trimEOL(s)
	return s, true
}

func (d *Decoder) split(s string) ([]string, error) {
	line := newRawLine(s)
	if n := line.len(); n < d.spec.Width() && d.policy == Strict {
		return nil, &ValueError{
			Line: d.line,
			Msg:  fmt.Sprintf("line has %d characters, spec width is %d", n, d.spec.Width()),
		}
	}
	row := make([]string, len(d.spec.columns))
	for i, col := range d.spec.columns {
		if col.Offset >= line.len() {
			row[i] = d.sentinel
			continue
		}
		row[i] = line.field(col.Offset, col.End())
	}
	return row, nil
}

func trimEOL(s string) string {
	n := len(s)
	if n > 0 && s[n-1] == '\n' {
		n--
		if n > 0 && s[n-1] == '\r' {
			n--
		}
	}
	return s[:n]
}
