package fwfcsv

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Records is a lazy, single-pass sequence of synthesized rows. Each row
// holds one generated value per column, in spec order. Records never
// includes a header.
type Records struct {
	spec      *FixedWidthSpec
	gen       FieldGenerator
	remaining int
	row       []string
	line      *lineBuilder
	err       error
}

// GenerateRecords returns a sequence of count synthesized rows for spec.
// Values are drawn from gen, or from DefaultRegistry when gen is nil.
// A count that is not positive yields a *ValueError.
func GenerateRecords(spec *FixedWidthSpec, count int, gen FieldGenerator) (*Records, error) {
	if count <= 0 {
		return nil, &ValueError{Msg: fmt.Sprintf("number of lines should be > 0, got %d", count)}
	}
	if gen == nil {
		gen = DefaultRegistry(nil)
	}
	return &Records{
		spec:      spec,
		gen:       gen,
		remaining: count,
		line:      newLineBuilder(spec.Width()),
	}, nil
}

// Next generates the next row. It returns false once count rows have
// been produced or generation failed; see Err.
func (r *Records) Next() bool {
	if r.err != nil || r.remaining == 0 {
		r.row = nil
		return false
	}
	r.line.Reset()
	row := make([]string, len(r.spec.columns))
	for i, col := range r.spec.columns {
		v, err := r.gen.Generate(col)
		if err != nil {
			r.fail(col, err)
			return false
		}
		if !r.line.WriteValue(v, col.Length) {
			r.err = &ValueError{
				Column: col.Name,
				Msg:    fmt.Sprintf("generated %d characters for a column of length %d", charLen(v), col.Length),
			}
			r.row = nil
			return false
		}
		row[i] = v
	}
	r.remaining--
	r.row = row
	return true
}

// Row returns the current row.
func (r *Records) Row() []string { return r.row }

// Err returns the error that stopped generation, if any.
func (r *Records) Err() error { return r.err }

func (r *Records) fail(col Column, err error) {
	var ve *ValueError
	if errors.As(err, &ve) {
		r.err = err
		if ve.Column == "" {
			// the generator may hand out a shared error value
			named := *ve
			named.Column = col.Name
			r.err = &named
		}
	} else {
		r.err = errors.Wrapf(err, "generating column %s", col.Name)
	}
	r.row = nil
}

// Lines is a lazy, single-pass sequence of fixed-width lines: the header
// line when the spec has one, followed by the synthesized data lines.
type Lines struct {
	records       *Records
	header        string
	headerPending bool
	line          string
}

// Generate returns a sequence of lines for spec holding count data lines,
// preceded by a header line if spec.HasHeader(). Values are drawn from
// gen, or from DefaultRegistry when gen is nil. A count that is not
// positive yields a *ValueError.
func Generate(spec *FixedWidthSpec, count int, gen FieldGenerator) (*Lines, error) {
	records, err := GenerateRecords(spec, count, gen)
	if err != nil {
		return nil, err
	}
	l := &Lines{records: records}
	if spec.HasHeader() {
		l.header = HeaderLine(spec)
		l.headerPending = true
	}
	return l, nil
}

// Next advances to the next line.
func (l *Lines) Next() bool {
	if l.headerPending {
		l.headerPending = false
		l.line = l.header
		return true
	}
	if !l.records.Next() {
		l.line = ""
		return false
	}
	l.line = l.records.line.String()
	return true
}

// Line returns the current line, without a line terminator.
func (l *Lines) Line() string { return l.line }

// Err returns the error that stopped generation, if any.
func (l *Lines) Err() error { return l.records.Err() }

// HeaderLine renders the column names of spec as a fixed-width line.
// Each name is left-justified and padded with spaces to its column
// length; a name longer than its column is truncated.
func HeaderLine(spec *FixedWidthSpec) string {
	b := newLineBuilder(spec.Width())
	for _, col := range spec.columns {
		b.WritePadded(col.Name, col.Length, defaultPadChar)
	}
	return b.String()
}

// An Encoder writes fixed-width lines to an output stream.
type Encoder struct {
	w     *bufio.Writer
	lines int
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		w: bufio.NewWriter(w),
	}
}

// WriteLine writes line followed by a newline. Output is buffered until
// Flush or Encode returns.
func (e *Encoder) WriteLine(line string) error {
	if _, err := e.w.WriteString(line); err != nil {
		return ioError("write", "", err)
	}
	if err := e.w.WriteByte('\n'); err != nil {
		return ioError("write", "", err)
	}
	e.lines++
	return nil
}

// Encode drains lines, writing each one, and flushes the stream.
func (e *Encoder) Encode(lines *Lines) error {
	for lines.Next() {
		if err := e.WriteLine(lines.Line()); err != nil {
			return err
		}
	}
	if err := lines.Err(); err != nil {
		return err
	}
	return e.Flush()
}

// Flush writes any buffered data to the underlying writer.
func (e *Encoder) Flush() error {
	return ioError("write", "", e.w.Flush())
}

// Lines returns the number of lines written so far.
func (e *Encoder) Lines() int { return e.lines }
