package fwfcsv

import (
	"bufio"
	"io"
	"strings"
)

// Writer renders rows as delimited text according to a DelimitedSpec.
// Fields holding the delimiter, the quote character, CR or LF are quoted
// and embedded quote characters are doubled. The first error is sticky.
type Writer struct {
	dst  *bufio.Writer
	spec *DelimitedSpec
	rows int
	err  error
}

// NewWriter returns a writer that renders rows to w. Text is written as
// UTF-8; transcoding to the spec encoding is the caller's concern (see
// WriteFile).
func NewWriter(w io.Writer, spec *DelimitedSpec) *Writer {
	return &Writer{
		dst:  bufio.NewWriter(w),
		spec: spec,
	}
}

// WriteHeader writes the spec's column names as a row.
func (w *Writer) WriteHeader() error {
	return w.Write(w.spec.columnNames)
}

// Write emits a single record terminated with a newline, or CRLF if the
// spec asks for it. A record of one empty field is written as an empty
// quoted field so that it does not read back as a blank line.
func (w *Writer) Write(record []string) error {
	if w.err != nil {
		return w.err
	}
	if len(record) == 1 && record[0] == "" {
		q := string(w.spec.quote)
		if _, err := w.dst.WriteString(q + q); err != nil {
			return w.fail(err)
		}
		return w.endRow()
	}
	for i := range record {
		if i > 0 {
			if _, err := w.dst.WriteRune(w.spec.delimiter); err != nil {
				return w.fail(err)
			}
		}
		if err := w.writeField(record[i]); err != nil {
			return w.fail(err)
		}
	}
	return w.endRow()
}

func (w *Writer) endRow() error {
	var err error
	if w.spec.useCRLF {
		_, err = w.dst.WriteString("\r\n")
	} else {
		err = w.dst.WriteByte('\n')
	}
	if err != nil {
		return w.fail(err)
	}
	w.rows++
	return nil
}

// WriteAll drains rows, writing each one, and flushes the output. It
// stops at the first error, whether from rows or from the destination.
func (w *Writer) WriteAll(rows RowIterator) error {
	for rows.Next() {
		if err := w.Write(rows.Row()); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return w.Flush()
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		return w.fail(err)
	}
	return nil
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error { return w.err }

// Rows returns the number of records written, header included.
func (w *Writer) Rows() int { return w.rows }

func (w *Writer) fail(err error) error {
	w.err = ioError("write", "", err)
	return w.err
}

func (w *Writer) writeField(field string) error {
	if !w.fieldNeedsQuote(field) {
		_, err := w.dst.WriteString(field)
		return err
	}
	q := string(w.spec.quote)
	if _, err := w.dst.WriteString(q); err != nil {
		return err
	}
	if _, err := w.dst.WriteString(strings.ReplaceAll(field, q, q+q)); err != nil {
		return err
	}
	_, err := w.dst.WriteString(q)
	return err
}

func (w *Writer) fieldNeedsQuote(field string) bool {
	return strings.ContainsAny(field, "\r\n") ||
		strings.ContainsRune(field, w.spec.delimiter) ||
		strings.ContainsRune(field, w.spec.quote)
}
