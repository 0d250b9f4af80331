package fwfcsv

import (
	"github.com/hashicorp/go-multierror"
	"golang.org/x/text/encoding"
)

// StringType is the declared type of columns filled with random
// lowercase letters during synthesis. It is the default type.
const StringType = "str"

// A Column is one field of a fixed-width line. Offset is derived from
// the lengths of the columns that precede it and is never supplied
// directly.
type Column struct {
	Name   string
	Offset int
	Length int
	Type   string
}

// End returns the offset one past the column's last character.
func (c Column) End() int {
	return c.Offset + c.Length
}

// FixedWidthSpec describes the layout of a fixed-width file. It is
// immutable once constructed.
type FixedWidthSpec struct {
	columns   []Column
	width     int
	hasHeader bool
	encName   string
	enc       encoding.Encoding
}

// NewFixedWidthSpec builds a FixedWidthSpec from ordered column names
// and lengths. types may be nil, in which case every column is a
// StringType column; otherwise it must have one entry per column.
//
// The encoding is validated before anything else. Any inconsistency
// is reported as a *SpecError and no spec is returned.
func NewFixedWidthSpec(names []string, lengths []int, types []string, hasHeader bool, encodingName string) (*FixedWidthSpec, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, withField(err, "FixedWidthEncoding")
	}
	if len(names) != len(lengths) {
		return nil, specErrorf("Offsets", "%d lengths declared for %d column names", len(lengths), len(names))
	}
	if types != nil && len(types) != len(names) {
		return nil, specErrorf("Types", "%d types declared for %d column names", len(types), len(names))
	}
	if err := validateColumns(names, lengths); err != nil {
		return nil, err
	}

	offsets := DeriveOffsets(lengths)
	spec := &FixedWidthSpec{
		columns:   make([]Column, len(names)),
		hasHeader: hasHeader,
		encName:   encodingName,
		enc:       enc,
	}
	for i := range names {
		typ := StringType
		if types != nil && types[i] != "" {
			typ = types[i]
		}
		spec.columns[i] = Column{Name: names[i], Offset: offsets[i], Length: lengths[i], Type: typ}
		spec.width += lengths[i]
	}
	return spec, nil
}

// DeriveOffsets returns the exclusive prefix sum of lengths: the first
// offset is 0 and every following offset is the previous offset plus
// the previous length.
func DeriveOffsets(lengths []int) []int {
	offsets := make([]int, len(lengths))
	for i := 1; i < len(lengths); i++ {
		offsets[i] = offsets[i-1] + lengths[i-1]
	}
	return offsets
}

// Columns returns a copy of the spec's columns in line order.
func (s *FixedWidthSpec) Columns() []Column {
	return append([]Column(nil), s.columns...)
}

// ColumnNames returns the column names in line order.
func (s *FixedWidthSpec) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// NumColumns returns the number of columns.
func (s *FixedWidthSpec) NumColumns() int { return len(s.columns) }

// Width returns the line width in characters, the sum of all lengths.
func (s *FixedWidthSpec) Width() int { return s.width }

// HasHeader reports whether the first line of the file is a header.
func (s *FixedWidthSpec) HasHeader() bool { return s.hasHeader }

// Encoding returns the encoding name the spec was built with.
func (s *FixedWidthSpec) Encoding() string { return s.encName }

// DelimitedSpec describes the layout of a delimited output file.
type DelimitedSpec struct {
	columnNames []string
	hasHeader   bool
	encName     string
	enc         encoding.Encoding
	delimiter   rune
	quote       rune
	useCRLF     bool
}

// A DelimitedOption customizes a DelimitedSpec.
type DelimitedOption func(*DelimitedSpec)

// WithDelimiter sets the field delimiter. The default is ','.
func WithDelimiter(r rune) DelimitedOption {
	return func(s *DelimitedSpec) { s.delimiter = r }
}

// WithQuote sets the quote character. The default is '"'.
func WithQuote(r rune) DelimitedOption {
	return func(s *DelimitedSpec) { s.quote = r }
}

// WithCRLF ends rows with "\r\n" instead of "\n".
func WithCRLF() DelimitedOption {
	return func(s *DelimitedSpec) { s.useCRLF = true }
}

// NewDelimitedSpec builds a DelimitedSpec. The delimiter and quote
// must be distinct single characters other than CR and LF.
func NewDelimitedSpec(names []string, hasHeader bool, encodingName string, opts ...DelimitedOption) (*DelimitedSpec, error) {
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, withField(err, "DelimitedEncoding")
	}
	spec := &DelimitedSpec{
		columnNames: append([]string(nil), names...),
		hasHeader:   hasHeader,
		encName:     encodingName,
		enc:         enc,
		delimiter:   ',',
		quote:       '"',
	}
	for _, opt := range opts {
		opt(spec)
	}

	var result *multierror.Error
	if len(names) == 0 {
		result = multierror.Append(result, specErrorf("ColumnNames", "no columns declared"))
	}
	if !validSeparator(spec.delimiter) {
		result = multierror.Append(result, specErrorf("Delimiter", "invalid delimiter %q", spec.delimiter))
	}
	if !validSeparator(spec.quote) {
		result = multierror.Append(result, specErrorf("QuoteChar", "invalid quote character %q", spec.quote))
	}
	if spec.delimiter == spec.quote {
		result = multierror.Append(result, specErrorf("QuoteChar", "quote character equals delimiter %q", spec.quote))
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, &SpecError{Msg: "invalid delimited layout", Cause: err}
	}
	return spec, nil
}

// ColumnNames returns a copy of the header column names.
func (s *DelimitedSpec) ColumnNames() []string {
	return append([]string(nil), s.columnNames...)
}

// HasHeader reports whether a header row is written.
func (s *DelimitedSpec) HasHeader() bool { return s.hasHeader }

// Encoding returns the encoding name the spec was built with.
func (s *DelimitedSpec) Encoding() string { return s.encName }

// Delimiter returns the field delimiter.
func (s *DelimitedSpec) Delimiter() rune { return s.delimiter }

// Quote returns the quote character.
func (s *DelimitedSpec) Quote() rune { return s.quote }

// UseCRLF reports whether rows end with "\r\n".
func (s *DelimitedSpec) UseCRLF() bool { return s.useCRLF }

// CheckCompatible verifies that a parse of fwf can be written with
// csv: both must describe the same columns in the same order. The two
// specs are validated independently, so callers run this before a
// parse-then-write pipeline.
func CheckCompatible(fwf *FixedWidthSpec, csv *DelimitedSpec) error {
	var result *multierror.Error
	if fwf.NumColumns() != len(csv.columnNames) {
		result = multierror.Append(result, specErrorf("ColumnNames", "fixed-width spec has %d columns, delimited spec has %d", fwf.NumColumns(), len(csv.columnNames)))
	} else {
		for i, c := range fwf.columns {
			if c.Name != csv.columnNames[i] {
				result = multierror.Append(result, specErrorf("ColumnNames", "column %d is %q in the fixed-width spec and %q in the delimited spec", i, c.Name, csv.columnNames[i]))
			}
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return &SpecError{Msg: "specs disagree", Cause: err}
	}
	return nil
}

func validateColumns(names []string, lengths []int) error {
	var result *multierror.Error
	if len(names) == 0 {
		result = multierror.Append(result, specErrorf("ColumnNames", "no columns declared"))
	}
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		if name == "" {
			result = multierror.Append(result, specErrorf("ColumnNames", "column %d has an empty name", i))
		} else if seen[name] {
			result = multierror.Append(result, specErrorf("ColumnNames", "duplicate column name %q", name))
		}
		seen[name] = true
		if lengths[i] <= 0 {
			result = multierror.Append(result, specErrorf("Offsets", "column %q has non-positive length %d", name, lengths[i]))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return &SpecError{Msg: "invalid columns", Cause: err}
	}
	return nil
}

func validSeparator(r rune) bool {
	return r != 0 && r != '\r' && r != '\n' && r != 0xFFFD
}

func withField(err error, field string) error {
	if se, ok := err.(*SpecError); ok && se.Field == "" {
		se.Field = field
	}
	return err
}
