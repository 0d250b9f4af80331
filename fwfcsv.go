// Package fwfcsv converts fixed-width formatted files to delimited files
// and synthesizes fixed-width files that conform to a layout.
//
// A layout is loaded from a declarative payload into a FixedWidthSpec
// and a DelimitedSpec. Parsing and synthesis are lazy: lines are read or
// produced one at a time, so files of any size can be processed.
package fwfcsv

// FieldGenerator is the interface implemented by an object that can
// produce a synthetic value for one column of a fixed-width line.
//
// Generate must return a value of exactly column.Length characters. The
// encoder neither pads nor truncates; a value of any other length fails
// the synthesis with a *ValueError.
type FieldGenerator interface {
	Generate(column Column) (string, error)
}

// The FieldGeneratorFunc type is an adapter to allow the use of
// ordinary functions as field generators.
type FieldGeneratorFunc func(column Column) (string, error)

// Generate calls f(column).
func (f FieldGeneratorFunc) Generate(column Column) (string, error) {
	return f(column)
}

// RowIterator is a single-pass sequence of rows. Next advances to the
// next row and reports whether there is one; Row returns its fields
// and Err the error that stopped the iteration, if any.
type RowIterator interface {
	Next() bool
	Row() []string
	Err() error
}
