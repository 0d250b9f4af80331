package fwfcsv

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleGenerate() {
	spec, err := NewFixedWidthSpec([]string{"id", "name"}, []int{3, 5}, nil, true, "utf-8")
	if err != nil {
		panic(err)
	}

	xs := FieldGeneratorFunc(func(c Column) (string, error) {
		return strings.Repeat("x", c.Length), nil
	})
	lines, err := Generate(spec, 2, xs)
	if err != nil {
		panic(err)
	}
	for lines.Next() {
		fmt.Printf("%q\n", lines.Line())
	}
	fmt.Println(lines.Err())
	// Output:
	// "id name "
	// "xxxxxxxx"
	// "xxxxxxxx"
	// <nil>
}

func TestGenerate(t *testing.T) {
	spec := mustSpec(t, []string{"id", "name"}, []int{3, 5}, true)
	lines, err := Generate(spec, 2, DefaultRegistry(rand.New(rand.NewSource(1))))
	require.NoError(t, err)

	var got []string
	for lines.Next() {
		got = append(got, lines.Line())
	}
	require.NoError(t, lines.Err())
	require.Len(t, got, 3)
	assert.Equal(t, "id name ", got[0])
	for _, line := range got[1:] {
		require.Len(t, line, 8)
		assert.Equal(t, "", strings.Trim(line, lowercaseLetters), "line %q holds only lowercase letters", line)
	}

	assert.False(t, lines.Next(), "the sequence is single pass")
}

func TestGenerate_NoHeader(t *testing.T) {
	spec := mustSpec(t, []string{"id", "name", "age", "city"}, []int{5, 20, 3, 15}, false)
	lines, err := Generate(spec, 5, nil)
	require.NoError(t, err)

	n := 0
	for lines.Next() {
		n++
		assert.Len(t, lines.Line(), 43)
		assert.False(t, strings.HasPrefix(lines.Line(), "id   name"))
	}
	require.NoError(t, lines.Err())
	assert.Equal(t, 5, n)
}

func TestGenerate_InvalidCount(t *testing.T) {
	spec := mustSpec(t, []string{"id"}, []int{3}, false)
	for _, count := range []int{0, -1} {
		t.Run(fmt.Sprint(count), func(t *testing.T) {
			lines, err := Generate(spec, count, nil)
			assert.Nil(t, lines)
			var valueErr *ValueError
			require.True(t, errors.As(err, &valueErr), "want *ValueError, have %v", err)

			records, err := GenerateRecords(spec, count, nil)
			assert.Nil(t, records)
			require.True(t, errors.As(err, &valueErr), "want *ValueError, have %v", err)
		})
	}
}

func TestGenerate_UnsupportedType(t *testing.T) {
	spec, err := NewFixedWidthSpec([]string{"id", "amount"}, []int{3, 4}, []string{"str", "decimal"}, true, "utf-8")
	require.NoError(t, err, "declared types are not checked when the spec is built")

	lines, err := Generate(spec, 3, nil)
	require.NoError(t, err)

	require.True(t, lines.Next(), "the header does not need a generator")
	assert.False(t, lines.Next())

	var valueErr *ValueError
	require.True(t, errors.As(lines.Err(), &valueErr), "want *ValueError, have %v", lines.Err())
	assert.Equal(t, "amount", valueErr.Column)
	assert.Contains(t, valueErr.Error(), "unsupported type decimal")
}

func TestGenerate_WrongLength(t *testing.T) {
	spec := mustSpec(t, []string{"id", "name"}, []int{3, 5}, false)
	for _, tt := range []struct {
		name  string
		value string
	}{
		{"too short", "ab"},
		{"too long", "abcdef"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			records, err := GenerateRecords(spec, 1, fixedField(tt.value))
			require.NoError(t, err)
			assert.False(t, records.Next())
			assert.Nil(t, records.Row())

			var valueErr *ValueError
			require.True(t, errors.As(records.Err(), &valueErr), "want *ValueError, have %v", records.Err())
			assert.Equal(t, "id", valueErr.Column)
		})
	}
}

func TestGenerate_GeneratorError(t *testing.T) {
	spec := mustSpec(t, []string{"id"}, []int{3}, false)
	boom := errors.New("boom")
	records, err := GenerateRecords(spec, 1, FieldGeneratorFunc(func(Column) (string, error) {
		return "", boom
	}))
	require.NoError(t, err)
	assert.False(t, records.Next())
	assert.True(t, errors.Is(records.Err(), boom))
	assert.Contains(t, records.Err().Error(), "generating column id")
}

var errNoValue = &ValueError{Msg: "no value"}

func TestGenerate_SharedValueError(t *testing.T) {
	spec := mustSpec(t, []string{"id"}, []int{3}, false)
	records, err := GenerateRecords(spec, 1, FieldGeneratorFunc(func(Column) (string, error) {
		return "", errNoValue
	}))
	require.NoError(t, err)
	assert.False(t, records.Next())

	var valueErr *ValueError
	require.True(t, errors.As(records.Err(), &valueErr), "want *ValueError, have %v", records.Err())
	assert.Equal(t, "id", valueErr.Column)
	assert.Equal(t, "no value", valueErr.Msg)
	assert.Empty(t, errNoValue.Column, "the generator's error is left untouched")
}

func TestGenerateRecords(t *testing.T) {
	spec := mustSpec(t, []string{"id", "name"}, []int{3, 5}, true)
	records, err := GenerateRecords(spec, 4, nil)
	require.NoError(t, err)

	n := 0
	for records.Next() {
		n++
		row := records.Row()
		require.Len(t, row, 2)
		assert.Len(t, row[0], 3)
		assert.Len(t, row[1], 5)
	}
	require.NoError(t, records.Err())
	assert.Equal(t, 4, n, "records never include the header")
}

func TestHeaderLine(t *testing.T) {
	for _, tt := range []struct {
		name    string
		names   []string
		lengths []int
		expect  string
	}{
		{"padded", []string{"id", "name"}, []int{3, 5}, "id name "},
		{"exact", []string{"id", "name"}, []int{2, 4}, "idname"},
		{"truncated", []string{"identifier", "x"}, []int{4, 2}, "idenx "},
		{"advanced", []string{"id", "name", "age", "city"}, []int{5, 20, 3, 15}, "id   name                agecity           "},
	} {
		t.Run(tt.name, func(t *testing.T) {
			spec := mustSpec(t, tt.names, tt.lengths, true)
			header := HeaderLine(spec)
			assert.Equal(t, tt.expect, header)
			assert.Len(t, header, spec.Width())

			// split at the same offsets, the header gives back the names
			line := newRawLine(header)
			for _, col := range spec.Columns() {
				assert.Equal(t, header[col.Offset:col.End()], fmt.Sprintf("%-*.*s", col.Length, col.Length, col.Name))
				assert.True(t, strings.HasPrefix(col.Name, line.field(col.Offset, col.End())))
			}
		})
	}
}

func TestEncoder(t *testing.T) {
	spec := mustSpec(t, []string{"id", "name"}, []int{3, 5}, true)
	lines, err := Generate(spec, 2, fixedField("abc"))
	require.NoError(t, err)

	// "abc" fits id but not name
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	err = enc.Encode(lines)
	var valueErr *ValueError
	require.True(t, errors.As(err, &valueErr), "want *ValueError, have %v", err)
	assert.Equal(t, "name", valueErr.Column)
	assert.Equal(t, 1, enc.Lines())

	lines, err = Generate(spec, 2, FieldGeneratorFunc(func(c Column) (string, error) {
		return strings.Repeat("z", c.Length), nil
	}))
	require.NoError(t, err)
	buf.Reset()
	enc = NewEncoder(&buf)
	require.NoError(t, enc.Encode(lines))
	assert.Equal(t, "id name \nzzzzzzzz\nzzzzzzzz\n", buf.String())
	assert.Equal(t, 3, enc.Lines())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEncoder_WriteError(t *testing.T) {
	spec := mustSpec(t, []string{"id"}, []int{3}, false)
	lines, err := Generate(spec, 1, nil)
	require.NoError(t, err)

	err = NewEncoder(failingWriter{}).Encode(lines)
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr), "want *IOError, have %v", err)
	assert.Equal(t, "write", ioErr.Op)
}
