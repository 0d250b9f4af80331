//go:build go1.18
// +build go1.18

package fwfcsv_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/wallaceicy06/fwfcsv"
)

func FuzzDecode(f *testing.F) {
	spec, err := fwfcsv.NewFixedWidthSpec([]string{"a", "b", "c"}, []int{3, 10, 1}, nil, false, "utf-8")
	if err != nil {
		f.Fatal(err)
	}

	decode := func(data []byte, policy fwfcsv.ShortLinePolicy) ([][]string, error) {
		dec := fwfcsv.NewDecoder(bytes.NewReader(data), spec, fwfcsv.WithShortLinePolicy(policy))
		defer dec.Close()
		var rows [][]string
		for dec.Next() {
			rows = append(rows, dec.Row())
		}
		return rows, dec.Err()
	}

	encode := func(rows [][]string) []byte {
		var sb strings.Builder
		for _, row := range rows {
			for i, col := range spec.Columns() {
				sb.WriteString(row[i])
				sb.WriteString(strings.Repeat(" ", col.Length-utf8.RuneCountInString(row[i])))
			}
			sb.WriteByte('\n')
		}
		return []byte(sb.String())
	}

	f.Add([]byte("\n"))
	f.Add([]byte("foo       x"))
	f.Add([]byte("foobar    x" + "\n" + "foo"))
	f.Add([]byte("føø☃☃☃     y\r\n"))
	f.Add([]byte("  a  b  c  d\n\n"))

	f.Fuzz(func(t *testing.T, b []byte) {
		if !utf8.Valid(b) {
			// re-padding could join stray bytes into new characters
			t.Skip()
		}
		rows, err := decode(b, fwfcsv.Lenient)
		if err != nil {
			t.Fatalf("lenient decode failed: %s", err)
		}
		for _, row := range rows {
			if len(row) != spec.NumColumns() {
				t.Fatalf("row has %d fields, want %d", len(row), spec.NumColumns())
			}
		}

		roundtrip, err := decode(encode(rows), fwfcsv.Strict)
		if err != nil {
			t.Fatalf("failed to decode re-encoded rows: %s", err)
		}
		if !reflect.DeepEqual(rows, roundtrip) {
			t.Fatalf("roundtrip want %q, have %q", rows, roundtrip)
		}
	})
}
