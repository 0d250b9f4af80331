package fwfcsv

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// PayloadFormat is the serialization of a layout payload.
type PayloadFormat int

const (
	// FormatJSON is a JSON object.
	FormatJSON PayloadFormat = iota
	// FormatYAML is a YAML mapping with the same keys.
	FormatYAML
)

// FormatForPath returns FormatYAML for ".yaml" and ".yml" paths and
// FormatJSON otherwise.
func FormatForPath(path string) PayloadFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Payload is the declarative description of a layout, shared by the
// fixed-width and the delimited views of a file.
//
// Offsets holds column lengths, not absolute offsets: offsets are
// always derived from the lengths.
type Payload struct {
	ColumnNames        []string `json:"ColumnNames" yaml:"ColumnNames"`
	Offsets            []int    `json:"Offsets" yaml:"Offsets"`
	Types              []string `json:"Types,omitempty" yaml:"Types,omitempty"`
	FixedWidthEncoding string   `json:"FixedWidthEncoding" yaml:"FixedWidthEncoding"`
	IncludeHeader      bool     `json:"IncludeHeader" yaml:"IncludeHeader"`
	DelimitedEncoding  string   `json:"DelimitedEncoding" yaml:"DelimitedEncoding"`
	Delimiter          string   `json:"Delimiter,omitempty" yaml:"Delimiter,omitempty"`
	QuoteChar          string   `json:"QuoteChar,omitempty" yaml:"QuoteChar,omitempty"`
	UseCRLF            bool     `json:"UseCRLF,omitempty" yaml:"UseCRLF,omitempty"`
}

// LoadPayload reads and parses the payload file at path. The format is
// chosen with FormatForPath.
func LoadPayload(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioError("read", path, err)
	}
	return ParsePayload(data, FormatForPath(path))
}

// ParsePayload parses a payload. Values of the wrong shape are reported
// together in a single *SpecError.
func ParsePayload(data []byte, format PayloadFormat) (*Payload, error) {
	switch format {
	case FormatYAML:
		return parseYAMLPayload(data)
	default:
		return parseJSONPayload(data)
	}
}

func parseYAMLPayload(data []byte) (*Payload, error) {
	var p Payload
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, &SpecError{Msg: "malformed YAML payload", Cause: errors.WithStack(err)}
	}
	return &p, nil
}

func parseJSONPayload(data []byte) (*Payload, error) {
	if !gjson.ValidBytes(data) {
		return nil, specErrorf("", "malformed JSON payload")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, specErrorf("", "payload is not an object")
	}

	var (
		p      Payload
		result *multierror.Error
	)
	appendErr := func(err error) {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	p.ColumnNames = jsonStrings(doc, "ColumnNames", true, appendErr)
	p.Offsets = jsonInts(doc, "Offsets", appendErr)
	p.Types = jsonStrings(doc, "Types", false, appendErr)
	p.FixedWidthEncoding = jsonString(doc, "FixedWidthEncoding", appendErr)
	p.DelimitedEncoding = jsonString(doc, "DelimitedEncoding", appendErr)
	p.Delimiter = jsonString(doc, "Delimiter", appendErr)
	p.QuoteChar = jsonString(doc, "QuoteChar", appendErr)
	p.IncludeHeader = jsonBool(doc, "IncludeHeader", appendErr)
	p.UseCRLF = jsonBool(doc, "UseCRLF", appendErr)
	if err := result.ErrorOrNil(); err != nil {
		return nil, &SpecError{Msg: "malformed payload", Cause: err}
	}
	return &p, nil
}

func jsonString(doc gjson.Result, field string, appendErr func(error)) string {
	v := doc.Get(field)
	if !v.Exists() || v.Type == gjson.Null {
		return ""
	}
	if v.Type != gjson.String {
		appendErr(specErrorf(field, "expected a string, got %s", v.Raw))
		return ""
	}
	return v.String()
}

func jsonBool(doc gjson.Result, field string, appendErr func(error)) bool {
	v := doc.Get(field)
	switch v.Type {
	case gjson.True, gjson.False:
		return v.Bool()
	case gjson.Null:
		// missing or null
		return false
	default:
		appendErr(specErrorf(field, "expected a boolean, got %s", v.Raw))
		return false
	}
}

func jsonStrings(doc gjson.Result, field string, required bool, appendErr func(error)) []string {
	v := doc.Get(field)
	if !v.Exists() || v.Type == gjson.Null {
		if required {
			appendErr(specErrorf(field, "missing"))
		}
		return nil
	}
	if !v.IsArray() {
		appendErr(specErrorf(field, "expected a list of strings, got %s", v.Raw))
		return nil
	}
	items := v.Array()
	out := make([]string, len(items))
	for i, item := range items {
		if item.Type != gjson.String {
			appendErr(specErrorf(field, "item %d: expected a string, got %s", i, item.Raw))
			continue
		}
		out[i] = item.String()
	}
	return out
}

func jsonInts(doc gjson.Result, field string, appendErr func(error)) []int {
	v := doc.Get(field)
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	if !v.IsArray() {
		appendErr(specErrorf(field, "expected a list of integers, got %s", v.Raw))
		return nil
	}
	items := v.Array()
	out := make([]int, len(items))
	for i, item := range items {
		if item.Type != gjson.Number || item.Float() != float64(item.Int()) {
			appendErr(specErrorf(field, "item %d: expected an integer, got %s", i, item.Raw))
			continue
		}
		out[i] = int(item.Int())
	}
	return out
}

// FixedWidthSpec builds the fixed-width view of the payload.
func (p *Payload) FixedWidthSpec() (*FixedWidthSpec, error) {
	return NewFixedWidthSpec(p.ColumnNames, p.Offsets, p.Types, p.IncludeHeader, p.FixedWidthEncoding)
}

// DelimitedSpec builds the delimited view of the payload.
func (p *Payload) DelimitedSpec() (*DelimitedSpec, error) {
	var opts []DelimitedOption
	if p.Delimiter != "" {
		r, err := singleChar("Delimiter", p.Delimiter)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithDelimiter(r))
	}
	if p.QuoteChar != "" {
		r, err := singleChar("QuoteChar", p.QuoteChar)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithQuote(r))
	}
	if p.UseCRLF {
		opts = append(opts, WithCRLF())
	}
	return NewDelimitedSpec(p.ColumnNames, p.IncludeHeader, p.DelimitedEncoding, opts...)
}

// LoadFixedWidthSpec loads the fixed-width view of the payload at path.
func LoadFixedWidthSpec(path string) (*FixedWidthSpec, error) {
	p, err := LoadPayload(path)
	if err != nil {
		return nil, err
	}
	return p.FixedWidthSpec()
}

// LoadDelimitedSpec loads the delimited view of the payload at path.
func LoadDelimitedSpec(path string) (*DelimitedSpec, error) {
	p, err := LoadPayload(path)
	if err != nil {
		return nil, err
	}
	return p.DelimitedSpec()
}

func singleChar(field, s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError {
		return 0, specErrorf(field, "expected a single character, got %q", s)
	}
	return r, nil
}
