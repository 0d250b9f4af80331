package fwfcsv

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LookupEncoding returns the text encoding registered under name.
//
// ASCII names ("ascii", "us-ascii", ...) resolve to a strict 7-bit
// encoding that rejects any other byte. Other WHATWG labels ("utf-8",
// "latin1", "windows-1252", ...) are tried next, then IANA names.
// Matching is case-insensitive. An unknown or unsupported name yields a
// *SpecError.
func LookupEncoding(name string) (encoding.Encoding, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return nil, specErrorf("", "encoding name is empty")
	}
	if asciiNames[strings.ToLower(n)] {
		return asciiEncoding{}, nil
	}
	if enc, err := htmlindex.Get(n); err == nil {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(n)
	if err != nil {
		return nil, &SpecError{Msg: "unrecognized encoding " + name, Cause: errors.WithStack(err)}
	}
	if enc == nil {
		// a registered IANA name without an implementation
		return nil, specErrorf("", "unsupported encoding %s", name)
	}
	return enc, nil
}

func isUTF8(enc encoding.Encoding) bool {
	return enc == unicode.UTF8 || enc == encoding.Nop
}

// decodeReader transcodes r from enc to UTF-8.
func decodeReader(r io.Reader, enc encoding.Encoding) io.Reader {
	if isUTF8(enc) {
		return r
	}
	return enc.NewDecoder().Reader(r)
}

// encodeWriter transcodes UTF-8 written to the result into enc. Close
// flushes any pending partial sequence but does not close w.
func encodeWriter(w io.Writer, enc encoding.Encoding) io.WriteCloser {
	if isUTF8(enc) {
		return nopWriteCloser{w}
	}
	return transform.NewWriter(w, enc.NewEncoder())
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

var asciiNames = map[string]bool{
	"ascii":            true,
	"us-ascii":         true,
	"ansi_x3.4-1968":   true,
	"ansi_x3.4-1986":   true,
	"iso646-us":        true,
	"iso-ir-6":         true,
	"iso_646.irv:1991": true,
	"cp367":            true,
	"ibm367":           true,
	"us":               true,
	"646":              true,
	"csascii":          true,
}

// asciiEncoding is 7-bit ASCII. Since ASCII is a subset of UTF-8, both
// directions copy bytes through and fail on the first byte >= 0x80.
type asciiEncoding struct{}

func (asciiEncoding) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: asciiTransformer{}}
}

func (asciiEncoding) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: asciiTransformer{encode: true}}
}

func (asciiEncoding) String() string { return "ASCII" }

type asciiTransformer struct {
	transform.NopResetter
	encode bool
}

func (t asciiTransformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		if c >= utf8.RuneSelf {
			return nDst, nSrc, t.invalid(src[nSrc:], atEOF)
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = c
		nDst++
		nSrc++
	}
	return nDst, nSrc, nil
}

func (t asciiTransformer) invalid(src []byte, atEOF bool) error {
	if !t.encode {
		return &ValueError{Msg: fmt.Sprintf("byte %#x is not ASCII", src[0])}
	}
	if !atEOF && !utf8.FullRune(src) {
		return transform.ErrShortSrc
	}
	r, _ := utf8.DecodeRune(src)
	return &ValueError{Msg: fmt.Sprintf("character %q is not ASCII", r)}
}
