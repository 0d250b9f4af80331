package fwfcsv

import (
	"strings"
	"unicode/utf8"
)

// lineBuilder is a multibyte character aware buffer that can be used to
// efficiently build a line of fixed width text, one column at a time.
type lineBuilder struct {
	data []byte

	// width is the number of characters written so far. It differs from
	// len(data) only once a multibyte character has been written.
	width int
}

// newLineBuilder makes a new lineBuilder with room for a line of the
// given width in characters.
func newLineBuilder(width int) *lineBuilder {
	return &lineBuilder{
		data: make([]byte, 0, width),
	}
}

// Reset empties the builder, keeping its storage.
func (b *lineBuilder) Reset() {
	b.data = b.data[:0]
	b.width = 0
}

// WriteValue appends value as a column of the given length. It reports
// false, and writes nothing, if value is not exactly length characters.
func (b *lineBuilder) WriteValue(value string, length int) bool {
	n := charLen(value)
	if n != length {
		return false
	}
	b.data = append(b.data, value...)
	b.width += n
	return true
}

// WritePadded appends value left-justified in a column of the given
// length. Shorter values are padded on the right with padChar, longer
// values are truncated on the right.
func (b *lineBuilder) WritePadded(value string, length int, padChar byte) {
	n := 0
	for i := range value {
		if n == length {
			value = value[:i]
			break
		}
		n++
	}
	b.data = append(b.data, value...)
	for ; n < length; n++ {
		b.data = append(b.data, padChar)
	}
	b.width += length
}

// Width returns the number of characters in the line.
func (b *lineBuilder) Width() int {
	return b.width
}

func (b *lineBuilder) String() string {
	return string(b.data)
}

// rawLine is a line of fixed width text that can be sliced by character
// position.
type rawLine struct {
	data string

	// A mapping of codepoint indices into the bytes, so codepointIndices[n]
	// is the starting byte of the n-th codepoint in data. It is nil when
	// the line holds no multibyte character, in which case character and
	// byte positions coincide.
	codepointIndices []int
}

func newRawLine(data string) rawLine {
	line := rawLine{
		data: data,
	}
	bytesIdx := findFirstMultiByteChar(data)
	// If we've got multi-byte characters, fill in the rest of codepointIndices.
	if bytesIdx < len(data) {
		codepointIndices := make([]int, bytesIdx, len(data))
		for i := 0; i < bytesIdx; i++ {
			codepointIndices[i] = i
		}
		for bytesIdx < len(data) {
			_, codepointSize := utf8.DecodeRuneInString(data[bytesIdx:])
			codepointIndices = append(codepointIndices, bytesIdx)
			bytesIdx += codepointSize
		}
		line.codepointIndices = codepointIndices
	}
	return line
}

// len returns the length of the line in characters.
func (l rawLine) len() int {
	if l.codepointIndices == nil {
		return len(l.data)
	}
	return len(l.codepointIndices)
}

func (l rawLine) byteIndex(pos int) int {
	if l.codepointIndices == nil {
		return pos
	}
	if pos >= len(l.codepointIndices) {
		return len(l.data)
	}
	return l.codepointIndices[pos]
}

// field returns the characters in [start, end) with surrounding
// whitespace removed. Positions past the end of the line are clipped,
// so a short line yields a short or empty value.
func (l rawLine) field(start, end int) string {
	n := l.len()
	if start >= n {
		return ""
	}
	if end > n {
		end = n
	}
	return strings.TrimSpace(l.data[l.byteIndex(start):l.byteIndex(end)])
}

// Scans bytes, looking for multi-byte characters, returns either the index of
// the first multi-byte character or the length of the string if there are none.
func findFirstMultiByteChar(data string) int {
	for i := 0; i < len(data); i++ {
		if data[i]&0x80 == 0x80 {
			return i
		}
	}
	return len(data)
}

// charLen returns the number of characters in s.
func charLen(s string) int {
	if findFirstMultiByteChar(s) == len(s) {
		return len(s)
	}
	return utf8.RuneCountInString(s)
}
