package fwfcsv

// ShortLinePolicy decides how the decoder treats a line that is shorter
// than the width of its spec.
type ShortLinePolicy string

const (
	// Lenient reads the missing characters as the sentinel value, so a
	// column that lies wholly or partly past the end of the line yields
	// an empty or short field.
	Lenient ShortLinePolicy = "lenient"
	// Strict fails the parse with a *ValueError on the first short line.
	Strict ShortLinePolicy = "strict"
)

const (
	defaultPadChar = ' '
	// defaultSentinel is the value of the missing characters of a short
	// line under the Lenient policy. Fields are trimmed, so it reads as
	// empty.
	defaultSentinel = ""
)

// Valid reports whether p is a known policy.
func (p ShortLinePolicy) Valid() bool {
	switch p {
	case Lenient, Strict:
		return true
	default:
		return false
	}
}
