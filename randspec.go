package fwfcsv

import (
	"fmt"
	"math/rand"
)

// randomSpecEncodings are the encodings a random payload picks from.
var randomSpecEncodings = []string{"utf-8", "windows-1252", "ascii"}

// RandomPayload returns a payload describing numColumns string columns
// named f1, f2, ... with lengths between 1 and 20, a random header flag
// and random encodings. It is handy for exercising the codec.
func RandomPayload(numColumns int, r *rand.Rand) (*Payload, error) {
	if numColumns <= 0 {
		return nil, &ValueError{Msg: fmt.Sprintf("number of columns should be > 0, got %d", numColumns)}
	}
	if r == nil {
		r = newRand()
	}
	p := &Payload{
		ColumnNames:        make([]string, numColumns),
		Offsets:            make([]int, numColumns),
		FixedWidthEncoding: randomSpecEncodings[r.Intn(len(randomSpecEncodings))],
		IncludeHeader:      r.Intn(2) == 1,
		DelimitedEncoding:  randomSpecEncodings[r.Intn(len(randomSpecEncodings))],
	}
	for i := 0; i < numColumns; i++ {
		p.ColumnNames[i] = fmt.Sprintf("f%d", i+1)
		p.Offsets[i] = 1 + r.Intn(20)
	}
	return p, nil
}
