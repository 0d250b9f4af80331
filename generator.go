package fwfcsv

import (
	"math/rand"
	"sync"
	"time"
)

const (
	lowercaseLetters = "abcdefghijklmnopqrstuvwxyz"
	decimalDigits    = "0123456789"
)

// StringField generates strings of uniformly random lowercase letters.
type StringField struct {
	Rand *rand.Rand // nil uses a time-seeded source
}

// Generate returns column.Length random lowercase letters.
func (f StringField) Generate(column Column) (string, error) {
	return randomString(f.Rand, lowercaseLetters, column.Length), nil
}

// DigitField generates strings of uniformly random decimal digits.
// Leading zeros are kept so the value always fills the column.
type DigitField struct {
	Rand *rand.Rand
}

// Generate returns column.Length random decimal digits.
func (f DigitField) Generate(column Column) (string, error) {
	return randomString(f.Rand, decimalDigits, column.Length), nil
}

// Registry dispatches generation on a column's declared type. The zero
// value is an empty registry; use DefaultRegistry for the built-in
// types.
type Registry struct {
	generators map[string]FieldGenerator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{generators: map[string]FieldGenerator{}}
}

// DefaultRegistry returns a registry that knows StringType only, backed
// by r (nil for a time-seeded source).
func DefaultRegistry(r *rand.Rand) *Registry {
	reg := NewRegistry()
	reg.Register(StringType, StringField{Rand: r})
	return reg
}

// Register installs gen for the declared type typ, replacing any
// previous generator for that type.
func (r *Registry) Register(typ string, gen FieldGenerator) {
	if r.generators == nil {
		r.generators = map[string]FieldGenerator{}
	}
	r.generators[typ] = gen
}

// Has reports whether a generator is registered for typ.
func (r *Registry) Has(typ string) bool {
	_, ok := r.generators[typ]
	return ok
}

// Generate implements FieldGenerator. A column whose declared type is
// not registered yields a *ValueError.
func (r *Registry) Generate(column Column) (string, error) {
	gen, ok := r.generators[column.Type]
	if !ok {
		return "", &ValueError{Column: column.Name, Msg: "unsupported type " + column.Type}
	}
	return gen.Generate(column)
}

var (
	defaultRandMu sync.Mutex
	defaultRand   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// newRand returns a source seeded from the package source.
func newRand() *rand.Rand {
	defaultRandMu.Lock()
	defer defaultRandMu.Unlock()
	return rand.New(rand.NewSource(defaultRand.Int63()))
}

func randomString(r *rand.Rand, alphabet string, n int) string {
	b := make([]byte, n)
	if r == nil {
		defaultRandMu.Lock()
		defer defaultRandMu.Unlock()
		r = defaultRand
	}
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(b)
}
