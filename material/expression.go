package material

import (
	"fmt"
	"sync"

	"github.com/gogpu/naga"
)

// Expression is a WGSL material expression compiled lazily on first use.
// The source must be a complete WGSL module exporting the entry point the
// shader system links against.
//
// Resolve compiles through naga exactly once; every later call returns the
// cached result (or the cached error). An Expression is therefore safe to
// assign to any number of material slots.
type Expression struct {
	name   string
	source string

	once     sync.Once
	compiled Compiled
	err      error
}

// Compiled is the bindable result of compiling an Expression: the
// expression name plus the SPIR-V module the shader system consumes.
type Compiled struct {
	// Name is the expression name, used as the material-input label.
	Name string

	// SPIRV is the compiled module as little-endian SPIR-V bytes.
	SPIRV []byte
}

// NewExpression creates a named material expression from WGSL source.
// Compilation is deferred until the expression is first assigned.
func NewExpression(name, source string) *Expression {
	return &Expression{name: name, source: source}
}

// Name returns the expression name.
func (e *Expression) Name() string { return e.name }

// Resolve implements Compilable. The first call compiles the WGSL source
// to SPIR-V; the result is cached for the expression's lifetime.
func (e *Expression) Resolve() (any, error) {
	e.once.Do(func() {
		spirv, err := naga.Compile(e.source)
		if err != nil {
			e.err = fmt.Errorf("material: compile expression %q: %w", e.name, err)
			return
		}
		e.compiled = Compiled{Name: e.name, SPIRV: spirv}
	})
	if e.err != nil {
		return nil, e.err
	}
	return e.compiled, nil
}

// SPIRVWords converts the compiled module to 32-bit SPIR-V words.
// SPIR-V is little-endian; trailing bytes that do not fill a word are
// dropped.
func (c Compiled) SPIRVWords() []uint32 {
	words := make([]uint32, len(c.SPIRV)/4)
	for i := range words {
		words[i] = uint32(c.SPIRV[i*4]) |
			uint32(c.SPIRV[i*4+1])<<8 |
			uint32(c.SPIRV[i*4+2])<<16 |
			uint32(c.SPIRV[i*4+3])<<24
	}
	return words
}
