// Package functions provides the built-in template functions and the
// registry that resolves function names at parse time.
package functions

import (
	"fmt"

	"github.com/stuartgen/stuart/errortypes"
	"github.com/stuartgen/stuart/parse"
)

// Parser builds an executable function handle from a raw function.  A parser
// validates arity and argument kinds; the returned handle is immutable and
// shared across renders.
type Parser interface {
	// Name returns the function name this parser handles.  It must equal the
	// Name of every handle it returns.
	Name() string

	// Parse validates the raw function and builds its handle.
	Parse(raw parse.RawFunction) (parse.Function, error)
}

// Registry is a flat collection of function parsers, the built-ins plus any
// registered by plugins.
type Registry struct {
	parsers []Parser
}

// NewRegistry returns a registry holding the built-in functions.
func NewRegistry() *Registry {
	return &Registry{parsers: []Parser{
		beginParser{},
		dateFormatParser{},
		endParser{},
		excerptParser{},
		forParser{},
		ifDefinedParser{},
		importParser{},
		insertParser{},
		timeToReadParser{},
		elseParser{},
		ifParser{"ifeq", opEq},
		ifParser{"ifne", opNe},
		ifParser{"ifgt", opGt},
		ifParser{"ifge", opGe},
		ifParser{"iflt", opLt},
		ifParser{"ifle", opLe},
	}}
}

// Register adds a parser.  Name collisions are a programming error.
func (r *Registry) Register(p Parser) error {
	for _, existing := range r.parsers {
		if existing.Name() == p.Name() {
			return fmt.Errorf("function %q is already registered", p.Name())
		}
	}
	r.parsers = append(r.parsers, p)
	return nil
}

// ParseFunction resolves the raw function's name and delegates to the
// matching parser.
func (r *Registry) ParseFunction(raw parse.RawFunction) (parse.Function, error) {
	for _, p := range r.parsers {
		if p.Name() == raw.Name {
			return p.Parse(raw)
		}
	}
	return nil, &errortypes.NonexistentFunctionError{Name: raw.Name}
}

// IsIdent reports whether s names a registered function.
func (r *Registry) IsIdent(s string) bool {
	for _, p := range r.parsers {
		if p.Name() == s {
			return true
		}
	}
	return false
}

var _ parse.Registry = (*Registry)(nil)

// assert returns an AssertionError carrying expr when cond is false.
func assert(cond bool, expr string) error {
	if !cond {
		return &errortypes.AssertionError{Expr: expr}
	}
	return nil
}
