package functions

import (
	"fmt"

	"github.com/stuartgen/stuart/errortypes"
	"github.com/stuartgen/stuart/parse"
	"github.com/stuartgen/stuart/process"
)

type compareOp int

const (
	opEq compareOp = iota
	opNe
	opGt
	opGe
	opLt
	opLe
)

// ifParser parses one of the six comparison functions: ifeq, ifne, ifgt,
// ifge, iflt, ifle.
type ifParser struct {
	name string
	op   compareOp
}

func (p ifParser) Name() string { return p.name }

func (p ifParser) Parse(raw parse.RawFunction) (parse.Function, error) {
	if err := assert(len(raw.Positional) == 2, p.name+" takes two arguments"); err != nil {
		return nil, err
	}
	if err := assert(len(raw.Named) == 0, p.name+" takes no named arguments"); err != nil {
		return nil, err
	}

	var a, err = inputFromArg(raw.Positional[0])
	if err != nil {
		return nil, err
	}
	b, err := inputFromArg(raw.Positional[1])
	if err != nil {
		return nil, err
	}

	return &ifFunction{name: p.name, op: p.op, a: a, b: b}, nil
}

// ifFunction executes a comparison block.  Both operands are dereferenced
// through the scope at execute time; the body runs when the comparison
// holds, an else() at the block's depth flips the branch.
type ifFunction struct {
	name string
	op   compareOp
	a, b input
}

func (f *ifFunction) Name() string { return f.name }

func (f *ifFunction) Execute(s *process.Scope) error {
	var self = s.Tokens.Current()

	var a, ok = f.a.deref(s)
	if !ok {
		return self.Position().Traceback(&errortypes.UndefinedVariableError{Name: f.a.String()})
	}
	b, ok := f.b.deref(s)
	if !ok {
		return self.Position().Traceback(&errortypes.UndefinedVariableError{Name: f.b.String()})
	}

	var condition bool
	switch f.op {
	case opEq:
		condition = a.equals(b)
	case opNe:
		condition = !a.equals(b)
	default:
		if ord, comparable := a.compare(b); comparable {
			switch f.op {
			case opGt:
				condition = ord > 0
			case opGe:
				condition = ord >= 0
			case opLt:
				condition = ord < 0
			case opLe:
				condition = ord <= 0
			}
		}
	}

	var frame = process.NewFrame(fmt.Sprintf("%s:%s:%s", f.name, f.a.String(), f.b.String()))
	return runConditionalBlock(s, self, frame, condition)
}
