package functions

import (
	"github.com/stuartgen/stuart/errortypes"
	"github.com/stuartgen/stuart/parse"
	"github.com/stuartgen/stuart/process"
)

type beginParser struct{}

func (beginParser) Name() string { return "begin" }

func (beginParser) Parse(raw parse.RawFunction) (parse.Function, error) {
	if err := assert(len(raw.Positional) == 1, "begin takes one argument"); err != nil {
		return nil, err
	}
	if err := assert(len(raw.Named) == 0, "begin takes no named arguments"); err != nil {
		return nil, err
	}

	if label, ok := raw.Positional[0].AsString(); ok {
		return &beginFunction{label: label, custom: true}, nil
	}
	if label, ok := raw.Positional[0].AsIdent(); ok {
		return &beginFunction{label: label}, nil
	}
	return nil, errortypes.ErrInvalidArgument
}

// beginFunction opens a section (custom) or an internal control block.
type beginFunction struct {
	label  string
	custom bool
}

func (f *beginFunction) Name() string { return "begin" }

func (f *beginFunction) Execute(s *process.Scope) error {
	if f.custom {
		s.Stack.Push(process.NewFrame("begin:" + f.label))
	} else {
		s.Stack.Push(process.NewFrame(f.label + ":"))
	}
	return nil
}
