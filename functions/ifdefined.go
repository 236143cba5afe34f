package functions

import (
	"github.com/stuartgen/stuart/data"
	"github.com/stuartgen/stuart/errortypes"
	"github.com/stuartgen/stuart/parse"
	"github.com/stuartgen/stuart/process"
)

type ifDefinedParser struct{}

func (ifDefinedParser) Name() string { return "ifdefined" }

func (ifDefinedParser) Parse(raw parse.RawFunction) (parse.Function, error) {
	if err := assert(len(raw.Positional) == 1, "ifdefined takes one argument"); err != nil {
		return nil, err
	}
	if err := assert(len(raw.Named) == 0, "ifdefined takes no named arguments"); err != nil {
		return nil, err
	}

	var variable, ok = raw.Positional[0].AsVariable()
	if !ok {
		return nil, errortypes.ErrInvalidArgument
	}
	return &ifDefinedFunction{variable: variable}, nil
}

// ifDefinedFunction executes its block when the variable resolves to a
// non-null value.
type ifDefinedFunction struct {
	variable string
}

func (f *ifDefinedFunction) Name() string { return "ifdefined" }

func (f *ifDefinedFunction) Execute(s *process.Scope) error {
	var self = s.Tokens.Current()

	var condition = false
	if value, ok := s.GetVariable(f.variable); ok {
		if _, isNull := value.(data.Null); !isNull {
			condition = true
		}
	}

	var frame = process.NewFrame("ifdefined:" + f.variable)
	return runConditionalBlock(s, self, frame, condition)
}
