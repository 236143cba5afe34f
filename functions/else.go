package functions

import (
	"strings"

	"github.com/stuartgen/stuart/errortypes"
	"github.com/stuartgen/stuart/parse"
	"github.com/stuartgen/stuart/process"
)

type elseParser struct{}

func (elseParser) Name() string { return "else" }

func (elseParser) Parse(raw parse.RawFunction) (parse.Function, error) {
	if err := assert(len(raw.Positional) == 0, "else takes no arguments"); err != nil {
		return nil, err
	}
	if err := assert(len(raw.Named) == 0, "else takes no named arguments"); err != nil {
		return nil, err
	}
	return &elseFunction{}, nil
}

// elseFunction is inert by itself; the surrounding if block's skip logic
// toggles on it.  Executing it only validates that an if block is open.
type elseFunction struct{}

func (f *elseFunction) Name() string { return "else" }

func (f *elseFunction) Execute(s *process.Scope) error {
	var self = s.Tokens.Current()

	var top = s.Stack.Top()
	if top == nil || !strings.HasPrefix(top.Name, "if") {
		return self.Position().Traceback(errortypes.ErrElseWithoutIf)
	}
	return nil
}
