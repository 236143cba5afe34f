package functions

import (
	"strconv"
	"strings"

	"github.com/stuartgen/stuart/data"
	"github.com/stuartgen/stuart/errortypes"
	"github.com/stuartgen/stuart/parse"
	"github.com/stuartgen/stuart/process"
)

const wordsPerMinute = 200

type timeToReadParser struct{}

func (timeToReadParser) Name() string { return "timetoread" }

func (timeToReadParser) Parse(raw parse.RawFunction) (parse.Function, error) {
	if err := assert(len(raw.Positional) == 1, "timetoread takes one argument"); err != nil {
		return nil, err
	}
	if err := assert(len(raw.Named) == 0, "timetoread takes no named arguments"); err != nil {
		return nil, err
	}

	var variable, ok = raw.Positional[0].AsVariable()
	if !ok {
		return nil, errortypes.ErrInvalidArgument
	}
	return &timeToReadFunction{variable: variable}, nil
}

// timeToReadFunction emits the estimated reading time of a text in minutes,
// never less than one.
type timeToReadFunction struct {
	variable string
}

func (f *timeToReadFunction) Name() string { return "timetoread" }

func (f *timeToReadFunction) Execute(s *process.Scope) error {
	var self = s.Tokens.Current()

	var value, ok = s.GetVariable(f.variable)
	if !ok {
		return self.Position().Traceback(&errortypes.UndefinedVariableError{Name: f.variable})
	}
	str, isString := value.(data.String)
	if !isString {
		return self.Position().Traceback(&errortypes.InvalidDataTypeError{
			Variable: f.variable,
			Expected: "string",
			Found:    value.Type(),
		})
	}

	var words = len(strings.Fields(string(str)))
	var minutes = words / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}

	if err := s.OutputString(strconv.Itoa(minutes)); err != nil {
		return self.Position().Traceback(err)
	}
	return nil
}
