package functions

import (
	"github.com/araddon/dateparse"
	"github.com/ncruces/go-strftime"

	"github.com/stuartgen/stuart/data"
	"github.com/stuartgen/stuart/errortypes"
	"github.com/stuartgen/stuart/parse"
	"github.com/stuartgen/stuart/process"
)

type dateFormatParser struct{}

func (dateFormatParser) Name() string { return "dateformat" }

func (dateFormatParser) Parse(raw parse.RawFunction) (parse.Function, error) {
	if err := assert(len(raw.Positional) == 2, "dateformat takes two arguments"); err != nil {
		return nil, err
	}
	if err := assert(len(raw.Named) == 0, "dateformat takes no named arguments"); err != nil {
		return nil, err
	}

	var variable, ok = raw.Positional[0].AsVariable()
	if !ok {
		return nil, errortypes.ErrInvalidArgument
	}
	format, ok := raw.Positional[1].AsString()
	if !ok {
		return nil, errortypes.ErrInvalidArgument
	}

	return &dateFormatFunction{variable: variable, format: format}, nil
}

// dateFormatFunction parses a date string heuristically and formats it with a
// strftime specification.  A bare YYYY-MM-DD parses as midnight UTC.
type dateFormatFunction struct {
	variable string
	format   string
}

func (f *dateFormatFunction) Name() string { return "dateformat" }

func (f *dateFormatFunction) Execute(s *process.Scope) error {
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

	var date, err = dateparse.ParseAny(string(str))
	if err != nil {
		return self.Position().Traceback(errortypes.ErrInvalidDate)
	}

	if err := s.OutputString(strftime.Format(f.format, date)); err != nil {
		return self.Position().Traceback(err)
	}
	return nil
}
