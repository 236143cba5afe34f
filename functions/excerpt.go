package functions

import (
	"strings"

	"github.com/stuartgen/stuart/data"
	"github.com/stuartgen/stuart/errortypes"
	"github.com/stuartgen/stuart/parse"
	"github.com/stuartgen/stuart/process"
)

type excerptParser struct{}

func (excerptParser) Name() string { return "excerpt" }

func (excerptParser) Parse(raw parse.RawFunction) (parse.Function, error) {
	if err := assert(len(raw.Positional) == 2, "excerpt takes two arguments"); err != nil {
		return nil, err
	}
	if err := assert(len(raw.Named) == 0, "excerpt takes no named arguments"); err != nil {
		return nil, err
	}

	var variable, ok = raw.Positional[0].AsVariable()
	if !ok {
		return nil, errortypes.ErrInvalidArgument
	}
	length, isInt := raw.Positional[1].AsInteger()
	if !isInt || length < 0 {
		return nil, errortypes.ErrInvalidArgument
	}

	return &excerptFunction{variable: variable, length: int(length)}, nil
}

// excerptFunction emits a plain-text excerpt of an HTML string: characters
// between '<' and '>' are skipped, and "..." is appended when the source was
// truncated.
type excerptFunction struct {
	variable string
	length   int
}

func (f *excerptFunction) Name() string { return "excerpt" }

func (f *excerptFunction) Execute(s *process.Scope) error {
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

	var excerpt strings.Builder
	var tag = false
	var consumed = 0
	var runes = []rune(string(str))

	for _, c := range runes {
		if excerpt.Len() >= f.length {
			break
		}
		if c == '<' {
			tag = true
		} else if c == '>' {
			tag = false
		} else if !tag {
			excerpt.WriteRune(c)
		}
		consumed++
	}

	if consumed < len(runes) {
		excerpt.WriteString("...")
	}

	if err := s.OutputString(excerpt.String()); err != nil {
		return self.Position().Traceback(err)
	}
	return nil
}
