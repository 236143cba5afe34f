package functions

import (
	"github.com/stuartgen/stuart/errortypes"
	"github.com/stuartgen/stuart/parse"
	"github.com/stuartgen/stuart/process"
)

type insertParser struct{}

func (insertParser) Name() string { return "insert" }

func (insertParser) Parse(raw parse.RawFunction) (parse.Function, error) {
	if err := assert(len(raw.Positional) == 1, "insert takes one argument"); err != nil {
		return nil, err
	}
	if err := assert(len(raw.Named) == 0, "insert takes no named arguments"); err != nil {
		return nil, err
	}

	var label, ok = raw.Positional[0].AsString()
	if !ok {
		return nil, errortypes.ErrInvalidArgument
	}
	return &insertFunction{label: label}, nil
}

// insertFunction re-emits the most recently recorded section with its label.
// It then re-records the label with the current frame's accumulated output,
// so that a layout inserting the same label sees everything the page built
// around it.
type insertFunction struct {
	label string
}

func (f *insertFunction) Name() string { return "insert" }

func (f *insertFunction) Execute(s *process.Scope) error {
	var self = s.Tokens.Current()

	var bytes, ok = s.Sections.Find(f.label)
	if !ok {
		return self.Position().Traceback(&errortypes.UndefinedSectionError{Name: f.label})
	}
	if err := s.Output(bytes); err != nil {
		return self.Position().Traceback(err)
	}

	var top = s.Stack.Top()
	if top != nil {
		s.Sections.Record(f.label, append([]byte(nil), top.Output.Bytes()...))
	}
	return nil
}
