package functions

import (
	"strings"

	"github.com/stuartgen/stuart/errortypes"
	"github.com/stuartgen/stuart/parse"
	"github.com/stuartgen/stuart/process"
)

type endParser struct{}

func (endParser) Name() string { return "end" }

func (endParser) Parse(raw parse.RawFunction) (parse.Function, error) {
	if err := assert(len(raw.Positional) == 1, "end takes one argument"); err != nil {
		return nil, err
	}
	if err := assert(len(raw.Named) == 0, "end takes no named arguments"); err != nil {
		return nil, err
	}

	if label, ok := raw.Positional[0].AsString(); ok {
		return &endFunction{label: label, custom: true}, nil
	}
	if label, ok := raw.Positional[0].AsIdent(); ok {
		return &endFunction{label: label}, nil
	}
	return nil, errortypes.ErrInvalidArgument
}

// endFunction closes the block opened by the matching begin/for/if, appending
// the popped frame's output to its parent.  Closing a custom section also
// records it in the section table.
type endFunction struct {
	label  string
	custom bool
}

func (f *endFunction) Name() string { return "end" }

func (f *endFunction) Execute(s *process.Scope) error {
	var self = s.Tokens.Current()

	var frame = s.Stack.Pop()
	if frame == nil {
		return self.Position().Traceback(errortypes.ErrEndWithoutBegin)
	}

	if f.custom {
		if frame.Name != "begin:"+f.label {
			return self.Position().Traceback(errortypes.ErrEndWithoutBegin)
		}
		var output = frame.Output.Bytes()
		if err := s.Output(output); err != nil {
			return self.Position().Traceback(err)
		}
		s.Sections.Record(f.label, output)
		return nil
	}

	if !strings.HasPrefix(frame.Name, f.label+":") {
		return self.Position().Traceback(errortypes.ErrEndWithoutBegin)
	}
	if err := s.Output(frame.Output.Bytes()); err != nil {
		return self.Position().Traceback(err)
	}
	return nil
}
