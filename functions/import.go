package functions

import (
	"github.com/stuartgen/stuart/errortypes"
	"github.com/stuartgen/stuart/parse"
	"github.com/stuartgen/stuart/process"
	"github.com/stuartgen/stuart/vfs"
)

type importParser struct{}

func (importParser) Name() string { return "import" }

func (importParser) Parse(raw parse.RawFunction) (parse.Function, error) {
	if err := assert(len(raw.Positional) == 2, "import takes two arguments"); err != nil {
		return nil, err
	}
	if err := assert(len(raw.Named) == 0, "import takes no named arguments"); err != nil {
		return nil, err
	}

	var variable, ok = raw.Positional[0].AsVariable()
	if !ok {
		return nil, errortypes.ErrInvalidArgument
	}
	file, ok := raw.Positional[1].AsString()
	if !ok {
		return nil, errortypes.ErrInvalidArgument
	}

	return &importFunction{variable: variable, file: file}, nil
}

// importFunction binds a JSON file from the input tree as a variable in the
// current frame.
type importFunction struct {
	variable string
	file     string
}

func (f *importFunction) Name() string { return "import" }

func (f *importFunction) Execute(s *process.Scope) error {
	var self = s.Tokens.Current()

	var node = s.Renderer.Input.GetAtPath(f.file)
	if node == nil || !node.IsFile() {
		return self.Position().Traceback(&errortypes.NotFoundError{Path: f.file})
	}

	var contents, ok = node.Parsed.(vfs.JSON)
	if !ok {
		return self.Position().Traceback(&errortypes.InvalidDataTypeError{
			Variable: "<file>",
			Expected: "json",
		})
	}

	var frame = s.Stack.Top()
	if frame == nil {
		return self.Position().Traceback(errortypes.ErrStack)
	}
	if err := frame.AddVariable(f.variable, contents.Value); err != nil {
		return self.Position().Traceback(err)
	}
	return nil
}
