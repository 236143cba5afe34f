package functions

import (
	"sort"
	"strings"

	"github.com/stuartgen/stuart/data"
	"github.com/stuartgen/stuart/errortypes"
	"github.com/stuartgen/stuart/parse"
	"github.com/stuartgen/stuart/process"
	"github.com/stuartgen/stuart/vfs"
)

type forParser struct{}

func (forParser) Name() string { return "for" }

type forSource int

const (
	sourceMarkdownDir forSource = iota
	sourceJSONFile
	sourceVariable
)

type sortOrder int

const (
	orderAsc sortOrder = iota
	orderDesc
)

func (forParser) Parse(raw parse.RawFunction) (parse.Function, error) {
	if err := assert(len(raw.Positional) == 2, "for takes two positional arguments"); err != nil {
		return nil, err
	}

	var variable, ok = raw.Positional[0].AsVariable()
	if !ok {
		return nil, errortypes.ErrInvalidArgument
	}

	var f = forFunction{variable: variable, skip: -1, limit: -1}

	if source, isString := raw.Positional[1].AsString(); isString {
		f.source = source
		switch {
		case strings.HasSuffix(source, ".json"):
			f.sourceType = sourceJSONFile
		case strings.HasSuffix(source, "/"):
			f.sourceType = sourceMarkdownDir
		default:
			return nil, errortypes.ErrInvalidArgument
		}
	} else if source, isVar := raw.Positional[1].AsVariable(); isVar {
		f.source = source
		f.sourceType = sourceVariable
	} else {
		return nil, errortypes.ErrInvalidArgument
	}

	for _, named := range raw.Named {
		switch named.Name {
		case "skip":
			var n, isInt = named.Value.AsInteger()
			if err := assert(isInt, "skip must be an integer"); err != nil {
				return nil, err
			}
			if err := assert(f.skip == -1, "duplicate skip argument"); err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, errortypes.ErrInvalidArgument
			}
			f.skip = int(n)
		case "limit":
			var n, isInt = named.Value.AsInteger()
			if err := assert(isInt, "limit must be an integer"); err != nil {
				return nil, err
			}
			if err := assert(f.limit == -1, "duplicate limit argument"); err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, errortypes.ErrInvalidArgument
			}
			f.limit = int(n)
		case "sortby":
			var v, isVar = named.Value.AsVariable()
			if err := assert(isVar, "sortby must be a variable"); err != nil {
				return nil, err
			}
			if err := assert(f.sortBy == "", "duplicate sortby argument"); err != nil {
				return nil, err
			}
			f.sortBy = v
		case "order":
			switch s, _ := named.Value.AsString(); s {
			case "asc":
				f.order = orderAsc
			case "desc":
				f.order = orderDesc
			default:
				return nil, errortypes.ErrInvalidArgument
			}
		default:
			return nil, errortypes.ErrInvalidArgument
		}
	}

	return &f, nil
}

// forFunction iterates a sequence, rewinding the token cursor to re-execute
// the block body once per element with the element bound to the iteration
// variable.
type forFunction struct {
	variable   string
	source     string
	sourceType forSource
	skip       int // -1 when absent
	limit      int // -1 when absent
	sortBy     string
	order      sortOrder
}

func (f *forFunction) Name() string { return "for" }

func (f *forFunction) Execute(s *process.Scope) error {
	var self = s.Tokens.Current()
	var waypoint = s.Tokens.Waypoint()

	var values, err = f.sequence(s, self)
	if err != nil {
		return err
	}

	if f.sortBy != "" {
		// The first segment names the element itself; sorting navigates the
		// remainder within each element.
		var _, path = data.SplitPath(f.sortBy)
		type keyed struct {
			key   string
			value data.Value
		}
		var pairs = make([]keyed, len(values))
		for i, v := range values {
			var key string
			if str, ok := data.Get(v, path...).(data.String); ok {
				key = string(str)
			}
			pairs[i] = keyed{key, v}
		}
		sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })
		for i, pair := range pairs {
			values[i] = pair.value
		}
	}

	if f.order == orderDesc {
		for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
			values[i], values[j] = values[j], values[i]
		}
	}

	if f.skip > 0 {
		if f.skip >= len(values) {
			values = nil
		} else {
			values = values[f.skip:]
		}
	}
	if f.limit >= 0 && f.limit < len(values) {
		values = values[:f.limit]
	}

	if len(values) == 0 {
		return skipBlock(s, self, process.NewFrame("for:"+f.variable))
	}

	for _, value := range values {
		s.Tokens.Rewind(waypoint)

		var frame = process.NewFrame("for:" + f.variable)
		frame.AddVariable(f.variable, value)

		var marker = s.Stack.Height()
		s.Stack.Push(frame)

		for s.Stack.Height() > marker {
			var token, ok = s.Tokens.Next()
			if !ok {
				return self.Position().Traceback(errortypes.ErrUnexpectedEndOfFile)
			}
			if err := process.Process(token, s); err != nil {
				return err
			}
		}
	}

	return nil
}

// sequence gathers the iteration values from the configured source.
func (f *forFunction) sequence(s *process.Scope, self parse.Token) ([]data.Value, error) {
	switch f.sourceType {
	case sourceMarkdownDir:
		var node = s.Renderer.Input.GetAtPath(f.source)
		if node == nil || !node.IsDir() {
			return nil, self.Position().Traceback(&errortypes.NotFoundError{Path: f.source})
		}
		var values []data.Value
		for _, child := range node.Children {
			if md, ok := child.Parsed.(vfs.Markdown); ok {
				values = append(values, md.Value())
			}
		}
		return values, nil

	case sourceJSONFile:
		var node = s.Renderer.Input.GetAtPath(f.source)
		if node == nil || !node.IsFile() {
			return nil, self.Position().Traceback(&errortypes.NotFoundError{Path: f.source})
		}
		var contents, ok = node.Parsed.(vfs.JSON)
		if !ok {
			return nil, self.Position().Traceback(errortypes.ErrNotJSONArray)
		}
		list, ok := contents.Value.(data.List)
		if !ok {
			return nil, self.Position().Traceback(errortypes.ErrNotJSONArray)
		}
		return append([]data.Value(nil), list...), nil

	default:
		var value, ok = s.GetVariable(f.source)
		if !ok {
			return nil, self.Position().Traceback(errortypes.ErrNotJSONArray)
		}
		list, isList := value.(data.List)
		if !isList {
			return nil, self.Position().Traceback(errortypes.ErrNotJSONArray)
		}
		return append([]data.Value(nil), list...), nil
	}
}
