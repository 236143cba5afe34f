package plugin

import (
	"fmt"
	"os"
	"strconv"

	"github.com/robertkrimen/otto"

	"github.com/stuartgen/stuart/data"
	"github.com/stuartgen/stuart/errortypes"
	"github.com/stuartgen/stuart/functions"
	"github.com/stuartgen/stuart/parse"
	"github.com/stuartgen/stuart/process"
)

// LoadJS loads a JavaScript plugin.  The script runs once at load time and
// must assign:
//
//	stuart.plugin = {
//	    name: "my-plugin",
//	    version: "1.0.0",
//	    functions: [{name: "shout", fn: function(s) { return s + "!"; }}],
//	};
//
// Each declared function becomes a template function; its arguments are
// dereferenced through the scope at execute time and its string return value
// is appended to the output.
func LoadJS(path string) (*Plugin, error) {
	var src, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plugin %s: %w", path, err)
	}

	var vm = otto.New()
	if _, err := vm.Run("var stuart = {};"); err != nil {
		return nil, err
	}
	if _, err := vm.Run(src); err != nil {
		return nil, fmt.Errorf("failed to evaluate plugin %s: %w", path, err)
	}

	var decl, declErr = vm.Run("stuart.plugin")
	if declErr != nil || !decl.IsObject() {
		return nil, fmt.Errorf("plugin %s did not assign stuart.plugin", path)
	}
	var obj = decl.Object()

	var plugin = Plugin{}
	if v, err := obj.Get("name"); err == nil && v.IsString() {
		plugin.Name, _ = v.ToString()
	}
	if plugin.Name == "" {
		return nil, fmt.Errorf("plugin %s has no name", path)
	}
	if v, err := obj.Get("version"); err == nil && v.IsString() {
		plugin.Version, _ = v.ToString()
	}

	var fnsVal, _ = obj.Get("functions")
	if fnsVal.IsObject() {
		var fns = fnsVal.Object()
		var lengthVal, _ = fns.Get("length")
		var length, _ = lengthVal.ToInteger()

		for i := int64(0); i < length; i++ {
			var entryVal, _ = fns.Get(strconv.FormatInt(i, 10))
			if !entryVal.IsObject() {
				return nil, fmt.Errorf("plugin %s: functions[%d] is not an object", path, i)
			}
			var entry = entryVal.Object()

			var nameVal, _ = entry.Get("name")
			var name, _ = nameVal.ToString()
			if name == "" || nameVal.IsUndefined() {
				return nil, fmt.Errorf("plugin %s: functions[%d] has no name", path, i)
			}
			var fnVal, _ = entry.Get("fn")
			if !fnVal.IsFunction() {
				return nil, fmt.Errorf("plugin %s: function %q has no fn", path, name)
			}

			plugin.Functions = append(plugin.Functions, &jsFunctionParser{
				name: name,
				vm:   vm,
				fn:   fnVal,
			})
		}
	}

	return &plugin, nil
}

// jsFunctionParser accepts any argument shape; validation is the script's
// concern.
type jsFunctionParser struct {
	name string
	vm   *otto.Otto
	fn   otto.Value
}

func (p *jsFunctionParser) Name() string { return p.name }

func (p *jsFunctionParser) Parse(raw parse.RawFunction) (parse.Function, error) {
	var args = make([]parse.RawArgument, len(raw.Positional))
	copy(args, raw.Positional)
	return &jsFunction{name: p.name, vm: p.vm, fn: p.fn, args: args}, nil
}

var _ functions.Parser = (*jsFunctionParser)(nil)

// jsFunction calls into the plugin's JavaScript at execute time.
type jsFunction struct {
	name string
	vm   *otto.Otto
	fn   otto.Value
	args []parse.RawArgument
}

func (f *jsFunction) Name() string { return f.name }

func (f *jsFunction) Execute(s *process.Scope) error {
	var self = s.Tokens.Current()

	var args = make([]interface{}, 0, len(f.args))
	for _, arg := range f.args {
		switch arg.Kind {
		case parse.ArgVariable:
			var value, ok = s.GetVariable(arg.Text)
			if !ok {
				return self.Position().Traceback(&errortypes.UndefinedVariableError{Name: arg.Text})
			}
			args = append(args, data.Export(value))
		case parse.ArgInteger:
			args = append(args, int64(arg.Integer))
		default:
			args = append(args, arg.Text)
		}
	}

	var result, err = f.fn.Call(otto.NullValue(), args...)
	if err != nil {
		return self.Position().Traceback(err)
	}
	if result.IsDefined() && !result.IsNull() {
		var str, _ = result.ToString()
		if err := s.OutputString(str); err != nil {
			return self.Position().Traceback(err)
		}
	}
	return nil
}

var _ process.Executable = (*jsFunction)(nil)
