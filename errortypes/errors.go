package errortypes

import (
	"errors"
	"fmt"
)

// Filesystem errors ----------

var (
	ErrRead  = errors.New("failed to read from the filesystem")
	ErrWrite = errors.New("failed to write to the filesystem")
)

// ConflictError reports two sources that map to the same output path when
// merging trees.
type ConflictError struct {
	SourceA string
	SourceB string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict between %s and %s", e.SourceA, e.SourceB)
}

// Parse errors ----------

var (
	ErrUnexpectedEOF             = errors.New("unexpected end of file")
	ErrInvalidArgument           = errors.New("invalid argument")
	ErrGenericSyntax             = errors.New("syntax error")
	ErrPositionalAfterNamed      = errors.New("positional argument after named argument")
	ErrInvalidFrontmatter        = errors.New("invalid frontmatter")
	ErrInvalidJSON               = errors.New("invalid json")
)

// ExpectedError reports that an expected literal was not found.
type ExpectedError struct{ Expected string }

func (e *ExpectedError) Error() string { return fmt.Sprintf("expected %q", e.Expected) }

// InvalidVariableNameError reports an unusable variable name.
type InvalidVariableNameError struct{ Name string }

func (e *InvalidVariableNameError) Error() string {
	return fmt.Sprintf("invalid variable name %q", e.Name)
}

// InvalidFunctionNameError reports an unusable function name.
type InvalidFunctionNameError struct{ Name string }

func (e *InvalidFunctionNameError) Error() string {
	return fmt.Sprintf("invalid function name %q", e.Name)
}

// NonexistentFunctionError reports a function name with no registered parser.
type NonexistentFunctionError struct{ Name string }

func (e *NonexistentFunctionError) Error() string {
	return fmt.Sprintf("function %q does not exist", e.Name)
}

// AssertionError reports a failed parse-time assertion on a function's
// arguments.
type AssertionError struct{ Expr string }

func (e *AssertionError) Error() string { return fmt.Sprintf("assertion failed: %s", e.Expr) }

// Process errors ----------

var (
	ErrMissingHTMLRoot     = errors.New("no root.html found for this file")
	ErrMissingMarkdownRoot = errors.New("no md.html found for this file")
	ErrStack               = errors.New("stack error")
	ErrEndWithoutBegin     = errors.New("end without matching begin")
	ErrElseWithoutIf       = errors.New("else without matching if")
	ErrNotJSONArray        = errors.New("expected a json array")
	ErrInvalidDate         = errors.New("invalid date")
	ErrUnexpectedEndOfFile = errors.New("unexpected end of file during processing")
)

// VariableAlreadyExistsError reports a duplicate binding within one frame.
type VariableAlreadyExistsError struct{ Name string }

func (e *VariableAlreadyExistsError) Error() string {
	return fmt.Sprintf("variable %q already exists", e.Name)
}

// UndefinedVariableError reports a variable that no frame defines.
type UndefinedVariableError struct{ Name string }

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("variable %q is not defined", e.Name)
}

// UndefinedSectionError reports an insert of a section that was never ended.
type UndefinedSectionError struct{ Name string }

func (e *UndefinedSectionError) Error() string {
	return fmt.Sprintf("section %q is not defined", e.Name)
}

// NullError reports a variable that resolved to null.
type NullError struct{ Name string }

func (e *NullError) Error() string { return fmt.Sprintf("variable %q is null", e.Name) }

// NotFoundError reports a path that does not exist in the virtual filesystem.
type NotFoundError struct{ Path string }

func (e *NotFoundError) Error() string { return fmt.Sprintf("%q was not found", e.Path) }

// InvalidDataTypeError reports a variable of the wrong JSON type.
type InvalidDataTypeError struct {
	Variable string
	Expected string
	Found    string
}

func (e *InvalidDataTypeError) Error() string {
	return fmt.Sprintf("variable %q has type %s, expected %s", e.Variable, e.Found, e.Expected)
}

// Hint returns a kind-specific suggestion for the user, or the empty string.
func Hint(err error) string {
	switch {
	case errors.Is(err, ErrPositionalAfterNamed):
		return "place positional arguments before named arguments"
	case errors.Is(err, ErrMissingHTMLRoot):
		return "add a root.html file to this directory or one of its ancestors"
	case errors.Is(err, ErrMissingMarkdownRoot):
		return "add an md.html file to this directory or one of its ancestors"
	case errors.Is(err, ErrInvalidFrontmatter):
		return `frontmatter lines must look like: key: "value"`
	case errors.Is(err, ErrEndWithoutBegin):
		return "every end(x) needs a matching begin(x) earlier in the file"
	case errors.Is(err, ErrElseWithoutIf):
		return "else() is only valid inside an if block"
	}
	var undef *UndefinedVariableError
	if errors.As(err, &undef) {
		return "define the variable with import() or check its spelling"
	}
	return ""
}
