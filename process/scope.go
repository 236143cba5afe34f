package process

import (
	"github.com/stuartgen/stuart/data"
	"github.com/stuartgen/stuart/errortypes"
)

// Scope is the bundle handed to each function execution: the token cursor,
// the call stack, the renderer driving the build and the file's sections.
type Scope struct {
	// Tokens lets functions consume further tokens and rewind; `for` reads
	// until its end(for) and rewinds per element.
	Tokens *Cursor

	// Stack is the call stack.  Functions push and pop frames to control the
	// scope of their variables and the routing of output.
	Stack *Stack

	// Renderer exposes the input tree and base frame to functions such as
	// import() and for().
	Renderer *Renderer

	// Sections holds the byte buffers captured by begin/end within this file
	// render.  Custom functions should not manipulate it directly.
	Sections *Sections
}

// GetVariable resolves a dotted variable reference by walking the stack from
// the top down.  The first frame defining the head name wins; the remaining
// path is navigated within its value, with missing steps yielding Null.
func (s *Scope) GetVariable(ref string) (data.Value, bool) {
	var head, rest = data.SplitPath(ref)
	for i := len(*s.Stack) - 1; i >= 0; i-- {
		if v, ok := (*s.Stack)[i].Get(head); ok {
			return data.Get(v, rest...), true
		}
	}
	return nil, false
}

// Output appends bytes to the current frame's output.
func (s *Scope) Output(b []byte) error {
	var top = s.Stack.Top()
	if top == nil {
		return errortypes.ErrStack
	}
	top.Output.Write(b)
	return nil
}

// OutputString appends a string to the current frame's output.
func (s *Scope) OutputString(str string) error {
	return s.Output([]byte(str))
}

// Sections is the ordered table of (label, bytes) captured by begin/end.
type Sections struct {
	entries []section
}

type section struct {
	label string
	bytes []byte
}

// Record appends a captured section.
func (s *Sections) Record(label string, b []byte) {
	s.entries = append(s.entries, section{label, b})
}

// Find returns the most recently recorded section with the given label.
func (s *Sections) Find(label string) ([]byte, bool) {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].label == label {
			return s.entries[i].bytes, true
		}
	}
	return nil, false
}
