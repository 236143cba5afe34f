package functions

import (
	"github.com/stuartgen/stuart/errortypes"
	"github.com/stuartgen/stuart/parse"
	"github.com/stuartgen/stuart/process"
)

// runConditionalBlock pushes frame and consumes tokens until the frame pops.
// While the block is inactive every token is suppressed except an end() at
// the marker depth, which must run to pop the frame.  An else() at the marker
// depth flips the active state for the remainder of the block.
func runConditionalBlock(s *process.Scope, self parse.Token, frame *process.Frame, condition bool) error {
	var marker = s.Stack.Height()
	s.Stack.Push(frame)
	var active = condition

	for s.Stack.Height() > marker {
		var token, ok = s.Tokens.Next()
		if !ok {
			return self.Position().Traceback(errortypes.ErrUnexpectedEndOfFile)
		}

		if fn, isFn := token.(*parse.FunctionCall); isFn && s.Stack.Height() == marker+1 {
			switch fn.Fn.Name() {
			case "end":
				if err := process.Process(token, s); err != nil {
					return err
				}
				continue
			case "else":
				if err := process.Process(token, s); err != nil {
					return err
				}
				active = !active
				continue
			}
		}

		if active {
			if err := process.Process(token, s); err != nil {
				return err
			}
		}
	}
	return nil
}

// skipBlock pushes frame and suppresses tokens until an end() at the marker
// depth pops it.  Used by a for over an empty sequence, which must still
// consume its body.
func skipBlock(s *process.Scope, self parse.Token, frame *process.Frame) error {
	var marker = s.Stack.Height()
	s.Stack.Push(frame)

	for s.Stack.Height() > marker {
		var token, ok = s.Tokens.Next()
		if !ok {
			return self.Position().Traceback(errortypes.ErrUnexpectedEndOfFile)
		}

		if fn, isFn := token.(*parse.FunctionCall); isFn && s.Stack.Height() == marker+1 && fn.Fn.Name() == "end" {
			if err := process.Process(token, s); err != nil {
				return err
			}
		}
	}
	return nil
}
