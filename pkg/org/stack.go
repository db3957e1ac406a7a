// stack.go tracks the currently open block modes.
package org

import (
	"errors"
	"fmt"
)

// ErrEmptyStack is returned when a mode is popped that was never pushed.
var ErrEmptyStack = errors.New("pop from empty mode stack")

// StackMismatchError reports a pop whose expected mode differs from the open one.
// It signals a broken producer; the output is unusable once it occurs.
type StackMismatchError struct {
	Expected Mode
	Actual   Mode
}

func (e *StackMismatchError) Error() string {
	return fmt.Sprintf("mode mismatch: expected to close %s, but %s is open", e.Expected, e.Actual)
}

// modeFrame is one open mode with the indentation and properties it was opened with.
type modeFrame struct {
	mode       Mode
	indent     int
	properties Properties
}

// ModeStack is an ordered record of open modes, innermost last.
type ModeStack struct {
	frames []modeFrame
}

// Push opens a new frame.
func (s *ModeStack) Push(mode Mode, indent int, props Properties) {
	if indent < 0 {
		indent = 0
	}
	s.frames = append(s.frames, modeFrame{mode: mode, indent: indent, properties: props})
}

// Pop closes the innermost frame and returns its mode.
func (s *ModeStack) Pop() (Mode, error) {
	if len(s.frames) == 0 {
		return ModeRoot, ErrEmptyStack
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top.mode, nil
}

// PopExpect closes the innermost frame only if it is the expected mode.
func (s *ModeStack) PopExpect(expected Mode) (Mode, error) {
	if len(s.frames) == 0 {
		return ModeRoot, ErrEmptyStack
	}
	if actual := s.Current(); actual != expected {
		return actual, &StackMismatchError{Expected: expected, Actual: actual}
	}
	return s.Pop()
}

// Current returns the innermost open mode, or ModeRoot when nothing is open.
func (s *ModeStack) Current() Mode {
	if len(s.frames) == 0 {
		return ModeRoot
	}
	return s.frames[len(s.frames)-1].mode
}

// Depth returns the number of open frames.
func (s *ModeStack) Depth() int {
	return len(s.frames)
}

// Indent returns the indentation the innermost frame was opened with.
func (s *ModeStack) Indent() int {
	if len(s.frames) == 0 {
		return 0
	}
	return s.frames[len(s.frames)-1].indent
}

// Indents returns the indentation of every open frame, outermost first.
func (s *ModeStack) Indents() []int {
	out := make([]int, len(s.frames))
	for i, f := range s.frames {
		out[i] = f.indent
	}
	return out
}

// Property returns a property of the innermost frame.
func (s *ModeStack) Property(key string) (string, bool) {
	if len(s.frames) == 0 {
		return "", false
	}
	v, ok := s.frames[len(s.frames)-1].properties[key]
	return v, ok
}
