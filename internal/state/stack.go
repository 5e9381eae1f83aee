package state

import (
	goerrors "github.com/goliatone/go-errors"
)

// TextCodeStackUnderflow tags attempts to pop the base frame.
const TextCodeStackUnderflow = "CONTEXT_STACK_UNDERFLOW"

// ErrStackUnderflow is returned when Pop is called on the base frame.
var ErrStackUnderflow = goerrors.New("state: cannot pop the base execution context", goerrors.CategoryInternal).
	WithTextCode(TextCodeStackUnderflow)

// Stack holds nested execution context frames. A Stack belongs to a single
// request and is not safe for concurrent use.
type Stack struct {
	frames []ExecutionContext
}

// NewStack returns a stack whose base frame is base.
func NewStack(base ExecutionContext) *Stack {
	base = Overrides{}.WithLocale(base.Locale).WithHostname(base.ActiveHostname).Apply(base)
	return &Stack{frames: []ExecutionContext{base}}
}

// Current returns a copy of the top frame.
func (s *Stack) Current() ExecutionContext {
	if s == nil || len(s.frames) == 0 {
		return ExecutionContext{}
	}
	return s.frames[len(s.frames)-1]
}

// Depth returns the number of frames, base included.
func (s *Stack) Depth() int {
	if s == nil {
		return 0
	}
	return len(s.frames)
}

// Push adds a frame derived from the current one.
func (s *Stack) Push(overrides Overrides) ExecutionContext {
	next := overrides.Apply(s.Current())
	s.frames = append(s.frames, next)
	return next
}

// Pop removes the top frame. The base frame cannot be removed.
func (s *Stack) Pop() error {
	if s == nil || len(s.frames) <= 1 {
		return ErrStackUnderflow
	}
	s.frames = s.frames[:len(s.frames)-1]
	return nil
}

// Update mutates the top frame in place.
func (s *Stack) Update(fn func(*ExecutionContext)) {
	if s == nil || fn == nil || len(s.frames) == 0 {
		return
	}
	fn(&s.frames[len(s.frames)-1])
}

// Do runs fn inside a scope with overrides applied.
func (s *Stack) Do(overrides Overrides, fn func(ExecutionContext) error) error {
	_, err := WithScope(s, overrides, func(ctx ExecutionContext) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// WithScope pushes a frame with overrides applied, runs body and restores the
// previous frame on every exit path, panics included.
func WithScope[T any](s *Stack, overrides Overrides, body func(ExecutionContext) (T, error)) (T, error) {
	if s == nil {
		s = NewStack(ExecutionContext{})
	}
	depth := s.Depth()
	current := s.Push(overrides)
	defer s.restore(depth)
	return body(current)
}

func (s *Stack) restore(depth int) {
	if depth < 1 {
		depth = 1
	}
	if len(s.frames) > depth {
		s.frames = s.frames[:depth]
	}
}
