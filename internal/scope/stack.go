// Package scope implements the lexically-scoped symbol table stack the
// semantic analyzer resolves names against: an ordered stack of name sets,
// duplicates within a single scope forbidden, lookup searching top-down.
package scope

// Stack is an ordered stack of scopes. The zero value is an empty stack
// ready to use. A Stack is only ever used for the duration of one semantic
// analysis pass; it carries no other state.
type Stack struct {
	scopes []map[string]struct{}
}

// Enter pushes a fresh, empty scope.
func (s *Stack) Enter() {
	s.scopes = append(s.scopes, make(map[string]struct{}))
}

// Leave pops the innermost scope. Leave on an empty stack is a no-op rather
// than a panic, so an unwinding error path that calls Leave defensively
// (e.g. via a deferred guard whose Enter never ran) stays safe.
func (s *Stack) Leave() {
	if len(s.scopes) == 0 {
		return
	}
	s.scopes = s.scopes[:len(s.scopes)-1]
}

// Depth reports how many scopes are currently pushed.
func (s *Stack) Depth() int { return len(s.scopes) }

// Declare inserts name into the innermost scope. It reports false (and does
// not insert) if name is already present in that scope — the caller's cue
// to raise a Redeclaration error. Declare on an empty stack pushes an
// implicit scope first so callers never need a guard for "no scope yet".
func (s *Stack) Declare(name string) bool {
	if len(s.scopes) == 0 {
		s.Enter()
	}
	top := s.scopes[len(s.scopes)-1]
	if _, ok := top[name]; ok {
		return false
	}
	top[name] = struct{}{}
	return true
}

// Lookup searches scopes from innermost to outermost and reports whether
// name is visible anywhere on the stack.
func (s *Stack) Lookup(name string) bool {
	for i := len(s.scopes) - 1; i >= 0; i-- {
		if _, ok := s.scopes[i][name]; ok {
			return true
		}
	}
	return false
}

// With pushes a fresh scope, runs fn, and guarantees the scope is popped
// before returning — including when fn returns an error. This is the
// "scoped guard" §9 calls for: callers never pair a manual Enter with a
// manual Leave on a path that might return early.
func (s *Stack) With(fn func() error) error {
	s.Enter()
	defer s.Leave()
	return fn()
}

// Extend runs fn against the current top scope without pushing a new one —
// the "extend" behavior spec.md §4.1 requires so a function's parameters
// and its body's top-level statements share one scope. It exists mainly for
// symmetry with With so call sites read the same way regardless of which
// behavior a block needs.
func (s *Stack) Extend(fn func() error) error {
	return fn()
}
