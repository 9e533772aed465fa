package scope

import (
	"errors"
	"testing"
)

func TestDeclareRejectsRedeclarationInSameScope(t *testing.T) {
	var s Stack
	s.Enter()
	defer s.Leave()

	if !s.Declare("x") {
		t.Fatalf("first declaration of x should succeed")
	}
	if s.Declare("x") {
		t.Fatalf("redeclaration of x in the same scope should fail")
	}
}

func TestDeclareAllowsShadowingInNestedScope(t *testing.T) {
	var s Stack
	s.Enter()
	if !s.Declare("x") {
		t.Fatalf("outer declaration of x should succeed")
	}

	s.Enter()
	if !s.Declare("x") {
		t.Errorf("shadowing declaration of x in a nested scope should succeed")
	}
	s.Leave()
	s.Leave()
}

func TestLookupSearchesTopDown(t *testing.T) {
	var s Stack
	s.Enter()
	s.Declare("outer")
	s.Enter()
	s.Declare("inner")

	if !s.Lookup("inner") {
		t.Errorf("inner should be visible in its own scope")
	}
	if !s.Lookup("outer") {
		t.Errorf("outer should be visible from the nested scope")
	}
	if s.Lookup("nonexistent") {
		t.Errorf("nonexistent should not be found")
	}

	s.Leave()
	if s.Lookup("inner") {
		t.Errorf("inner should not be visible after its scope is popped")
	}
	if !s.Lookup("outer") {
		t.Errorf("outer should still be visible")
	}
	s.Leave()
}

func TestWithPopsOnEarlyErrorReturn(t *testing.T) {
	var s Stack
	s.Enter()
	s.Declare("outer")

	wantErr := errors.New("boom")
	err := s.With(func() error {
		s.Declare("inner")
		if !s.Lookup("inner") || !s.Lookup("outer") {
			t.Fatalf("both scopes should be visible inside With")
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("With should propagate the inner error, got %v", err)
	}
	if s.Depth() != 1 {
		t.Fatalf("With must pop its scope even on error, depth = %d", s.Depth())
	}
	if s.Lookup("inner") {
		t.Errorf("inner must not survive the popped scope")
	}
	s.Leave()
}

func TestExtendSharesCurrentScope(t *testing.T) {
	var s Stack
	s.Enter()
	s.Declare("param")

	depthBefore := s.Depth()
	_ = s.Extend(func() error {
		if s.Depth() != depthBefore {
			t.Errorf("Extend must not push a new scope")
		}
		if !s.Declare("body_local") {
			t.Errorf("declaring a new name via Extend should succeed")
		}
		return nil
	})
	if !s.Lookup("param") || !s.Lookup("body_local") {
		t.Errorf("both param and body_local should share the one scope")
	}
	s.Leave()
}

func TestDeclareOnEmptyStackImplicitlyEntersAScope(t *testing.T) {
	var s Stack
	if s.Depth() != 0 {
		t.Fatalf("zero-value Stack should start empty")
	}
	if !s.Declare("x") {
		t.Fatalf("Declare on an empty stack should succeed")
	}
	if s.Depth() != 1 {
		t.Fatalf("Declare on an empty stack should push one scope")
	}
}

func TestLeaveOnEmptyStackIsANoOp(t *testing.T) {
	var s Stack
	s.Leave() // must not panic
	if s.Depth() != 0 {
		t.Fatalf("Leave on an empty stack should remain at depth 0")
	}
}
