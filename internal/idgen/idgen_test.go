package idgen

import (
	"regexp"
	"testing"
)

func TestNewProjectID_Shape(t *testing.T) {
	pattern := regexp.MustCompile(`^proj_[a-zA-Z0-9]+$`)
	for i := 0; i < 100; i++ {
		id, err := NewProjectID()
		if err != nil {
			t.Fatalf("NewProjectID() error on iteration %d: %v", i, err)
		}
		if len(id) != len(ProjectPrefix)+Length {
			t.Fatalf("NewProjectID() length = %d, want %d (id=%q)", len(id), len(ProjectPrefix)+Length, id)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("NewProjectID() = %q, does not match expected charset pattern", id)
		}
	}
}

func TestNewProjectID_Uniqueness(t *testing.T) {
	const count = 10_000
	seen := make(map[string]struct{}, count)
	for i := 0; i < count; i++ {
		id, err := NewProjectID()
		if err != nil {
			t.Fatalf("NewProjectID() error on iteration %d: %v", i, err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID after %d generations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}
