package identifier

import (
	"regexp"
	"testing"
)

var uuidForm = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestNewID_CanonicalV4Form(t *testing.T) {
	gen := NewUUIDGenerator()
	id, err := gen.NewID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !uuidForm.MatchString(id) {
		t.Fatalf("id %q is not a canonical v4 UUID", id)
	}
}

func TestNewID_NoRepeats(t *testing.T) {
	gen := NewUUIDGenerator()
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id, err := gen.NewID()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("generator repeated id %q", id)
		}
		seen[id] = struct{}{}
	}
}
