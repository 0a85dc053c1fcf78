package uuid

import (
	"sort"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("format", func(t *testing.T) {
		id := New()

		if !IsValid(id) {
			t.Fatalf("generated identifier is not a valid UUID: %s", id)
		}
		if len(id) != 36 {
			t.Errorf("expected canonical 36-char form, got %d chars", len(id))
		}
		if id[14] != '7' {
			t.Errorf("expected version 7, got version nibble %c", id[14])
		}
		variant := id[19]
		if variant != '8' && variant != '9' && variant != 'a' && variant != 'b' {
			t.Errorf("expected RFC variant nibble, got %c", variant)
		}
	})

	t.Run("uniqueness", func(t *testing.T) {
		const n = 10000
		seen := make(map[string]bool, n)
		for i := 0; i < n; i++ {
			id := New()
			if seen[id] {
				t.Fatalf("duplicate identifier generated: %s", id)
			}
			seen[id] = true
		}
	})

	t.Run("lexically_ordered", func(t *testing.T) {
		const n = 5000
		ids := make([]string, n)
		for i := range ids {
			ids[i] = New()
		}

		if !sort.StringsAreSorted(ids) {
			for i := 1; i < n; i++ {
				if ids[i] < ids[i-1] {
					t.Fatalf("identifier %d sorts before its predecessor:\n%s\n%s", i, ids[i-1], ids[i])
				}
			}
		}
	})

	t.Run("lowercase", func(t *testing.T) {
		id := New()
		if id != strings.ToLower(id) {
			t.Errorf("expected lowercase canonical form, got %s", id)
		}
	})
}

func TestParse(t *testing.T) {
	t.Run("canonicalizes", func(t *testing.T) {
		got, err := Parse("018F4E8C-0000-7000-8000-0123456789AB")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "018f4e8c-0000-7000-8000-0123456789ab" {
			t.Errorf("expected lowercase canonical form, got %s", got)
		}
	})

	t.Run("rejects_garbage", func(t *testing.T) {
		if _, err := Parse("not-a-uuid"); err == nil {
			t.Error("expected error for invalid input")
		}
	})
}

func TestIsValid(t *testing.T) {
	if !IsValid(New()) {
		t.Error("expected generated identifier to validate")
	}
	if IsValid("") {
		t.Error("expected empty string to be invalid")
	}
	if IsValid("zzzzzzzz-zzzz-zzzz-zzzz-zzzzzzzzzzzz") {
		t.Error("expected non-hex string to be invalid")
	}
}
