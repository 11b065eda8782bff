package core

import (
	"errors"
	"testing"
)

func TestNewID_Unique(t *testing.T) {
	a := NewID()
	b := NewID()
	if a.IsEmpty() || b.IsEmpty() {
		t.Fatal("NewID should never be empty")
	}
	if a == b {
		t.Error("Consecutive IDs should differ")
	}
}

func TestParseSessionID(t *testing.T) {
	if _, err := ParseSessionID("  "); err == nil {
		t.Error("Blank session ID should be rejected")
	}
	id, err := ParseSessionID("abc-123")
	if err != nil || id.String() != "abc-123" {
		t.Errorf("ParseSessionID = %q, %v", id, err)
	}
}

func TestSeedFromString_Deterministic(t *testing.T) {
	a := SeedFromString("rows=2000")
	b := SeedFromString("rows=2000")
	if a != b {
		t.Errorf("Same string should yield the same seed: %d vs %d", a, b)
	}
	if a == SeedFromString("rows=2001") {
		t.Error("Different strings should yield different seeds")
	}
	if a < 0 {
		t.Errorf("Seed should be non-negative, got %d", a)
	}
}

func TestSeedForRows(t *testing.T) {
	if SeedForRows(500) != SeedFromString("rows=500") {
		t.Error("SeedForRows should derive from the rows string")
	}
}

func TestNewHash(t *testing.T) {
	h := NewHash([]byte("games"))
	if h.IsEmpty() || len(h.String()) != 64 {
		t.Errorf("Expected a 64-char hex digest, got %q", h)
	}
	if !h.Equals(NewHash([]byte("games"))) {
		t.Error("Identical inputs should hash identically")
	}
}

func TestSchemaError(t *testing.T) {
	err := NewSchemaError([]string{"foo", "bar"})
	if !IsSchemaError(err) {
		t.Error("NewSchemaError should satisfy IsSchemaError")
	}
	if !errors.Is(err, ErrSchemaUnrecognized) {
		t.Error("Schema error should wrap the sentinel")
	}
	if IsSchemaError(ErrNotFound) {
		t.Error("Unrelated sentinel should not classify as schema error")
	}
}

func TestIsNotFoundError(t *testing.T) {
	if !IsNotFoundError(ErrSessionNotFound) {
		t.Error("ErrSessionNotFound should classify as not-found")
	}
	if IsNotFoundError(ErrEmptyFile) {
		t.Error("ErrEmptyFile should not classify as not-found")
	}
}
