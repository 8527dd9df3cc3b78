package languages

import (
	"errors"
	"testing"
)

func rng(sl, sc, el, ec int) Range {
	return NewRange(NewPosition(sl, sc, 0), NewPosition(el, ec, 0))
}

func TestRangeContains(t *testing.T) {
	outer := rng(1, 0, 10, 0)

	tests := []struct {
		name  string
		inner Range
		want  bool
	}{
		{"strictly inside", rng(2, 4, 5, 1), true},
		{"same range", outer, true},
		{"shares start", rng(1, 0, 3, 0), true},
		{"starts before", rng(0, 5, 3, 0), false},
		{"ends after", rng(9, 0, 10, 1), false},
		{"disjoint", rng(11, 0, 12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.Contains(tt.inner); got != tt.want {
				t.Errorf("Contains(%s) = %v, want %v", tt.inner, got, tt.want)
			}
			if got := tt.inner.IsContained(outer); got != tt.want {
				t.Errorf("IsContained(%s) = %v, want %v", outer, got, tt.want)
			}
		})
	}
}

func TestRangeOverlaps(t *testing.T) {
	a := rng(1, 0, 3, 0)
	if !a.Overlaps(rng(3, 0, 4, 0)) {
		t.Error("expected ranges sharing an end point to overlap")
	}
	if !a.Overlaps(rng(0, 0, 1, 5)) {
		t.Error("expected partial overlap")
	}
	if a.Overlaps(rng(3, 1, 4, 0)) {
		t.Error("expected no overlap")
	}
}

func TestRangeValidate(t *testing.T) {
	if err := rng(1, 2, 1, 2).Validate(); err != nil {
		t.Errorf("expected empty range to be valid, got %v", err)
	}
	if err := rng(2, 0, 1, 0).Validate(); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
	if err := rng(1, 5, 1, 4).Validate(); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
	if err := rng(-1, 0, 1, 0).Validate(); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange for negative line, got %v", err)
	}
}

func TestRangeSlice(t *testing.T) {
	src := "fn 🚀()"
	r := NewRange(NewPosition(0, 3, 3), NewPosition(0, 4, 7))
	got, err := r.Slice(src)
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}
	if got != "🚀" {
		t.Errorf("expected rocket, got %q", got)
	}

	if _, err := NewRange(NewPosition(0, 0, 0), NewPosition(0, 0, 100)).Slice(src); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}
