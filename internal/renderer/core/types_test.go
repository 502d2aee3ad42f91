package core

import "testing"

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{'\t', 0},
		{0x7F, 0},
		{'漢', 2},
	}
	for _, tt := range tests {
		if got := RuneWidth(tt.r); got != tt.want {
			t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestStyleBuilders(t *testing.T) {
	s := DefaultStyle().Bold().Reverse().WithForeground(ColorYellow)
	if !s.Attributes.Has(AttrBold) || !s.Attributes.Has(AttrReverse) {
		t.Errorf("Attributes = %b, want bold and reverse", s.Attributes)
	}
	if s.Attributes.Has(AttrUnderline) {
		t.Error("unexpected underline")
	}
	if s.Foreground != ColorYellow {
		t.Errorf("Foreground = %+v", s.Foreground)
	}
	if !s.Background.IsDefault() {
		t.Error("Background should stay default")
	}
}

func TestScreenRect(t *testing.T) {
	r := RectFromSize(2, 3, 4, 5)
	if r.Width() != 5 || r.Height() != 4 {
		t.Fatalf("size = %dx%d, want 5x4", r.Width(), r.Height())
	}
	if !r.Contains(3, 2) || !r.Contains(7, 5) {
		t.Error("corners should be inside")
	}
	if r.Contains(8, 2) || r.Contains(3, 6) {
		t.Error("exclusive edges should be outside")
	}
	if !(ScreenRect{Top: 1, Bottom: 1, Right: 4}).IsEmpty() {
		t.Error("zero-height rect should be empty")
	}
}
