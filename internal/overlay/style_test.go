package overlay

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#FFD60A", color.RGBA{0xFF, 0xD6, 0x0A, 0xFF}, false},
		{"#fff", color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}, false},
		{"#000000", color.RGBA{0, 0, 0, 0xFF}, false},
		{"FFD60A", color.RGBA{}, true},
		{"#GGGGGG", color.RGBA{}, true},
		{"#FFFF", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDefaultStyleValidates(t *testing.T) {
	if err := DefaultStyle().Validate(); err != nil {
		t.Fatalf("default style invalid: %v", err)
	}
}

func TestStyleValidateRejectsBadValues(t *testing.T) {
	s := DefaultStyle()
	s.Opacity = 1.5
	if err := s.Validate(); err == nil {
		t.Fatal("opacity 1.5 accepted")
	}
	s = DefaultStyle()
	s.BorderColor = "red"
	if err := s.Validate(); err == nil {
		t.Fatal("named color accepted")
	}
	s = DefaultStyle()
	s.FontSize = 0
	if err := s.Validate(); err == nil {
		t.Fatal("zero font size accepted")
	}
}
