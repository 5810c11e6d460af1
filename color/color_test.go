package color

import (
	"strings"
	"testing"
)

func TestFromPackedOpaque(t *testing.T) {
	c := FromPacked(0xFF8000)
	want := RGBA{R: 0xFF, G: 0x80, B: 0x00, A: 255}
	if c != want {
		t.Errorf("FromPacked(0xFF8000) = %+v, want %+v", c, want)
	}
}

func TestFromPackedWithAlpha(t *testing.T) {
	c := FromPacked(0x11223344)
	want := RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}
	if c != want {
		t.Errorf("FromPacked(0x11223344) = %+v, want %+v", c, want)
	}
}

func TestForegroundBackgroundSequences(t *testing.T) {
	c := Opaque(1, 2, 3)
	if got := c.Foreground(); got != "\x1b[38;2;1;2;3m" {
		t.Errorf("Foreground() = %q", got)
	}
	if got := c.Background(); got != "\x1b[48;2;1;2;3m" {
		t.Errorf("Background() = %q", got)
	}
}

func TestHSLuvRoundTrip(t *testing.T) {
	c := FromHSLuv(200, 60, 50)
	h, s, l := c.HSLuv()
	if h < 195 || h > 205 {
		t.Errorf("hue drifted too far: got %v", h)
	}
	if s < 50 || s > 70 {
		t.Errorf("saturation drifted too far: got %v", s)
	}
	if l < 45 || l > 55 {
		t.Errorf("lightness drifted too far: got %v", l)
	}
}

func TestStringContainsChannels(t *testing.T) {
	c := Opaque(10, 20, 30)
	s := c.String()
	if !strings.Contains(s, "10") || !strings.Contains(s, "20") || !strings.Contains(s, "30") {
		t.Errorf("String() = %q missing channel values", s)
	}
}
