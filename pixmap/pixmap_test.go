package pixmap

import (
	"testing"

	"github.com/gogpu/svgraster/blend"
	"github.com/gogpu/svgraster/colorspace"
)

func TestSetColorRoundTrip(t *testing.T) {
	p := New(4, 4)
	c := colorspace.Color{R: 1, G: 0, B: 0, A: 1}
	p.SetColor(1, 1, c)
	got := p.ColorAt(1, 1)
	if got.R < 0.99 || got.G > 0.01 || got.B > 0.01 || got.A < 0.99 {
		t.Errorf("ColorAt = %+v, want opaque red", got)
	}
}

func TestSetColorPremultipliesHalfAlpha(t *testing.T) {
	p := New(1, 1)
	p.SetColor(0, 0, colorspace.Color{R: 1, G: 1, B: 1, A: 0.5})
	_, _, _, a := p.PremultipliedAt(0, 0)
	r, _, _, _ := p.PremultipliedAt(0, 0)
	if a < 125 || a > 130 {
		t.Errorf("premultiplied alpha = %d, want ~128", a)
	}
	if r < 125 || r > 130 {
		t.Errorf("premultiplied red = %d, want ~128 (half of 255 white premultiplied by 0.5 alpha)", r)
	}
}

func TestClearZeroesBuffer(t *testing.T) {
	p := New(2, 2)
	p.Fill(colorspace.Color{R: 1, A: 1})
	p.Clear()
	for _, b := range p.Pix() {
		if b != 0 {
			t.Fatal("Clear should zero every byte")
		}
	}
}

func TestBlitSourceOverOpaqueReplaces(t *testing.T) {
	dst := New(2, 2)
	dst.Fill(colorspace.Color{B: 1, A: 1})
	src := New(2, 2)
	src.Fill(colorspace.Color{R: 1, A: 1})
	dst.Blit(src, 0, 0, blend.SourceOver, 1)
	got := dst.ColorAt(0, 0)
	if got.R < 0.99 || got.B > 0.01 {
		t.Errorf("after opaque blit = %+v, want opaque red", got)
	}
}

func TestBlitRespectsOpacity(t *testing.T) {
	dst := New(1, 1)
	src := New(1, 1)
	src.Fill(colorspace.Color{R: 1, A: 1})
	dst.Blit(src, 0, 0, blend.SourceOver, 0.5)
	_, _, _, a := dst.PremultipliedAt(0, 0)
	if a < 125 || a > 130 {
		t.Errorf("blit at opacity 0.5 alpha = %d, want ~128", a)
	}
}

func TestExtractAlphaZeroesColorChannels(t *testing.T) {
	p := New(1, 1)
	p.Fill(colorspace.Color{R: 1, G: 1, B: 1, A: 0.25})
	alpha := p.ExtractAlpha()
	r, g, b, a := alpha.PremultipliedAt(0, 0)
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("ExtractAlpha color channels = (%d,%d,%d), want zero", r, g, b)
	}
	if a == 0 {
		t.Error("ExtractAlpha should preserve the alpha channel")
	}
}

func TestBlitOutOfBoundsIsClipped(t *testing.T) {
	dst := New(2, 2)
	src := New(4, 4)
	src.Fill(colorspace.Color{R: 1, A: 1})
	dst.Blit(src, -1, -1, blend.SourceOver, 1) // should not panic
	if dst.ColorAt(1, 1).R < 0.99 {
		t.Error("in-bounds portion of an overflowing blit should still composite")
	}
}
