package blend

import "testing"

func TestMulDiv255(t *testing.T) {
	tests := []struct {
		name string
		a, b byte
		want byte
	}{
		{"zero * zero", 0, 0, 0},
		{"zero * max", 0, 255, 0},
		{"max * max", 255, 255, 255},
		{"half * half", 128, 128, 64},
		{"100 * 100", 100, 100, 39},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mulDiv255(tt.a, tt.b); got != tt.want {
				t.Errorf("mulDiv255(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestAddDiv255Clamps(t *testing.T) {
	if got := addDiv255(200, 100); got != 255 {
		t.Errorf("addDiv255(200, 100) = %d, want 255", got)
	}
	if got := addDiv255(50, 60); got != 110 {
		t.Errorf("addDiv255(50, 60) = %d, want 110", got)
	}
}

func TestSourceOverOpaqueSourceReplacesDestination(t *testing.T) {
	r, g, b, a := blendSourceOver(10, 20, 30, 255, 200, 200, 200, 255)
	if r != 10 || g != 20 || b != 30 || a != 255 {
		t.Errorf("opaque source-over = (%d,%d,%d,%d), want (10,20,30,255)", r, g, b, a)
	}
}

func TestClearZeroesEverything(t *testing.T) {
	r, g, b, a := blendClear(255, 255, 255, 255, 128, 128, 128, 255)
	if r != 0 || g != 0 || b != 0 || a != 0 {
		t.Errorf("Clear = (%d,%d,%d,%d), want all zero", r, g, b, a)
	}
}

func TestMultiplyBlackOverWhiteGivesBlack(t *testing.T) {
	r, g, b, _ := blendMultiply(0, 0, 0, 255, 255, 255, 255, 255)
	if r != 0 || g != 0 || b != 0 {
		t.Errorf("multiply(black, white) = (%d,%d,%d), want (0,0,0)", r, g, b)
	}
}

func TestScreenWhiteOverAnyGivesWhite(t *testing.T) {
	r, g, b, _ := blendScreen(255, 255, 255, 255, 50, 60, 70, 255)
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("screen(white, x) = (%d,%d,%d), want (255,255,255)", r, g, b)
	}
}

func TestDifferenceSelfCancelsToBlack(t *testing.T) {
	r, g, b, _ := blendDifference(120, 80, 200, 255, 120, 80, 200, 255)
	if r > 1 || g > 1 || b > 1 {
		t.Errorf("difference(x, x) = (%d,%d,%d), want near black", r, g, b)
	}
}

func TestLuminosityPreservesHueOfBase(t *testing.T) {
	// Luminosity takes the backdrop's hue/saturation and the source's
	// luminance; a fully gray source should leave the backdrop's color
	// ratios close to unchanged while shifting overall lightness.
	r, g, b, a := blendLuminosity(128, 128, 128, 255, 200, 50, 50, 255)
	if a != 255 {
		t.Errorf("luminosity alpha = %d, want 255", a)
	}
	if r <= g || r <= b {
		t.Errorf("luminosity(gray, red-ish) = (%d,%d,%d), expected red channel to stay dominant", r, g, b)
	}
}

func TestGetDispatchesKnownModes(t *testing.T) {
	for _, m := range []Mode{Clear, SourceOver, Multiply, Screen, Overlay, Darken, Lighten,
		ColorDodge, ColorBurn, HardLight, SoftLight, Difference, Exclusion,
		Hue, Saturation, Color, Luminosity} {
		if Get(m) == nil {
			t.Errorf("Get(%v) returned nil", m)
		}
	}
}

func TestModeFromNameRoundTrip(t *testing.T) {
	names := []string{"normal", "multiply", "screen", "overlay", "darken", "lighten",
		"color-dodge", "color-burn", "hard-light", "soft-light", "difference",
		"exclusion", "hue", "saturation", "color", "luminosity"}
	for _, name := range names {
		m := ModeFromName(name)
		if got := m.Name(); got != name {
			t.Errorf("ModeFromName(%q).Name() = %q, want %q", name, got, name)
		}
	}
}

func TestModeFromNameUnknownDefaultsToNormal(t *testing.T) {
	if ModeFromName("plus-lighter") != Normal {
		t.Errorf("unrecognized blend mode should default to Normal")
	}
}

func TestIsSeparable(t *testing.T) {
	for _, m := range []Mode{Hue, Saturation, Color, Luminosity} {
		if m.IsSeparable() {
			t.Errorf("%v should not be separable", m)
		}
	}
	for _, m := range []Mode{Normal, Multiply, Screen, Difference} {
		if !m.IsSeparable() {
			t.Errorf("%v should be separable", m)
		}
	}
}
