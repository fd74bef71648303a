package svgwriter

import (
	"strings"
	"testing"

	"github.com/gogpu/svgraster/colorspace"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/pathdata"
	"github.com/gogpu/svgraster/paintserver"
	"github.com/gogpu/svgraster/tree"
)

func rectPath(x, y, w, h float64) pathdata.Path {
	return pathdata.NewBuilder().Rectangle(x, y, w, h).Build()
}

func simpleTree() *tree.Tree {
	path := &tree.Path{
		Data:         rectPath(0, 0, 10, 10),
		Visible:      true,
		AbsTransform: geom.Identity(),
		Fill: &tree.Fill{
			Paint: tree.Paint{Solid: &paintserver.Solid{Color: colorspace.Color{R: 1, A: 1}}},
			Opacity: 1,
			Rule:    pathdata.NonZero,
		},
	}
	root := &tree.Group{
		Opacity:      1,
		AbsTransform: geom.Identity(),
		Children:     []tree.Node{path},
	}
	return &tree.Tree{
		Size:        geom.Rect{W: 10, H: 10},
		ViewBox:     geom.Rect{W: 10, H: 10},
		AspectRatio: geom.DefaultAspectRatio(),
		Root:        root,
	}
}

func TestWriteStringProducesWellFormedRoot(t *testing.T) {
	out, err := WriteString(simpleTree(), DefaultOptions())
	if err != nil {
		t.Fatalf("WriteString returned error: %v", err)
	}
	if !strings.HasPrefix(out, "<svg ") {
		t.Errorf("expected output to start with <svg, got %q", out[:min(20, len(out))])
	}
	if !strings.HasSuffix(out, "</svg>") {
		t.Errorf("expected output to end with </svg>, got %q", out)
	}
	if !strings.Contains(out, `<path`) {
		t.Errorf("expected a <path> element in output, got %s", out)
	}
	if strings.Contains(out, "xmlns:xlink") {
		t.Errorf("xmlns:xlink should only be emitted when an <image> element is written")
	}
}

func TestWriteEscapesAttributeValues(t *testing.T) {
	got := escapeAttr(`a "quoted" & <tagged> value`)
	want := `a &quot;quoted&quot; &amp; &lt;tagged&gt; value`
	if got != want {
		t.Errorf("escapeAttr(%q) = %q, want %q", "a \"quoted\" & <tagged> value", got, want)
	}
}

func TestFormatNumTrimsTrailingZeros(t *testing.T) {
	cases := map[float64]string{
		1.0:     "1",
		1.5:     "1.5",
		0:       "0",
		-0.0001: "-0.0001",
	}
	for in, want := range cases {
		got := formatNum(in, 8)
		if got != want {
			t.Errorf("formatNum(%v, 8) = %q, want %q", in, got, want)
		}
	}
}

func TestRelativeTransformIdentityBaseReturnsAbsolute(t *testing.T) {
	abs := geom.Translate(3, 4)
	got := relativeTransform(geom.Identity(), abs)
	if got != abs {
		t.Errorf("relativeTransform with identity base should return abs unchanged, got %+v", got)
	}
}

func TestRelativeTransformRecoversLeafTransform(t *testing.T) {
	base := geom.Translate(10, 0)
	relative := geom.Translate(1, 2)
	abs := base.Multiply(relative)
	got := relativeTransform(base, abs)
	if got != relative {
		t.Errorf("relativeTransform(base, base.Multiply(rel)) = %+v, want %+v", got, relative)
	}
}
