package raster

import (
	"testing"

	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/pathdata"
)

func rectPath(x, y, w, h float64) pathdata.Path {
	return pathdata.NewBuilder().Rectangle(x, y, w, h).Build()
}

func TestScanlineFillCoversInteriorAndClearsExterior(t *testing.T) {
	path := rectPath(10, 10, 20, 20)
	got := make(map[[2]int]uint8)
	(scanlineFiller{}).FillCoverage(path, pathdata.NonZero, geom.Identity(), 40, 40, func(x, y int, c uint8) {
		got[[2]int{x, y}] = c
	})

	if c := got[[2]int{20, 20}]; c < 250 {
		t.Errorf("interior pixel coverage = %d, want near 255", c)
	}
	if c, ok := got[[2]int{5, 5}]; ok && c != 0 {
		t.Errorf("exterior pixel should not be reported, got coverage %d", c)
	}
}

func TestScanlineFillEdgeIsPartiallyCovered(t *testing.T) {
	path := rectPath(10.5, 10, 19, 20)
	var edgeCoverage uint8
	(scanlineFiller{}).FillCoverage(path, pathdata.NonZero, geom.Identity(), 40, 40, func(x, y int, c uint8) {
		if x == 10 && y == 20 {
			edgeCoverage = c
		}
	})
	if edgeCoverage == 0 || edgeCoverage == 255 {
		t.Errorf("edge pixel straddling a half-pixel boundary should be partially covered, got %d", edgeCoverage)
	}
}

func TestScanlineEvenOddExcludesOverlap(t *testing.T) {
	b := pathdata.NewBuilder()
	b.Rectangle(0, 0, 20, 20)
	b.Rectangle(5, 5, 10, 10)
	path := b.Build()

	covered := make(map[[2]int]uint8)
	(scanlineFiller{}).FillCoverage(path, pathdata.EvenOdd, geom.Identity(), 20, 20, func(x, y int, c uint8) {
		covered[[2]int{x, y}] = c
	})
	if c, ok := covered[[2]int{10, 10}]; ok && c != 0 {
		t.Errorf("even-odd should cancel the doubly-covered inner square, got coverage %d", c)
	}
	if c := covered[[2]int{2, 2}]; c < 250 {
		t.Errorf("outer ring pixel should remain fully covered, got %d", c)
	}
}
