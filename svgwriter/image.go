package svgwriter

import (
	"bytes"
	"encoding/base64"
	"image/png"

	"github.com/gogpu/svgraster/pixmap"
)

// rasterDataURI re-encodes p as a PNG data URI (spec §4.7: "re-encodes
// embedded raster images as Base64 data URIs"). The tree only carries
// already-decoded premultiplied pixmaps with no memory of their
// original container format (spec §6.2: "the core accepts already-
// decoded premultiplied RGBA pixmaps"), so round-tripping through the
// original JPEG/GIF encoding is not possible; PNG is used
// unconditionally since it is lossless and universally supported by
// SVG consumers, unlike re-deriving a GIF palette or re-compressing as
// lossy JPEG from data that was never JPEG to begin with.
func rasterDataURI(p *pixmap.Pixmap) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, p.ToImage()); err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64Encode(buf.Bytes()), nil
}

func base64Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
