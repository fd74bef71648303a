package tree

// Text is a text run (spec §3 Node: "Text ... reduced to Path/Group
// children before compositing by an external text shaper"). The
// builder never leaves a Text node standing in the finished tree; it
// exists only as the builder's input representation, shaped into
// Glyphs by an injected shaper and replaced with the equivalent Group
// of Path nodes before the tree is handed to the compositor.
type Text struct {
	Content  string
	Glyphs   []Glyph
	FontSize float64
}

func (*Text) isNode() {}

// Glyph is one shaped glyph outline placed at an advance offset,
// already positioned in the text run's local space by the external
// shaper; the builder turns each into a Path node.
type Glyph struct {
	PathIndex int // index into the shaper's glyph outline cache
	X, Y      float64
}
