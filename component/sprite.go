package component

// SpriteRef is an opaque handle into an external renderer's sprite
// registry. The core never interprets it; renderers map it to images,
// glyphs, or cells.
type SpriteRef struct {
	ID    uint32
	Layer int // draw order, lower renders first
}
