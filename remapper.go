package exoquant

// Remapper combines a palette's ColorMap, the ColorSpace it was built in,
// and a Ditherer into a single entry point for turning a pixel stream into
// palette indices.
type Remapper struct {
	m          *ColorMap
	colorspace ColorSpace
	ditherer   Ditherer
}

// NewRemapper builds a Remapper for the given palette, ColorSpace and
// Ditherer. The ColorMap is built once here and reused for every Remap call.
func NewRemapper(palette []Color, cs ColorSpace, ditherer Ditherer) *Remapper {
	return &Remapper{
		m:          NewColorMap(palette, cs),
		colorspace: cs,
		ditherer:   ditherer,
	}
}

func (r *Remapper) toFloats(image []Color) []Vec4 {
	out := make([]Vec4, len(image))
	for i, c := range image {
		out[i] = r.colorspace.ToFloat(c)
	}
	return out
}

// Remap dithers image (width wide) to palette indices as bytes. It panics if
// the palette has more than 256 colors; use RemapUsize for larger palettes.
func (r *Remapper) Remap(image []Color, width int) []uint8 {
	if r.m.NumColors() > 256 {
		panic("exoquant: Remap requires a palette of at most 256 colors, use RemapUsize")
	}
	indices := r.ditherer.RemapStream(r.m, r.colorspace, r.toFloats(image), width)
	out := make([]uint8, len(indices))
	for i, idx := range indices {
		out[i] = uint8(idx)
	}
	return out
}

// RemapUsize dithers image (width wide) to palette indices, for palettes
// that may exceed 256 colors.
func (r *Remapper) RemapUsize(image []Color, width int) []int {
	return r.ditherer.RemapStream(r.m, r.colorspace, r.toFloats(image), width)
}

// RemapIter dithers a streamed sequence of pixels read from in, sending one
// index byte per pixel to the returned channel, which is closed once in is
// drained. It panics, before returning the channel, if the palette has more
// than 256 colors.
func (r *Remapper) RemapIter(in <-chan Color, width int) <-chan uint8 {
	if r.m.NumColors() > 256 {
		panic("exoquant: RemapIter requires a palette of at most 256 colors, use RemapIterUsize")
	}
	out := make(chan uint8)
	go func() {
		defer close(out)
		for idx := range r.RemapIterUsize(in, width) {
			out <- uint8(idx)
		}
	}()
	return out
}

// RemapIterUsize is the RemapIter variant for palettes that may exceed 256
// colors.
func (r *Remapper) RemapIterUsize(in <-chan Color, width int) <-chan int {
	out := make(chan int)
	go func() {
		defer close(out)
		var buf []Color
		for c := range in {
			buf = append(buf, c)
		}
		for _, idx := range r.RemapUsize(buf, width) {
			out <- idx
		}
	}()
	return out
}
