package exoquant

// Ditherer consumes a sequence of quantization-space colors, the row width
// they're laid out at, and a ColorMap, and produces a palette index per
// color. Implementations may be stateless (None, Ordered) or carry a
// per-remap error buffer (FloydSteinbergDitherer) — RemapStream allocates
// any state fresh for each call, so a single Ditherer value is always safe
// to reuse across images.
type Ditherer interface {
	// RemapStream maps every entry of colors (row-major, width wide) to a
	// palette index in m, in order.
	RemapStream(m *ColorMap, cs ColorSpace, colors []Vec4, width int) []int
}

// NoneDitherer performs no dithering: every pixel maps independently to its
// nearest palette color.
type NoneDitherer struct{}

func (NoneDitherer) RemapStream(m *ColorMap, _ ColorSpace, colors []Vec4, _ int) []int {
	out := make([]int, len(colors))
	for i, c := range colors {
		out[i] = m.FindNearest(c)
	}
	return out
}
