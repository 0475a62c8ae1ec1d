package exoquant

// ditherMatrix is the 2x2 Bayer pattern indexed by (x&1)+(y&1)*2.
var ditherMatrix = [4]float64{-0.375, 0.125, 0.375, -0.125}

// OrderedDitherer is a 2x2 Bayer ordered dither: it nudges each color by a
// fixed per-pixel offset scaled to the gap to that color's nearest palette
// neighbor, so the dither pattern never overshoots a reachable palette
// entry.
type OrderedDitherer struct{}

func (OrderedDitherer) RemapStream(m *ColorMap, _ ColorSpace, colors []Vec4, width int) []int {
	out := make([]int, len(colors))
	for idx, c := range colors {
		x := idx % width
		y := idx / width
		dither := ditherMatrix[(x&1)+(y&1)*2]

		i := m.FindNearest(c)
		d := m.NeighborDistance(i)
		shifted := c.AddScalar(d * dither * 0.75)
		out[idx] = m.FindNearest(shifted)
	}
	return out
}
