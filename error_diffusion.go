package exoquant

// FloydSteinbergDitherer is error-diffusion dithering with a configurable
// five-coefficient kernel: a/b/c/d control how much error is pushed to the
// right, lower-left, lower, and lower-right neighbor respectively, and e
// scales the error carried into a pixel (from its left neighbor and the row
// above) when the error passed on from that pixel is computed; the palette
// lookup itself uses the unscaled carried error (e < 1 bleeds less error
// across long runs of similar color).
type FloydSteinbergDitherer struct {
	A, B, C, D, E float64
}

// NewFloydSteinbergVanilla returns the textbook Floyd-Steinberg kernel with
// full error carry (e=1.0).
func NewFloydSteinbergVanilla() FloydSteinbergDitherer {
	return FloydSteinbergDitherer{A: 7.0 / 16.0, B: 3.0 / 16.0, C: 5.0 / 16.0, D: 1.0 / 16.0, E: 1.0}
}

// NewFloydSteinberg returns the default preset: the same kernel as
// NewFloydSteinbergVanilla but with e=0.8, which suppresses long-range error
// bleed.
func NewFloydSteinberg() FloydSteinbergDitherer {
	return FloydSteinbergDitherer{A: 7.0 / 16.0, B: 3.0 / 16.0, C: 5.0 / 16.0, D: 1.0 / 16.0, E: 0.8}
}

// NewFloydSteinbergCheckered returns a kernel biased toward a checkerboard
// dither pattern: visually calmer than the default preset, at the cost of
// robustness when the output is later downscaled.
func NewFloydSteinbergCheckered() FloydSteinbergDitherer {
	return FloydSteinbergDitherer{A: 7.0 / 16.0, B: 1.5 / 16.0, C: 6.5 / 16.0, D: 1.0 / 16.0, E: 0.5}
}

func (fs FloydSteinbergDitherer) RemapStream(m *ColorMap, cs ColorSpace, colors []Vec4, width int) []int {
	out := make([]int, len(colors))
	errors := make([]Vec4, width*2)

	for idx, c := range colors {
		x := idx % width
		y := (idx / width) & 1
		row := y * width
		other := (y ^ 1) * width

		cd := cs.ToDither(c)
		i := m.FindNearest(cs.FromDither(cd.Add(errors[row+x])))
		c2 := cs.ToDither(m.FloatColor(i))
		errVal := cd.Add(errors[row+x].Scale(fs.E)).Sub(c2)

		nextX := (x + 1) % width
		prevX := (x + width - 1) % width

		errors[row+nextX] = errors[row+nextX].Add(errVal.Scale(fs.A))
		errors[other+nextX] = errVal.Scale(fs.D)
		errors[other+x] = errors[other+x].Add(errVal.Scale(fs.C))
		errors[other+prevX] = errors[other+prevX].Add(errVal.Scale(fs.B))

		out[idx] = i
	}

	return out
}
