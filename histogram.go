package exoquant

// Histogram is a multiset of distinct RGBA8 colors with their occurrence
// counts — the compressed representation of an input image that the
// Quantizer and Optimizer consume.
type Histogram struct {
	counts map[Color]int
}

// NewHistogram returns an empty Histogram.
func NewHistogram() *Histogram {
	return &Histogram{counts: make(map[Color]int)}
}

// HistogramFromColors builds a Histogram from a slice of pixels in one call.
// Identical input always yields an identical Histogram (up to iteration
// order), whether built this way or via repeated Extend calls.
func HistogramFromColors(pixels []Color) *Histogram {
	h := NewHistogram()
	h.Extend(pixels)
	return h
}

// Extend adds the given pixels to the histogram, accumulating counts for
// colors already present.
func (h *Histogram) Extend(pixels []Color) {
	for _, c := range pixels {
		h.counts[c]++
	}
}

// Add records a single occurrence of c.
func (h *Histogram) Add(c Color) {
	h.counts[c]++
}

// Len returns the number of distinct colors in the histogram.
func (h *Histogram) Len() int {
	return len(h.counts)
}

// Each calls f once per distinct color with its accumulated count. Iteration
// order is unspecified.
func (h *Histogram) Each(f func(c Color, count int)) {
	for c, n := range h.counts {
		f(c, n)
	}
}

// ColorCount pairs a quantization-space color with its occurrence count, the
// projection of a Histogram that the Quantizer and Optimizer consume.
type ColorCount struct {
	Color Vec4
	Count int
}

// ToColorCounts projects the histogram into quantization space under cs.
func (h *Histogram) ToColorCounts(cs ColorSpace) []ColorCount {
	out := make([]ColorCount, 0, len(h.counts))
	for c, n := range h.counts {
		out = append(out, ColorCount{Color: cs.ToFloat(c), Count: n})
	}
	return out
}
