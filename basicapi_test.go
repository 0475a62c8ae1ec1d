package exoquant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePaletteReachesTargetSize(t *testing.T) {
	pixels := []Color{
		{R: 255, G: 0, B: 0, A: 255},
		{R: 0, G: 255, B: 0, A: 255},
		{R: 0, G: 0, B: 255, A: 255},
		{R: 255, G: 255, B: 0, A: 255},
		{R: 0, G: 255, B: 255, A: 255},
	}
	h := HistogramFromColors(pixels)
	cs := NewSimpleColorSpace()

	palette := GeneratePalette(h, cs, KMeans{}, 5)
	assert.Len(t, palette, 5)
}

func TestConvertToIndexedSingleColorImage(t *testing.T) {
	pixels := make([]Color, 16*16)
	for i := range pixels {
		pixels[i] = Color{R: 10, G: 20, B: 30, A: 40}
	}

	palette, indexed := ConvertToIndexed(pixels, 16, 4, NoneOptimizer{}, NewFloydSteinberg())

	assert.Len(t, indexed, len(pixels))

	// Property 10: round-trip on a constant image — every index is 0 after
	// palette-sort.
	for _, idx := range indexed {
		assert.Equal(t, uint8(0), idx)
	}

	c := palette[0]
	assert.InDelta(t, 10, int(c.R), 1)
	assert.InDelta(t, 20, int(c.G), 1)
	assert.InDelta(t, 30, int(c.B), 1)
	assert.InDelta(t, 40, int(c.A), 1)
}

func TestConvertToIndexedTwoColorNoDither(t *testing.T) {
	red := Color{R: 255, G: 0, B: 0, A: 255}
	blue := Color{R: 0, G: 0, B: 255, A: 255}

	pixels := make([]Color, 32)
	for i := range pixels {
		if i%2 == 0 {
			pixels[i] = red
		} else {
			pixels[i] = blue
		}
	}

	palette, indexed := ConvertToIndexed(pixels, 32, 2, NoneOptimizer{}, NoneDitherer{})

	assert.Len(t, palette, 2)
	assert.Len(t, indexed, len(pixels))

	for i := 0; i < len(indexed); i += 2 {
		assert.Equal(t, indexed[0], indexed[i])
	}
	for i := 1; i < len(indexed); i += 2 {
		assert.Equal(t, indexed[1], indexed[i])
	}
	assert.NotEqual(t, indexed[0], indexed[1])
}
