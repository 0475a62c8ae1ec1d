package exoquant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimpleColorSpaceRoundTrip(t *testing.T) {
	cs := NewSimpleColorSpace()

	colors := []Color{
		{R: 0, G: 0, B: 0, A: 0},
		{R: 255, G: 255, B: 255, A: 255},
		{R: 128, G: 64, B: 200, A: 255},
		{R: 10, G: 20, B: 30, A: 40},
	}

	for _, c := range colors {
		v := cs.ToFloat(c)
		back := cs.FromFloat(v)
		assert.InDelta(t, int(c.R), int(back.R), 1, "R for %v", c)
		assert.InDelta(t, int(c.G), int(back.G), 1, "G for %v", c)
		assert.InDelta(t, int(c.B), int(back.B), 1, "B for %v", c)
		assert.InDelta(t, int(c.A), int(back.A), 1, "A for %v", c)
	}
}

func TestSimpleColorSpaceDefaults(t *testing.T) {
	cs := NewSimpleColorSpace()
	assert.InDelta(t, 1.145, cs.Gamma, 1e-9)
	assert.InDelta(t, 2.2, cs.DitherGamma, 1e-9)
	assert.InDelta(t, 0.01, cs.TransparencyScale, 1e-9)
	assert.Equal(t, Vec4{X: 1.0, Y: 1.2, Z: 0.8, W: 0.75}, cs.Scale)
}

func TestSimpleColorSpaceDitherRoundTrip(t *testing.T) {
	cs := NewSimpleColorSpace()
	v := cs.ToFloat(Color{R: 128, G: 64, B: 200, A: 255})
	d := cs.ToDither(v)
	back := cs.FromDither(d)
	assert.InDelta(t, v.X, back.X, 1e-9)
	assert.InDelta(t, v.Y, back.Y, 1e-9)
	assert.InDelta(t, v.Z, back.Z, 1e-9)
	assert.InDelta(t, v.W, back.W, 1e-9)
}

func TestLabColorSpaceRoundTrip(t *testing.T) {
	cs := NewLabColorSpace()

	colors := []Color{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
		{R: 128, G: 64, B: 200, A: 128},
	}

	for _, c := range colors {
		v := cs.ToFloat(c)
		back := cs.FromFloat(v)
		assert.InDelta(t, int(c.R), int(back.R), 1, "R for %v", c)
		assert.InDelta(t, int(c.G), int(back.G), 1, "G for %v", c)
		assert.InDelta(t, int(c.B), int(back.B), 1, "B for %v", c)
		assert.Equal(t, c.A, back.A)
	}
}

func TestLabColorSpaceDitherIsIdentity(t *testing.T) {
	cs := NewLabColorSpace()
	v := Vec4{X: 50, Y: 10, Z: -20, W: 0.5}
	assert.Equal(t, v, cs.ToDither(v))
	assert.Equal(t, v, cs.FromDither(v))
}
