package exoquant

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorSpace is the capability set a quantization pipeline runs in: a
// reversible mapping between RGBA8 pixels and the float quantization-space
// vector that the Quantizer, Optimizer, ColorMap and Ditherer all operate
// on, plus a secondary dither-space mapping used only to accumulate
// diffusion error perceptually.
//
// Implementations are plain value types dispatched through this interface
// rather than a class hierarchy.
type ColorSpace interface {
	ToFloat(c Color) Vec4
	FromFloat(v Vec4) Color
	ToDither(v Vec4) Vec4
	FromDither(v Vec4) Vec4
}

// SimpleColorSpace is the default ColorSpace: a per-channel gamma curve
// followed by a fixed perceptual channel weighting, with fully-transparent
// pixels retaining a small trace of their color so they still influence the
// palette.
type SimpleColorSpace struct {
	// Gamma is the power applied to each channel going into the linear,
	// weighted quantization domain.
	Gamma float64

	// DitherGamma is the gamma used for the dither-space transform, so
	// error diffusion happens in a more perceptually uniform domain than
	// the quantization space itself.
	DitherGamma float64

	// TransparencyScale is the fraction of full color a fully-transparent
	// pixel's RGB channels retain, instead of collapsing to 0.
	TransparencyScale float64

	// Scale is the per-channel weight applied after the gamma curve.
	Scale Vec4
}

// NewSimpleColorSpace returns a SimpleColorSpace with the package defaults:
// gamma 1.145, dither gamma 2.2, transparency scale 0.01, and a channel
// scale that emphasizes green and de-emphasizes blue and alpha.
func NewSimpleColorSpace() *SimpleColorSpace {
	return &SimpleColorSpace{
		Gamma:             1.145,
		DitherGamma:       2.2,
		TransparencyScale: 0.01,
		Scale:             Vec4{X: 1.0, Y: 1.2, Z: 0.8, W: 0.75},
	}
}

func (cs *SimpleColorSpace) toLinear(c Vec4) Vec4 {
	c = c.Pow(cs.Gamma).Mul(cs.Scale)
	f := c.W*(1.0-cs.TransparencyScale) + cs.TransparencyScale
	c.X *= f
	c.Y *= f
	c.Z *= f
	return c
}

func (cs *SimpleColorSpace) fromLinear(c Vec4) Vec4 {
	f := 1.0 / (c.W*(1.0-cs.TransparencyScale) + cs.TransparencyScale)
	c.X *= f
	c.Y *= f
	c.Z *= f
	return c.Div(cs.Scale).Pow(1.0 / cs.Gamma)
}

// ToFloat converts an RGBA8 pixel to its quantization-space vector.
func (cs *SimpleColorSpace) ToFloat(c Color) Vec4 {
	v := Vec4{
		X: float64(c.R) / 255.0,
		Y: float64(c.G) / 255.0,
		Z: float64(c.B) / 255.0,
		W: float64(c.A) / 255.0,
	}
	return cs.toLinear(v)
}

// FromFloat converts a quantization-space vector back to an RGBA8 pixel,
// clamping each channel to [0,1] before rounding to the nearest 8-bit value.
func (cs *SimpleColorSpace) FromFloat(v Vec4) Color {
	c := cs.fromLinear(v)
	return Color{R: round8(c.X), G: round8(c.Y), B: round8(c.Z), A: round8(c.W)}
}

// ToDither maps a quantization-space color into the dither-accumulation
// domain, which uses a different gamma so error diffusion looks uniform.
func (cs *SimpleColorSpace) ToDither(v Vec4) Vec4 {
	return v.Pow(cs.DitherGamma / cs.Gamma)
}

// FromDither is the inverse of ToDither.
func (cs *SimpleColorSpace) FromDither(v Vec4) Vec4 {
	return v.Pow(cs.Gamma / cs.DitherGamma)
}

// LabColorSpace is a second ColorSpace implementation that quantizes in CIE
// L*a*b* directly, via github.com/lucasb-eyer/go-colorful's sRGB<->Lab
// conversion (the same conversion willibrandon-aseprite-mcp uses to run
// k-means clustering in a perceptually uniform space). Unlike
// SimpleColorSpace it has no separate dither domain: ToDither/FromDither
// are the identity, matching the original library's default ColorSpace
// behavior for color spaces that don't need one.
type LabColorSpace struct{}

// NewLabColorSpace returns a ready-to-use LabColorSpace.
func NewLabColorSpace() *LabColorSpace {
	return &LabColorSpace{}
}

func (LabColorSpace) ToFloat(c Color) Vec4 {
	rgb := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	l, a, b := rgb.Lab()
	return Vec4{X: l, Y: a, Z: b, W: float64(c.A) / 255.0}
}

func (LabColorSpace) FromFloat(v Vec4) Color {
	rgb := colorful.Lab(v.X, v.Y, v.Z).Clamped()
	r, g, b := rgb.RGB255()
	return Color{R: r, G: g, B: b, A: round8(v.W)}
}

func (LabColorSpace) ToDither(v Vec4) Vec4   { return v }
func (LabColorSpace) FromDither(v Vec4) Vec4 { return v }
