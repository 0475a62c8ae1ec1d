package exoquant

import (
	"math"
	"sort"
)

// quantizerNode is one bucket of the quantizer's variance-splitting forest:
// a contiguous, exclusively-owned slice of ColorCounts plus the statistics
// needed to decide whether and where to split it further.
type quantizerNode struct {
	histogram []ColorCount
	mean      Vec4
	vdif      float64
	split     int
}

func newQuantizerNode(histogram []ColorCount) *quantizerNode {
	var n int
	var fsum, fsum2 Vec4
	for _, entry := range histogram {
		c := entry.Color
		fc := float64(entry.Count)
		n += entry.Count
		fsum = fsum.Add(c.Scale(fc))
		fsum2 = fsum2.Add(c.Mul(c).Scale(fc))
	}

	if n == 0 {
		return &quantizerNode{histogram: histogram}
	}

	mean := fsum.Scale(1.0 / float64(n))
	vc := fsum2.Sub(fsum.Mul(mean))
	v := vc.X + vc.Y + vc.Z + vc.W

	// Sort by the channel with the largest variance component, breaking
	// ties R > G > B > A.
	switch {
	case vc.X >= vc.Y && vc.X >= vc.Z && vc.X >= vc.W:
		sort.SliceStable(histogram, func(i, j int) bool { return histogram[i].Color.X < histogram[j].Color.X })
	case vc.Y >= vc.Z && vc.Y >= vc.W:
		sort.SliceStable(histogram, func(i, j int) bool { return histogram[i].Color.Y < histogram[j].Color.Y })
	case vc.Z >= vc.W:
		sort.SliceStable(histogram, func(i, j int) bool { return histogram[i].Color.Z < histogram[j].Color.Z })
	default:
		sort.SliceStable(histogram, func(i, j int) bool { return histogram[i].Color.W < histogram[j].Color.W })
	}

	// Approximate the dominant eigenvector of the covariance without an
	// explicit eigen solve: accumulate mean-relative offsets, flipping each
	// one so it points the same way as the running total.
	var dir Vec4
	for _, entry := range histogram {
		tmp := entry.Color.Sub(mean).Scale(float64(entry.Count))
		if tmp.Dot(dir) < 0 {
			tmp = tmp.Scale(-1)
		}
		dir = dir.Add(tmp)
	}
	if s := dir.Abs(); s >= 1e-9 {
		dir = dir.Scale(1.0 / s)
	}

	sort.SliceStable(histogram, func(i, j int) bool {
		return histogram[i].Color.Dot(dir) < histogram[j].Color.Dot(dir)
	})

	// Scan for the split position that minimizes the total within-cluster
	// variance of the two halves.
	var sum, sum2 Vec4
	vdif := -v
	split := 0
	n2 := 0
	for i, entry := range histogram {
		c := entry.Color
		fc := float64(entry.Count)
		n2 += entry.Count
		sum = sum.Add(c.Scale(fc))
		sum2 = sum2.Add(c.Mul(c).Scale(fc))

		if n2 < n {
			left := sum2.Sub(sum.Mul(sum).Scale(1.0 / float64(n2)))
			difSum := fsum.Sub(sum)
			right := fsum2.Sub(sum2).Sub(difSum.Mul(difSum).Scale(1.0 / float64(n-n2)))
			nv := left.X + left.Y + left.Z + left.W + right.X + right.Y + right.Z + right.W
			if -nv > vdif {
				vdif = -nv
				split = i + 1
			}
		}
	}

	return &quantizerNode{histogram: histogram, mean: mean, vdif: vdif + v, split: split}
}

// Quantizer holds the forest of buckets being grown one split at a time. It
// starts with a single bucket containing the full histogram; each Step picks
// the bucket with the highest split gain and splits it into two, growing
// NumColors by exactly one.
//
// # Examples
//
//	q := exoquant.NewQuantizer(hist, colorspace)
//	for q.NumColors() < 256 {
//		q.Step()
//	}
//	palette := q.Colors(colorspace)
type Quantizer struct {
	nodes []*quantizerNode
}

// NewQuantizer creates a Quantizer state for the given histogram, projected
// into quantization space under cs.
func NewQuantizer(hist *Histogram, cs ColorSpace) *Quantizer {
	return &Quantizer{nodes: []*quantizerNode{newQuantizerNode(hist.ToColorCounts(cs))}}
}

// CreatePalette is a shortcut that directly creates a palette of numColors
// entries from a histogram, without any K-means refinement.
func CreatePalette(hist *Histogram, cs ColorSpace, numColors int) []Color {
	q := NewQuantizer(hist, cs)
	for q.NumColors() < numColors {
		q.Step()
	}
	return q.Colors(cs)
}

// NumColors returns the current number of buckets, 1 after construction and
// incremented by exactly one on every call to Step.
func (q *Quantizer) NumColors() int {
	return len(q.nodes)
}

// Step splits the bucket with the highest split gain in two, increasing
// NumColors by one. Ties are broken in favor of the earliest bucket.
func (q *Quantizer) Step() {
	bestI := 0
	bestE := math.Inf(-1)
	for i, node := range q.nodes {
		if node.vdif > bestE {
			bestE = node.vdif
			bestI = i
		}
	}

	node := q.nodes[bestI]
	q.nodes = append(q.nodes[:bestI], q.nodes[bestI+1:]...)

	left := node.histogram[:node.split]
	right := node.histogram[node.split:]
	q.nodes = append(q.nodes, newQuantizerNode(left), newQuantizerNode(right))
}

// Colors returns the palette the current Quantizer state represents, mapping
// each bucket's mean back through cs to an RGBA8 color.
func (q *Quantizer) Colors(cs ColorSpace) []Color {
	out := make([]Color, len(q.nodes))
	for i, node := range q.nodes {
		out[i] = cs.FromFloat(node.mean)
	}
	return out
}

// Optimize runs numIterations of K-means refinement (via optimizer) on the
// current quantizer state and returns the resulting Quantizer, re-bucketing
// the flattened histogram by nearest-color assignment to the refined means.
// If the optimizer is a no-op, Optimize returns q unchanged.
func (q *Quantizer) Optimize(optimizer Optimizer, numIterations int) *Quantizer {
	if optimizer.IsNoop() {
		return q
	}

	colors := make([]Vec4, len(q.nodes))
	var flat []ColorCount
	for i, node := range q.nodes {
		colors[i] = node.mean
		flat = append(flat, node.histogram...)
	}

	for i := 0; i < numIterations; i++ {
		colors = optimizer.Step(colors, flat)
	}

	m := NewColorMapFromFloatColors(colors)
	buckets := make([][]ColorCount, len(colors))
	for _, cc := range flat {
		idx := m.FindNearest(cc.Color)
		buckets[idx] = append(buckets[idx], cc)
	}

	nodes := make([]*quantizerNode, len(buckets))
	for i, h := range buckets {
		nodes[i] = newQuantizerNode(h)
	}
	return &Quantizer{nodes: nodes}
}
