package exoquant

import "math"

// Optimizer refines a set of palette colors against a histogram over one or
// more iterations, e.g. K-means clustering.
type Optimizer interface {
	// Step runs a single refinement pass, returning the new colors.
	Step(colors []Vec4, histogram []ColorCount) []Vec4

	// IsNoop reports whether Step is the identity, letting callers skip
	// the ColorMap rebuild and histogram rebucketing Optimize otherwise
	// does around it.
	IsNoop() bool
}

// NoneOptimizer performs no refinement; Step returns its input unchanged.
type NoneOptimizer struct{}

func (NoneOptimizer) Step(colors []Vec4, _ []ColorCount) []Vec4 { return colors }
func (NoneOptimizer) IsNoop() bool                              { return true }

type kMeansCluster struct {
	sum    Vec4
	weight float64
}

// KMeans is standard weighted K-means: every histogram entry is assigned to
// its nearest palette color, and each color is replaced by the weighted
// centroid of the entries assigned to it.
type KMeans struct{}

func (KMeans) Step(colors []Vec4, histogram []ColorCount) []Vec4 {
	m := NewColorMapFromFloatColors(colors)
	clusters := make([]kMeansCluster, len(colors))
	for _, entry := range histogram {
		index := m.FindNearest(entry.Color)
		fc := float64(entry.Count)
		clusters[index].sum = clusters[index].sum.Add(entry.Color.Scale(fc))
		clusters[index].weight += fc
	}
	out := make([]Vec4, len(colors))
	for i, cluster := range clusters {
		if cluster.weight > 0 {
			out[i] = cluster.sum.Scale(1.0 / cluster.weight)
		} else {
			out[i] = colors[i]
		}
	}
	return out
}

func (KMeans) IsNoop() bool { return false }

// WeightedKMeans is a fringe-preserving variant of K-means: each histogram
// entry is weighted by how much color error remains after repeatedly
// "reflecting" it off its nearest neighbor colors. Entries near the edge of
// their cluster (where that reflection doesn't converge) pull harder on the
// cluster's centroid than entries deep inside it, which keeps outlier colors
// from being smoothed away.
type WeightedKMeans struct{}

func (WeightedKMeans) Step(colors []Vec4, histogram []ColorCount) []Vec4 {
	m := NewColorMapFromFloatColors(colors)
	clusters := make([]kMeansCluster, len(colors))

	for _, entry := range histogram {
		index := m.FindNearest(entry.Color)
		neighbors := m.Neighbors(index)

		var errorSum Vec4
		color := entry.Color
		for i := 0; i < 4; i++ {
			bestI := 0
			bestError := math.MaxFloat64
			for _, n := range neighbors {
				diff := color.Sub(colors[n])
				e := diff.Abs()
				if e < bestError {
					bestI = n
					bestError = e
				}
			}
			diff := color.Sub(colors[bestI])
			errorSum = errorSum.Add(diff)
			color = entry.Color.Add(diff)
		}

		weight := float64(entry.Count) * errorSum.Dot(errorSum)
		clusters[index].sum = clusters[index].sum.Add(entry.Color.Scale(weight))
		clusters[index].weight += weight
	}

	out := make([]Vec4, len(colors))
	for i, cluster := range clusters {
		if cluster.weight > 0 {
			out[i] = cluster.sum.Scale(1.0 / cluster.weight)
		} else {
			out[i] = colors[i]
		}
	}
	return out
}

func (WeightedKMeans) IsNoop() bool { return false }
