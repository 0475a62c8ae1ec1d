package exoquant

import (
	"math"
	"sort"
)

// ColorMap is a k-d tree over a fixed palette plus precomputed per-entry
// neighbor data, used for nearest-color lookups during remapping and
// dithering.
type ColorMap struct {
	tree             *kdNode
	neighborDistance []float64
	neighbors        [][]int
	colors           []Vec4
}

type kdNode struct {
	midPoint Vec4
	index    int
	normal   Vec4
	left     *kdNode
	right    *kdNode
}

func newKDNode(indices []int, colors []Vec4) *kdNode {
	var sum, sum2 Vec4
	for _, i := range indices {
		c := colors[i]
		sum = sum.Add(c)
		sum2 = sum2.Add(c.Mul(c))
	}
	n := float64(len(indices))
	vr := sum2.Sub(sum.Mul(sum).Scale(1.0 / n))

	var normal Vec4
	switch {
	case vr.X > vr.Y && vr.X > vr.Z && vr.X > vr.W:
		normal = Vec4{X: 1}
	case vr.Y > vr.Z && vr.Y > vr.W:
		normal = Vec4{Y: 1}
	case vr.Z > vr.W:
		normal = Vec4{Z: 1}
	default:
		normal = Vec4{W: 1}
	}

	sort.SliceStable(indices, func(a, b int) bool {
		return colors[indices[a]].Dot(normal) < colors[indices[b]].Dot(normal)
	})

	mid := len(indices) / 2
	var left, right *kdNode
	if mid > 0 {
		left = newKDNode(append([]int(nil), indices[:mid]...), colors)
	}
	if mid+1 < len(indices) {
		right = newKDNode(append([]int(nil), indices[mid+1:]...), colors)
	}

	return &kdNode{
		midPoint: colors[indices[mid]],
		index:    indices[mid],
		normal:   normal,
		left:     left,
		right:    right,
	}
}

type kdNearest struct {
	index    int
	distance float64
	found    bool
}

func (n *kdNode) findNearest(needle Vec4, limit float64, ignoreIndex int) kdNearest {
	var result kdNearest

	diff := needle.Sub(n.midPoint)
	distance := math.Sqrt(diff.Dot(diff))

	if distance < limit && n.index != ignoreIndex {
		limit = distance
		result = kdNearest{index: n.index, distance: distance, found: true}
	}

	dot := diff.Dot(n.normal)
	if dot <= 0 {
		if n.left != nil {
			if nearest := n.left.findNearest(needle, limit, ignoreIndex); nearest.found {
				limit = nearest.distance
				result = nearest
			}
		}
		if -dot < limit && n.right != nil {
			if nearest := n.right.findNearest(needle, limit, ignoreIndex); nearest.found {
				result = nearest
			}
		}
	} else {
		if n.right != nil {
			if nearest := n.right.findNearest(needle, limit, ignoreIndex); nearest.found {
				limit = nearest.distance
				result = nearest
			}
		}
		if dot < limit && n.left != nil {
			if nearest := n.left.findNearest(needle, limit, ignoreIndex); nearest.found {
				result = nearest
			}
		}
	}

	return result
}

// occludes reports whether occluder lies strictly between origin and target
// in the sense that its Voronoi-ish half-space swallows target: origin's
// view of target is "shadowed" by occluder, so occluder should suppress
// target from origin's neighbor list.
func occludes(origin, occluder, target Vec4) bool {
	dir := occluder.Sub(origin)
	return dir.Dot(dir)*0.5 <= target.Sub(origin).Dot(dir)
}

// NewColorMap builds a ColorMap from a palette and the ColorSpace to project
// it through.
func NewColorMap(palette []Color, cs ColorSpace) *ColorMap {
	colors := make([]Vec4, len(palette))
	for i, c := range palette {
		colors[i] = cs.ToFloat(c)
	}
	return NewColorMapFromFloatColors(colors)
}

// NewColorMapFromFloatColors builds a ColorMap directly from quantization-space
// colors, skipping the RGBA8 round trip.
func NewColorMapFromFloatColors(colors []Vec4) *ColorMap {
	indices := make([]int, len(colors))
	for i := range colors {
		indices[i] = i
	}
	tree := newKDNode(indices, colors)

	neighborDistance := make([]float64, len(colors))
	for i, c := range colors {
		nearest := tree.findNearest(c, math.MaxFloat64, i)
		if nearest.found {
			neighborDistance[i] = nearest.distance
		} else {
			neighborDistance[i] = math.MaxFloat64
		}
	}

	neighbors := make([][]int, len(colors))
	for i, c := range colors {
		var list []int
		for j, c2 := range colors {
			if i == j {
				continue
			}
			occluded := false
			for _, k := range list {
				if occludes(c, colors[k], c2) {
					occluded = true
					break
				}
			}
			if occluded {
				continue
			}
			kept := list[:0]
			for _, k := range list {
				if !occludes(c, c2, colors[k]) {
					kept = append(kept, k)
				}
			}
			list = append(kept, j)
		}
		neighbors[i] = list
	}

	return &ColorMap{tree: tree, neighborDistance: neighborDistance, neighbors: neighbors, colors: colors}
}

// FindNearest returns the index of the palette entry nearest to color.
func (m *ColorMap) FindNearest(color Vec4) int {
	nearest := m.tree.findNearest(color, math.MaxFloat64, -1)
	if nearest.found {
		return nearest.index
	}
	return 0
}

// NeighborDistance returns the distance from palette entry index to its
// nearest neighbor in the palette.
func (m *ColorMap) NeighborDistance(index int) float64 {
	return m.neighborDistance[index]
}

// Neighbors returns the indices of the palette entries visually adjacent to
// index, after removing entries occluded by a closer one.
func (m *ColorMap) Neighbors(index int) []int {
	return m.neighbors[index]
}

// FloatColor returns the quantization-space color for a palette index.
func (m *ColorMap) FloatColor(index int) Vec4 {
	return m.colors[index]
}

// NumColors returns the number of palette entries in the map.
func (m *ColorMap) NumColors() int {
	return len(m.colors)
}
