package exoquant

// SortPalette reorders palette so that colors adjacent in image (neighboring
// pixels, wrapping from one row's last pixel to the next row's first) tend
// to sit at adjacent palette indices too. It returns the reordered palette
// and the indexed image rewritten to match. Mostly cosmetic: a palette
// displayed as a swatch strip, or an ordered-dithered image viewed at low
// bit depth, looks tidier when visually similar colors are index-adjacent.
func SortPalette(palette []Color, image []uint8) ([]Color, []uint8) {
	numColors := len(palette)
	counts := make([]int, numColors)
	neighbors := make([][]int, numColors)
	for i := range neighbors {
		neighbors[i] = make([]int, numColors)
	}

	lastIndex := 0
	for _, b := range image {
		index := int(b)
		counts[index]++
		neighbors[lastIndex][index]++
		neighbors[index][lastIndex]++
		lastIndex = index
	}

	bestIndex := 0
	bestCount := 0
	for index, count := range counts {
		if count > bestCount {
			bestIndex = index
			bestCount = count
		}
	}

	mapping := []int{bestIndex}
	available := make([]int, 0, numColors-1)
	for i := 0; i < numColors; i++ {
		if i != bestIndex {
			available = append(available, i)
		}
	}

	prevIndex := bestIndex
	for len(available) > 0 {
		bestIndex := available[0]
		bestCount := 0
		for _, index := range available {
			if count := neighbors[prevIndex][index]; count > bestCount {
				bestIndex = index
				bestCount = count
			}
		}

		kept := available[:0]
		for _, i := range available {
			if i != bestIndex {
				kept = append(kept, i)
			}
		}
		available = kept

		mapping = append(mapping, bestIndex)
		prevIndex = bestIndex
	}

	newPalette := make([]Color, numColors)
	for a, i := range mapping {
		newPalette[a] = palette[i]
	}

	reverseMapping := make([]uint8, numColors)
	for a, b := range mapping {
		reverseMapping[b] = uint8(a)
	}

	newImage := make([]uint8, len(image))
	for i, idx := range image {
		newImage[i] = reverseMapping[idx]
	}

	return newPalette, newImage
}
