package render

// maxGridColumns caps the amenity grid width.
const maxGridColumns = 4

// GridColumns returns the amenity grid column count for n items on a page.
// Sparse pages use fewer, wider columns so a lone overflow item is not
// dwarfed by empty cells.
func GridColumns(n int) int {
	switch {
	case n <= 1:
		return 1
	case n <= maxGridColumns:
		return n
	case n <= 6:
		return 3
	default:
		return maxGridColumns
	}
}
