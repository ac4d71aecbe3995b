package interfaces

// ImageEmbedder places a rendered image into the spreadsheet at a cell.
// Implementations must be safe to call from multiple goroutines as long as
// no two callers target the same (row, column) slot.
type ImageEmbedder interface {
	// AddThumbnail attaches the image file at imagePath to the cell at
	// the given 1-based row and column.
	AddThumbnail(row, col int, imagePath string) error
}
