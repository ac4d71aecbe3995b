package interfaces

import "context"

// Rasterizer converts a paginated document into one raster image per page.
// Implementations typically shell out to an external toolchain, so Validate
// must be called once before any rasterization is attempted.
type Rasterizer interface {
	// Validate checks that the required external binaries are present.
	// A non-nil error means rasterization cannot work at all and the
	// whole run should abort before dispatching any work.
	Validate() error

	// Rasterize renders every page of the document at path into image
	// files named with the given output prefix. It returns the produced
	// file paths ordered by page number.
	Rasterize(ctx context.Context, path string, outputPrefix string) ([]string, error)
}
