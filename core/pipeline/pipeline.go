// ABOUTME: Pipeline orchestrates one full run: scan, allocate, fetch in parallel, embed, save
// ABOUTME: Owns the scratch directory lifecycle and the pre-flight toolchain check

package pipeline

import (
	"context"
	"os"

	coreerrors "xlthumbs/core/errors"
	"xlthumbs/core/interfaces"
	"xlthumbs/core/links"
	"xlthumbs/core/services"
	"xlthumbs/core/workbook"
	"xlthumbs/core/workers"
)

// Options configures one pipeline run.
type Options struct {
	// InputPath is the spreadsheet to process
	InputPath string

	// OutputPath receives the illustrated spreadsheet
	OutputPath string

	// ScratchDir stages downloaded and rasterized files; created at run
	// start and removed recursively once the output is saved
	ScratchDir string

	// MaxWorkers bounds the fetch-and-convert pool
	MaxWorkers int
}

// Pipeline drives extraction, allocation, parallel conversion, dimension
// normalization, and persistence for a single workbook.
type Pipeline struct {
	deps       interfaces.Dependencies
	rasterizer interfaces.Rasterizer
	opts       Options
}

// New creates a pipeline with the given dependencies.
func New(deps interfaces.Dependencies, rasterizer interfaces.Rasterizer, opts Options) *Pipeline {
	return &Pipeline{
		deps:       deps,
		rasterizer: rasterizer,
		opts:       opts,
	}
}

// Run processes the input workbook end to end. Per-link failures are
// absorbed into the run summary; only the pre-flight toolchain check,
// workbook access, and the final save can fail the run.
func (p *Pipeline) Run(ctx context.Context) error {
	if err := os.MkdirAll(p.opts.ScratchDir, 0755); err != nil {
		return coreerrors.WrapError(err, "creating scratch directory")
	}

	// Fatal before any dispatch: without the rasterizer toolchain no PDF
	// link can be converted, so the run aborts with zero network calls.
	if err := p.rasterizer.Validate(); err != nil {
		return err
	}

	wb, err := workbook.Open(p.opts.InputPath)
	if err != nil {
		return coreerrors.WrapError(err, "opening workbook")
	}
	defer wb.Close()

	byRow, err := wb.HyperlinksByRow()
	if err != nil {
		return coreerrors.WrapError(err, "scanning hyperlinks")
	}

	plan := links.Plan(byRow)
	p.deps.Logger.Info("Processing workbook", map[string]interface{}{
		"input":   p.opts.InputPath,
		"rows":    len(byRow),
		"links":   len(plan),
		"workers": p.opts.MaxWorkers,
	})

	jobs := make([]workers.ThumbnailJob, len(plan))
	for i, alloc := range plan {
		jobs[i] = workers.ThumbnailJob{
			Link:         alloc.Link,
			TargetColumn: alloc.TargetColumn,
		}
	}

	svc := services.NewThumbnailService(p.deps, p.rasterizer, wb, p.opts.ScratchDir)
	pool := workers.NewPool(svc, p.opts.MaxWorkers)
	results := pool.Run(ctx, jobs)

	embedded, failed := 0, 0
	for _, r := range results {
		embedded += r.Images
		if r.Err != nil {
			failed++
		}
	}
	p.deps.Logger.Info("Embedding complete", map[string]interface{}{
		"links":  len(results),
		"images": embedded,
		"failed": failed,
	})

	if err := wb.NormalizeDimensions(); err != nil {
		return coreerrors.WrapError(err, "normalizing dimensions")
	}

	if err := wb.Save(p.opts.OutputPath); err != nil {
		return err
	}

	if err := os.RemoveAll(p.opts.ScratchDir); err != nil {
		p.deps.Logger.Warn("Failed to remove scratch directory", map[string]interface{}{
			"dir":   p.opts.ScratchDir,
			"error": err.Error(),
		})
	}

	return nil
}
