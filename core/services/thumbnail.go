// ABOUTME: Thumbnail service fetches one link target and converts it into embedded images
// ABOUTME: Classifies by URL extension, rasterizes PDFs per page, resizes to a fixed thumbnail size

package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"xlthumbs/core/domain"
	coreerrors "xlthumbs/core/errors"
	"xlthumbs/core/interfaces"
	"xlthumbs/core/workers"
)

const (
	// ThumbnailWidth is the stored pixel width of every embedded image.
	ThumbnailWidth = 180

	// ThumbnailHeight is the stored pixel height of every embedded image.
	// Both dimensions are hard-set; aspect ratio is not preserved.
	ThumbnailHeight = 120
)

// ThumbnailService turns one hyperlink into zero or more embedded
// thumbnails. Every failure is logged with row/column/url context and
// returned as the job's result; nothing propagates across goroutines.
type ThumbnailService struct {
	deps       interfaces.Dependencies
	rasterizer interfaces.Rasterizer
	embedder   interfaces.ImageEmbedder
	scratchDir string
}

// NewThumbnailService creates a thumbnail service writing intermediate
// files into scratchDir.
func NewThumbnailService(
	deps interfaces.Dependencies,
	rasterizer interfaces.Rasterizer,
	embedder interfaces.ImageEmbedder,
	scratchDir string,
) *ThumbnailService {
	return &ThumbnailService{
		deps:       deps,
		rasterizer: rasterizer,
		embedder:   embedder,
		scratchDir: scratchDir,
	}
}

// Process implements workers.Processor. It fetches the link target,
// classifies it by extension, and embeds the resulting thumbnails
// starting at the job's reserved column. Returns the number of images
// embedded.
func (s *ThumbnailService) Process(ctx context.Context, job workers.ThumbnailJob) (int, error) {
	link := job.Link

	data, err := s.fetch(ctx, link)
	if err != nil {
		return 0, err
	}

	ext := link.Ext()
	switch domain.Classify(ext) {
	case domain.KindUnrecognized:
		s.deps.Logger.Warn("Unrecognized file type", s.linkFields(link, nil))
		return 0, &coreerrors.UnsupportedTypeError{URL: link.URL}

	case domain.KindVideo:
		s.deps.Logger.Info("Skipping video file", s.linkFields(link, nil))
		return 0, nil

	case domain.KindPDF:
		return s.processPDF(ctx, job, data, ext)

	case domain.KindImage:
		return s.processImage(job, data, ext)

	default:
		s.deps.Logger.Warn("Unsupported file type", s.linkFields(link, map[string]interface{}{
			"ext": ext,
		}))
		return 0, &coreerrors.UnsupportedTypeError{URL: link.URL, Ext: ext}
	}
}

// fetch downloads the link target and returns the raw bytes.
func (s *ThumbnailService) fetch(ctx context.Context, link domain.Link) ([]byte, error) {
	resp, err := s.deps.HTTPClient.Get(ctx, link.URL)
	if err != nil {
		fetchErr := &coreerrors.FetchError{URL: link.URL, Err: err}
		s.deps.Logger.Error("Download failed", s.linkFields(link, map[string]interface{}{
			"error": err.Error(),
		}))
		return nil, fetchErr
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		fetchErr := &coreerrors.FetchError{URL: link.URL, StatusCode: resp.StatusCode()}
		s.deps.Logger.Error("Download failed", s.linkFields(link, map[string]interface{}{
			"status": resp.StatusCode(),
		}))
		return nil, fetchErr
	}

	data, err := io.ReadAll(resp.Body())
	if err != nil {
		fetchErr := &coreerrors.FetchError{URL: link.URL, Err: err}
		s.deps.Logger.Error("Download failed", s.linkFields(link, map[string]interface{}{
			"error": err.Error(),
		}))
		return nil, fetchErr
	}

	s.deps.Logger.Debug("Downloaded", s.linkFields(link, map[string]interface{}{
		"bytes":        len(data),
		"content_type": resp.Header("Content-Type"),
	}))
	return data, nil
}

// processImage writes the raster image to scratch, resizes it to the
// fixed thumbnail size, and embeds it at the reserved column.
func (s *ThumbnailService) processImage(job workers.ThumbnailJob, data []byte, ext string) (int, error) {
	link := job.Link

	path := s.scratchPath(link, ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, s.processingError(link, err)
	}

	if err := resizeToThumbnail(path); err != nil {
		return 0, s.processingError(link, err)
	}

	if err := s.embedder.AddThumbnail(link.Row, job.TargetColumn, path); err != nil {
		return 0, s.processingError(link, err)
	}
	return 1, nil
}

// processPDF writes the document to scratch, rasterizes every page, and
// embeds page k at column TargetColumn+k-1.
func (s *ThumbnailService) processPDF(ctx context.Context, job workers.ThumbnailJob, data []byte, ext string) (int, error) {
	link := job.Link

	path := s.scratchPath(link, ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, s.processingError(link, err)
	}

	prefix := filepath.Join(s.scratchDir, fmt.Sprintf("row%d_col%d_p", link.Row, link.Column))
	pages, err := s.rasterizer.Rasterize(ctx, path, prefix)
	if err != nil {
		return 0, s.processingError(link, err)
	}

	for i, pagePath := range pages {
		if err := resizeToThumbnail(pagePath); err != nil {
			return i, s.processingError(link, err)
		}
		if err := s.embedder.AddThumbnail(link.Row, job.TargetColumn+i, pagePath); err != nil {
			return i, s.processingError(link, err)
		}
	}
	return len(pages), nil
}

// scratchPath names a downloaded artifact after its originating cell.
func (s *ThumbnailService) scratchPath(link domain.Link, ext string) string {
	return filepath.Join(s.scratchDir, fmt.Sprintf("row%d_col%d.%s", link.Row, link.Column, ext))
}

// processingError logs a recovered conversion failure with link context.
func (s *ThumbnailService) processingError(link domain.Link, err error) error {
	s.deps.Logger.Error("Processing error", s.linkFields(link, map[string]interface{}{
		"error": err.Error(),
	}))
	return coreerrors.WrapError(err, "processing "+link.URL)
}

// linkFields builds the standard row/column/url log fields for a link.
func (s *ThumbnailService) linkFields(link domain.Link, extra map[string]interface{}) map[string]interface{} {
	fields := map[string]interface{}{
		"url": link.URL,
		"row": link.Row,
		"col": link.Column,
	}
	for k, v := range extra {
		fields[k] = v
	}
	return fields
}

// resizeToThumbnail rewrites the image at path at exactly
// ThumbnailWidth×ThumbnailHeight pixels.
func resizeToThumbnail(path string) error {
	img, err := imaging.Open(path)
	if err != nil {
		return err
	}
	thumb := imaging.Resize(img, ThumbnailWidth, ThumbnailHeight, imaging.Lanczos)
	return imaging.Save(thumb, path)
}
