// ABOUTME: Poppler-backed rasterizer converting PDF pages into JPEG images via pdftoppm
// ABOUTME: Validates the external toolchain once before any conversion is dispatched

package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	coreerrors "xlthumbs/core/errors"
)

const (
	popplerRasterTool = "pdftoppm"
	popplerInfoTool   = "pdfinfo"
)

// PopplerRasterizer renders PDF pages by shelling out to poppler's
// pdftoppm. An empty binDir resolves the tools from PATH.
type PopplerRasterizer struct {
	binDir string
}

// NewPopplerRasterizer creates a rasterizer using the poppler toolchain
// installed at binDir, or on PATH when binDir is empty.
func NewPopplerRasterizer(binDir string) *PopplerRasterizer {
	return &PopplerRasterizer{binDir: binDir}
}

// Validate checks that pdftoppm and pdfinfo are present. Called once
// before any work is dispatched; a failure aborts the whole run.
func (r *PopplerRasterizer) Validate() error {
	for _, tool := range []string{popplerRasterTool, popplerInfoTool} {
		if r.binDir == "" {
			if _, err := exec.LookPath(tool); err != nil {
				return &coreerrors.DependencyError{Tool: tool}
			}
			continue
		}
		if !toolExists(r.binDir, tool) {
			return &coreerrors.DependencyError{Tool: tool, Path: r.binDir}
		}
	}
	return nil
}

// Rasterize renders every page of the PDF at path into JPEG files named
// outputPrefix-<page>.jpg and returns their paths ordered by page number.
func (r *PopplerRasterizer) Rasterize(ctx context.Context, path string, outputPrefix string) ([]string, error) {
	cmd := exec.CommandContext(ctx, r.toolPath(popplerRasterTool), "-jpeg", path, outputPrefix)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("pdftoppm failed: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("pdftoppm failed: %w", err)
	}

	pages, err := collectPages(outputPrefix)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no pages for %s", path)
	}
	return pages, nil
}

// toolPath resolves a poppler tool name against the configured directory.
func (r *PopplerRasterizer) toolPath(tool string) string {
	if r.binDir == "" {
		return tool
	}
	p := filepath.Join(r.binDir, tool)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	// Windows installs ship suffixed binaries.
	return filepath.Join(r.binDir, tool+".exe")
}

// toolExists reports whether a tool binary is present in dir.
func toolExists(dir, tool string) bool {
	if _, err := os.Stat(filepath.Join(dir, tool)); err == nil {
		return true
	}
	if _, err := os.Stat(filepath.Join(dir, tool+".exe")); err == nil {
		return true
	}
	return false
}

// collectPages globs pdftoppm's output files for a prefix and orders them
// numerically by page. pdftoppm zero-pads page numbers, so lexical order
// is not trusted.
func collectPages(outputPrefix string) ([]string, error) {
	matches, err := filepath.Glob(outputPrefix + "-*.jpg")
	if err != nil {
		return nil, err
	}

	type page struct {
		num  int
		path string
	}
	pages := make([]page, 0, len(matches))
	for _, m := range matches {
		numPart := strings.TrimSuffix(strings.TrimPrefix(m, outputPrefix+"-"), ".jpg")
		num, err := strconv.Atoi(numPart)
		if err != nil {
			continue
		}
		pages = append(pages, page{num: num, path: m})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].num < pages[j].num })

	paths := make([]string, len(pages))
	for i, p := range pages {
		paths[i] = p.path
	}
	return paths, nil
}
