// ABOUTME: Workbook wraps an excelize file as the mutable spreadsheet document model
// ABOUTME: Provides hyperlink scanning, serialized image embedding, and dimension normalization

package workbook

import (
	"sort"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"xlthumbs/core/domain"
	coreerrors "xlthumbs/core/errors"
)

const (
	// UniformColWidth is the column width applied across the used range
	// once all thumbnails are embedded.
	UniformColWidth = 25.0

	// UniformRowHeight is the row height applied across the used range
	// once all thumbnails are embedded.
	UniformRowHeight = 120.0
)

// Workbook is the in-memory document model for one run. The underlying
// excelize file is not thread-safe, so every mutation is serialized
// through a single mutex.
type Workbook struct {
	mu    sync.Mutex
	file  *excelize.File
	sheet string
}

// Open loads the workbook at path and targets its active sheet.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}

	return &Workbook{
		file:  f,
		sheet: f.GetSheetName(f.GetActiveSheetIndex()),
	}, nil
}

// Sheet returns the name of the sheet being processed.
func (w *Workbook) Sheet() string {
	return w.sheet
}

// HyperlinksByRow returns a mapping from row number to the links found
// in that row, ordered ascending by column, covering every hyperlinked
// cell of the active sheet. The cell references come from the sheet's
// hyperlink list rather than the value grid: a cell can carry a
// hyperlink without holding any value, and such cells never show up in
// GetRows. The scan has no side effects and is deterministic for a
// fixed file.
func (w *Workbook) HyperlinksByRow() (map[int][]domain.Link, error) {
	refs, err := w.hyperlinkRefs()
	if err != nil {
		return nil, err
	}
	return w.linksFromRefs(refs)
}

// linksFromRefs resolves hyperlink cell references into link descriptors
// grouped by row. A range reference contributes its top-left cell.
func (w *Workbook) linksFromRefs(refs []string) (map[int][]domain.Link, error) {
	byRow := make(map[int][]domain.Link)
	for _, ref := range refs {
		cell, _, _ := strings.Cut(ref, ":")
		col, row, err := excelize.CellNameToCoordinates(cell)
		if err != nil {
			return nil, err
		}
		hasLink, target, err := w.file.GetCellHyperLink(w.sheet, cell)
		if err != nil {
			return nil, err
		}
		if !hasLink || target == "" {
			continue
		}
		byRow[row] = append(byRow[row], domain.Link{
			Row:    row,
			Column: col,
			URL:    target,
		})
	}

	for _, links := range byRow {
		sort.Slice(links, func(i, j int) bool { return links[i].Column < links[j].Column })
	}
	return byRow, nil
}

// AddThumbnail attaches the image file at imagePath to the cell at the
// given 1-based row and column. The image is embedded at its stored pixel
// size, so callers resize it before embedding. Safe for concurrent use.
func (w *Workbook) AddThumbnail(row, col int, imagePath string) error {
	cellName, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.AddPicture(w.sheet, cellName, imagePath, nil)
}

// NormalizeDimensions sets every used column's width and every used row's
// height to the uniform constants. Must run after all embedding completes.
func (w *Workbook) NormalizeDimensions() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	rows, err := w.file.GetRows(w.sheet)
	if err != nil {
		return err
	}

	maxCol := 0
	for _, row := range rows {
		if len(row) > maxCol {
			maxCol = len(row)
		}
	}

	for col := 1; col <= maxCol; col++ {
		colName, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := w.file.SetColWidth(w.sheet, colName, colName, UniformColWidth); err != nil {
			return err
		}
	}

	for rowNum := 1; rowNum <= len(rows); rowNum++ {
		if err := w.file.SetRowHeight(w.sheet, rowNum, UniformRowHeight); err != nil {
			return err
		}
	}

	return nil
}

// Save writes the document to the output path.
func (w *Workbook) Save(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.file.SaveAs(path); err != nil {
		return &coreerrors.PersistError{Path: path, Err: err}
	}
	return nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.file.Close()
}
