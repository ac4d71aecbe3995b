package workbook

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/xuri/excelize/v2"

	coreerrors "xlthumbs/core/errors"
)

// writeTestWorkbook creates an xlsx fixture with the given hyperlinked cells.
func writeTestWorkbook(t *testing.T, links map[string]string, values map[string]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for cell, value := range values {
		if err := f.SetCellValue("Sheet1", cell, value); err != nil {
			t.Fatalf("SetCellValue(%s) failed: %v", cell, err)
		}
	}
	for cell, url := range links {
		if err := f.SetCellValue("Sheet1", cell, url); err != nil {
			t.Fatalf("SetCellValue(%s) failed: %v", cell, err)
		}
		if err := f.SetCellHyperLink("Sheet1", cell, url, "External"); err != nil {
			t.Fatalf("SetCellHyperLink(%s) failed: %v", cell, err)
		}
	}

	path := filepath.Join(t.TempDir(), "input.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	return path
}

// writeTestImage creates a small PNG file and returns its path.
func writeTestImage(t *testing.T, name string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 180, 120))
	for x := 0; x < 180; x++ {
		for y := 0; y < 120; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), name)
	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create image file: %v", err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestWorkbook_HyperlinksByRow(t *testing.T) {
	path := writeTestWorkbook(t,
		map[string]string{
			"C1": "https://example.com/c1.jpg",
			"A1": "https://example.com/a1.png",
			"B3": "https://example.com/b3.pdf",
		},
		map[string]interface{}{
			"B1": "no link here",
			"A2": "plain text",
		},
	)

	wb, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	byRow, err := wb.HyperlinksByRow()
	if err != nil {
		t.Fatalf("HyperlinksByRow failed: %v", err)
	}

	if len(byRow) != 2 {
		t.Fatalf("expected links in 2 rows, got %d", len(byRow))
	}

	row1 := byRow[1]
	if len(row1) != 2 {
		t.Fatalf("expected 2 links in row 1, got %d", len(row1))
	}
	if row1[0].Column != 1 || row1[0].URL != "https://example.com/a1.png" {
		t.Errorf("row 1 first link = col %d url %q, want col 1 a1.png", row1[0].Column, row1[0].URL)
	}
	if row1[1].Column != 3 || row1[1].URL != "https://example.com/c1.jpg" {
		t.Errorf("row 1 second link = col %d url %q, want col 3 c1.jpg", row1[1].Column, row1[1].URL)
	}

	row3 := byRow[3]
	if len(row3) != 1 || row3[0].Column != 2 {
		t.Errorf("row 3 links = %+v, want one link at column 2", row3)
	}
}

func TestWorkbook_HyperlinksByRow_ValueLessCell(t *testing.T) {
	// A hyperlink can be attached to a cell that holds no value; such
	// cells have no sheetData entry and never appear in the value grid.
	f := excelize.NewFile()
	if err := f.SetCellValue("Sheet1", "A1", "inventory"); err != nil {
		t.Fatalf("SetCellValue failed: %v", err)
	}
	if err := f.SetCellHyperLink("Sheet1", "C5", "https://example.com/bare.jpg", "External"); err != nil {
		t.Fatalf("SetCellHyperLink failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "input.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	f.Close()

	wb, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	byRow, err := wb.HyperlinksByRow()
	if err != nil {
		t.Fatalf("HyperlinksByRow failed: %v", err)
	}

	row5 := byRow[5]
	if len(row5) != 1 {
		t.Fatalf("row 5 hyperlink-only cell: got %d links, want 1 (byRow=%v)", len(row5), byRow)
	}
	if row5[0].Column != 3 || row5[0].URL != "https://example.com/bare.jpg" {
		t.Errorf("row 5 link = col %d url %q, want col 3 bare.jpg", row5[0].Column, row5[0].URL)
	}
}

func TestWorkbook_LinksFromRefs_BadRefPropagates(t *testing.T) {
	path := writeTestWorkbook(t, nil, map[string]interface{}{"A1": "x"})

	wb, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	if _, err := wb.linksFromRefs([]string{"not a cell"}); err == nil {
		t.Error("expected a malformed hyperlink reference to surface as an error")
	}
}

func TestWorkbook_HyperlinksByRow_Empty(t *testing.T) {
	path := writeTestWorkbook(t, nil, map[string]interface{}{"A1": "just text"})

	wb, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	byRow, err := wb.HyperlinksByRow()
	if err != nil {
		t.Fatalf("HyperlinksByRow failed: %v", err)
	}
	if len(byRow) != 0 {
		t.Errorf("expected no links, got %d rows", len(byRow))
	}
}

func TestWorkbook_AddThumbnail(t *testing.T) {
	path := writeTestWorkbook(t, nil, map[string]interface{}{"A1": "x"})
	imgPath := writeTestImage(t, "thumb.png")

	wb, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	if err := wb.AddThumbnail(2, 3, imgPath); err != nil {
		t.Fatalf("AddThumbnail failed: %v", err)
	}

	pics, err := wb.file.GetPictures(wb.sheet, "C2")
	if err != nil {
		t.Fatalf("GetPictures failed: %v", err)
	}
	if len(pics) != 1 {
		t.Errorf("expected 1 picture at C2, got %d", len(pics))
	}
}

func TestWorkbook_AddThumbnail_Concurrent(t *testing.T) {
	path := writeTestWorkbook(t, nil, map[string]interface{}{"A1": "x"})
	imgPath := writeTestImage(t, "thumb.png")

	wb, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(col int) {
			defer wg.Done()
			if err := wb.AddThumbnail(1, col, imgPath); err != nil {
				t.Errorf("AddThumbnail(col %d) failed: %v", col, err)
			}
		}(i + 2)
	}
	wg.Wait()
}

func TestWorkbook_NormalizeDimensions(t *testing.T) {
	path := writeTestWorkbook(t, nil, map[string]interface{}{
		"A1": "a",
		"C2": "c",
	})

	wb, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	if err := wb.NormalizeDimensions(); err != nil {
		t.Fatalf("NormalizeDimensions failed: %v", err)
	}

	for _, colName := range []string{"A", "B", "C"} {
		width, err := wb.file.GetColWidth(wb.sheet, colName)
		if err != nil {
			t.Fatalf("GetColWidth(%s) failed: %v", colName, err)
		}
		if width != UniformColWidth {
			t.Errorf("column %s width = %v, want %v", colName, width, UniformColWidth)
		}
	}

	for row := 1; row <= 2; row++ {
		height, err := wb.file.GetRowHeight(wb.sheet, row)
		if err != nil {
			t.Fatalf("GetRowHeight(%d) failed: %v", row, err)
		}
		if height != UniformRowHeight {
			t.Errorf("row %d height = %v, want %v", row, height, UniformRowHeight)
		}
	}
}

func TestWorkbook_SaveAndReopen(t *testing.T) {
	path := writeTestWorkbook(t, map[string]string{"A1": "https://example.com/a.jpg"}, nil)

	wb, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	outPath := filepath.Join(t.TempDir(), "out.xlsx")
	if err := wb.Save(outPath); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reopened, err := excelize.OpenFile(outPath)
	if err != nil {
		t.Fatalf("output not re-openable: %v", err)
	}
	defer reopened.Close()
}

func TestWorkbook_Save_PersistError(t *testing.T) {
	path := writeTestWorkbook(t, nil, map[string]interface{}{"A1": "x"})

	wb, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer wb.Close()

	err = wb.Save(filepath.Join(t.TempDir(), "missing", "nested", "out.xlsx"))
	if err == nil {
		t.Fatal("expected save to a missing directory to fail")
	}
	if !coreerrors.IsPersist(err) {
		t.Errorf("expected PersistError, got %T: %v", err, err)
	}
}
