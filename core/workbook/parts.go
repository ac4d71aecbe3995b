// ABOUTME: Minimal OOXML part parsing to enumerate a sheet's hyperlink references
// ABOUTME: excelize exposes hyperlinks per cell only, so the refs are read from the raw part

package workbook

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// worksheetPart carries just the hyperlink references of one sheet.
type worksheetPart struct {
	Hyperlinks []struct {
		Ref string `xml:"ref,attr"`
	} `xml:"hyperlinks>hyperlink"`
}

// workbookPart maps sheet names to their relationship ids.
type workbookPart struct {
	Sheets []struct {
		Name string `xml:"name,attr"`
		RID  string `xml:"id,attr"`
	} `xml:"sheets>sheet"`
}

// relationshipsPart maps relationship ids to part targets.
type relationshipsPart struct {
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// hyperlinkRefs returns every hyperlink cell reference on the active
// sheet, read from the workbook's serialized form. A cell can carry a
// hyperlink without any value, so the value grid cannot bound this scan.
func (w *Workbook) hyperlinkRefs() ([]string, error) {
	w.mu.Lock()
	buf, err := w.file.WriteToBuffer()
	w.mu.Unlock()
	if err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		return nil, err
	}

	partPath, err := worksheetPath(zr, w.sheet)
	if err != nil {
		return nil, err
	}

	var part worksheetPart
	if err := readPart(zr, partPath, &part); err != nil {
		return nil, err
	}

	refs := make([]string, 0, len(part.Hyperlinks))
	for _, link := range part.Hyperlinks {
		refs = append(refs, link.Ref)
	}
	return refs, nil
}

// worksheetPath resolves a sheet name to its part path through the
// workbook relationships.
func worksheetPath(zr *zip.Reader, sheet string) (string, error) {
	var wb workbookPart
	if err := readPart(zr, "xl/workbook.xml", &wb); err != nil {
		return "", err
	}

	rid := ""
	for _, s := range wb.Sheets {
		if s.Name == sheet {
			rid = s.RID
			break
		}
	}
	if rid == "" {
		return "", fmt.Errorf("sheet %q not found in workbook part", sheet)
	}

	var rels relationshipsPart
	if err := readPart(zr, "xl/_rels/workbook.xml.rels", &rels); err != nil {
		return "", err
	}
	for _, rel := range rels.Relationships {
		if rel.ID != rid {
			continue
		}
		// Targets are relative to xl/ unless they start from the
		// package root.
		if strings.HasPrefix(rel.Target, "/") {
			return strings.TrimPrefix(rel.Target, "/"), nil
		}
		return "xl/" + rel.Target, nil
	}
	return "", fmt.Errorf("no worksheet part for sheet %q", sheet)
}

// readPart decodes one XML part of the workbook archive.
func readPart(zr *zip.Reader, name string, v interface{}) error {
	f, err := zr.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return err
	}
	return xml.Unmarshal(data, v)
}
