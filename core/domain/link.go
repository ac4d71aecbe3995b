// ABOUTME: Link domain model representing a hyperlink found in a spreadsheet cell
// ABOUTME: Provides URL extension parsing and media kind classification

package domain

import (
	"net/url"
	"path"
	"strings"
)

// Link represents a hyperlink attached to a spreadsheet cell.
type Link struct {
	// Row is the 1-based row of the originating cell
	Row int

	// Column is the 1-based column of the originating cell
	Column int

	// URL is the hyperlink target
	URL string
}

// Kind classifies a link target by its file extension.
type Kind int

const (
	// KindUnrecognized means the URL path carries no extension
	KindUnrecognized Kind = iota
	// KindVideo means a video format that is skipped without a thumbnail
	KindVideo
	// KindPDF means a paginated document rasterized one image per page
	KindPDF
	// KindImage means a raster image embedded directly
	KindImage
	// KindUnsupported means an extension outside the known sets
	KindUnsupported
)

var videoExts = map[string]bool{
	"mp4": true,
	"avi": true,
	"mov": true,
	"mkv": true,
	"wmv": true,
}

var imageExts = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
}

// Ext returns the lowercase file extension of the link's URL path,
// without the leading dot. Query strings and fragments are ignored.
// Returns an empty string when the path has no extension.
func (l Link) Ext() string {
	parsed, err := url.Parse(l.URL)
	if err != nil {
		return ""
	}
	ext := path.Ext(parsed.Path)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Classify maps a file extension to its media kind.
func Classify(ext string) Kind {
	switch {
	case ext == "":
		return KindUnrecognized
	case videoExts[ext]:
		return KindVideo
	case ext == "pdf":
		return KindPDF
	case imageExts[ext]:
		return KindImage
	default:
		return KindUnsupported
	}
}

// IsValid reports whether the link carries a usable cell position and target.
func (l Link) IsValid() bool {
	return l.Row > 0 && l.Column > 0 && l.URL != ""
}
