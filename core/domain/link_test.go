package domain

import "testing"

func TestLink_Ext(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "plain jpg",
			url:      "https://example.com/photo.jpg",
			expected: "jpg",
		},
		{
			name:     "uppercase extension is lowered",
			url:      "https://example.com/scan.PDF",
			expected: "pdf",
		},
		{
			name:     "query string ignored",
			url:      "https://example.com/photo.png?size=large&v=2",
			expected: "png",
		},
		{
			name:     "fragment ignored",
			url:      "https://example.com/doc.pdf#page=3",
			expected: "pdf",
		},
		{
			name:     "no extension",
			url:      "https://example.com/download",
			expected: "",
		},
		{
			name:     "trailing slash",
			url:      "https://example.com/files/",
			expected: "",
		},
		{
			name:     "dot in directory only",
			url:      "https://example.com/v1.2/download",
			expected: "",
		},
		{
			name:     "multiple dots",
			url:      "https://example.com/archive.tar.gz",
			expected: "gz",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Link{Row: 1, Column: 1, URL: tt.url}
			if got := l.Ext(); got != tt.expected {
				t.Errorf("Ext() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		ext      string
		expected Kind
	}{
		{"", KindUnrecognized},
		{"mp4", KindVideo},
		{"avi", KindVideo},
		{"mov", KindVideo},
		{"mkv", KindVideo},
		{"wmv", KindVideo},
		{"pdf", KindPDF},
		{"jpg", KindImage},
		{"jpeg", KindImage},
		{"png", KindImage},
		{"gif", KindUnsupported},
		{"docx", KindUnsupported},
		{"svg", KindUnsupported},
	}

	for _, tt := range tests {
		t.Run("ext_"+tt.ext, func(t *testing.T) {
			if got := Classify(tt.ext); got != tt.expected {
				t.Errorf("Classify(%q) = %v, want %v", tt.ext, got, tt.expected)
			}
		})
	}
}

func TestLink_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		link     Link
		expected bool
	}{
		{
			name:     "valid link",
			link:     Link{Row: 2, Column: 3, URL: "https://example.com/a.jpg"},
			expected: true,
		},
		{
			name:     "missing URL",
			link:     Link{Row: 2, Column: 3},
			expected: false,
		},
		{
			name:     "zero row",
			link:     Link{Column: 3, URL: "https://example.com/a.jpg"},
			expected: false,
		},
		{
			name:     "zero column",
			link:     Link{Row: 2, URL: "https://example.com/a.jpg"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.link.IsValid(); got != tt.expected {
				t.Errorf("IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}
