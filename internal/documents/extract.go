// Package documents extracts plain text from uploaded files.
package documents

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// minPDFChars guards against scanned or image-only PDFs that yield no
// usable text layer.
const minPDFChars = 100

// SupportedExtensions lists the file types the extractor understands.
func SupportedExtensions() []string {
	return []string{".txt", ".md", ".json", ".csv", ".pdf"}
}

// ExtractFile reads a file and returns its plain-text content together with
// a short file-type tag ("txt", "pdf", ...). The extension decides the
// extraction strategy.
func ExtractFile(path string) (text, fileType string, err error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".md", ".json", ".csv":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), strings.TrimPrefix(ext, "."), nil
	case ".pdf":
		text, err := extractPDF(path)
		if err != nil {
			return "", "", err
		}
		return text, "pdf", nil
	default:
		return "", "", fmt.Errorf("unsupported file type: %s (supported: %s)",
			ext, strings.Join(SupportedExtensions(), ", "))
	}
}

// extractPDF pulls the text layer out of a PDF page by page.
func extractPDF(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var pages []string
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err == nil && strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}

	joined := strings.Join(pages, "\n\n")
	if len(strings.TrimSpace(joined)) < minPDFChars {
		return "", fmt.Errorf("could not extract text from PDF (got %d characters); the file may be scanned images", len(joined))
	}
	return joined, nil
}
