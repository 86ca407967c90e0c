package resume

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractTextTXT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	content := "Jane Doe\nGo developer since 2018.\nSkills: Go, PostgreSQL"

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	text, err := ExtractText(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != content {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractTextDOCX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.docx")
	writeDocxFixture(t, path, []string{"Jane Doe", "Go developer since 2018."})

	text, err := ExtractText(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(text, "Jane Doe") || !strings.Contains(text, "Go developer since 2018.") {
		t.Fatalf("expected paragraph text, got %q", text)
	}

	// Paragraphs must stay separated.
	if !strings.Contains(text, "Jane Doe\n") {
		t.Fatalf("expected paragraph boundary after name, got %q", text)
	}
}

func TestExtractTextDOCXWithoutDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	writer := zip.NewWriter(file)
	if _, err := writer.Create("word/styles.xml"); err != nil {
		t.Fatalf("creating zip entry: %v", err)
	}
	writer.Close()
	file.Close()

	if _, err := ExtractText(path); err == nil {
		t.Fatalf("expected error for docx without document.xml")
	}
}

func TestExtractTextDOCXMalformedXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.docx")

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	writer := zip.NewWriter(file)
	entry, err := writer.Create("word/document.xml")
	if err != nil {
		t.Fatalf("creating zip entry: %v", err)
	}
	// Mismatched closing tag, as a truncated or corrupted upload produces.
	if _, err := entry.Write([]byte(`<w:document xmlns:w="w"><w:body><w:p><w:r><w:t>Go</w:p></w:document>`)); err != nil {
		t.Fatalf("writing document.xml: %v", err)
	}
	writer.Close()
	file.Close()

	if _, err := ExtractText(path); err == nil {
		t.Fatalf("expected error for malformed document.xml")
	}
}

func TestExtractTextUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.odt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := ExtractText(path); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestExtractTextMissingFile(t *testing.T) {
	if _, err := ExtractText(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func writeDocxFixture(t *testing.T, path string, paragraphs []string) {
	t.Helper()

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture: %v", err)
	}
	defer file.Close()

	writer := zip.NewWriter(file)
	defer writer.Close()

	entry, err := writer.Create("word/document.xml")
	if err != nil {
		t.Fatalf("creating zip entry: %v", err)
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, paragraph := range paragraphs {
		builder.WriteString(`<w:p><w:r><w:t>`)
		builder.WriteString(paragraph)
		builder.WriteString(`</w:t></w:r></w:p>`)
	}
	builder.WriteString(`</w:body></w:document>`)

	if _, err := entry.Write([]byte(builder.String())); err != nil {
		t.Fatalf("writing document.xml: %v", err)
	}
}
