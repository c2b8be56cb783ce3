package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
)

// DocumentParser turns a stored CV file into plain text.
type DocumentParser interface {
	ExtractText(filePath string) (string, error)
}

type documentParser struct{}

func NewDocumentParser() DocumentParser {
	return &documentParser{}
}

// ExtractText implements DocumentParser. The parser is picked from the file
// extension; unrecognized extensions fail before anything is read.
func (p *documentParser) ExtractText(filePath string) (string, error) {
	var (
		text string
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".pdf":
		text, err = p.extractPDF(filePath)
	case ".docx", ".doc":
		text, err = p.extractWord(filePath)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrNoTextContent, filepath.Base(filePath))
	}

	return text, nil
}

func (p *documentParser) extractPDF(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var pages []string
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A broken page is not fatal, the run only fails when nothing
			// at all could be read.
			log.Printf("⚠️  Cannot extract text from PDF page %d: %v\n", pageIndex, err)
			continue
		}

		if trimmed := strings.TrimSpace(text); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}

	return strings.Join(pages, "\n"), nil
}

func (p *documentParser) extractWord(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open Word document: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat Word document: %w", err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		// Legacy .doc binaries land here too; they are a recognized type
		// that simply yields no text.
		return "", fmt.Errorf("%w: %v", ErrNoTextContent, err)
	}

	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		text := ""
		switch block := item.(type) {
		case *docx.Paragraph:
			text = block.String()
		case *docx.Table:
			text = block.String()
		}

		if trimmed := strings.TrimSpace(text); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}

	return strings.Join(paragraphs, "\n"), nil
}

// CleanText normalizes extracted text: trims every line and drops blanks.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
