package service

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFService extracts plain text from uploaded PDF documents.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// ExtractText returns the plain text content of a PDF.
func (s *PDFService) ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse PDF: %w", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, content); err != nil {
		return "", fmt.Errorf("failed to read text: %w", err)
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", fmt.Errorf("no extractable text in PDF")
	}

	return text, nil
}

// TitleFromFilename derives a readable title from the uploaded filename.
func TitleFromFilename(filename string) string {
	title := strings.TrimSuffix(filename, ".pdf")
	title = strings.TrimSuffix(title, ".PDF")
	title = strings.ReplaceAll(title, "_", " ")
	title = strings.ReplaceAll(title, "-", " ")
	title = strings.TrimSpace(title)
	if title == "" {
		return "Untitled Paper"
	}
	return title
}
