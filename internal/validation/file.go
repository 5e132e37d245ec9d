package validation

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// FileConstraints defines validation rules for uploaded files
type FileConstraints struct {
	AllowedMimeTypes  map[string]bool
	AllowedExtensions map[string]bool
	MaxSize           int64
}

// PDFConstraints accepts PDF documents only.
var PDFConstraints = FileConstraints{
	AllowedMimeTypes: map[string]bool{
		"application/pdf": true,
	},
	AllowedExtensions: map[string]bool{
		".pdf": true,
	},
	MaxSize: 20 << 20, // 20 MB
}

// ValidateFile validates an uploaded file against one or more constraint
// sets. The file is accepted if any constraint set matches.
func ValidateFile(header *multipart.FileHeader, constraintSets ...FileConstraints) error {
	if len(constraintSets) == 0 {
		constraintSets = []FileConstraints{PDFConstraints}
	}

	var lastErr error
	for _, constraints := range constraintSets {
		err := validateAgainstConstraint(header, constraints)
		if err == nil {
			return nil
		}
		lastErr = err
	}

	return lastErr
}

func validateAgainstConstraint(header *multipart.FileHeader, constraints FileConstraints) error {
	if header.Size > constraints.MaxSize {
		maxMB := constraints.MaxSize / (1 << 20)
		return fmt.Errorf("file too large: maximum size is %d MB", maxMB)
	}

	file, err := header.Open()
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Read the first 512 bytes for magic number detection.
	// The Content-Type header supplied by the client is not trusted.
	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if seeker, ok := file.(io.Seeker); ok {
		if _, err := seeker.Seek(0, 0); err != nil {
			return fmt.Errorf("failed to reset file pointer: %w", err)
		}
	}

	detectedType := http.DetectContentType(buffer[:n])
	if !constraints.AllowedMimeTypes[detectedType] {
		return fmt.Errorf("invalid file type (detected: %s)", detectedType)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !constraints.AllowedExtensions[ext] {
		return fmt.Errorf("invalid file extension: %s", ext)
	}

	return nil
}
