// Package validation checks uploaded workbook files before parsing.
package validation

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

// xlsx workbooks are zip containers; every valid upload starts with the
// local-file-header signature.
var zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// UploadValidator validates workbook uploads against size and format rules.
type UploadValidator struct {
	maxSize int64
	logger  *slog.Logger
}

// NewUploadValidator creates a new upload validator
func NewUploadValidator(maxSize int64, logger *slog.Logger) *UploadValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadValidator{
		maxSize: maxSize,
		logger:  logger,
	}
}

// ValidateFilename checks the upload has an xlsx extension.
func (v *UploadValidator) ValidateFilename(name string) error {
	if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
		v.logger.Warn("upload rejected by extension",
			slog.String("filename", name))
		return fmt.Errorf("file %q is not an xlsx workbook", name)
	}
	return nil
}

// ValidateSize checks the declared size against the configured limit.
// A size of -1 (unknown) passes; the HTTP layer enforces the hard cap.
func (v *UploadValidator) ValidateSize(size int64) error {
	if size > v.maxSize {
		v.logger.Warn("upload rejected by size",
			slog.Int64("size", size),
			slog.Int64("max_size", v.maxSize))
		return fmt.Errorf("file size %d exceeds limit %d", size, v.maxSize)
	}
	return nil
}

// ValidateContent sniffs the zip signature from the reader. It returns a new
// reader that replays the consumed prefix.
func (v *UploadValidator) ValidateContent(r io.Reader) (io.Reader, error) {
	prefix := make([]byte, len(zipMagic))
	n, err := io.ReadFull(r, prefix)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	prefix = prefix[:n]

	combined := io.MultiReader(bytes.NewReader(prefix), r)

	if !bytes.Equal(prefix, zipMagic) {
		v.logger.Warn("upload rejected by content sniff")
		return combined, fmt.Errorf("upload is not a zip container")
	}

	return combined, nil
}
