package services

import "errors"

// Service errors
var (
	// Dataset errors
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrDatasetExists   = errors.New("dataset already exists")

	// Screening errors
	ErrInvalidCriteria = errors.New("invalid screening criteria")
	ErrInvalidTopN     = errors.New("top_n out of range")

	// Export errors
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
