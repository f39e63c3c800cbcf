package domain

import "errors"

// Upload validation errors
var (
	ErrInvalidArtifactKind = errors.New("invalid artifact kind")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrArtifactNotFound    = errors.New("artifact not found")
)
