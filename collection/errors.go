package collection

import "errors"

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrIndexNotFound    = errors.New("index not found")
	ErrIndexExists      = errors.New("index already exists")
	ErrIndexConflict    = errors.New("index conflict")
)
