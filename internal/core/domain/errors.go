package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDirectory indicates the search root does not exist, is not a
	// directory, or cannot be read. It aborts the whole search.
	ErrInvalidDirectory = errors.New("invalid directory")

	// Document Errors.
	// All of these are soft failures: the document is skipped, the scan continues.

	// ErrDocumentOpen is the umbrella for any per-document open failure.
	ErrDocumentOpen = errors.New("document open failure")

	// ErrEncrypted indicates the PDF is password protected.
	ErrEncrypted = fmt.Errorf("%w: encrypted", ErrDocumentOpen)

	// ErrCorrupt indicates the PDF could not be parsed.
	ErrCorrupt = fmt.Errorf("%w: corrupt", ErrDocumentOpen)

	// ErrUnreadable indicates the file could not be read from disk.
	ErrUnreadable = fmt.Errorf("%w: unreadable", ErrDocumentOpen)

	// ErrPDFToolNotFound indicates the text extraction tool is not installed.
	ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

	// Persistence Errors.
	// Neither is fatal: a failed load starts the store empty, a failed save
	// leaves the in-memory store as the source of truth.

	// ErrPersistenceLoad indicates stored history could not be read.
	ErrPersistenceLoad = errors.New("history load failed")

	// ErrPersistenceSave indicates history could not be written.
	ErrPersistenceSave = errors.New("history save failed")

	// ErrFileOpen indicates the system could not open a file for viewing.
	ErrFileOpen = errors.New("file open failed")
)
