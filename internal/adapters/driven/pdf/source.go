package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
	"github.com/custodia-labs/pdfseek/internal/core/ports/driven"
)

// Ensure TextSource implements the interface.
var _ driven.DocumentTextSource = (*TextSource)(nil)

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = domain.ErrPDFToolNotFound

// DefaultBinary is the pdftotext executable looked up on PATH.
const DefaultBinary = "pdftotext"

// exitPermission is pdftotext's exit status for permission (encryption) errors.
const exitPermission = 3

// TextSource extracts PDF text with pdftotext.
type TextSource struct {
	runner CommandRunner
	binary string
}

// New creates a TextSource that runs binary. An empty binary selects DefaultBinary.
func New(binary string) *TextSource {
	return NewWithRunner(execRunner{}, binary)
}

// NewWithRunner creates a TextSource with a custom command runner.
func NewWithRunner(runner CommandRunner, binary string) *TextSource {
	if binary == "" {
		binary = DefaultBinary
	}
	return &TextSource{runner: runner, binary: binary}
}

// CheckAvailable verifies that binary can be found.
func CheckAvailable(binary string) error {
	if binary == "" {
		binary = DefaultBinary
	}
	if _, err := exec.LookPath(binary); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns platform-specific installation instructions.
func InstallInstructions() string {
	return `pdftotext is required for PDF search. Install poppler:
  macOS:   brew install poppler
  Ubuntu:  apt install poppler-utils
  Fedora:  dnf install poppler-utils
  Windows: choco install poppler`
}

// Open extracts the text of every page of the PDF at path.
func (s *TextSource) Open(ctx context.Context, path string) (driven.DocumentHandle, error) {
	if err := checkReadable(path); err != nil {
		return nil, err
	}

	out, err := s.runner.Run(ctx, s.binary, "-enc", "UTF-8", path, "-")
	if err != nil {
		return nil, classify(path, err)
	}

	return &handle{pages: splitPages(string(out))}, nil
}

// checkReadable reports ErrUnreadable for files that cannot be opened.
func checkReadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrUnreadable, path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", domain.ErrUnreadable, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrUnreadable, path, err)
	}
	return f.Close()
}

// classify maps a pdftotext failure to a document error.
func classify(path string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrUnreadable, ErrPDFToolNotFound)
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		if cmdErr.ExitCode == exitPermission || strings.Contains(strings.ToLower(cmdErr.Stderr), "password") {
			return fmt.Errorf("%w: %s", domain.ErrEncrypted, path)
		}
	}

	return fmt.Errorf("%w: %s: pdftotext failed: %v", domain.ErrCorrupt, path, err)
}

// splitPages splits pdftotext output on form feeds. Line breaks inside a
// page become spaces so words on adjacent lines stay separate.
func splitPages(text string) []string {
	text = strings.TrimSuffix(text, "\f")
	if text == "" {
		return []string{}
	}

	raw := strings.Split(text, "\f")
	pages := make([]string, len(raw))
	for i, p := range raw {
		pages[i] = normaliseLines(p)
	}
	return pages
}

func normaliseLines(page string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t':
			return ' '
		default:
			return r
		}
	}, page)
}

// handle holds extracted page texts.
type handle struct {
	pages  []string
	closed bool
}

func (h *handle) PageCount() int {
	return len(h.pages)
}

func (h *handle) PageText(index int) (string, error) {
	if h.closed {
		return "", fmt.Errorf("%w: document closed", domain.ErrUnreadable)
	}
	if index < 0 || index >= len(h.pages) {
		return "", fmt.Errorf("%w: page %d out of range", domain.ErrInvalidInput, index+1)
	}
	return h.pages[index], nil
}

func (h *handle) Close() error {
	h.closed = true
	h.pages = nil
	return nil
}
