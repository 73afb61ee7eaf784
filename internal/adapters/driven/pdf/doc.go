// Package pdf implements driven.DocumentTextSource using pdftotext from
// poppler-utils. Each document is extracted in one pass and split into
// pages on form feeds.
package pdf
