// Package domain defines the core business entities for pdfseek.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - MatchRecord: The result of one successful search against one PDF
//   - ContextWindow: Words surrounding the first keyword occurrence
//   - BoundedHistory: A fixed-capacity, duplicate-free ordered list
//   - HistoryItem: The persisted form of one history entry
//   - SearchReport: Matches and skipped documents for one search call
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
