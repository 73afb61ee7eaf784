// Package file provides a TOML-file implementation of driven.HistoryGateway.
//
// Each history store is written to its own document, history/<store>.toml,
// under the data directory:
//
//	version = 1
//	store = "favorites"
//
//	[[items]]
//	kind = "file"
//	value = "/home/me/papers/cats.pdf"
//
//	  [items.match]
//	  keyword = "cat"
//	  page = 2
//	  ...
//
// Writes go to a temporary file that is renamed into place, so a crash
// never leaves a truncated document behind.
package file
