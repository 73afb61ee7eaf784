// Package filesystem implements driven.DocumentTree over the local disk.
//
// Enumerate walks a directory recursively and returns every regular file
// with a .pdf extension (any case). Watch uses fsnotify to report PDFs
// being created, modified or removed beneath a root.
package filesystem
