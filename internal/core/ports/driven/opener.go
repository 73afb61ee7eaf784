package driven

import "context"

// FileOpener hands a file to the operating system's default application.
type FileOpener interface {
	// Open launches the viewer for path. Failures wrap domain.ErrFileOpen.
	Open(ctx context.Context, path string) error
}
