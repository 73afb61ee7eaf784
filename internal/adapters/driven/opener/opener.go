// Package opener implements driven.FileOpener by handing files to the
// operating system's default application.
package opener

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/custodia-labs/pdfseek/internal/core/domain"
	"github.com/custodia-labs/pdfseek/internal/core/ports/driven"
)

// Ensure Opener implements the interface.
var _ driven.FileOpener = (*Opener)(nil)

// Operating system identifiers.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// StartFunc launches a command without waiting for it.
type StartFunc func(ctx context.Context, name string, args ...string) error

// Opener launches the platform's default viewer.
type Opener struct {
	goos  string
	start StartFunc
}

// New creates an opener for the current platform.
func New() *Opener {
	return NewWithStarter(runtime.GOOS, startCommand)
}

// NewWithStarter creates an opener for goos that launches through start.
func NewWithStarter(goos string, start StartFunc) *Opener {
	return &Opener{goos: goos, start: start}
}

// Open launches the default application for path. The viewer's lifetime is
// not tied to ctx.
func (o *Opener) Open(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrFileOpen, path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", domain.ErrFileOpen, path)
	}

	name, args, err := o.command(path)
	if err != nil {
		return err
	}
	if err := o.start(ctx, name, args...); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrFileOpen, path, err)
	}
	return nil
}

// command returns the launcher for the configured platform.
func (o *Opener) command(path string) (string, []string, error) {
	switch o.goos {
	case osDarwin:
		return "open", []string{path}, nil
	case osLinux:
		return "xdg-open", []string{path}, nil
	case osWindows:
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}, nil
	default:
		return "", nil, fmt.Errorf("%w: unsupported platform: %s", domain.ErrFileOpen, o.goos)
	}
}

func startCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(context.WithoutCancel(ctx), name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
