// Package sysport abstracts the OS state the provisioner and boot
// orchestrator mutate (config files, running commands, network interfaces),
// so stage ordering and idempotence are testable without touching the host.
package sysport

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adamcubed/wifibox/pkg/shell"
)

type System interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	FileExists(path string) bool
	MkdirAll(path string, perm fs.FileMode) error
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) (shell.Result, error)
	RunInput(ctx context.Context, timeout time.Duration, input []byte, name string, args ...string) (shell.Result, error)
	InterfaceExists(name string) bool
}

// Host is the real System backed by the local machine.
type Host struct{}

func (Host) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

func (Host) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

func (Host) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (Host) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }

func (Host) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (shell.Result, error) {
	return shell.Run(ctx, timeout, name, args...)
}

func (Host) RunInput(ctx context.Context, timeout time.Duration, input []byte, name string, args ...string) (shell.Result, error) {
	return shell.RunInput(ctx, timeout, input, name, args...)
}

func (Host) InterfaceExists(name string) bool {
	_, err := os.Stat(filepath.Join("/sys/class/net", name))
	return err == nil
}
