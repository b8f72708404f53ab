package sysport

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/adamcubed/wifibox/pkg/shell"
)

// Fake is an in-memory System for tests. Files live in a map, commands are
// recorded in call order, and failures are scripted per path or command
// prefix.
type Fake struct {
	mu    sync.Mutex
	Files map[string][]byte
	// Commands holds each executed command line, e.g. "sysctl -w ...".
	Commands []string
	// FailWrites maps a path to the error its write should return.
	FailWrites map[string]error
	// FailCommands maps a command-line prefix to the error Run should return.
	FailCommands map[string]error
	// Interfaces present on the fake host.
	Interfaces map[string]bool
	// InterfaceAfterPolls makes InterfaceExists return true only from the
	// Nth call on, to exercise bounded polling.
	InterfaceAfterPolls int
	pollCount           int
}

func NewFake() *Fake {
	return &Fake{
		Files:        map[string][]byte{},
		FailWrites:   map[string]error{},
		FailCommands: map[string]error{},
		Interfaces:   map[string]bool{},
	}
}

func (f *Fake) ReadFile(path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.Files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return b, nil
}

func (f *Fake) WriteFile(path string, data []byte, perm fs.FileMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.FailWrites[path]; err != nil {
		return err
	}
	f.Files[path] = append([]byte(nil), data...)
	return nil
}

func (f *Fake) FileExists(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.Files[path]
	return ok
}

func (f *Fake) MkdirAll(path string, perm fs.FileMode) error { return nil }

func (f *Fake) Run(ctx context.Context, timeout time.Duration, name string, args ...string) (shell.Result, error) {
	return f.record(name, args)
}

func (f *Fake) RunInput(ctx context.Context, timeout time.Duration, input []byte, name string, args ...string) (shell.Result, error) {
	return f.record(name, args)
}

func (f *Fake) record(name string, args []string) (shell.Result, error) {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Commands = append(f.Commands, line)
	for prefix, err := range f.FailCommands {
		if strings.HasPrefix(line, prefix) {
			return shell.Result{Code: 1, Stderr: []byte(err.Error())}, err
		}
	}
	return shell.Result{Code: 0}, nil
}

func (f *Fake) InterfaceExists(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.InterfaceAfterPolls > 0 {
		f.pollCount++
		return f.pollCount >= f.InterfaceAfterPolls
	}
	return f.Interfaces[name]
}

// CommandRan reports whether any recorded command starts with prefix.
func (f *Fake) CommandRan(prefix string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.Commands {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

// String dumps recorded commands for test failure messages.
func (f *Fake) String() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fmt.Sprintf("commands: %v", f.Commands)
}
