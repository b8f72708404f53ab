package systemd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/adamcubed/wifibox/internal/sysport"
)

// ErrSupervisorReload means systemd refused daemon-reload. Installation must
// stop and the operator intervene; the unit files already written are valid
// and left in place.
var ErrSupervisorReload = errors.New("supervisor reload failed")

type Installer struct {
	Dir string // unit directory, normally /etc/systemd/system
	Sys sysport.System
}

// Install writes the unit file (overwriting any previous version, never
// duplicating) and enables it for boot.
func (i Installer) Install(ctx context.Context, u Unit) error {
	path := filepath.Join(i.Dir, u.FileName())
	if err := i.Sys.WriteFile(path, []byte(u.Render()), 0o644); err != nil {
		return fmt.Errorf("write unit %s: %w", u.FileName(), err)
	}
	if res, err := i.Sys.Run(ctx, 30*time.Second, "systemctl", "enable", u.FileName()); err != nil {
		return fmt.Errorf("enable %s: %w (%s)", u.FileName(), err, res.Stderr)
	}
	return nil
}

// Reload asks systemd to re-read unit definitions.
func (i Installer) Reload(ctx context.Context) error {
	if res, err := i.Sys.Run(ctx, 30*time.Second, "systemctl", "daemon-reload"); err != nil {
		return fmt.Errorf("%w: %v (%s)", ErrSupervisorReload, err, res.Stderr)
	}
	return nil
}
