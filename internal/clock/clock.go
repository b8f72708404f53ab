// Package clock sets the system and hardware clocks.
package clock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/adamcubed/wifibox/pkg/shell"
)

// ErrClockWrite wraps failures of the privileged time-set path.
var ErrClockWrite = errors.New("clock write failed")

// Setter applies a wall-clock instant to the machine.
type Setter interface {
	Set(ctx context.Context, t time.Time) error
}

// SystemSetter steps the kernel clock with settimeofday and then copies the
// new time into the hardware clock. The hwclock call is bounded because it
// talks to an RTC device that can stall.
type SystemSetter struct {
	HwclockTimeout time.Duration
}

func (s SystemSetter) Set(ctx context.Context, t time.Time) error {
	tv := unix.NsecToTimeval(t.UnixNano())
	if err := unix.Settimeofday(&tv); err != nil {
		return fmt.Errorf("%w: settimeofday: %v", ErrClockWrite, err)
	}
	timeout := s.HwclockTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if res, err := shell.Run(ctx, timeout, "hwclock", "-w"); err != nil {
		return fmt.Errorf("%w: hwclock: %v (%s)", ErrClockWrite, err, res.Stderr)
	}
	return nil
}
