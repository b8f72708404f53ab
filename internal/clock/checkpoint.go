package clock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Checkpointer periodically records the current time so the boot
// orchestrator can step an RTC-less board's clock forward after a reboot
// (the fake-hwclock pattern).
type Checkpointer struct {
	Path string
	Log  zerolog.Logger
}

// Write stores the current unix time at Path.
func (c Checkpointer) Write() error {
	if err := os.MkdirAll(filepath.Dir(c.Path), 0o755); err != nil {
		return err
	}
	data := strconv.FormatInt(time.Now().Unix(), 10) + "\n"
	if err := os.WriteFile(c.Path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write clock checkpoint: %w", err)
	}
	return nil
}

// Schedule registers the checkpoint on cr every five minutes and writes one
// immediately so a fresh install has a baseline before the first tick.
func (c Checkpointer) Schedule(cr *cron.Cron) error {
	if err := c.Write(); err != nil {
		c.Log.Warn().Err(err).Msg("initial clock checkpoint failed")
	}
	_, err := cr.AddFunc("@every 5m", func() {
		if err := c.Write(); err != nil {
			c.Log.Warn().Err(err).Msg("clock checkpoint failed")
		}
	})
	return err
}
