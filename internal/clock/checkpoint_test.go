package clock

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestCheckpointWriteIsParseable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "clock-checkpoint")
	c := Checkpointer{Path: path, Log: zerolog.Nop()}

	before := time.Now().Unix()
	if err := c.Write(); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	sec, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		t.Fatalf("parse %q: %v", b, err)
	}
	if sec < before || sec > time.Now().Unix() {
		t.Fatalf("checkpoint %d outside [%d, now]", sec, before)
	}
}

func TestCheckpointOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clock-checkpoint")
	c := Checkpointer{Path: path, Log: zerolog.Nop()}
	if err := c.Write(); err != nil {
		t.Fatal(err)
	}
	if err := c.Write(); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(path)
	if strings.Count(string(b), "\n") != 1 {
		t.Fatalf("checkpoint accumulated lines: %q", b)
	}
}
