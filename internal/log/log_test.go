package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/tessro/deck/internal/config"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "deck.log")

	closer, err := Setup(config.LogConfig{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	For("reconciler").Debug("status ignored")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "status ignored") {
		t.Errorf("log = %q, missing message", out)
	}
	if !strings.Contains(out, "component=reconciler") {
		t.Errorf("log = %q, missing component field", out)
	}
}

func TestSetupInvalidLevelFallsBackToInfo(t *testing.T) {
	if _, err := Setup(config.LogConfig{Level: "loud"}); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if got := Logger().GetLevel(); got != logrus.InfoLevel {
		t.Errorf("level = %v, want %v", got, logrus.InfoLevel)
	}
}
