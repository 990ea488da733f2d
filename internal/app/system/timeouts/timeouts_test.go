package timeouts_test

import (
	"testing"
	"time"

	"github.com/dialoguedock/dialoguedock/internal/app/system/timeouts"
)

func TestConfigure_OverridesAndZeroKeeps(t *testing.T) {
	t.Cleanup(timeouts.Reset)

	timeouts.Configure(timeouts.Config{
		Ping:  500 * time.Millisecond,
		Short: 3 * time.Second,
	})

	if got := timeouts.Ping(); got != 500*time.Millisecond {
		t.Errorf("Ping: got %s", got)
	}
	if got := timeouts.Short(); got != 3*time.Second {
		t.Errorf("Short: got %s", got)
	}
	if got := timeouts.Medium(); got != timeouts.DefaultMedium {
		t.Errorf("Medium: zero override must keep the default, got %s", got)
	}
}

func TestReset_RestoresDefaults(t *testing.T) {
	timeouts.Configure(timeouts.Config{Ping: time.Minute, Short: time.Minute, Medium: time.Minute})
	timeouts.Reset()

	if timeouts.Ping() != timeouts.DefaultPing ||
		timeouts.Short() != timeouts.DefaultShort ||
		timeouts.Medium() != timeouts.DefaultMedium {
		t.Errorf("defaults not restored: ping=%s short=%s medium=%s",
			timeouts.Ping(), timeouts.Short(), timeouts.Medium())
	}
}
