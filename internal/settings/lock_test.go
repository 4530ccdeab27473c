package settings

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestUpdateLockBlocksConcurrentAcquire(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "settings.json")

	lock, err := acquireUpdateLock(cfg)
	if err != nil {
		t.Fatalf("acquire first lock: %v", err)
	}
	if _, err := acquireUpdateLock(cfg); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked on second acquire, got %v", err)
	}
	if _, err := Update(UpdateOptions{ConfigPath: cfg, Settings: Settings{Theme: ThemeDark}}); !errors.Is(err, ErrLocked) {
		t.Fatalf("expected Update to fail while locked, got %v", err)
	}

	if err := lock.release(); err != nil {
		t.Fatalf("release lock: %v", err)
	}
	if _, err := Update(UpdateOptions{ConfigPath: cfg, Settings: Settings{Theme: ThemeDark}}); err != nil {
		t.Fatalf("update after release: %v", err)
	}
}
