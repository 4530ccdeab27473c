package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const lockOwnerFile = "owner.json"

// ErrLocked means another process is updating the same settings file.
var ErrLocked = errors.New("settings file is locked")

type updateLock struct {
	dir string
}

type lockOwner struct {
	PID       int    `json:"pid"`
	CreatedAt string `json:"created_at"`
	Hostname  string `json:"hostname,omitempty"`
}

func lockDirFor(configPath string) string {
	return configPath + ".lock"
}

// acquireUpdateLock guards the read-merge-write cycle of Update across
// processes. mkdir is atomic, so the directory doubles as the lock.
func acquireUpdateLock(configPath string) (updateLock, error) {
	dir := lockDirFor(configPath)
	if err := os.Mkdir(dir, 0o755); err != nil {
		if !os.IsExist(err) {
			return updateLock{}, fmt.Errorf("acquire settings lock %s: %w", dir, err)
		}
		var owner lockOwner
		if readErr := readJSON(filepath.Join(dir, lockOwnerFile), &owner); readErr == nil && owner.PID > 0 {
			return updateLock{}, fmt.Errorf("%w: %s (pid=%d created_at=%s host=%s)", ErrLocked, configPath, owner.PID, owner.CreatedAt, owner.Hostname)
		}
		return updateLock{}, fmt.Errorf("%w: %s", ErrLocked, configPath)
	}

	owner := lockOwner{
		PID:       os.Getpid(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Hostname:  hostnameOrUnknown(),
	}
	if err := writeJSON(filepath.Join(dir, lockOwnerFile), owner); err != nil {
		_ = os.RemoveAll(dir)
		return updateLock{}, fmt.Errorf("write settings lock owner: %w", err)
	}
	return updateLock{dir: dir}, nil
}

func (l updateLock) release() error {
	if strings.TrimSpace(l.dir) == "" {
		return nil
	}
	if err := os.RemoveAll(l.dir); err != nil {
		return fmt.Errorf("release settings lock %s: %w", l.dir, err)
	}
	return nil
}

func hostnameOrUnknown() string {
	host, err := os.Hostname()
	if err != nil || strings.TrimSpace(host) == "" {
		return "unknown"
	}
	return strings.TrimSpace(host)
}
