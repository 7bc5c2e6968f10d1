// Package instancelock detects a second interactive session running against
// the same journal. The lock is advisory: holders are identified by PID and a
// lock left behind by a crashed process is reclaimed.
package instancelock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/termjournal/internal/constants"
)

var (
	findProcessFunc = ps.FindProcess
	getpid          = os.Getpid
)

// HeldError reports that another live process owns the lock
type HeldError struct {
	PID   int
	Since time.Time
}

func (e *HeldError) Error() string {
	return fmt.Sprintf("%s is already running (pid %d, since %s)", constants.AppName, e.PID, e.Since.Format(time.Kitchen))
}

// IsHeld reports whether err is a HeldError
func IsHeld(err error) bool {
	var h *HeldError
	return errors.As(err, &h)
}

// Lock is an acquired instance lock
type Lock struct {
	path string
	pid  int
}

// Path returns the lockfile location for a journal stored in dir
func Path(dir string) string {
	return filepath.Join(dir, constants.InstanceLockfileName)
}

// Acquire takes the lock in dir. A lockfile whose owner is gone or is not
// this application is treated as stale and replaced.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := Path(dir)

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err == nil {
			pid := getpid()
			_, werr := fmt.Fprintf(f, "%d|%d", pid, time.Now().Unix())
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return nil, fmt.Errorf("failed to write lockfile: %w", errors.Join(werr, cerr))
			}
			return &Lock{path: path, pid: pid}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		holder, err := readHolder(path)
		if err == nil {
			return nil, holder
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return nil, fmt.Errorf("could not acquire lock at %s", path)
}

// readHolder returns the live owner of the lockfile, or an error describing
// why the lockfile is stale
func readHolder(path string) (*HeldError, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return nil, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return nil, errors.New("invalid process ID in lockfile")
	}
	started, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, errors.New("invalid start time in lockfile")
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return nil, fmt.Errorf("process %d is not running", pid)
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return nil, fmt.Errorf("process with PID %d is not %s (is %s)", pid, constants.AppName, process.Executable())
	}
	return &HeldError{PID: pid, Since: time.Unix(started, 0)}, nil
}

// Release removes the lockfile if this process still owns it
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	content, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !strings.HasPrefix(string(content), strconv.Itoa(l.pid)+"|") {
		return nil
	}
	return os.Remove(l.path)
}
