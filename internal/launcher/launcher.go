// Package launcher starts the scraper as a detached child: new session,
// stdout and stderr combined into a single log file, no waiting. The child
// outlives the invoking terminal and is not supervised afterwards.
package launcher

import (
	"fmt"
	"os"
	"path/filepath"
)

// Launch starts the spec's command detached and returns the child PID.
// The log file is created fresh (truncated if something recreated it since
// the delete step). The parent closes its copy of the log handle and
// releases the process; it never waits.
func Launch(spec Spec) (int, error) {
	cmd := spec.BuildCommand()
	if spec.WorkDir != "" {
		cmd.Dir = spec.WorkDir
	}
	if len(spec.Env) > 0 {
		cmd.Env = spec.Env
	}
	detachAttrs(cmd)
	cmd.Stdin = nil

	var logF *os.File
	if spec.LogPath != "" {
		var err error
		// #nosec G304 -- operator-configured path
		logF, err = os.OpenFile(spec.LogPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return 0, fmt.Errorf("open log %s: %w", spec.LogPath, err)
		}
		cmd.Stdout = logF
		cmd.Stderr = logF
	} else {
		null, _ := os.OpenFile(os.DevNull, os.O_RDWR, 0)
		cmd.Stdout = null
		cmd.Stderr = null
		logF = null
	}

	if err := cmd.Start(); err != nil {
		if logF != nil {
			_ = logF.Close()
		}
		return 0, fmt.Errorf("start %q: %w", spec.Command, err)
	}
	if logF != nil {
		_ = logF.Close()
	}

	pid := cmd.Process.Pid
	if spec.PIDFile != "" {
		if err := WritePIDFile(spec.PIDFile, pid, spec); err != nil {
			// The child is already running; a failed pidfile only degrades
			// later status queries.
			_ = cmd.Process.Release()
			return pid, err
		}
	}
	_ = cmd.Process.Release()
	return pid, nil
}

// EnsureDir creates the parent directory of path when missing.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o750)
}
