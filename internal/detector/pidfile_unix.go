//go:build !windows

package detector

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// pidAlive returns true if a process with the given pid exists (EPERM
// counts: the process is there, we just may not signal it).
func pidAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	return err == nil || errors.Is(err, syscall.EPERM)
}

// PIDFileDetector detects the scraper via its pidfile. The file holds the
// PID on the first line and optionally a JSON meta line with the recorded
// process start time, used to reject reused PIDs.
type PIDFileDetector struct {
	PIDFile string
}

type pidMeta struct {
	StartUnix int64 `json:"start_unix"`
}

func (d PIDFileDetector) Alive() (bool, error) {
	data, err := os.ReadFile(d.PIDFile)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	pidLine, rest, _ := strings.Cut(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	pid, err := strconv.Atoi(strings.TrimSpace(pidLine))
	if err != nil {
		return false, fmt.Errorf("invalid pid in %s: %w", d.PIDFile, err)
	}

	var meta pidMeta
	if rest = strings.TrimSpace(rest); rest != "" {
		if line, _, _ := strings.Cut(rest, "\n"); line != "" {
			_ = json.Unmarshal([]byte(line), &meta)
		}
	}
	if meta.StartUnix > 0 {
		if cur := ProcStartUnix(pid); cur > 0 && cur != meta.StartUnix {
			return false, nil // PID reused by an unrelated process
		}
	}
	return pidAlive(pid), nil
}

func (d PIDFileDetector) Describe() string { return "pidfile:" + d.PIDFile }
