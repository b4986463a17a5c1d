package launcher

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/scrapeops/scraperctl/internal/detector"
)

// PIDMeta is the second line of the pidfile: enough to recognize PID reuse
// and to answer status queries without re-reading the config.
type PIDMeta struct {
	StartUnix  int64     `json:"start_unix"`
	Command    string    `json:"command"`
	LogPath    string    `json:"log_path"`
	LaunchedAt time.Time `json:"launched_at"`
}

// WritePIDFile writes "<pid>\n<meta json>\n". Best effort on the start
// time: when the platform cannot report it the meta carries zero and
// PID-reuse detection is skipped.
func WritePIDFile(path string, pid int, spec Spec) error {
	if err := EnsureDir(path); err != nil {
		return err
	}
	meta := PIDMeta{
		StartUnix:  detector.ProcStartUnix(pid),
		Command:    spec.Command,
		LogPath:    spec.LogPath,
		LaunchedAt: time.Now().UTC(),
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	data := strconv.Itoa(pid) + "\n" + string(b) + "\n"
	return os.WriteFile(path, []byte(data), 0o600)
}

// ReadPIDFile parses a pidfile written by WritePIDFile. Legacy files that
// contain only a PID yield a nil meta.
func ReadPIDFile(path string) (int, *PIDMeta, error) {
	// #nosec G304 -- operator-configured path
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, err
	}
	pidLine, rest, _ := strings.Cut(string(b), "\n")
	pid, err := strconv.Atoi(strings.TrimSpace(pidLine))
	if err != nil {
		return 0, nil, fmt.Errorf("invalid pid in %s: %w", path, err)
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return pid, nil, nil
	}
	var meta PIDMeta
	if err := json.Unmarshal([]byte(rest), &meta); err != nil {
		return pid, nil, nil
	}
	return pid, &meta, nil
}
