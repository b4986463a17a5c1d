package detector

import (
	"errors"
	"os/exec"
	"strings"
)

// CommandDetector runs a probe command that exits zero when the scraper is
// running (e.g. "pgrep -f shop_scrape.py").
type CommandDetector struct{ Command string }

func (d CommandDetector) Alive() (bool, error) {
	cmdStr := strings.TrimSpace(d.Command)
	if cmdStr == "" {
		return false, errors.New("empty detector command")
	}
	var cmd *exec.Cmd
	if strings.ContainsAny(cmdStr, "|&;<>*?`$\"'(){}[]~") {
		// #nosec G204
		cmd = exec.Command("/bin/sh", "-c", cmdStr)
	} else {
		parts := strings.Fields(cmdStr)
		// #nosec G204
		cmd = exec.Command(parts[0], parts[1:]...)
	}
	cmd.Stdout = nil
	cmd.Stderr = nil
	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return false, nil // non-zero exit means not alive
	}
	return false, err
}

func (d CommandDetector) Describe() string { return "cmd:" + d.Command }
