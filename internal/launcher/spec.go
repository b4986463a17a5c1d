package launcher

import (
	"os/exec"
	"strings"
)

// Spec describes the scraper process to launch.
type Spec struct {
	Name    string   `json:"name"`
	Command string   `json:"command"`  // command line for the entry script
	WorkDir string   `json:"work_dir"` // working directory for the child
	Env     []string `json:"env"`      // full environment, already merged
	LogPath string   `json:"log_path"` // combined stdout+stderr destination
	PIDFile string   `json:"pid_file"` // optional pidfile path
}

// BuildCommand constructs the *exec.Cmd for the spec's command line.
// A shell is only involved when the command obviously needs one: an
// explicit "sh -c" prefix is honored without double-wrapping, and shell
// metacharacters force a /bin/sh -c invocation.
func (s *Spec) BuildCommand() *exec.Cmd {
	cmdStr := strings.TrimSpace(s.Command)
	if cmdStr == "" {
		// #nosec G204
		return exec.Command("/bin/true")
	}
	if after, ok := stripExplicitShell(cmdStr); ok {
		// #nosec G204
		return exec.Command("/bin/sh", "-c", after)
	}
	if strings.ContainsAny(cmdStr, "|&;<>*?`$\"'(){}[]~") {
		// #nosec G204
		return exec.Command("/bin/sh", "-c", cmdStr)
	}
	parts := strings.Fields(cmdStr)
	// #nosec G204
	return exec.Command(parts[0], parts[1:]...)
}

// stripExplicitShell detects "sh -c <ARG>" style prefixes and returns the
// argument that should go to the shell, with one layer of outer quotes
// removed so redirections inside it still parse.
func stripExplicitShell(cmdStr string) (string, bool) {
	trim := strings.TrimLeft(cmdStr, " \t")
	for _, p := range []string{"sh -c ", "/bin/sh -c ", "/usr/bin/sh -c "} {
		if strings.HasPrefix(trim, p) {
			after := trim[len(p):]
			if n := len(after); n >= 2 {
				if (after[0] == '\'' && after[n-1] == '\'') || (after[0] == '"' && after[n-1] == '"') {
					after = after[1 : n-1]
				}
			}
			return after, true
		}
	}
	return "", false
}
