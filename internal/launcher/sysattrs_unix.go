//go:build !windows

package launcher

import (
	"os/exec"
	"syscall"
)

// detachAttrs puts the child in its own session so it survives the
// invoking terminal.
func detachAttrs(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
