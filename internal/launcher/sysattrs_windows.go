//go:build windows

package launcher

import (
	"os/exec"
	"syscall"
)

// detachAttrs detaches the child from the invoking console on Windows.
func detachAttrs(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | 0x00000008, // DETACHED_PROCESS
	}
}
