//go:build !windows

package shell

import (
	"os/exec"
	"syscall"
)

// setProcessGroup starts the launcher in its own process group so that
// cancelling kills everything the command forked, not just the shell.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
