//go:build windows

package shell

import "os/exec"

// wsl.exe owns the Linux side; killing it on cancel is the default
// CommandContext behaviour and WaitDelay bounds any leftover pipe holders.
func setProcessGroup(cmd *exec.Cmd) {}
