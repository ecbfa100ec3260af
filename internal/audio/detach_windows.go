//go:build windows

package audio

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// detach starts the shell host without a console window and outside the
// editor's process group.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW | windows.CREATE_NEW_PROCESS_GROUP,
	}
}
