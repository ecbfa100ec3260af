//go:build !windows

package audio

import (
	"os/exec"
	"syscall"
)

// detach puts the player in its own process group so terminal signals sent
// to the editor do not cut a cue short.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
