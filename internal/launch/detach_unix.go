//go:build unix

package launch

import (
	"os/exec"
	"syscall"
)

// detach puts the child in its own session so closing the overlay does not
// take it down
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
