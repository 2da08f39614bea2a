//go:build !windows

package process

import "syscall"

// terminateTree signals the whole process group. Browsers launched by rod
// lead their own group.
func terminateTree(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
