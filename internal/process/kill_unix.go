//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid.
// Non-positive pids are ignored; -0 would target the caller's own group.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Errors are ignored: the launcher's own Kill follows as a fallback.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
