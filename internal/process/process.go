// Package process stops headless browser processes together with the
// renderer and GPU helpers they spawn.
package process

// TerminateTree kills pid and its descendants. PIDs that cannot belong to a
// launched browser (0, 1 and negatives) are ignored.
func TerminateTree(pid int) {
	if pid <= 1 {
		return
	}
	terminateTree(pid)
}
