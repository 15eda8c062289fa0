//go:build unix

package sinks

import "golang.org/x/sys/unix"

// writable reports whether the current process may write to path.
func writable(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}
