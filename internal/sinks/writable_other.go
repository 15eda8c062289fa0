//go:build !unix

package sinks

import "os"

// writable approximates access(2) with the owner write bit.
func writable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0o200 != 0
}
