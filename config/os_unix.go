//go:build !windows

package config

import "os"

// forbiddenInName lists characters file systems reject besides path and list
// separators.
const forbiddenInName = ""

func enableVirtualTerminal(_ *os.File) bool {
	return true
}
