//go:build windows

package config

import (
	"os"

	"golang.org/x/sys/windows"
)

const forbiddenInName = `<>":/\|?*`

// enableVirtualTerminal turns on VT100 sequence processing, available in
// console starting with Windows 10.
func enableVirtualTerminal(stream *os.File) bool {
	if windows.RtlGetVersion().MajorVersion < 10 {
		return false
	}

	h := windows.Handle(stream.Fd())

	var mode uint32
	if err := windows.GetConsoleMode(h, &mode); err != nil {
		return false
	}
	return windows.SetConsoleMode(h, mode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING) == nil
}
