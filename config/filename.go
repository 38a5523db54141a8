package config

import (
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/term"
)

// maxNameBytes leaves room for extension and temporary suffixes within
// common 255 bytes limit.
const maxNameBytes = 200

// CleanFileName makes single path segment out of arbitrary text: separators,
// control and platform forbidden characters are removed, leading dots and
// trailing dots and spaces are trimmed and result is cut to a safe length.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if unicode.IsControl(sym) || strings.ContainsRune(forbiddenInName+string(os.PathSeparator)+string(os.PathListSeparator), sym) {
			return -1
		}
		return sym
	}, in)

	if len(out) > maxNameBytes {
		cut := maxNameBytes
		for cut > 0 && !utf8.RuneStart(out[cut]) {
			cut--
		}
		out = out[:cut]
	}

	out = strings.TrimRight(strings.TrimLeft(out, "."), ". ")
	if len(out) == 0 {
		out = "_bad_file_name_"
	}
	return out
}

// EnableColorOutput checks if colorized output is possible.
func EnableColorOutput(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd())) && enableVirtualTerminal(stream)
}
