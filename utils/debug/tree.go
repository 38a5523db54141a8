// Package debug has helpers producing human readable dumps for debug
// reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const indent = "  "

// Tree accumulates indented lines. Zero value is ready to use.
type Tree struct {
	b strings.Builder
}

func (t *Tree) String() string {
	return t.b.String()
}

// Line adds formatted line at depth.
func (t *Tree) Line(depth int, format string, args ...any) {
	t.b.WriteString(strings.Repeat(indent, depth))
	fmt.Fprintf(&t.b, format, args...)
	t.b.WriteByte('\n')
}

// Value adds "label: value" line. Non empty values are quoted so markup and
// whitespace stay visible. Values longer than limit runes are cut, limit 0
// means no limit.
func (t *Tree) Value(depth int, label, value string, limit int) {
	t.b.WriteString(strings.Repeat(indent, depth))
	t.b.WriteString(label)
	t.b.WriteString(": ")
	t.b.WriteString(quote(value, limit))
	t.b.WriteByte('\n')
}

func quote(value string, limit int) string {
	if value == "" {
		return value
	}
	if r := []rune(value); limit > 0 && len(r) > limit {
		return strconv.Quote(string(r[:limit])) + "..."
	}
	return strconv.Quote(value)
}
