package table

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	out := Render([]string{"Name", "Count"}, [][]string{{"alpha", "1"}, {"beta"}, {"gamma", "300", "extra"}}, []Alignment{AlignLeft, AlignRight})

	lines := strings.Split(out, "\n")
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "╭") || !strings.HasPrefix(lines[6], "╰") {
		t.Errorf("expected rounded borders:\n%s", out)
	}
	if !strings.Contains(lines[3], "alpha") || !strings.Contains(lines[3], "│     1 │") {
		t.Errorf("expected right aligned count in %q", lines[3])
	}
	if strings.Contains(out, "extra") {
		t.Errorf("extra cell must be dropped:\n%s", out)
	}
}

func TestRender_NoColumns(t *testing.T) {
	if out := Render(nil, [][]string{{"x"}}, nil); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}
