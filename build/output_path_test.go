package build

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"obc/common"
	"obc/config"
	"obc/state"
)

func setupTestEnvForOutputPath(t *testing.T, transliterate bool, template string) *state.LocalEnv {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Output.FileNameTransliterate = transliterate
	cfg.Output.OutputNameTemplate = template

	return &state.LocalEnv{
		Log: logger,
		Cfg: cfg,
	}
}

func TestBuildOutputPath_DefaultTemplate(t *testing.T) {
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	tests := []struct {
		name  string
		scope common.Scope
		want  string
	}{
		{"entire series", common.ScopeEntireSeries, "Sample Series.epub"},
		{"part", common.ScopePartOne, "Sample Series - Part 1.epub"},
		{"fanbooks", common.ScopeFanbooks, "Sample Series - fanbooks.epub"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, false, cfg.Output.OutputNameTemplate)
			res := setupTestResult(t, "Sample Series", tt.scope)

			got := buildOutputPath(res, "/output", env)
			if want := filepath.Join("/output", tt.want); got != want {
				t.Errorf("buildOutputPath() = %q, want %q", got, want)
			}
		})
	}
}

func TestBuildOutputPath_NoTemplate(t *testing.T) {
	env := setupTestEnvForOutputPath(t, false, "")

	got := buildOutputPath(setupTestResult(t, "Sample Series", common.ScopePartOne), "/output", env)
	if want := filepath.Join("/output", "Sample Series - Part 1.epub"); got != want {
		t.Errorf("buildOutputPath() = %q, want %q", got, want)
	}

	got = buildOutputPath(setupTestResult(t, "", common.ScopeEntireSeries), "/output", env)
	if want := filepath.Join("/output", "omnibus.epub"); got != want {
		t.Errorf("buildOutputPath() = %q, want %q", got, want)
	}
}

func TestBuildOutputPath_Subdirectories(t *testing.T) {
	env := setupTestEnvForOutputPath(t, false, "{{ .Author }}/{{ .ScopeLabel }}/{{ .Title }}")

	got := buildOutputPath(setupTestResult(t, "Sample Series", common.ScopePartOne), "/output", env)
	want := filepath.Join("/output", "Jane Roe", "Part 1", "Sample Series.epub")
	if got != want {
		t.Errorf("buildOutputPath() = %q, want %q", got, want)
	}
}

func TestBuildOutputPath_Transliterate(t *testing.T) {
	env := setupTestEnvForOutputPath(t, true, "{{ .Title }}")

	got := buildOutputPath(setupTestResult(t, "Книга", common.ScopeEntireSeries), "/output", env)
	if want := filepath.Join("/output", "kniga.epub"); got != want {
		t.Errorf("buildOutputPath() = %q, want %q", got, want)
	}
}

func TestBuildOutputPath_BrokenTemplateFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{"parse error", "{{ .Title "},
		{"blank result", "{{ if false }}x{{ end }}   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, false, tt.template)

			got := buildOutputPath(setupTestResult(t, "Sample Series", common.ScopeEntireSeries), "/output", env)
			if want := filepath.Join("/output", "Sample Series.epub"); got != want {
				t.Errorf("buildOutputPath() = %q, want %q", got, want)
			}
		})
	}
}

func TestSplitAndCleanPath(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"file", []string{"file"}},
		{filepath.Join("a", "b", "c"), []string{"a", "b", "c"}},
		{filepath.Join("a", "b") + string(filepath.Separator), []string{"a", "b"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		got := splitAndCleanPath(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndCleanPath(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitAndCleanPath(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}

func TestBookTitle(t *testing.T) {
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	tests := []struct {
		name          string
		scope         common.Scope
		template      string
		transliterate bool
		want          string
	}{
		{"default uses scope title", common.ScopePartOne, cfg.Output.Metainformation.TitleTemplate, false, "Sample Series Part One"},
		{"default without scope title", common.ScopeEntireSeries, cfg.Output.Metainformation.TitleTemplate, false, "Sample Series"},
		{"no template", common.ScopePartOne, "", false, "Sample Series"},
		{"custom", common.ScopePartOne, "{{ .Title }}: {{ .ScopeLabel }}", false, "Sample Series: Part 1"},
		{"broken template", common.ScopePartOne, "{{ .Title ", false, "Sample Series"},
		{"transliterated", common.ScopeEntireSeries, "{{ .Title }}", true, "sample-series"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, false, "")
			env.Cfg.Output.Metainformation.TitleTemplate = tt.template
			env.Cfg.Output.Metainformation.Transliterate = tt.transliterate

			if got := bookTitle(setupTestResult(t, "Sample Series", tt.scope), env); got != tt.want {
				t.Errorf("bookTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
