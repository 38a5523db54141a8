package build

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"obc/assemble"
	"obc/common"
	"obc/config"
	"obc/state"
)

const outputExt = ".epub"

// buildOutputPath returns output file path using either default naming
// scheme or user-defined template. Template may produce subdirectories,
// every path segment is cleaned and if requested transliterated.
func buildOutputPath(res *assemble.Result, dst string, env *state.LocalEnv) string {
	defaultFile := buildDefaultFileName(res, env)

	if env.Cfg.Output.OutputNameTemplate == "" {
		return filepath.Join(dst, defaultFile)
	}

	expandedName := expandOutputNameTemplate(res, env)
	if strings.TrimSpace(expandedName) == "" {
		// fallback to default name if template expansion failed
		return filepath.Join(dst, defaultFile)
	}
	return assemblePathWithSubdirs(dst, expandedName, env)
}

func buildDefaultFileName(res *assemble.Result, env *state.LocalEnv) string {
	baseName := res.Title
	if res.Scope.Scope != common.ScopeEntireSeries {
		baseName += " - " + res.Scope.Label
	}
	if strings.TrimSpace(baseName) == "" {
		baseName = "omnibus"
	}
	return cleanPathSegment(baseName, env) + outputExt
}

func expandOutputNameTemplate(res *assemble.Result, env *state.LocalEnv) string {
	expandedName, err := expandTemplate(res, config.OutputNameTemplateFieldName, env.Cfg.Output.OutputNameTemplate)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	return filepath.FromSlash(expandedName)
}

func assemblePathWithSubdirs(outDir, expandedName string, env *state.LocalEnv) string {
	pathSegments := splitAndCleanPath(expandedName)
	if len(pathSegments) == 0 {
		return outDir
	}

	fileName := cleanPathSegment(pathSegments[len(pathSegments)-1], env) + outputExt
	dirParts := make([]string, 0, len(pathSegments)+1)
	dirParts = append(dirParts, outDir)

	for _, segment := range pathSegments[:len(pathSegments)-1] {
		dirParts = append(dirParts, cleanPathSegment(segment, env))
	}

	dirParts = append(dirParts, fileName)
	return filepath.Join(dirParts...)
}

func splitAndCleanPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)

	for head, tail := filepath.Split(path); tail != ""; head, tail = filepath.Split(head) {
		segments = slices.Insert(segments, 0, tail)
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
	}
	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Output.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}

// bookTitle expands metainformation title template falling back to series
// title.
func bookTitle(res *assemble.Result, env *state.LocalEnv) string {
	title := res.Title
	meta := env.Cfg.Output.Metainformation
	if meta.TitleTemplate != "" {
		expanded, err := expandTemplate(res, config.MetaTitleTemplateFieldName, meta.TitleTemplate)
		if err != nil {
			env.Log.Warn("Unable to prepare book title", zap.Error(err))
		} else if strings.TrimSpace(expanded) != "" {
			title = expanded
		}
	}
	if meta.Transliterate {
		title = slug.Make(title)
	}
	return title
}
