// Package merge concatenates source fragments of a unit into single body.
package merge

import (
	"cmp"
	"context"
	"errors"
	"html"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"obc/catalog"
	"obc/common"
	"obc/diag"
	"obc/source"
)

// Opening wrapper markers removed from every fragment but the first.
var openMarkers = []string{`<body class="nomargin center">`, `<body>`}

// closeMarker is removed from every fragment, packaging closes the body.
const closeMarker = "</body>"

const overrideExt = ".xhtml"

// Body is merged unit content.
type Body struct {
	Text string
	// Styles are stylesheet paths in first seen order.
	Styles []string
	// Base is document directory relative references in Text are resolved
	// against.
	Base string
}

// Merge builds unit body. Override document "<overrides>/<override>.xhtml"
// when readable is used verbatim, otherwise unit fragments are concatenated
// in declared order. Missing fragments are reported and skipped.
func Merge(ctx context.Context, u *catalog.Unit, lookup source.Lookup, overrides string) (Body, []diag.Diagnostic) {
	var diags []diag.Diagnostic

	fragments := slices.Clone(u.Fragments)
	slices.SortStableFunc(fragments, func(a, b catalog.Fragment) int {
		return cmp.Compare(a.Order, b.Order)
	})

	if len(u.Override) > 0 && len(overrides) > 0 {
		p := filepath.Join(overrides, u.Override+overrideExt)
		data, err := os.ReadFile(p)
		if err == nil {
			res := Body{Text: string(data)}
			if len(fragments) > 0 {
				if f, err := lookup.Fragment(fragments[0].File); err == nil {
					res.Base = path.Dir(f.Path)
				}
			}
			return res, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			diags = append(diags, diag.Diagnostic{
				Kind:   diag.KindOverrideUnreadable,
				Volume: u.VolumeID(),
				Unit:   u.ID(),
				Detail: p,
				Err:    err,
			})
		}
	}

	var (
		body strings.Builder
		res  Body
	)
	first := true
	for _, fr := range fragments {
		if err := ctx.Err(); err != nil {
			diags = append(diags, diag.Diagnostic{Kind: diag.KindUnitFailed, Volume: u.VolumeID(), Unit: u.ID(), Err: err})
			break
		}
		f, err := lookup.Fragment(fr.File)
		if err != nil {
			diags = append(diags, diag.Diagnostic{
				Kind:     diag.KindFragmentMissing,
				Volume:   u.VolumeID(),
				Unit:     u.ID(),
				Fragment: fr.File,
				Err:      err,
			})
			continue
		}

		text := f.Body
		if first {
			res.Base = path.Dir(f.Path)
		} else {
			for _, m := range openMarkers {
				text = strings.ReplaceAll(text, m, "")
			}
		}
		first = false
		body.WriteString(strings.ReplaceAll(text, closeMarker, ""))

		for _, s := range f.Styles {
			if !slices.Contains(res.Styles, s) {
				res.Styles = append(res.Styles, s)
			}
		}
	}
	res.Text = body.String()
	return res, diags
}

var titleRe = regexp.MustCompile(`(?s)<h1(\s[^>]*)?>.*?</h1>`)

// RewriteTitle replaces first level one heading with one containing name.
// Heading attributes are kept.
func RewriteTitle(body, name string) string {
	loc := titleRe.FindStringSubmatchIndex(body)
	if loc == nil {
		return body
	}
	attrs := ""
	if loc[2] >= 0 {
		attrs = body[loc[2]:loc[3]]
	}
	return body[:loc[0]] + "<h1" + attrs + ">" + html.EscapeString(name) + "</h1>" + body[loc[1]:]
}

// TitleWithPOV returns unit name followed by its point of view for
// story, bonus and manga units. Other units keep their name.
func TitleWithPOV(u *catalog.Unit) string {
	if len(u.POV) == 0 {
		return u.Name
	}
	switch u.Origin() {
	case common.ClassificationStory, common.ClassificationBonus, common.ClassificationManga:
	default:
		return u.Name
	}
	suffix := " (" + u.POV + ")"
	if strings.HasSuffix(u.Name, suffix) {
		return u.Name
	}
	return u.Name + suffix
}

// ApplyReplacements substitutes literal text in declared order.
func ApplyReplacements(body string, reps []catalog.Replacement) string {
	for _, r := range reps {
		if len(r.Original) == 0 {
			continue
		}
		body = strings.ReplaceAll(body, r.Original, r.Replacement)
	}
	return body
}
