package assemble

import (
	"strings"

	"obc/utils/debug"
)

const bodyPreview = 120

// String returns readable tree of assembled units grouped by folder followed
// by diagnostics. It is stored in debug report for manual inspection.
func (r *Result) String() string {
	if r == nil {
		return "<nil Result>"
	}

	var tr debug.Tree
	tr.Line(0, "Omnibus %q scope %s (%s)", r.Title, r.Scope.Scope, r.Scope.Label)
	tr.Line(0, "Units: %d", len(r.Units))

	folder := "\x00"
	for _, u := range r.Units {
		if u.Folder != folder {
			folder = u.Folder
			tr.Line(1, "Folder %q", folder)
		}
		tr.Line(2, "[%s] %q volume %s class %s", u.SortKey, u.Name, u.Volume, u.Class)
		tr.Value(3, "body", u.Body, bodyPreview)
		if len(u.Styles) > 0 {
			tr.Line(3, "styles: %s", strings.Join(u.Styles, ", "))
		}
		for _, l := range u.Links {
			tr.Line(3, "link %q -> %s", l.Original, l.Target)
		}
	}

	if len(r.Diagnostics) > 0 {
		tr.Line(0, "Diagnostics: %d", len(r.Diagnostics))
		for _, d := range r.Diagnostics {
			tr.Line(1, "%s", d.Error())
		}
	}
	return tr.String()
}
