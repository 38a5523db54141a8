package assemble

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/maruel/natural"

	"obc/catalog"
	"obc/diag"
	"obc/extract"
	"obc/merge"
	"obc/placement"
	"obc/source"
	"obc/spread"
)

func (e *Engine) process(ctx context.Context, r *placement.Resolver, j job) (o outcome) {
	u := j.unit
	defer func() {
		if rec := recover(); rec != nil {
			o = outcome{diags: []diag.Diagnostic{{
				Kind:   diag.KindUnitFailed,
				Volume: u.VolumeID(),
				Unit:   u.ID(),
				Err:    fmt.Errorf("unexpected failure: %v", rec),
			}}}
		}
	}()

	if err := ctx.Err(); err != nil {
		return outcome{diags: []diag.Diagnostic{{Kind: diag.KindUnitFailed, Volume: u.VolumeID(), Unit: u.ID(), Err: err}}}
	}

	set := source.NewSet(j.doc)
	if e.cfg.Images.CombineSpreads && len(u.Spreads) > 0 {
		fragments, ds := spread.Recombine(ctx, u, set, j.doc, spread.Options{JPEGQuality: e.cfg.Images.JPEGQuality})
		o.diags = append(o.diags, ds...)
		u = u.Clone()
		u.Fragments = fragments
	}

	merged, ds := merge.Merge(ctx, u, set, e.cfg.OverridesDir)
	o.diags = append(o.diags, ds...)

	body := merged.Text
	if e.cfg.Chapters.UpdateTitles {
		body = merge.RewriteTitle(body, merge.TitleWithPOV(u))
	}

	var findings []extract.Finding
	if len(u.Sections) > 0 {
		var fs []extract.Finding
		body, fs = extract.Sections(body, u.Sections, e.cfg.AnchorDrift)
		body = extract.Opening(u.Name) + body
		findings = append(findings, fs...)
	} else {
		var fs []extract.Finding
		body, fs = extract.Narrow(body, u.StartAnchor, u.EndAnchor, u.Name)
		findings = append(findings, fs...)
	}

	output := func(name string, res placement.Resolution, text string) AssembledUnit {
		return AssembledUnit{
			Name:    name,
			Folder:  res.Folder,
			SortKey: res.SortKey,
			Body:    merge.ApplyReplacements(text, u.Replacements),
			Base:    merged.Base,
			Styles:  slices.Clone(merged.Styles),
			Links:   slices.Clone(u.Links),
			Volume:  u.VolumeID(),
			Class:   u.Class,
		}
	}

	if len(u.Splits) == 0 {
		o.units = append(o.units, output(u.Name, j.res, body))
	} else {
		sr, fs := extract.Split(body, u.Splits, u.KeepFirstSplit, e.cfg.AnchorDrift)
		findings = append(findings, fs...)
		switch {
		case sr.Lead != nil:
			o.units = append(o.units, output(u.Name, j.res, *sr.Lead))
		case len(sr.Parts) == 0:
			// nothing was cut, unit stays whole
			o.units = append(o.units, output(u.Name, j.res, body))
		}
		for _, p := range sr.Parts {
			o.units = append(o.units, output(p.Point.Name, r.ResolveSplit(j.res, u, p.Point), p.Body))
		}
	}

	for _, f := range findings {
		o.diags = append(o.diags, findingDiagnostic(u, f))
	}
	o.used = set.Used()
	return o
}

func findingDiagnostic(u *catalog.Unit, f extract.Finding) diag.Diagnostic {
	detail := fmt.Sprintf("anchor %q", f.Anchor)
	if len(f.Detail) > 0 {
		detail += ", " + f.Detail
	}
	return diag.Diagnostic{
		Kind:   f.Kind,
		Volume: u.VolumeID(),
		Unit:   u.ID(),
		Detail: detail,
		Err:    f.Err,
	}
}

type outputKey struct {
	name, sortKey, folder string
}

// combine concatenates outputs sharing name, sort key and folder into the
// first of them.
func combine(units []AssembledUnit) []AssembledUnit {
	var (
		res   []AssembledUnit
		index = make(map[outputKey]int)
	)
	for _, au := range units {
		k := outputKey{au.Name, au.SortKey, au.Folder}
		i, ok := index[k]
		if !ok {
			index[k] = len(res)
			res = append(res, au)
			continue
		}
		dst := &res[i]
		dst.Body += au.Body
		for _, s := range au.Styles {
			if !slices.Contains(dst.Styles, s) {
				dst.Styles = append(dst.Styles, s)
			}
		}
		for _, l := range au.Links {
			if !slices.Contains(dst.Links, l) {
				dst.Links = append(dst.Links, l)
			}
		}
	}
	return res
}

// order sorts units in place and reports sort keys shared by different
// outputs.
func order(units []AssembledUnit) []diag.Diagnostic {
	slices.SortStableFunc(units, func(a, b AssembledUnit) int {
		return cmp.Or(
			cmp.Compare(a.SortKey, b.SortKey),
			cmp.Compare(a.Folder, b.Folder),
			cmp.Compare(a.Name, b.Name),
		)
	})

	var diags []diag.Diagnostic
	for i := 1; i < len(units); i++ {
		prev, cur := units[i-1], units[i]
		if prev.SortKey != cur.SortKey {
			continue
		}
		diags = append(diags, diag.Diagnostic{
			Kind:   diag.KindDuplicateKey,
			Volume: cur.Volume,
			Unit:   cur.SortKey + "-" + cur.Name,
			Detail: fmt.Sprintf("sort key %q shared with %q in %q", cur.SortKey, prev.Name, prev.Folder),
		})
	}
	return diags
}

// unusedFragments returns names of document fragments no unit consumed in
// natural order.
func unusedFragments(doc *source.Document, used map[string]bool) []string {
	var res []string
	for _, name := range doc.Names() {
		if !used[name] {
			res = append(res, name)
		}
	}
	slices.SortFunc(res, natural.Compare)
	return res
}
