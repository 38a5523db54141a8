// Package extract narrows merged unit bodies to anchor delimited regions and
// splits them into several units. Functions here never modify catalog.
package extract

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"slices"
	"strings"

	"obc/catalog"
	"obc/diag"
)

// ErrAnchorNotFound is carried by findings for anchors absent from body.
var ErrAnchorNotFound = errors.New("anchor not found")

// Finding is problem or uncertainty found while extracting.
type Finding struct {
	Kind   diag.Kind
	Anchor string
	Detail string
	Err    error
}

// Opening returns markup re-opening narrowed region under heading name.
func Opening(name string) string {
	return "<body><section><div><h1>" + html.EscapeString(name) + "</h1>"
}

func missing(anchor string) Finding {
	return Finding{Kind: diag.KindAnchorMissing, Anchor: anchor, Err: ErrAnchorNotFound}
}

// Narrow keeps region between first occurrences of start and end anchors.
// Start anchor is consumed and region is re-opened with Opening(name), end
// anchor and everything after it is dropped. End anchor is searched after
// start anchor only. Empty anchors are ignored, absent anchors are reported
// and leave body untouched on their side.
func Narrow(body, start, end, name string) (string, []Finding) {
	var (
		findings []Finding
		opening  string
	)
	if len(start) > 0 {
		if idx := strings.Index(body, start); idx < 0 {
			findings = append(findings, missing(start))
		} else {
			body, opening = body[idx+len(start):], Opening(name)
		}
	}
	if len(end) > 0 {
		if idx := strings.Index(body, end); idx < 0 {
			findings = append(findings, missing(end))
		} else {
			body = body[:idx]
		}
	}
	return opening + body, findings
}

// Occurrences returns offsets of all, possibly overlapping, occurrences of
// anchor in body.
func Occurrences(body, anchor string) []int {
	if len(anchor) == 0 {
		return nil
	}
	var res []int
	for from := 0; from <= len(body)-len(anchor); {
		idx := strings.Index(body[from:], anchor)
		if idx < 0 {
			break
		}
		res = append(res, from+idx)
		from += idx + 1
	}
	return res
}

// NearestIndex returns offset of anchor occurrence closest to hint. When
// distance is the same earlier occurrence wins. Occurrences starting after
// limit are not considered when limit is not negative. Result is -1 when
// there is no suitable occurrence, ambiguous reports whether there was more
// than one candidate.
func NearestIndex(body, anchor string, hint, limit int) (idx int, ambiguous bool) {
	candidates := Occurrences(body, anchor)
	if limit >= 0 {
		candidates = slices.DeleteFunc(candidates, func(i int) bool { return i > limit })
	}
	if len(candidates) == 0 {
		return -1, false
	}

	idx, best := candidates[0], abs(candidates[0]-hint)
	for _, c := range candidates[1:] {
		if d := abs(c - hint); d < best {
			idx, best = c, d
		}
	}
	return idx, len(candidates) > 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// locate finds anchor for split point or section boundary reporting every
// uncertainty.
func locate(body, anchor string, hint *int, limit, drift int) (int, []Finding) {
	h := 0
	if hint != nil {
		h = *hint
	}
	idx, ambiguous := NearestIndex(body, anchor, h, limit)
	if idx < 0 {
		return -1, []Finding{missing(anchor)}
	}

	var findings []Finding
	if ambiguous && hint == nil {
		findings = append(findings, Finding{
			Kind:   diag.KindAnchorUncertain,
			Anchor: anchor,
			Detail: fmt.Sprintf("anchor is not unique and has no position hint, using offset %d", idx),
		})
	}
	if hint != nil && drift > 0 && abs(idx-*hint) > drift {
		findings = append(findings, Finding{
			Kind:   diag.KindAnchorDrift,
			Anchor: anchor,
			Detail: fmt.Sprintf("anchor found at offset %d, hint was %d", idx, *hint),
		})
	}
	return idx, findings
}

// Sections concatenates regions of body. Every region spans from its start
// anchor to the end of its end anchor, start is searched before the end.
// Regions with missing anchors are skipped.
func Sections(body string, sections []catalog.Section, drift int) (string, []Finding) {
	var (
		b        strings.Builder
		findings []Finding
	)
	for _, s := range sections {
		end, fs := locate(body, s.End, s.EndHint, -1, drift)
		findings = append(findings, fs...)
		if end < 0 {
			continue
		}
		end += len(s.End)

		start, fs := locate(body, s.Start, s.StartHint, end, drift)
		findings = append(findings, fs...)
		if start < 0 {
			continue
		}
		b.WriteString(body[start:end])
	}
	return b.String(), findings
}

// Part is unit body cut at split point.
type Part struct {
	Point catalog.SplitPoint
	Body  string
}

// SplitResult is outcome of splitting.
type SplitResult struct {
	// Lead is region before the earliest split point, set only when it is
	// retained.
	Lead *string
	// Parts are in body order.
	Parts []Part
}

var divRe = regexp.MustCompile(`<div class=".*?">`)

type located struct {
	offset int
	point  catalog.SplitPoint
}

// Split cuts body at split point anchors. Split points are walked from the
// latest resolved offset to the earliest, every one produces new body from
// the end of its anchor to the start of the following anchor re-wrapped
// with synthesized heading carrying split point name. When keepFirst is set
// region before the earliest anchor is returned as Lead. Split points with
// missing anchors are reported and skipped.
func Split(body string, points []catalog.SplitPoint, keepFirst bool, drift int) (SplitResult, []Finding) {
	var (
		res      SplitResult
		findings []Finding
		cuts     []located
	)
	for _, sp := range points {
		idx, fs := locate(body, sp.Anchor, sp.Hint, -1, drift)
		findings = append(findings, fs...)
		if idx < 0 {
			continue
		}
		cuts = append(cuts, located{offset: idx, point: sp})
	}
	slices.SortStableFunc(cuts, func(a, b located) int {
		return b.offset - a.offset
	})

	div := divRe.FindString(body)
	previous := len(body)
	for _, c := range cuts {
		from := min(c.offset+len(c.point.Anchor), previous)
		res.Parts = append(res.Parts, Part{
			Point: c.point,
			Body:  "<body>" + div + "<h1>" + html.EscapeString(c.point.Name) + "</h1>" + body[from:previous] + "</div>",
		})
		previous = c.offset
	}
	slices.Reverse(res.Parts)

	if keepFirst {
		lead := body[:previous] + "</div>"
		res.Lead = &lead
	}
	return res, findings
}
