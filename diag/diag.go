// Package diag accumulates non fatal problems found during assembly run.
package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Kind of reported problem.
// ENUM(missingSource, fragmentMissing, overrideUnreadable, anchorMissing, anchorUncertain, anchorDrift, spreadFailed, spreadMismatch, duplicateKey, unitFailed, collectionGap, unusedFragment)
type Kind int

// Audit reports whether diagnostic is informational: processing succeeded
// but authors may want to check the result.
func (k Kind) Audit() bool {
	switch k {
	case KindAnchorUncertain, KindAnchorDrift, KindSpreadMismatch, KindUnusedFragment:
		return true
	}
	return false
}

// Diagnostic describes single problem with enough context to locate it in
// catalog.
type Diagnostic struct {
	Kind     Kind
	Volume   string
	Unit     string
	Fragment string
	Detail   string
	Err      error
}

func (d Diagnostic) Error() string {
	var b strings.Builder
	b.WriteString(d.Kind.String())
	for _, part := range []struct{ name, value string }{
		{"volume", d.Volume},
		{"unit", d.Unit},
		{"fragment", d.Fragment},
	} {
		if len(part.value) > 0 {
			fmt.Fprintf(&b, " %s=%q", part.name, part.value)
		}
	}
	if len(d.Detail) > 0 {
		b.WriteString(": ")
		b.WriteString(d.Detail)
	}
	if d.Err != nil {
		b.WriteString(": ")
		b.WriteString(d.Err.Error())
	}
	return b.String()
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Fields returns diagnostic context for structured logging.
func (d Diagnostic) Fields() []zap.Field {
	fields := []zap.Field{zap.Stringer("kind", d.Kind)}
	if len(d.Volume) > 0 {
		fields = append(fields, zap.String("volume", d.Volume))
	}
	if len(d.Unit) > 0 {
		fields = append(fields, zap.String("unit", d.Unit))
	}
	if len(d.Fragment) > 0 {
		fields = append(fields, zap.String("fragment", d.Fragment))
	}
	if len(d.Detail) > 0 {
		fields = append(fields, zap.String("detail", d.Detail))
	}
	if d.Err != nil {
		fields = append(fields, zap.Error(d.Err))
	}
	return fields
}

func compare(a, b Diagnostic) int {
	return cmp.Or(
		cmp.Compare(a.Volume, b.Volume),
		cmp.Compare(a.Unit, b.Unit),
		cmp.Compare(a.Kind, b.Kind),
		cmp.Compare(a.Fragment, b.Fragment),
		cmp.Compare(a.Detail, b.Detail),
	)
}

// List is safe for concurrent use. Order of Items does not depend on order
// diagnostics were added in.
type List struct {
	mu    sync.Mutex
	items []Diagnostic
}

func (l *List) Add(ds ...Diagnostic) {
	if len(ds) == 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, ds...)
}

func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Items returns sorted copy of accumulated diagnostics.
func (l *List) Items() []Diagnostic {
	l.mu.Lock()
	res := slices.Clone(l.items)
	l.mu.Unlock()

	slices.SortStableFunc(res, compare)
	return res
}

// Err combines all non audit diagnostics.
func (l *List) Err() error {
	var err error
	for _, d := range l.Items() {
		if !d.Kind.Audit() {
			err = multierr.Append(err, d)
		}
	}
	return err
}

// Log writes all diagnostics in stable order.
func (l *List) Log(log *zap.Logger) {
	for _, d := range l.Items() {
		if d.Kind.Audit() {
			log.Info("Check result", d.Fields()...)
		} else {
			log.Warn("Problem", d.Fields()...)
		}
	}
}
