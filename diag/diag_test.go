package diag

import (
	"errors"
	"sync"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDiagnostic_Error(t *testing.T) {
	cause := errors.New("boom")
	d := Diagnostic{Kind: KindFragmentMissing, Volume: "P1V1", Unit: "0101-Prologue", Fragment: "x", Detail: "lookup", Err: cause}

	want := `fragmentMissing volume="P1V1" unit="0101-Prologue" fragment="x": lookup: boom`
	if got := d.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(d, cause) {
		t.Error("diagnostic must unwrap to its cause")
	}
	if got := (Diagnostic{Kind: KindDuplicateKey}).Error(); got != "duplicateKey" {
		t.Errorf("Error() = %q", got)
	}
}

func TestKind_Audit(t *testing.T) {
	for _, name := range KindNames() {
		k, err := ParseKind(name)
		if err != nil {
			t.Fatalf("ParseKind(%s) error = %v", name, err)
		}
		want := name == "anchorUncertain" || name == "anchorDrift" || name == "spreadMismatch" || name == "unusedFragment"
		if k.Audit() != want {
			t.Errorf("%s.Audit() = %v, want %v", name, k.Audit(), want)
		}
	}
}

func TestList_DeterministicOrder(t *testing.T) {
	items := []Diagnostic{
		{Kind: KindSpreadFailed, Volume: "V2", Unit: "a"},
		{Kind: KindFragmentMissing, Volume: "V1", Unit: "b", Fragment: "z"},
		{Kind: KindFragmentMissing, Volume: "V1", Unit: "b", Fragment: "y"},
		{Kind: KindMissingSource, Volume: "V1"},
		{Kind: KindAnchorDrift, Volume: "V1", Unit: "a"},
	}

	var l List
	var wg sync.WaitGroup
	for i := len(items) - 1; i >= 0; i-- {
		wg.Add(1)
		go func(d Diagnostic) {
			defer wg.Done()
			l.Add(d)
		}(items[i])
	}
	wg.Wait()
	l.Add()

	if l.Len() != len(items) {
		t.Fatalf("Len() = %d, want %d", l.Len(), len(items))
	}
	got := l.Items()
	want := []string{
		`missingSource volume="V1"`,
		`anchorDrift volume="V1" unit="a"`,
		`fragmentMissing volume="V1" unit="b" fragment="y"`,
		`fragmentMissing volume="V1" unit="b" fragment="z"`,
		`spreadFailed volume="V2" unit="a"`,
	}
	for i := range want {
		if got[i].Error() != want[i] {
			t.Errorf("item %d = %q, want %q", i, got[i].Error(), want[i])
		}
	}
}

func TestList_Err(t *testing.T) {
	var l List
	if l.Err() != nil {
		t.Error("empty list must have no error")
	}

	l.Add(Diagnostic{Kind: KindAnchorUncertain, Unit: "a"})
	if l.Err() != nil {
		t.Error("audit diagnostics must not produce error")
	}

	l.Add(Diagnostic{Kind: KindFragmentMissing, Unit: "a"}, Diagnostic{Kind: KindSpreadFailed, Unit: "b"})
	errs := multierr.Errors(l.Err())
	if len(errs) != 2 {
		t.Errorf("Err() combines %d errors, want 2", len(errs))
	}
}

func TestList_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	var l List
	l.Add(Diagnostic{Kind: KindUnusedFragment, Volume: "V1", Fragment: "extra"})
	l.Add(Diagnostic{Kind: KindMissingSource, Volume: "V2", Err: errors.New("no file")})
	l.Log(zap.New(core))

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("logged %d entries, want 2", len(entries))
	}
	if entries[0].Level != zap.InfoLevel || entries[0].ContextMap()["fragment"] != "extra" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Level != zap.WarnLevel || entries[1].ContextMap()["kind"] != "missingSource" {
		t.Errorf("unexpected second entry: %+v", entries[1])
	}
}
