package assemble

import (
	"strings"
	"testing"
)

func TestResult_String(t *testing.T) {
	res := run(t, testConfig(), testCatalog())

	s := res.String()
	for _, want := range []string{
		`Omnibus "Series" scope entireSeries (entireSeries)`,
		"Units: 5",
		`  Folder "02-Chapters"`,
		`    [0101] "Chapter One" volume v1 class story`,
		`  Folder "02-Chapters/0102-Split"`,
		`      link "c2.xhtml" -> 0101`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("dump does not contain %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "Diagnostics:") {
		t.Errorf("clean run must not list diagnostics:\n%s", s)
	}

	var nilResult *Result
	if got := nilResult.String(); got != "<nil Result>" {
		t.Errorf("nil String() = %q", got)
	}
}
