package build

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"obc/diag"
	"obc/utils/table"
)

// renderSummary lists units per top level folder and diagnostics per kind.
func renderSummary(out *Outcome) string {
	res := out.Result

	var folders []string
	units := make(map[string]int)
	for _, u := range res.Units {
		top, _, _ := strings.Cut(u.Folder, "/")
		if _, ok := units[top]; !ok {
			folders = append(folders, top)
		}
		units[top]++
	}

	rows := make([][]string, 0, len(folders)+1)
	for _, f := range folders {
		name := f
		if name == "" {
			name = "(root)"
		}
		rows = append(rows, []string{name, strconv.Itoa(units[f])})
	}
	rows = append(rows, []string{"total", strconv.Itoa(len(res.Units))})

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", out.Title, out.Output)
	b.WriteString(table.Render([]string{"Folder", "Units"}, rows, []table.Alignment{table.AlignLeft, table.AlignRight}))

	if len(res.Diagnostics) == 0 {
		return b.String()
	}

	counts := make(map[diag.Kind]int)
	for _, d := range res.Diagnostics {
		counts[d.Kind]++
	}
	kinds := make([]diag.Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	rows = rows[:0]
	for _, k := range kinds {
		severity := "problem"
		if k.Audit() {
			severity = "check"
		}
		rows = append(rows, []string{k.String(), severity, strconv.Itoa(counts[k])})
	}
	b.WriteString("\n")
	b.WriteString(table.Render([]string{"Diagnostic", "Severity", "Count"}, rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight}))
	return b.String()
}
