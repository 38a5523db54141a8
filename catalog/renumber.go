package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// Renumber rewrites sort keys in bulk. Units of every volume are ordered by
// their current early keys, nested units included, and numbered "<volume number><NN>", deferrable
// units additionally get late keys "<volume number>96<NN>" in the same order.
// Galleries are left alone since their keys are authored explicitly. This is
// maintenance operation, never called during assembly.
func Renumber(cat *Catalog) int {
	var changed int
	set := func(dst *string, value string) {
		if *dst != value {
			*dst = value
			changed++
		}
	}

	for _, v := range cat.Volumes {
		units := slices.DeleteFunc(v.AllUnits(), func(u *Unit) bool {
			return u.Gallery != nil
		})
		slices.SortStableFunc(units, func(a, b *Unit) int {
			return strings.Compare(a.Early.SortKey, b.Early.SortKey)
		})

		late := 1
		for i, u := range units {
			set(&u.Early.SortKey, fmt.Sprintf("%s%02d", v.Number, i+1))
			if !u.Class.Deferrable() {
				continue
			}
			if u.Late == nil {
				u.Late = &Placement{Year: u.Early.Year, Season: u.Early.Season}
			}
			set(&u.Late.SortKey, fmt.Sprintf("%s96%02d", v.Number, late))
			late++
		}
	}
	return changed
}
