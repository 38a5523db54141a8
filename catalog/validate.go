package catalog

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/text/language"

	"obc/common"
)

// ErrInvalid marks catalog consistency errors.
var ErrInvalid = errors.New("invalid catalog")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Validate checks catalog invariants and returns all violations found.
func Validate(cat *Catalog) error {
	var err error

	if _, e := language.Parse(cat.Series.Language); e != nil {
		err = multierr.Append(err, invalid("series language '%s': %v", cat.Series.Language, e))
	}

	ids := make(map[string]bool, len(cat.Volumes))
	keys := make(map[string]string)
	claim := func(key, owner string) {
		if prev, ok := keys[key]; ok {
			err = multierr.Append(err, invalid("sort key '%s' used by both '%s' and '%s'", key, prev, owner))
			return
		}
		keys[key] = owner
	}

	for _, v := range cat.Volumes {
		switch {
		case len(v.ID) == 0:
			err = multierr.Append(err, invalid("volume '%s' has no id", v.Title))
		case ids[v.ID]:
			err = multierr.Append(err, invalid("duplicate volume id '%s'", v.ID))
		}
		ids[v.ID] = true

		for _, u := range v.AllUnits() {
			owner := v.ID + "/" + u.Name
			err = multierr.Append(err, validateUnit(u, owner))
			if len(u.Early.SortKey) > 0 {
				claim(u.Early.SortKey, owner)
			}
			if u.Late != nil && len(u.Late.SortKey) > 0 {
				claim(u.Late.SortKey, owner+" (late)")
			}
			for _, sp := range u.Splits {
				if len(sp.SortKey) > 0 {
					claim(sp.SortKey, owner+"/"+sp.Name)
				}
			}
		}
	}
	return err
}

func validateUnit(u *Unit, owner string) (err error) {
	if len(u.Name) == 0 {
		err = multierr.Append(err, invalid("unit '%s' has no name", owner))
	}
	if !u.Class.IsValid() || u.Class == common.ClassificationPovCollection {
		err = multierr.Append(err, invalid("unit '%s' has unsupported classification %s", owner, u.Class))
	}
	if len(u.Early.SortKey) == 0 {
		err = multierr.Append(err, invalid("unit '%s' has no early sort key", owner))
	}
	if u.Late != nil && !u.Class.Deferrable() && u.Class != common.ClassificationGallery {
		err = multierr.Append(err, invalid("unit '%s' of class %s cannot have late placement", owner, u.Class))
	}
	if u.Late != nil && len(u.Late.SortKey) == 0 {
		err = multierr.Append(err, invalid("unit '%s' has late placement without sort key", owner))
	}
	if (u.Gallery != nil) != (u.Class == common.ClassificationGallery) {
		err = multierr.Append(err, invalid("unit '%s': gallery artwork must be present exactly on gallery units", owner))
	}
	if u.Sheet != nil && u.Class != common.ClassificationCharacterSheet {
		err = multierr.Append(err, invalid("unit '%s': sheet information on %s unit", owner, u.Class))
	}
	if len(u.Spreads) > 0 && !u.Class.CanSpread() {
		err = multierr.Append(err, invalid("unit '%s': spreads are not allowed for class %s", owner, u.Class))
	}
	for i, sp := range u.Splits {
		if len(sp.Anchor) == 0 || len(sp.Name) == 0 || len(sp.SortKey) == 0 {
			err = multierr.Append(err, invalid("unit '%s': split point %d must have anchor, name and sort key", owner, i))
		}
	}
	for i, s := range u.Sections {
		if len(s.Start) == 0 || len(s.End) == 0 {
			err = multierr.Append(err, invalid("unit '%s': section %d must have start and end", owner, i))
		}
	}
	if len(u.Sections) > 0 && (len(u.StartAnchor) > 0 || len(u.EndAnchor) > 0) {
		err = multierr.Append(err, invalid("unit '%s': sections cannot be combined with boundary anchors", owner))
	}
	if len(u.Units) > 0 && !nestable(u.Class) {
		err = multierr.Append(err, invalid("unit '%s': %s unit cannot have nested units", owner, u.Class))
	}
	for _, s := range u.Spreads {
		if len(s.Left) == 0 || len(s.Right) == 0 || s.Left == s.Right {
			err = multierr.Append(err, invalid("unit '%s': malformed spread %s/%s", owner, s.Left, s.Right))
		}
	}
	return err
}

// nestable reports whether units of the class may own nested units.
func nestable(c common.Classification) bool {
	switch c {
	case common.ClassificationStory, common.ClassificationBonus, common.ClassificationManga:
		return true
	}
	return false
}
