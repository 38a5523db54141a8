// Package selection picks units of a volume participating in assembly.
package selection

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/multierr"

	"obc/catalog"
	"obc/common"
	"obc/config"
	"obc/placement"
)

// ErrNoCollectionVariant is returned when unit selected into POV collection
// cannot be transformed for it. This is catalog modeling problem and must
// not be ignored.
var ErrNoCollectionVariant = errors.New("unit has no collection variant")

// Select returns units of the volume for the scope. Units are copies, catalog
// is never modified. Volumes outside of the scope contribute nothing. Order
// of the result is catalog order with nested units following their parents,
// then derived collection units; final order is established by sort keys
// later. Nested units of a unit left out are left out too. When some units
// could not be put into POV collection error is returned together with
// everything else selected.
func Select(vol *catalog.Volume, scope common.Scope, cfg config.AssemblyConfig) ([]*catalog.Unit, error) {
	if !vol.InScope(scope) {
		return nil, nil
	}

	var res []*catalog.Unit
	for _, u := range vol.Units {
		res = append(res, selectTree(u, scope, cfg)...)
	}

	if !cfg.Collection.POV {
		return res, nil
	}
	collection, err := Collection(vol, scope)
	return append(res, collection...), err
}

func selectTree(u *catalog.Unit, scope common.Scope, cfg config.AssemblyConfig) []*catalog.Unit {
	if !u.InScope(scope) {
		return nil
	}
	res := selectUnit(u, cfg)
	if len(res) == 0 {
		return nil
	}
	for _, child := range u.Units {
		res = append(res, selectTree(child, scope, cfg)...)
	}
	return res
}

// selectUnit applies inclusion rules of unit classification.
func selectUnit(u *catalog.Unit, cfg config.AssemblyConfig) []*catalog.Unit {
	switch u.Class {
	case common.ClassificationStory:
		if len(u.POV) > 0 || cfg.Chapters.IncludeRegular {
			return []*catalog.Unit{prepareChapter(u, cfg)}
		}
	case common.ClassificationBonus:
		if cfg.Chapters.Bonus != common.PlacementPolicyLeaveOut {
			return []*catalog.Unit{prepareChapter(u, cfg)}
		}
	case common.ClassificationManga:
		if cfg.Chapters.Manga != common.PlacementPolicyLeaveOut {
			return []*catalog.Unit{u.Clone()}
		}
	case common.ClassificationGallery:
		return placement.GalleryUnits(u, cfg)
	case common.ClassificationComfyLife:
		if cfg.Extras.ComfyLife != common.ExtraPlacementNone {
			return []*catalog.Unit{u.Clone()}
		}
	case common.ClassificationCharacterSheet:
		if includeSheet(u, cfg.Extras.CharacterSheets) {
			return []*catalog.Unit{u.Clone()}
		}
	case common.ClassificationMap:
		if cfg.Extras.Maps {
			return []*catalog.Unit{u.Clone()}
		}
	case common.ClassificationAfterword:
		if cfg.Extras.Afterwords != common.ExtraPlacementNone {
			return []*catalog.Unit{u.Clone()}
		}
	case common.ClassificationPoll:
		if cfg.Extras.Polls {
			return []*catalog.Unit{u.Clone()}
		}
	}
	return nil
}

// Collection builds POV collection units out of every unit with POV tag.
func Collection(vol *catalog.Volume, scope common.Scope) ([]*catalog.Unit, error) {
	if !vol.InScope(scope) {
		return nil, nil
	}
	var (
		res []*catalog.Unit
		err error
	)
	for _, u := range vol.AllUnits() {
		if len(u.POV) == 0 || !u.InScope(scope) {
			continue
		}
		cv, ok := u.CollectionVariant()
		if !ok {
			err = multierr.Append(err, fmt.Errorf("%s unit '%s' (POV %s): %w", u.Class, u.Name, u.POV, ErrNoCollectionVariant))
			continue
		}
		res = append(res, cv)
	}
	return res, err
}

func includeSheet(u *catalog.Unit, mode common.CharacterSheets) bool {
	switch mode {
	case common.CharacterSheetsAll:
		return true
	case common.CharacterSheetsPerPart:
		return u.Sheet != nil && u.Sheet.PartSheet
	}
	return false
}

// prepareChapter drops artwork inserted in chapter text unless configuration
// asks to keep it.
func prepareChapter(u *catalog.Unit, cfg config.AssemblyConfig) *catalog.Unit {
	c := u.Clone()
	if !cfg.Images.IncludeInChapters {
		c.Fragments = slices.DeleteFunc(c.Fragments, func(f catalog.Fragment) bool {
			return f.Insert
		})
	}
	return c
}
