package placement

import (
	"slices"

	"obc/catalog"
	"obc/common"
	"obc/config"
)

// GalleryUnits materializes gallery unit into start of volume and end of
// volume instances according to configured bucket of every artwork type.
// Instances without artwork are not produced, so result may be empty.
func GalleryUnits(u *catalog.Unit, cfg config.AssemblyConfig) []*catalog.Unit {
	if u.Class != common.ClassificationGallery || u.Gallery == nil {
		return nil
	}

	var res []*catalog.Unit
	for _, start := range []bool{true, false} {
		bucket := common.GalleryBucketEnd
		if start {
			bucket = common.GalleryBucketStart
		}

		var fragments []catalog.Fragment
		if cfg.Images.Gallery.Splash == bucket {
			fragments = append(fragments, u.Gallery.Splash...)
		}
		if cfg.Images.Gallery.Inserts == bucket {
			fragments = append(fragments, u.Gallery.Inserts...)
		}
		if len(fragments) == 0 {
			continue
		}
		// artwork lists have no explicit order, keep listed one
		for i := range fragments {
			fragments[i].Order = i
		}

		c := u.Clone()
		c.Fragments = fragments
		c.Derived = &catalog.Derivation{Origin: common.ClassificationGallery, StartOfBook: start}
		if cfg.Layout == common.OutputLayoutByPartAndVolume && len(u.AltName) > 0 {
			c.Name = u.AltName
		}
		c.Spreads = slices.DeleteFunc(c.Spreads, func(s catalog.Spread) bool {
			return !hasFile(fragments, s.Left) || !hasFile(fragments, s.Right)
		})
		res = append(res, c)
	}
	return res
}

func hasFile(fragments []catalog.Fragment, name string) bool {
	return slices.ContainsFunc(fragments, func(f catalog.Fragment) bool {
		return f.File == name
	})
}
