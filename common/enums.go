// Enums shared by configuration, catalog and assembly engine. Kept in a
// separate package so catalog does not depend on configuration.
package common

// Output folder structure of the assembled omnibus.
// ENUM(flat, byPart, byPartAndVolume, bySeason)
type OutputLayout int

// Where deferrable units (bonus, manga) are placed.
// ENUM(chronological, endOfBook, leaveOut)
type PlacementPolicy int

// Which gallery bucket an artwork type goes to.
// ENUM(none, start, end)
type GalleryBucket int

// Character sheet inclusion mode.
// ENUM(all, perPart, none)
type CharacterSheets int

// Placement of optional extras (comfy life chapters, afterwords).
// ENUM(none, volumeEnd, omnibusEnd)
type ExtraPlacement int

// Season folder year label format.
// ENUM(number, label)
type YearFormat int

// Subset of the series participating in a single assembly run.
// ENUM(entireSeries, partOne, partTwo, partThree, partFour, partFive, fanbooks, hannelore)
type Scope int

// Content unit classification.
// ENUM(story, bonus, manga, gallery, characterSheet, map, afterword, poll, comfyLife, povCollection)
type Classification int

// Deferrable reports whether unit of this classification may carry late
// placement.
func (c Classification) Deferrable() bool {
	return c == ClassificationBonus || c == ClassificationManga
}

// CanSpread reports whether units of this classification may declare spread
// pairings.
func (c Classification) CanSpread() bool {
	return c == ClassificationGallery || c == ClassificationManga
}
