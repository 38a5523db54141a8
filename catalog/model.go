// Package catalog models series volumes and content units they own.
package catalog

import (
	"slices"

	"obc/common"
)

// Placement is temporal position of the unit in the series.
type Placement struct {
	Year    int    `yaml:"year"`
	Season  string `yaml:"season,omitempty"`
	SortKey string `yaml:"sort_key"`
}

// Fragment references raw source content piece by file name.
type Fragment struct {
	File  string `yaml:"file"`
	Order int    `yaml:"order,omitempty"`
	// Insert marks artwork fragment placed in the middle of a chapter.
	Insert bool `yaml:"insert,omitempty"`
}

// SplitPoint describes one output unit cut from the merged body at Anchor.
type SplitPoint struct {
	Anchor  string `yaml:"anchor"`
	Name    string `yaml:"name"`
	SortKey string `yaml:"sort_key"`
	Folder  string `yaml:"folder,omitempty"`
	// Hint is approximate anchor offset remembered from previous authoring
	// pass.
	Hint *int `yaml:"hint,omitempty"`
}

// Section is region of merged body kept when unit is assembled from
// several disjoint parts. Hints are approximate anchor offsets.
type Section struct {
	Start     string `yaml:"start"`
	StartHint *int   `yaml:"start_hint,omitempty"`
	End       string `yaml:"end"`
	EndHint   *int   `yaml:"end_hint,omitempty"`
}

// Spread pairs two halves of two page artwork. Right is retained, Left is
// discarded after recombination.
type Spread struct {
	Right string `yaml:"right"`
	Left  string `yaml:"left"`
}

type Replacement struct {
	Original    string `yaml:"original"`
	Replacement string `yaml:"replacement"`
}

// LinkRewrite redirects internal cross reference to another unit.
type LinkRewrite struct {
	Original string `yaml:"original"`
	Target   string `yaml:"target"`
}

// GalleryArt is payload of gallery units.
type GalleryArt struct {
	Splash  []Fragment `yaml:"splash,omitempty"`
	Inserts []Fragment `yaml:"inserts,omitempty"`
}

// SheetInfo is payload of character sheet units.
type SheetInfo struct {
	// PartSheet marks last sheet of a series part.
	PartSheet bool `yaml:"part_sheet,omitempty"`
}

// Derivation is set on units produced from catalog units during selection.
type Derivation struct {
	Origin      common.Classification
	StartOfBook bool
}

// Unit is one logical content item. Classification specific data lives in
// optional payload fields.
type Unit struct {
	Name    string                `yaml:"name"`
	AltName string                `yaml:"alt_name,omitempty"`
	Class   common.Classification `yaml:"class"`

	Early Placement  `yaml:"early"`
	Late  *Placement `yaml:"late,omitempty"`

	// Empty means same as owning volume.
	Scopes []common.Scope `yaml:"scopes,omitempty"`

	Fragments      []Fragment    `yaml:"fragments,omitempty"`
	StartAnchor    string        `yaml:"start_anchor,omitempty"`
	EndAnchor      string        `yaml:"end_anchor,omitempty"`
	Sections       []Section     `yaml:"sections,omitempty"`
	Splits         []SplitPoint  `yaml:"splits,omitempty"`
	KeepFirstSplit bool          `yaml:"keep_first_split,omitempty"`
	Override       string        `yaml:"override,omitempty"`
	POV            string        `yaml:"pov,omitempty"`
	Spreads        []Spread      `yaml:"spreads,omitempty"`
	Replacements   []Replacement `yaml:"replacements,omitempty"`
	Links          []LinkRewrite `yaml:"links,omitempty"`

	Gallery *GalleryArt `yaml:"gallery,omitempty"`
	Sheet   *SheetInfo  `yaml:"sheet,omitempty"`

	// Units are nested units, they go to subfolder named after this one.
	Units []*Unit `yaml:"units,omitempty"`

	Volume  *Volume     `yaml:"-"`
	Parent  *Unit       `yaml:"-"`
	Derived *Derivation `yaml:"-"`
}

// Volume is one published source document.
type Volume struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title"`
	Number string `yaml:"number"`
	Order  int    `yaml:"order"`
	// Part volume belongs to, used for part folders when whole series is
	// assembled.
	Part   common.Scope   `yaml:"part"`
	Scopes []common.Scope `yaml:"scopes,omitempty"`
	// Source is name of the source document, defaults to ID.
	Source       string  `yaml:"source,omitempty"`
	ReportUnused bool    `yaml:"report_unused,omitempty"`
	Units        []*Unit `yaml:"units"`
}

type SeriesInfo struct {
	Title      string `yaml:"title"`
	Author     string `yaml:"author"`
	AuthorSort string `yaml:"author_sort,omitempty"`
	Publisher  string `yaml:"publisher,omitempty"`
	Language   string `yaml:"language"`
}

// ScopeInfo names a scope. Label is used for folders, Title for the book.
type ScopeInfo struct {
	Scope common.Scope `yaml:"scope"`
	Label string       `yaml:"label"`
	Title string       `yaml:"title,omitempty"`
}

type Catalog struct {
	Series  SeriesInfo  `yaml:"series"`
	Scopes  []ScopeInfo `yaml:"scopes,omitempty"`
	Volumes []*Volume   `yaml:"volumes"`
}

// link restores volume and parent back references after loading.
func (c *Catalog) link() {
	for _, v := range c.Volumes {
		linkUnits(v, nil, v.Units)
	}
}

func linkUnits(v *Volume, parent *Unit, units []*Unit) {
	for _, u := range units {
		u.Volume, u.Parent = v, parent
		linkUnits(v, u, u.Units)
	}
}

// ScopeInfo returns description of the scope, unnamed scopes are labeled by
// their names.
func (c *Catalog) ScopeInfo(s common.Scope) ScopeInfo {
	for _, si := range c.Scopes {
		if si.Scope == s {
			if len(si.Label) == 0 {
				si.Label = s.String()
			}
			return si
		}
	}
	return ScopeInfo{Scope: s, Label: s.String()}
}

// Volume finds volume by ID.
func (c *Catalog) Volume(id string) *Volume {
	for _, v := range c.Volumes {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// SourceName returns name of the source document for the volume.
func (v *Volume) SourceName() string {
	if len(v.Source) > 0 {
		return v.Source
	}
	return v.ID
}

// InScope reports whether volume participates in the scope.
func (v *Volume) InScope(s common.Scope) bool {
	return s == common.ScopeEntireSeries || v.Part == s || slices.Contains(v.Scopes, s)
}

// AllUnits returns volume units with nested units following their parents.
func (v *Volume) AllUnits() []*Unit {
	var res []*Unit
	var walk func([]*Unit)
	walk = func(units []*Unit) {
		for _, u := range units {
			res = append(res, u)
			walk(u.Units)
		}
	}
	walk(v.Units)
	return res
}

// Depth returns nesting level of the unit, top level units have 0.
func (u *Unit) Depth() int {
	var d int
	for p := u.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// InScope reports whether unit participates in the scope.
func (u *Unit) InScope(s common.Scope) bool {
	if s == common.ScopeEntireSeries {
		return true
	}
	if len(u.Scopes) == 0 {
		return u.Volume == nil || u.Volume.InScope(s)
	}
	return slices.Contains(u.Scopes, s)
}

// ID returns unit identifier used in diagnostics.
func (u *Unit) ID() string {
	return u.Early.SortKey + "-" + u.Name
}

// VolumeID returns owning volume ID or empty string for detached units.
func (u *Unit) VolumeID() string {
	if u.Volume == nil {
		return ""
	}
	return u.Volume.ID
}

// Clone returns deep copy of the unit sharing volume reference.
func (u *Unit) Clone() *Unit {
	c := *u
	c.Scopes = slices.Clone(u.Scopes)
	c.Fragments = slices.Clone(u.Fragments)
	c.Sections = slices.Clone(u.Sections)
	for i, s := range c.Sections {
		c.Sections[i].StartHint = cloneInt(s.StartHint)
		c.Sections[i].EndHint = cloneInt(s.EndHint)
	}
	c.Splits = slices.Clone(u.Splits)
	for i, sp := range c.Splits {
		c.Splits[i].Hint = cloneInt(sp.Hint)
	}
	c.Spreads = slices.Clone(u.Spreads)
	c.Replacements = slices.Clone(u.Replacements)
	c.Links = slices.Clone(u.Links)
	if u.Late != nil {
		l := *u.Late
		c.Late = &l
	}
	if u.Gallery != nil {
		c.Gallery = &GalleryArt{Splash: slices.Clone(u.Gallery.Splash), Inserts: slices.Clone(u.Gallery.Inserts)}
	}
	if u.Sheet != nil {
		s := *u.Sheet
		c.Sheet = &s
	}
	if u.Derived != nil {
		d := *u.Derived
		c.Derived = &d
	}
	c.Units = nil
	for _, child := range u.Units {
		cc := child.Clone()
		cc.Parent = &c
		c.Units = append(c.Units, cc)
	}
	return &c
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// HasCollectionVariant reports whether unit can be put into POV collection.
func (u *Unit) HasCollectionVariant() bool {
	switch u.Class {
	case common.ClassificationBonus, common.ClassificationManga:
		return true
	case common.ClassificationStory:
		return len(u.POV) > 0
	}
	return false
}

// CollectionVariant returns unit copy to be placed into POV collection.
func (u *Unit) CollectionVariant() (*Unit, bool) {
	if !u.HasCollectionVariant() {
		return nil, false
	}
	c := u.Clone()
	c.Class = common.ClassificationPovCollection
	c.Late = nil
	c.Derived = &Derivation{Origin: u.Class}
	return c, true
}

// Origin returns classification of the catalog unit this one was derived from.
func (u *Unit) Origin() common.Classification {
	if u.Derived != nil {
		return u.Derived.Origin
	}
	return u.Class
}
