// Package placement computes sort key and destination folder of every unit
// under configured output layout.
package placement

import (
	"bytes"
	"fmt"
	"path"
	"strconv"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"obc/catalog"
	"obc/common"
	"obc/config"
)

const (
	// keys of units moved to the very end of the omnibus
	omnibusEndPrefix = "98"
	collectionPrefix = "99"
	// volume end position for units without explicit late placement
	volumeEndInfix = "99"
)

// Resolution is where unit goes in the assembled output.
type Resolution struct {
	SortKey string
	// Folder is slash separated path.
	Folder string
	// Placement is the triple resolution was computed from.
	Placement catalog.Placement
	Late      bool
	// Prefix is prepended to split point keys of this unit.
	Prefix string
}

// YearValues is available to year label template.
type YearValues struct {
	Year     int
	Absolute int
}

// Resolver is immutable and safe for concurrent use.
type Resolver struct {
	cfg       config.AssemblyConfig
	scope     catalog.ScopeInfo
	parts     map[common.Scope]string
	yearLabel *template.Template
}

// New prepares resolver for a single assembly run over the scope.
func New(cfg config.AssemblyConfig, cat *catalog.Catalog, scope common.Scope) (*Resolver, error) {
	r := &Resolver{
		cfg:   cfg,
		scope: cat.ScopeInfo(scope),
		parts: make(map[common.Scope]string),
	}
	for _, s := range common.ScopeNames() {
		sc, _ := common.ParseScope(s)
		r.parts[sc] = cat.ScopeInfo(sc).Label
	}
	if cfg.Seasons.YearFormat == common.YearFormatLabel {
		t, err := template.New("year_label").Funcs(sprig.FuncMap()).Parse(cfg.Seasons.YearLabelTemplate)
		if err != nil {
			return nil, fmt.Errorf("unable to parse year label template: %w", err)
		}
		r.yearLabel = t
	}
	return r, nil
}

// Policy returns placement policy for the unit classification.
func (r *Resolver) Policy(u *catalog.Unit) common.PlacementPolicy {
	switch u.Class {
	case common.ClassificationBonus:
		return r.cfg.Chapters.Bonus
	case common.ClassificationManga:
		return r.cfg.Chapters.Manga
	case common.ClassificationGallery:
		if u.Derived != nil && !u.Derived.StartOfBook {
			return common.PlacementPolicyEndOfBook
		}
	case common.ClassificationComfyLife:
		if r.cfg.Extras.ComfyLife == common.ExtraPlacementNone {
			return common.PlacementPolicyLeaveOut
		}
	case common.ClassificationAfterword:
		if r.cfg.Extras.Afterwords == common.ExtraPlacementNone {
			return common.PlacementPolicyLeaveOut
		}
	}
	return common.PlacementPolicyChronological
}

func (r *Resolver) omnibusEnd(u *catalog.Unit) bool {
	switch u.Class {
	case common.ClassificationComfyLife:
		return r.cfg.Extras.ComfyLife == common.ExtraPlacementOmnibusEnd
	case common.ClassificationAfterword:
		return r.cfg.Extras.Afterwords == common.ExtraPlacementOmnibusEnd
	}
	return false
}

// Resolve computes sort key and folder of the unit. False is returned when
// unit must be left out of the output. Result depends only on unit
// metadata and resolver configuration.
func (r *Resolver) Resolve(u *catalog.Unit) (Resolution, bool) {
	policy := r.Policy(u)
	if policy == common.PlacementPolicyLeaveOut {
		return Resolution{}, false
	}

	res := Resolution{Placement: u.Early, SortKey: u.Early.SortKey}
	if policy == common.PlacementPolicyEndOfBook {
		res.Late = true
		switch {
		case u.Late != nil:
			res.Placement = *u.Late
			res.SortKey = u.Late.SortKey
		case u.Class == common.ClassificationGallery:
			// end of volume instance needs key distinct from its start of
			// volume sibling
			res.SortKey = volumeNumber(u) + volumeEndInfix + u.Early.SortKey
		default:
			res.Late = false
		}
	}

	switch {
	case u.Class == common.ClassificationPovCollection:
		res.Prefix = collectionPrefix
		if r.cfg.Collection.OrderByPOV && len(u.POV) > 0 {
			res.Prefix += "-" + u.POV + "-"
		}
		res.Folder = r.cfg.Folders.Collection
		if len(u.POV) > 0 {
			res.Folder = path.Join(res.Folder, u.POV)
		}
	case r.omnibusEnd(u):
		res.Prefix = omnibusEndPrefix
		res.Folder = r.bucket(u, false)
	case u.Parent != nil:
		parent, ok := r.Resolve(u.Parent)
		if !ok {
			return Resolution{}, false
		}
		res.Folder = nestedFolder(parent, u.Parent.Name)
	default:
		res.Folder = r.folder(u, res)
	}
	res.SortKey = res.Prefix + res.SortKey
	return res, true
}

// nestedFolder is subfolder for units placed under parent unit.
func nestedFolder(parent Resolution, name string) string {
	return path.Join(parent.Folder, parent.SortKey+"-"+name)
}

// ResolveSplit places unit cut from parent at split point. Unless split point
// names its own folder, it goes to subfolder named after parent unit, same as
// nested units do.
func (r *Resolver) ResolveSplit(parent Resolution, u *catalog.Unit, sp catalog.SplitPoint) Resolution {
	res := parent
	res.SortKey = parent.Prefix + sp.SortKey
	if len(sp.Folder) > 0 {
		res.Folder = sp.Folder
	} else {
		res.Folder = nestedFolder(parent, u.Name)
	}
	return res
}

func volumeNumber(u *catalog.Unit) string {
	if u.Volume == nil {
		return ""
	}
	return u.Volume.Number
}

func volumeTitle(u *catalog.Unit) string {
	if u.Volume == nil {
		return ""
	}
	return u.Volume.Title
}

// bucket returns classification folder name.
func (r *Resolver) bucket(u *catalog.Unit, late bool) string {
	f := r.cfg.Folders
	switch u.Class {
	case common.ClassificationBonus:
		return f.Bonus
	case common.ClassificationManga:
		return f.Manga
	case common.ClassificationGallery:
		if late {
			return f.Gallery
		}
		return f.Inserts
	case common.ClassificationCharacterSheet:
		return f.CharacterSheets
	case common.ClassificationMap:
		return f.Maps
	case common.ClassificationAfterword:
		return f.Afterwords
	case common.ClassificationPoll:
		return f.Polls
	case common.ClassificationComfyLife:
		return f.ComfyLife
	case common.ClassificationPovCollection:
		return f.Collection
	}
	return f.Chapters
}

// volumeEnd reports whether unit belongs to volume bonus section in nested
// layouts.
func volumeEnd(u *catalog.Unit, late bool) bool {
	switch u.Class {
	case common.ClassificationStory:
		return false
	case common.ClassificationBonus, common.ClassificationManga, common.ClassificationGallery:
		return late
	}
	return true
}

func (r *Resolver) partLabel(u *catalog.Unit) string {
	if r.scope.Scope != common.ScopeEntireSeries || u.Volume == nil {
		return r.scope.Label
	}
	return r.parts[u.Volume.Part]
}

func (r *Resolver) bonusFolder(u *catalog.Unit) string {
	return volumeNumber(u) + "xx-" + volumeTitle(u) + r.cfg.Folders.BonusSuffix
}

func (r *Resolver) folder(u *catalog.Unit, res Resolution) string {
	gallery := u.Class == common.ClassificationGallery

	switch r.cfg.Layout {
	case common.OutputLayoutFlat:
		return r.bucket(u, res.Late)

	case common.OutputLayoutByPart:
		return path.Join(r.partLabel(u), r.bucket(u, res.Late))

	case common.OutputLayoutByPartAndVolume:
		base := r.partLabel(u)
		if volumeEnd(u, res.Late) {
			return path.Join(base, r.bonusFolder(u))
		}
		base = path.Join(base, volumeNumber(u)+"-"+volumeTitle(u))
		if gallery {
			return path.Join(base, r.cfg.Folders.Inserts)
		}
		return base

	case common.OutputLayoutBySeason:
		base := r.yearFolder(res.Placement.Year)
		if len(res.Placement.Season) > 0 {
			base = path.Join(base, res.Placement.Season)
		}
		if volumeEnd(u, res.Late) {
			return path.Join(base, r.bonusFolder(u))
		}
		return base
	}
	// configuration is validated, this should never happen
	panic(fmt.Sprintf("unsupported output layout %d", r.cfg.Layout))
}

func (r *Resolver) yearFolder(year int) string {
	values := YearValues{Year: year, Absolute: r.cfg.Seasons.StartYear + year}
	if r.yearLabel == nil {
		return strconv.Itoa(values.Absolute)
	}
	buf := new(bytes.Buffer)
	if err := r.yearLabel.Execute(buf, values); err != nil {
		// broken label falls back to plain number
		return strconv.Itoa(values.Absolute)
	}
	return strings.TrimSpace(buf.String())
}
