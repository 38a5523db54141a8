package selection

import (
	"errors"
	"slices"
	"testing"

	"obc/catalog"
	"obc/common"
	"obc/config"
)

func testConfig() config.AssemblyConfig {
	return config.AssemblyConfig{
		Chapters: config.ChaptersConfig{
			IncludeRegular: true,
			Bonus:          common.PlacementPolicyChronological,
			Manga:          common.PlacementPolicyChronological,
		},
		Images: config.ImagesConfig{
			IncludeInChapters: true,
			Gallery:           config.GalleryConfig{Splash: common.GalleryBucketStart, Inserts: common.GalleryBucketEnd},
		},
		Extras: config.ExtrasConfig{
			ComfyLife:       common.ExtraPlacementVolumeEnd,
			CharacterSheets: common.CharacterSheetsAll,
			Maps:            true,
			Afterwords:      common.ExtraPlacementVolumeEnd,
			Polls:           true,
		},
	}
}

func testVolume() *catalog.Volume {
	v := &catalog.Volume{ID: "v1", Title: "Volume One", Number: "0101", Part: common.ScopePartOne}
	key := func(k string) catalog.Placement { return catalog.Placement{SortKey: k} }
	v.Units = []*catalog.Unit{
		{Name: "Chapter", Class: common.ClassificationStory, Early: key("01"),
			Fragments: []catalog.Fragment{{File: "c1"}, {File: "art", Insert: true}, {File: "c2"}}},
		{Name: "POV Chapter", Class: common.ClassificationStory, Early: key("02"), POV: "Alice",
			Fragments: []catalog.Fragment{{File: "p1"}, {File: "part", Insert: true}}},
		{Name: "Bonus", Class: common.ClassificationBonus, Early: key("03"), POV: "Bob",
			Fragments: []catalog.Fragment{{File: "b1"}, {File: "bart", Insert: true}}},
		{Name: "Manga", Class: common.ClassificationManga, Early: key("04")},
		{Name: "Gallery", Class: common.ClassificationGallery, Early: key("00"),
			Gallery: &catalog.GalleryArt{Splash: []catalog.Fragment{{File: "s"}}, Inserts: []catalog.Fragment{{File: "i"}}}},
		{Name: "Comfy", Class: common.ClassificationComfyLife, Early: key("90")},
		{Name: "Sheet", Class: common.ClassificationCharacterSheet, Early: key("91")},
		{Name: "Part Sheet", Class: common.ClassificationCharacterSheet, Early: key("92"), Sheet: &catalog.SheetInfo{PartSheet: true}},
		{Name: "Map", Class: common.ClassificationMap, Early: key("93")},
		{Name: "Afterword", Class: common.ClassificationAfterword, Early: key("94")},
		{Name: "Poll", Class: common.ClassificationPoll, Early: key("95")},
		{Name: "Fanbook Only", Class: common.ClassificationStory, Early: key("96"), Scopes: []common.Scope{common.ScopeFanbooks}},
	}
	for _, u := range v.Units {
		u.Volume = v
	}
	return v
}

func names(units []*catalog.Unit) []string {
	var res []string
	for _, u := range units {
		res = append(res, u.Name)
	}
	return res
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name      string
		configure func(*config.AssemblyConfig)
		scope     common.Scope
		want      []string
	}{
		{name: "defaults",
			want: []string{"Chapter", "POV Chapter", "Bonus", "Manga", "Gallery", "Gallery", "Comfy", "Sheet", "Part Sheet", "Map", "Afterword", "Poll", "Fanbook Only"}},
		{name: "part scope drops foreign units", scope: common.ScopePartOne,
			want: []string{"Chapter", "POV Chapter", "Bonus", "Manga", "Gallery", "Gallery", "Comfy", "Sheet", "Part Sheet", "Map", "Afterword", "Poll"}},
		{name: "scope outside volume selects nothing", scope: common.ScopeFanbooks,
			want: nil},
		{name: "no regular chapters keeps POV chapters", scope: common.ScopePartOne,
			configure: func(c *config.AssemblyConfig) { c.Chapters.IncludeRegular = false },
			want:      []string{"POV Chapter", "Bonus", "Manga", "Gallery", "Gallery", "Comfy", "Sheet", "Part Sheet", "Map", "Afterword", "Poll"}},
		{name: "everything optional off", scope: common.ScopePartOne,
			configure: func(c *config.AssemblyConfig) {
				c.Chapters.Bonus = common.PlacementPolicyLeaveOut
				c.Chapters.Manga = common.PlacementPolicyLeaveOut
				c.Images.Gallery = config.GalleryConfig{}
				c.Extras = config.ExtrasConfig{CharacterSheets: common.CharacterSheetsNone}
			},
			want: []string{"Chapter", "POV Chapter"}},
		{name: "end of book still selects", scope: common.ScopePartOne,
			configure: func(c *config.AssemblyConfig) {
				c.Chapters.Bonus = common.PlacementPolicyEndOfBook
				c.Extras = config.ExtrasConfig{CharacterSheets: common.CharacterSheetsPerPart}
				c.Images.Gallery.Inserts = common.GalleryBucketStart
			},
			want: []string{"Chapter", "POV Chapter", "Bonus", "Manga", "Gallery", "Part Sheet"}},
		{name: "POV collection", scope: common.ScopePartOne,
			configure: func(c *config.AssemblyConfig) {
				c.Extras = config.ExtrasConfig{CharacterSheets: common.CharacterSheetsNone}
				c.Images.Gallery = config.GalleryConfig{}
				c.Collection.POV = true
			},
			want: []string{"Chapter", "POV Chapter", "Bonus", "Manga", "POV Chapter", "Bonus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			if tt.configure != nil {
				tt.configure(&cfg)
			}
			got, err := Select(testVolume(), tt.scope, cfg)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if !slices.Equal(names(got), tt.want) {
				t.Errorf("Select() = %v, want %v", names(got), tt.want)
			}
		})
	}
}

func TestSelect_VolumeScopes(t *testing.T) {
	vol := testVolume()
	vol.Scopes = []common.Scope{common.ScopeFanbooks}

	got, err := Select(vol, common.ScopeFanbooks, testConfig())
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	// units without own scopes follow the volume
	want := []string{"Chapter", "POV Chapter", "Bonus", "Manga", "Gallery", "Gallery", "Comfy", "Sheet", "Part Sheet", "Map", "Afterword", "Poll", "Fanbook Only"}
	if !slices.Equal(names(got), want) {
		t.Errorf("Select() = %v, want %v", names(got), want)
	}

	got, err = Select(vol, common.ScopePartTwo, testConfig())
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Select() = %v, want nothing", names(got))
	}
}

func TestSelect_Nested(t *testing.T) {
	nestedVolume := func() *catalog.Volume {
		v := &catalog.Volume{ID: "v1", Number: "0101", Part: common.ScopePartOne}
		v.Units = []*catalog.Unit{
			{Name: "Chapter", Class: common.ClassificationStory, Early: catalog.Placement{SortKey: "01"},
				Units: []*catalog.Unit{
					{Name: "Interlude", Class: common.ClassificationStory, Early: catalog.Placement{SortKey: "0101"}, POV: "Alice"},
				}},
			{Name: "Bonus", Class: common.ClassificationBonus, Early: catalog.Placement{SortKey: "02"},
				Units: []*catalog.Unit{
					{Name: "Bonus Part", Class: common.ClassificationBonus, Early: catalog.Placement{SortKey: "0201"}},
				}},
			{Name: "Ending", Class: common.ClassificationStory, Early: catalog.Placement{SortKey: "03"}},
		}
		for _, u := range v.AllUnits() {
			u.Volume = v
		}
		return v
	}

	tests := []struct {
		name      string
		configure func(*config.AssemblyConfig)
		want      []string
	}{
		{name: "children follow parents",
			want: []string{"Chapter", "Interlude", "Bonus", "Bonus Part", "Ending"}},
		{name: "left out parent drops children",
			configure: func(c *config.AssemblyConfig) {
				c.Chapters.IncludeRegular = false
				c.Chapters.Bonus = common.PlacementPolicyLeaveOut
			},
			want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			if tt.configure != nil {
				tt.configure(&cfg)
			}
			got, err := Select(nestedVolume(), common.ScopePartOne, cfg)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if !slices.Equal(names(got), tt.want) {
				t.Errorf("Select() = %v, want %v", names(got), tt.want)
			}
		})
	}
}

func TestSelect_RemovesInsertsFromCopies(t *testing.T) {
	cfg := testConfig()
	cfg.Images.IncludeInChapters = false
	vol := testVolume()

	got, err := Select(vol, common.ScopePartOne, cfg)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	for _, u := range got[:3] {
		for _, f := range u.Fragments {
			if f.Insert {
				t.Errorf("unit %s kept insert fragment %s", u.Name, f.File)
			}
		}
	}
	if len(got[0].Fragments) != 2 {
		t.Errorf("chapter fragments = %+v", got[0].Fragments)
	}
	if len(vol.Units[0].Fragments) != 3 {
		t.Error("catalog unit was modified")
	}
	if got[0] == vol.Units[0] {
		t.Error("Select() must return copies")
	}
}

func TestSelect_CollectionGapFailsLoudly(t *testing.T) {
	cfg := testConfig()
	cfg.Collection.POV = true
	vol := testVolume()
	// maps cannot be put in POV collection
	vol.Units[8].POV = "Carol"

	got, err := Select(vol, common.ScopePartOne, cfg)
	if !errors.Is(err, ErrNoCollectionVariant) {
		t.Fatalf("Select() error = %v, want ErrNoCollectionVariant", err)
	}
	// the rest is still selected
	var collection int
	for _, u := range got {
		if u.Class == common.ClassificationPovCollection {
			collection++
		}
	}
	if collection != 2 {
		t.Errorf("got %d collection units, want 2", collection)
	}
}
