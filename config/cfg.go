package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"runtime"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"obc/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	ChaptersConfig struct {
		IncludeRegular bool                   `yaml:"include_regular"`
		Bonus          common.PlacementPolicy `yaml:"bonus"`
		Manga          common.PlacementPolicy `yaml:"manga"`
		UpdateTitles   bool                   `yaml:"update_titles"`
	}

	GalleryConfig struct {
		Splash  common.GalleryBucket `yaml:"splash"`
		Inserts common.GalleryBucket `yaml:"inserts"`
	}

	ImagesConfig struct {
		IncludeInChapters bool          `yaml:"include_in_chapters"`
		CombineSpreads    bool          `yaml:"combine_spreads"`
		JPEGQuality       int           `yaml:"jpeg_quality_level" validate:"min=40,max=100"`
		Gallery           GalleryConfig `yaml:"gallery"`
	}

	ExtrasConfig struct {
		ComfyLife       common.ExtraPlacement  `yaml:"comfy_life"`
		CharacterSheets common.CharacterSheets `yaml:"character_sheets"`
		Maps            bool                   `yaml:"maps"`
		Afterwords      common.ExtraPlacement  `yaml:"afterwords"`
		Polls           bool                   `yaml:"polls"`
	}

	CollectionConfig struct {
		POV        bool `yaml:"pov"`
		OrderByPOV bool `yaml:"order_by_pov"`
	}

	SeasonsConfig struct {
		StartYear         int               `yaml:"start_year"`
		YearFormat        common.YearFormat `yaml:"year_format"`
		YearLabelTemplate string            `yaml:"year_label_template" validate:"required_if=YearFormat 1"`
	}

	// FoldersConfig names classification buckets, used verbatim in the output
	// folder hierarchy.
	FoldersConfig struct {
		Inserts         string `yaml:"inserts" validate:"required"`
		Chapters        string `yaml:"chapters" validate:"required"`
		Bonus           string `yaml:"bonus" validate:"required"`
		Manga           string `yaml:"manga" validate:"required"`
		Gallery         string `yaml:"gallery" validate:"required"`
		CharacterSheets string `yaml:"character_sheets" validate:"required"`
		Maps            string `yaml:"maps" validate:"required"`
		Afterwords      string `yaml:"afterwords" validate:"required"`
		Polls           string `yaml:"polls" validate:"required"`
		ComfyLife       string `yaml:"comfy_life" validate:"required"`
		Collection      string `yaml:"collection" validate:"required"`
		BonusSuffix     string `yaml:"bonus_suffix" validate:"required"`
	}

	AssemblyConfig struct {
		Layout       common.OutputLayout `yaml:"layout"`
		Chapters     ChaptersConfig      `yaml:"chapters"`
		Images       ImagesConfig        `yaml:"images"`
		Extras       ExtrasConfig        `yaml:"extras"`
		Collection   CollectionConfig    `yaml:"collection"`
		Seasons      SeasonsConfig       `yaml:"seasons"`
		Folders      FoldersConfig       `yaml:"folders"`
		AnchorDrift  int                 `yaml:"anchor_drift" validate:"gte=0"`
		Workers      int                 `yaml:"workers" validate:"gte=0,max=256"`
		OverridesDir string              `yaml:"overrides_dir,omitempty" sanitize:"path_clean"`
	}

	OutputImagesConfig struct {
		MaxWidth    int `yaml:"max_width" validate:"gte=0"`
		MaxHeight   int `yaml:"max_height" validate:"gte=0"`
		JPEGQuality int `yaml:"jpeg_quality_level" validate:"min=40,max=100"`
	}

	MetainformationConfig struct {
		TitleTemplate string `yaml:"title_template"`
		Transliterate bool   `yaml:"transliterate"`
	}

	OutputConfig struct {
		FixZip                bool                  `yaml:"fix_zip"`
		HumanReadableNames    bool                  `yaml:"human_readable_names"`
		OutputNameTemplate    string                `yaml:"output_name_template"`
		FileNameTransliterate bool                  `yaml:"file_name_transliterate"`
		ReportUnused          bool                  `yaml:"report_unused"`
		Images                OutputImagesConfig    `yaml:"images"`
		Metainformation       MetainformationConfig `yaml:"metainformation"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Assembly  AssemblyConfig `yaml:"assembly"`
		Output    OutputConfig   `yaml:"output"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field names above
	OutputNameTemplateFieldName TemplateFieldName = "output_name_template"
	MetaTitleTemplateFieldName  TemplateFieldName = "title_template"
	YearLabelTemplateFieldName  TemplateFieldName = "year_label_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(MetaTitleTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(YearLabelTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields we defined are allowed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if !process {
		return cfg, nil
	}
	if err := gencfg.Sanitize(cfg); err != nil {
		return nil, fmt.Errorf("failed to sanitize configuration: %w", err)
	}
	if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(assemblyChecks)); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadConfiguration reads configuration file at the given path and overlays
// its values on top of expanded embedded template, so anything not specified
// keeps sane default. Result is sanitized and validated.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare expands embedded configuration template.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}

// WorkerCount returns number of units processed concurrently.
func (a *AssemblyConfig) WorkerCount() int {
	if a.Workers > 0 {
		return a.Workers
	}
	return runtime.NumCPU()
}
