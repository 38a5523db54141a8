package config

import (
	"text/template"

	validator "github.com/go-playground/validator/v10"
	sprig "github.com/go-task/slim-sprig/v3"
)

type validEnum interface {
	IsValid() bool
}

// assemblyChecks verifies things tags cannot express: enum ranges and
// templates which are expanded later at assembly time.
func assemblyChecks(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}
	a := cfg.Assembly

	for _, e := range []struct {
		name  string
		value validEnum
	}{
		{"Layout", a.Layout},
		{"Bonus", a.Chapters.Bonus},
		{"Manga", a.Chapters.Manga},
		{"Splash", a.Images.Gallery.Splash},
		{"Inserts", a.Images.Gallery.Inserts},
		{"ComfyLife", a.Extras.ComfyLife},
		{"CharacterSheets", a.Extras.CharacterSheets},
		{"Afterwords", a.Extras.Afterwords},
		{"YearFormat", a.Seasons.YearFormat},
	} {
		if !e.value.IsValid() {
			sl.ReportError(e.value, e.name, e.name, "enum", "")
		}
	}

	for _, t := range []struct {
		name  string
		value string
	}{
		{"YearLabelTemplate", a.Seasons.YearLabelTemplate},
		{"OutputNameTemplate", cfg.Output.OutputNameTemplate},
		{"TitleTemplate", cfg.Output.Metainformation.TitleTemplate},
	} {
		if len(t.value) == 0 {
			continue
		}
		if _, err := template.New(t.name).Funcs(sprig.FuncMap()).Parse(t.value); err != nil {
			sl.ReportError(t.value, t.name, t.name, "template", err.Error())
		}
	}
}
