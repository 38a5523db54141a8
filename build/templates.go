package build

import (
	"bytes"
	"fmt"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"obc/assemble"
	"obc/config"
)

// Values is a struct that holds variables we make available for template
// expansion.
type Values struct {
	Context    string
	Title      string
	Author     string
	Language   string
	Publisher  string
	Scope      string
	ScopeLabel string
	ScopeTitle string
	Units      int
}

func newValues(name config.TemplateFieldName, res *assemble.Result) Values {
	return Values{
		Context:    string(name),
		Title:      res.Title,
		Author:     res.Author,
		Language:   res.Language,
		Publisher:  res.Publisher,
		Scope:      res.Scope.Scope.String(),
		ScopeLabel: res.Scope.Label,
		ScopeTitle: res.Scope.Title,
		Units:      len(res.Units),
	}
}

func expandTemplate(res *assemble.Result, name config.TemplateFieldName, field string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, newValues(name, res)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
