package source

import (
	"bytes"
	"path"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// StyleDependencies returns document paths referenced from stylesheet by
// url() and @import, fonts and background images usually.
func (d *Document) StyleDependencies(stylePath string) []string {
	data, ok := d.files[stylePath]
	if !ok {
		return nil
	}

	var (
		res      []string
		imported bool
	)
	seen := make(map[string]bool)
	dir := path.Dir(stylePath)
	lexer := css.NewLexer(parse.NewInput(bytes.NewReader(data)))

	add := func(ref string) {
		if p, ok := resolveRef(dir, ref); ok && !seen[p] {
			seen[p] = true
			res = append(res, p)
		}
	}
	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return res
		case css.AtKeywordToken:
			imported = strings.EqualFold(string(text), "@import")
		case css.URLToken:
			add(cssURL(text))
			imported = false
		case css.StringToken:
			if imported {
				add(unquote(string(text)))
			}
			imported = false
		case css.WhitespaceToken, css.CommentToken:
		default:
			imported = false
		}
	}
}

// cssURL extracts reference from "url(...)" token.
func cssURL(text []byte) string {
	s := string(text)
	s = strings.TrimSpace(s[strings.IndexByte(s, '(')+1 : len(s)-1])
	return unquote(s)
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
