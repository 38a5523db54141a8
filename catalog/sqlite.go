package catalog

import (
	"fmt"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v3"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"obc/common"
)

const schema = `
DROP TABLE IF EXISTS units;
DROP TABLE IF EXISTS volumes;
DROP TABLE IF EXISTS scopes;
DROP TABLE IF EXISTS series;
CREATE TABLE series (key TEXT PRIMARY KEY, value TEXT NOT NULL);
CREATE TABLE scopes (scope TEXT PRIMARY KEY, label TEXT NOT NULL, title TEXT NOT NULL DEFAULT '');
CREATE TABLE volumes (
	id TEXT PRIMARY KEY,
	seq INTEGER NOT NULL,
	title TEXT NOT NULL,
	number TEXT NOT NULL,
	ord INTEGER NOT NULL,
	part TEXT NOT NULL,
	scopes TEXT NOT NULL DEFAULT '',
	source TEXT NOT NULL DEFAULT '',
	report_unused INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE units (
	volume_id TEXT NOT NULL REFERENCES volumes(id),
	seq INTEGER NOT NULL,
	name TEXT NOT NULL,
	class TEXT NOT NULL,
	sort_key TEXT NOT NULL,
	late_sort_key TEXT NOT NULL DEFAULT '',
	pov TEXT NOT NULL DEFAULT '',
	detail TEXT NOT NULL,
	PRIMARY KEY (volume_id, seq)
);
CREATE INDEX units_sort_key ON units(sort_key);
`

func joinScopes(scopes []common.Scope) string {
	names := make([]string, 0, len(scopes))
	for _, s := range scopes {
		names = append(names, s.String())
	}
	return strings.Join(names, ",")
}

func splitScopes(s string) ([]common.Scope, error) {
	if len(s) == 0 {
		return nil, nil
	}
	var res []common.Scope
	for name := range strings.SplitSeq(s, ",") {
		scope, err := common.ParseScope(name)
		if err != nil {
			return nil, err
		}
		res = append(res, scope)
	}
	return res, nil
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func saveDatabase(cat *Catalog, path string) (err error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadWrite, sqlite.OpenCreate)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer conn.Close()

	release := sqlitex.Save(conn)
	defer release(&err)

	if err = sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	series := [][2]string{
		{"title", cat.Series.Title},
		{"author", cat.Series.Author},
		{"author_sort", cat.Series.AuthorSort},
		{"publisher", cat.Series.Publisher},
		{"language", cat.Series.Language},
	}
	for _, kv := range series {
		if err = sqlitex.Execute(conn, `INSERT INTO series (key, value) VALUES (?, ?)`,
			&sqlitex.ExecOptions{Args: []any{kv[0], kv[1]}}); err != nil {
			return fmt.Errorf("insert series %s: %w", kv[0], err)
		}
	}

	for _, si := range cat.Scopes {
		if err = sqlitex.Execute(conn, `INSERT INTO scopes (scope, label, title) VALUES (?, ?, ?)`,
			&sqlitex.ExecOptions{Args: []any{si.Scope.String(), si.Label, si.Title}}); err != nil {
			return fmt.Errorf("insert scope %s: %w", si.Scope, err)
		}
	}

	for vseq, v := range cat.Volumes {
		if err = sqlitex.Execute(conn,
			`INSERT INTO volumes (id, seq, title, number, ord, part, scopes, source, report_unused) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			&sqlitex.ExecOptions{Args: []any{v.ID, int64(vseq), v.Title, v.Number, int64(v.Order), v.Part.String(),
				joinScopes(v.Scopes), v.Source, boolInt(v.ReportUnused)}}); err != nil {
			return fmt.Errorf("insert volume %s: %w", v.ID, err)
		}
		for useq, u := range v.Units {
			detail, err := yaml.Marshal(u)
			if err != nil {
				return fmt.Errorf("marshal unit %s: %w", u.ID(), err)
			}
			late := ""
			if u.Late != nil {
				late = u.Late.SortKey
			}
			if err = sqlitex.Execute(conn,
				`INSERT INTO units (volume_id, seq, name, class, sort_key, late_sort_key, pov, detail) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				&sqlitex.ExecOptions{Args: []any{v.ID, int64(useq), u.Name, u.Class.String(), u.Early.SortKey, late, u.POV, string(detail)}}); err != nil {
				return fmt.Errorf("insert unit %s: %w", u.ID(), err)
			}
		}
	}
	return nil
}

func loadDatabase(path string) (*Catalog, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadOnly)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer conn.Close()

	cat := &Catalog{}
	err = sqlitex.Execute(conn, `SELECT key, value FROM series`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			value := stmt.ColumnText(1)
			switch key := stmt.ColumnText(0); key {
			case "title":
				cat.Series.Title = value
			case "author":
				cat.Series.Author = value
			case "author_sort":
				cat.Series.AuthorSort = value
			case "publisher":
				cat.Series.Publisher = value
			case "language":
				cat.Series.Language = value
			default:
				return fmt.Errorf("unknown series attribute '%s'", key)
			}
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("read series: %w", err)
	}

	err = sqlitex.Execute(conn, `SELECT scope, label, title FROM scopes ORDER BY rowid`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			scope, err := common.ParseScope(stmt.ColumnText(0))
			if err != nil {
				return err
			}
			cat.Scopes = append(cat.Scopes, ScopeInfo{Scope: scope, Label: stmt.ColumnText(1), Title: stmt.ColumnText(2)})
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("read scopes: %w", err)
	}

	volumes := make(map[string]*Volume)
	err = sqlitex.Execute(conn, `SELECT id, title, number, ord, part, scopes, source, report_unused FROM volumes ORDER BY seq`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			part, err := common.ParseScope(stmt.ColumnText(4))
			if err != nil {
				return err
			}
			scopes, err := splitScopes(stmt.ColumnText(5))
			if err != nil {
				return err
			}
			v := &Volume{
				ID:           stmt.ColumnText(0),
				Title:        stmt.ColumnText(1),
				Number:       stmt.ColumnText(2),
				Order:        int(stmt.ColumnInt64(3)),
				Part:         part,
				Scopes:       scopes,
				Source:       stmt.ColumnText(6),
				ReportUnused: stmt.ColumnInt64(7) != 0,
			}
			volumes[v.ID] = v
			cat.Volumes = append(cat.Volumes, v)
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("read volumes: %w", err)
	}

	err = sqlitex.Execute(conn, `SELECT volume_id, detail FROM units ORDER BY volume_id, seq`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			id := stmt.ColumnText(0)
			v, ok := volumes[id]
			if !ok {
				return fmt.Errorf("unit references volume '%s': %w", id, ErrNotFound)
			}
			u := &Unit{}
			dec := yaml.NewDecoder(strings.NewReader(stmt.ColumnText(1)))
			dec.KnownFields(true)
			if err := dec.Decode(u); err != nil {
				return fmt.Errorf("decode unit of volume '%s': %w", id, err)
			}
			v.Units = append(v.Units, u)
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("read units: %w", err)
	}

	cat.link()
	return cat, nil
}
