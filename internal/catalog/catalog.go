// Package catalog is the static description of the profile schema: which
// logical tables exist, what they are for, and which columns they carry.
//
// The catalog is the whitelist every table name passes through before it is
// written into SQL text. Column metadata doubles as a validation hint for the
// write path; SQLite's CHECK constraints remain the authority.
package catalog

import (
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/profileerr"
)

// Column types as declared in the DDL.
const (
	TypeInteger   = "INTEGER"
	TypeText      = "TEXT"
	TypeBoolean   = "BOOLEAN"
	TypeDate      = "DATE"
	TypeTimestamp = "TIMESTAMP"
)

// PersonaID is the identifier of the single persona row.
const PersonaID int64 = 1

// Privacy levels.
const (
	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
)

type Column struct {
	Name       string
	Type       string
	NotNull    bool
	Enum       []string
	Min, Max   *int
	ForeignKey string
	JSONList   bool
}

type Table struct {
	Name        string
	Description string
	Content     bool
	Columns     []Column
}

func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

func (t Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

var index = func() map[string]Table {
	m := make(map[string]Table, len(tables))
	for _, t := range tables {
		m[t.Name] = t
	}
	return m
}()

func IsValidTable(name string) bool {
	_, ok := index[name]
	return ok
}

func Lookup(name string) (Table, error) {
	t, ok := index[name]
	if !ok {
		return Table{}, profileerr.UnknownTable("catalog.lookup", name)
	}
	return t, nil
}

func Describe(name string) (string, error) {
	t, err := Lookup(name)
	if err != nil {
		return "", err
	}
	return t.Description, nil
}

// Tables returns every table in declaration order.
func Tables() []Table {
	out := make([]Table, len(tables))
	copy(out, tables)
	return out
}

func Names() []string {
	out := make([]string, len(tables))
	for i, t := range tables {
		out[i] = t.Name
	}
	return out
}

// ContentTables returns the content-record tables in declaration order.
func ContentTables() []Table {
	var out []Table
	for _, t := range tables {
		if t.Content {
			out = append(out, t)
		}
	}
	return out
}
