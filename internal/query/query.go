// Package query turns untrusted list parameters into parameterized count and
// page statements. Labels supplied by clients are resolved through per-table
// lookup tables; only those trusted identifiers reach statement text, every
// client value is bound as a placeholder.
package query

import (
	"math"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

const (
	// DefaultLimit applies when the requested page size is missing or not positive.
	DefaultLimit = 10
	// MaxLimit caps the page size.
	MaxLimit = 100
	// FilterAll searches every searchable field.
	FilterAll = "all"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Params are the list parameters as received from a client.
type Params struct {
	Page     int
	Limit    int
	Search   string
	FilterBy string
	SortBy   string
	SortDesc bool
	// Filters holds extra equality filters keyed by filter name, e.g. "program".
	Filters map[string]string
}

// Field is a trusted column expression. Non-text columns are cast before matching.
type Field struct {
	Column string
	Text   bool
}

// Text declares a text column.
func Text(column string) Field { return Field{Column: column, Text: true} }

// Cast declares a non-text column that is compared as text.
func Cast(column string) Field { return Field{Column: column} }

func (f Field) expr() string {
	if f.Text {
		return f.Column
	}
	return "CAST(" + f.Column + " AS TEXT)"
}

// Table describes how one resource may be listed.
type Table struct {
	From    string
	Columns []string
	// Key is the natural key column; it is the default sort and the tiebreaker.
	Key string
	// Search lists the fields matched when filtering by "all".
	Search []Field
	// Fields maps filterBy labels (lower case) to a single field.
	Fields map[string]Field
	// Sorts maps sortBy labels (lower case) to a column.
	Sorts map[string]string
	// Filters maps extra filter names to the field they compare for equality.
	Filters map[string]Field
}

// Statement is a built list query pair.
type Statement struct {
	SQL       string
	Args      []interface{}
	CountSQL  string
	CountArgs []interface{}
	Page      int
	Limit     int
	Offset    int
}

// Build produces the count and page statements for p.
func (t Table) Build(p Params) (Statement, error) {
	page, limit := Normalize(p.Page, p.Limit)
	offset := (page - 1) * limit

	count := psql.Select("COUNT(*)").From(t.From)
	data := psql.Select(t.Columns...).From(t.From)
	for _, cond := range t.conditions(p) {
		count = count.Where(cond)
		data = data.Where(cond)
	}

	direction := "ASC"
	if p.SortDesc {
		direction = "DESC"
	}
	column := t.SortColumn(p.SortBy)
	order := []string{column + " " + direction}
	if column != t.Key {
		order = append(order, t.Key+" "+direction)
	}
	data = data.OrderBy(order...).Limit(uint64(limit)).Offset(uint64(offset))

	stmt := Statement{Page: page, Limit: limit, Offset: offset}
	var err error
	if stmt.SQL, stmt.Args, err = data.ToSql(); err != nil {
		return Statement{}, err
	}
	if stmt.CountSQL, stmt.CountArgs, err = count.ToSql(); err != nil {
		return Statement{}, err
	}
	return stmt, nil
}

// SortColumn resolves a sortBy label, falling back to the natural key.
func (t Table) SortColumn(label string) string {
	if column, ok := t.Sorts[normalizeLabel(label)]; ok {
		return column
	}
	return t.Key
}

func (t Table) conditions(p Params) []sq.Sqlizer {
	var conds []sq.Sqlizer

	if term := strings.TrimSpace(p.Search); term != "" {
		pattern := "%" + escapeLike(term) + "%"
		if field, ok := t.Fields[normalizeLabel(p.FilterBy)]; ok {
			conds = append(conds, sq.ILike{field.expr(): pattern})
		} else if len(t.Search) > 0 {
			matches := make(sq.Or, 0, len(t.Search))
			for _, field := range t.Search {
				matches = append(matches, sq.ILike{field.expr(): pattern})
			}
			conds = append(conds, matches)
		}
	}

	names := make([]string, 0, len(t.Filters))
	for name := range t.Filters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value := strings.TrimSpace(p.Filters[name])
		if value == "" {
			continue
		}
		conds = append(conds, sq.Eq{t.Filters[name].expr(): value})
	}

	return conds
}

// Normalize coerces page and limit to usable values.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// TotalPages returns ceil(total/limit), treating a non-positive limit as 1.
func TotalPages(total, limit int) int {
	if limit <= 0 {
		limit = 1
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
