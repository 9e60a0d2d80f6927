package query

import (
	"fmt"
	"strings"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/catalog"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/codec"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/profileerr"
)

const (
	// DefaultLimit applies when Params.Limit is nil.
	DefaultLimit = 20

	SortAsc  = "asc"
	SortDesc = "desc"
)

const likeClause = ` LIKE ? ESCAPE '\'`

// Params is one paged query against a table.
type Params struct {
	Filters   map[string]any
	SortBy    string
	SortOrder string
	// Limit is used as given; nil means DefaultLimit.
	Limit  *int
	Offset int
	Strict bool
}

// Limit returns a pointer to n for Params.Limit.
func Limit(n int) *int { return &n }

// Statements holds the count and page statements for one query. Both share
// the same WHERE clause; the arg slices do not share backing arrays.
type Statements struct {
	CountSQL   string
	CountArgs  []any
	SelectSQL  string
	SelectArgs []any
	Limit      int
	Offset     int
}

// Build renders p against table.
func Build(table catalog.Table, p Params) (Statements, error) {
	const op = "query.build"

	limit := DefaultLimit
	if p.Limit != nil {
		limit = *p.Limit
	}
	if limit < 0 {
		return Statements{}, profileerr.InvalidFilter(op, table.Name, "limit", "must not be negative")
	}
	if p.Offset < 0 {
		return Statements{}, profileerr.InvalidFilter(op, table.Name, "offset", "must not be negative")
	}

	preds, err := Parse(table, p.Filters, ParseOptions{Strict: p.Strict})
	if err != nil {
		return Statements{}, err
	}
	where, args := Where(preds)

	orderBy, err := Order(table, p.SortBy, p.SortOrder)
	if err != nil {
		return Statements{}, err
	}

	from := "FROM " + QuoteIdent(table.Name)
	if where != "" {
		from += " " + where
	}

	countArgs := make([]any, len(args))
	copy(countArgs, args)
	selectArgs := make([]any, len(args), len(args)+2)
	copy(selectArgs, args)
	selectArgs = append(selectArgs, limit, p.Offset)

	return Statements{
		CountSQL:   "SELECT COUNT(*) " + from,
		CountArgs:  countArgs,
		SelectSQL:  fmt.Sprintf("SELECT %s %s %s LIMIT ? OFFSET ?", selectList(table), from, orderBy),
		SelectArgs: selectArgs,
		Limit:      limit,
		Offset:     p.Offset,
	}, nil
}

// Where joins preds with AND. It returns an empty clause when preds is empty.
func Where(preds []Predicate) (string, []any) {
	if len(preds) == 0 {
		return "", nil
	}
	conds := make([]string, 0, len(preds))
	var args []any
	for _, p := range preds {
		col := QuoteIdent(p.Field)
		switch p.Kind {
		case KindIDs, KindIn:
			if len(p.Values) == 0 {
				conds = append(conds, "1 = 0")
				continue
			}
			conds = append(conds, fmt.Sprintf("%s IN (%s)", col, placeholders(len(p.Values))))
			args = append(args, p.Values...)
		case KindContains:
			conds = append(conds, col+likeClause)
			args = append(args, codec.ContainsPattern(p.Value.(string)))
		case KindIs:
			conds = append(conds, col+" = ?")
			args = append(args, p.Value)
		case KindGTE, KindFrom:
			conds = append(conds, col+" >= ?")
			args = append(args, p.Value)
		case KindLTE, KindTo:
			conds = append(conds, col+" <= ?")
			args = append(args, p.Value)
		case KindKeywordsAny, KindKeywordsAll:
			parts := make([]string, 0, len(p.Values))
			for _, v := range p.Values {
				parts = append(parts, col+likeClause)
				args = append(args, codec.KeywordPattern(v.(string)))
			}
			sep := " AND "
			if p.Kind == KindKeywordsAny {
				sep = " OR "
			}
			conds = append(conds, "("+strings.Join(parts, sep)+")")
		}
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// Order renders the ORDER BY clause. Rows with equal sort keys are ordered by
// id in the same direction so that paging is stable.
func Order(table catalog.Table, sortBy, sortOrder string) (string, error) {
	const op = "query.order"

	if sortBy == "" {
		sortBy = "id"
		if table.HasColumn(codec.FieldCreatedTime) {
			sortBy = codec.FieldCreatedTime
		}
	}
	if !table.HasColumn(sortBy) {
		return "", profileerr.InvalidFilter(op, table.Name, "sort_by", fmt.Sprintf("table has no column %q", sortBy))
	}

	dir := "DESC"
	switch strings.ToLower(sortOrder) {
	case "", SortDesc:
	case SortAsc:
		dir = "ASC"
	default:
		return "", profileerr.InvalidSortOrder(op, sortOrder)
	}

	clause := fmt.Sprintf("ORDER BY %s %s", QuoteIdent(sortBy), dir)
	if sortBy != "id" {
		clause += fmt.Sprintf(", %s %s", QuoteIdent("id"), dir)
	}
	return clause, nil
}

// QuoteIdent quotes a SQL identifier.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func selectList(table catalog.Table) string {
	names := table.ColumnNames()
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = QuoteIdent(n)
	}
	return strings.Join(quoted, ", ")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
