package pgrepo

import (
	"fmt"
	"slices"
	"strings"

	"catalog-backend/internal/search"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern with ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type searchQuery struct {
	countSQL  string
	countArgs []any
	listSQL   string
	listArgs  []any
}

// buildSearch renders a resolved plan as a count query and a page query over table.
// Text columns are ordered with COLLATE "C" so strings compare bytewise.
// ILIKE folds case by the database LC_CTYPE; it matches the in-process filter
// for non-ASCII text only under a UTF-8 locale.
func buildSearch[T any](table, columns string, s search.Schema[T], p search.Plan) (searchQuery, error) {
	f, err := s.Column(p)
	if err != nil {
		return searchQuery{}, err
	}

	var where string
	var args []any
	if p.Filter != "" {
		args = append(args, "%"+escapeLike(p.Filter)+"%")
		where = fmt.Sprintf(` WHERE %s ILIKE $%d ESCAPE '\'`, s.FilterColumn, len(args))
	}

	order := f.Column
	if f.Text {
		order += ` COLLATE "C"`
	}
	dir := "DESC"
	if p.Ascending() {
		dir = "ASC"
	}

	n := len(args)
	return searchQuery{
		countSQL:  fmt.Sprintf("SELECT COUNT(*) FROM %s%s", table, where),
		countArgs: args,
		listSQL: fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s %s, seq ASC LIMIT $%d OFFSET $%d",
			columns, table, where, order, dir, n+1, n+2),
		listArgs: append(slices.Clone(args), p.Limit(), p.Offset()),
	}, nil
}
