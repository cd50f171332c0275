package db

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// ApplySearch adds a case-insensitive substring match of term against any of columns.
func ApplySearch(builder sq.SelectBuilder, term string, columns ...string) sq.SelectBuilder {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return builder
	}
	pattern := "%" + escapeLike(term) + "%"
	or := make(sq.Or, 0, len(columns))
	for _, col := range columns {
		or = append(or, sq.ILike{col: pattern})
	}
	return builder.Where(or)
}

// ApplyExact adds an equality condition for every non-empty value in filters.
func ApplyExact(builder sq.SelectBuilder, filters map[string]string) sq.SelectBuilder {
	eq := sq.Eq{}
	for col, val := range filters {
		if val != "" {
			eq[col] = val
		}
	}
	if len(eq) == 0 {
		return builder
	}
	return builder.Where(eq)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
