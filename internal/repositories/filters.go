package repositories

import (
	"fmt"
	"strings"

	"catalog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type scope = func(*gorm.DB) *gorm.DB

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern matching s anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// containsAny builds "(LOWER(a) LIKE ? OR LOWER(b) LIKE ? ...)" with one
// argument per column. Columns must come from an allow-list.
func containsAny(columns []string, s string) (string, []any) {
	pattern := containsPattern(s)
	conds := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		conds[i] = fmt.Sprintf(`LOWER(COALESCE(%s, '')) LIKE ? ESCAPE '\'`, col)
		args[i] = pattern
	}
	return "(" + strings.Join(conds, " OR ") + ")", args
}

// searchColumns maps requested API fields onto allowed columns. No request
// means every allowed column; unknown fields are dropped.
func searchColumns(fields []string, allowed map[string]string, defaults []string) []string {
	if len(fields) == 0 {
		return defaults
	}
	var columns []string
	seen := make(map[string]bool)
	for _, f := range fields {
		col, ok := allowed[f]
		if !ok || seen[col] {
			continue
		}
		seen[col] = true
		columns = append(columns, col)
	}
	return columns
}

// orderBy applies the requested sort when its field is allowed, falling back
// to the default column. The id column breaks ties so pages stay stable.
func orderBy(sort *models.SortOption, allowed map[string]string, defaultColumn string, defaultDesc bool) scope {
	return func(db *gorm.DB) *gorm.DB {
		column, desc := defaultColumn, defaultDesc
		if sort != nil {
			if col, ok := allowed[sort.Field]; ok {
				column, desc = col, sort.Order == models.SortDesc
			}
		}
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
		if column != "id" {
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc})
		}
		return db
	}
}

func paginate(page models.PageRequest) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(page.Offset()).Limit(page.Limit)
	}
}
