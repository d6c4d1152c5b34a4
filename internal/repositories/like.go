package repositories

import (
	"strings"

	"gorm.io/gorm"
)

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern matching value anywhere.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(value)) + "%"
}

// whereContains adds a case-insensitive substring predicate on column,
// unless value is empty.
func whereContains(q *gorm.DB, column, value string) *gorm.DB {
	if value == "" {
		return q
	}
	return q.Where("LOWER("+column+") LIKE ? ESCAPE '\\'", containsPattern(value))
}

// whereEqualFold adds a case-insensitive equality predicate on column,
// unless value is nil.
func whereEqualFold(q *gorm.DB, column string, value *string) *gorm.DB {
	if value == nil {
		return q
	}
	return q.Where("LOWER("+column+") = ?", strings.ToLower(*value))
}
