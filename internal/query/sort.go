package query

import (
	"fmt"
	"strings"
)

// Sort keys are mapped through a fixed allow-list to column expressions.
// Anything outside the list is rejected instead of being interpolated.
// Tiebreak carries the qualified id column of the driving table, since a
// bare id is ambiguous once the ratings join is in play.

type SortKeys struct {
	Columns  map[string]string
	Tiebreak string
}

var UserSortKeys = SortKeys{
	Columns: map[string]string{
		"name":         "u.name",
		"email":        "u.email",
		"address":      "u.address",
		"role":         "u.role",
		"created_at":   "u.created_at",
		"store_rating": "store_rating",
	},
	Tiebreak: "u.id",
}

var AdminStoreSortKeys = SortKeys{
	Columns: map[string]string{
		"name":       "s.name",
		"email":      "s.email",
		"address":    "s.address",
		"created_at": "s.created_at",
		"rating":     "rating",
	},
	Tiebreak: "s.id",
}

var UserStoreSortKeys = SortKeys{
	Columns: map[string]string{
		"name":           "s.name",
		"address":        "s.address",
		"created_at":     "s.created_at",
		"overall_rating": "overall_rating",
	},
	Tiebreak: "s.id",
}

// OrderClause resolves sortBy/sortOrder against the allow-list, defaulting
// to name ASC. Computed-column sorts get an id tiebreak so the order is
// deterministic.
func OrderClause(keys SortKeys, sortBy, sortOrder string) (string, error) {
	if sortBy == "" {
		sortBy = "name"
	}
	col, ok := keys.Columns[sortBy]
	if !ok {
		return "", fmt.Errorf("invalid sort field: %s", sortBy)
	}

	dir := "ASC"
	switch strings.ToUpper(sortOrder) {
	case "", "ASC":
	case "DESC":
		dir = "DESC"
	default:
		return "", fmt.Errorf("invalid sort order: %s", sortOrder)
	}

	clause := col + " " + dir
	if !strings.Contains(col, ".") {
		clause += ", " + keys.Tiebreak + " " + dir
	}
	return clause, nil
}

// ContainsFilter appends a case-insensitive substring condition when the
// value is present. Conditions are independent ANDs.
func ContainsFilter(conds *[]string, args *[]any, column, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	*conds = append(*conds, fmt.Sprintf("LOWER(%s) LIKE ?", column))
	*args = append(*args, "%"+strings.ToLower(value)+"%")
}
