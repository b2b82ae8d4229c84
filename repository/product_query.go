package repository

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"

	DefaultSortBy = "name"
)

var sortableColumns = map[string]string{
	"name":   "name",
	"price":  "price",
	"stock":  "stock",
	"status": "status",
}

// ProductQuery describes one page of the product list.
type ProductQuery struct {
	CategoryID uint
	Search     string
	// SortBy is empty when the requested column is not sortable.
	SortBy    string
	SortOrder string
	Page      int
}

// ParseProductQuery builds a normalized query from raw request parameters.
// get returns "" for absent parameters.
func ParseProductQuery(get func(key string) string) ProductQuery {
	q := ProductQuery{
		Search:    get("search"),
		SortBy:    get("sort_by"),
		SortOrder: get("sort_order"),
	}
	if id, err := strconv.ParseUint(strings.TrimSpace(get("category")), 10, 64); err == nil {
		q.CategoryID = uint(id)
	}
	if page, err := strconv.Atoi(strings.TrimSpace(get("page"))); err == nil {
		q.Page = page
	}
	return q.Normalize()
}

func (q ProductQuery) Normalize() ProductQuery {
	q.Search = strings.TrimSpace(q.Search)

	sortBy := strings.ToLower(strings.TrimSpace(q.SortBy))
	switch {
	case sortBy == "":
		q.SortBy = DefaultSortBy
	case sortableColumns[sortBy] != "":
		q.SortBy = sortBy
	default:
		q.SortBy = ""
	}

	if strings.EqualFold(strings.TrimSpace(q.SortOrder), SortDesc) {
		q.SortOrder = SortDesc
	} else {
		q.SortOrder = SortAsc
	}

	q.Page = NormalizePage(q.Page)
	return q
}

func (q ProductQuery) filter(tx *gorm.DB) *gorm.DB {
	if q.CategoryID > 0 {
		tx = tx.Where("category_id = ?", q.CategoryID)
	}
	if q.Search != "" {
		// Both sides are folded by the database so they agree on case rules.
		pattern := "%" + escapeLike(q.Search) + "%"
		tx = tx.Where("(LOWER(name) LIKE LOWER(?) ESCAPE '!' OR LOWER(description) LIKE LOWER(?) ESCAPE '!')", pattern, pattern)
	}
	return tx
}

func (q ProductQuery) order(tx *gorm.DB) *gorm.DB {
	if column, ok := sortableColumns[q.SortBy]; ok {
		direction := "ASC"
		if q.SortOrder == SortDesc {
			direction = "DESC"
		}
		tx = tx.Order(column + " " + direction)
	}
	return tx.Order("id ASC")
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
