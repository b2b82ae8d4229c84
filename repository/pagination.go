package repository

// PerPage is the fixed page size of every list.
const PerPage = 12

type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
	HasMore     bool  `json:"has_more"`
	From        int   `json:"from"`
	To          int   `json:"to"`
}

// NormalizePage maps anything below 1 to the first page.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func offset(page int) int {
	return (NormalizePage(page) - 1) * PerPage
}

func newPagination(page int, total int64, count int) Pagination {
	page = NormalizePage(page)
	lastPage := int((total + PerPage - 1) / PerPage)
	if lastPage < 1 {
		lastPage = 1
	}

	p := Pagination{
		CurrentPage: page,
		PerPage:     PerPage,
		Total:       total,
		LastPage:    lastPage,
		HasMore:     page < lastPage,
	}
	if count > 0 {
		p.From = offset(page) + 1
		p.To = offset(page) + count
	}
	return p
}
