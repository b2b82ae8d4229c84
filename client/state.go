package client

import "encoding/json"

// StorageKey namespaces the persisted client state.
const StorageKey = "productManagementState"

type Tab string

const (
	TabProducts   Tab = "products"
	TabCategories Tab = "categories"
)

type PaginationType string

const (
	PaginationNumbered PaginationType = "numbered"
	PaginationLoadMore PaginationType = "loadmore"
)

type FilterKey string

const (
	FilterCategory  FilterKey = "category"
	FilterSearch    FilterKey = "search"
	FilterSortBy    FilterKey = "sortBy"
	FilterSortOrder FilterKey = "sortOrder"
)

var sortColumns = map[string]bool{"name": true, "price": true, "stock": true, "status": true}

type Filters struct {
	Category  string `json:"category"`
	Search    string `json:"search"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

// State is everything the UI remembers between sessions.
type State struct {
	Filters        Filters        `json:"filters"`
	CurrentPage    int            `json:"currentPage"`
	PaginationType PaginationType `json:"paginationType"`
	ActiveTab      Tab            `json:"activeTab"`
	CategoriesPage int            `json:"categoriesPage"`
}

func DefaultState() State {
	return State{
		Filters: Filters{
			SortBy:    "name",
			SortOrder: "asc",
		},
		CurrentPage:    1,
		PaginationType: PaginationNumbered,
		ActiveTab:      TabProducts,
		CategoriesPage: 1,
	}
}

// SetFilter changes one filter and returns to the first page.
func (s *State) SetFilter(key FilterKey, value string) {
	switch key {
	case FilterCategory:
		s.Filters.Category = value
	case FilterSearch:
		s.Filters.Search = value
	case FilterSortBy:
		if sortColumns[value] {
			s.Filters.SortBy = value
		}
	case FilterSortOrder:
		if value == "asc" || value == "desc" {
			s.Filters.SortOrder = value
		}
	}
	s.CurrentPage = 1
}

func (s *State) ToggleSortOrder() {
	if s.Filters.SortOrder == "desc" {
		s.SetFilter(FilterSortOrder, "asc")
	} else {
		s.SetFilter(FilterSortOrder, "desc")
	}
}

func (s *State) SetPaginationType(t PaginationType) {
	if t == PaginationNumbered || t == PaginationLoadMore {
		s.PaginationType = t
	}
	s.CurrentPage = 1
}

func (s *State) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.CurrentPage = page
}

func (s *State) SetCategoriesPage(page int) {
	if page < 1 {
		page = 1
	}
	s.CategoriesPage = page
}

func (s *State) SetActiveTab(tab Tab) {
	if tab == TabProducts || tab == TabCategories {
		s.ActiveTab = tab
	}
}

// ListParams is the product list request for the current state.
func (s State) ListParams() ListParams {
	return ListParams{
		Category:  s.Filters.Category,
		Search:    s.Filters.Search,
		SortBy:    s.Filters.SortBy,
		SortOrder: s.Filters.SortOrder,
		Page:      s.CurrentPage,
	}
}

func (s State) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// LoadState merges persisted data over the defaults. Missing, unknown or
// invalid entries keep their default; corrupt data yields DefaultState.
func LoadState(data []byte) State {
	state := DefaultState()

	var raw map[string]json.RawMessage
	if len(data) == 0 || json.Unmarshal(data, &raw) != nil {
		return state
	}

	var filters map[string]json.RawMessage
	if json.Unmarshal(raw["filters"], &filters) == nil {
		if v, ok := decodeString(filters["category"]); ok {
			state.Filters.Category = v
		}
		if v, ok := decodeString(filters["search"]); ok {
			state.Filters.Search = v
		}
		if v, ok := decodeString(filters["sortBy"]); ok && sortColumns[v] {
			state.Filters.SortBy = v
		}
		if v, ok := decodeString(filters["sortOrder"]); ok && (v == "asc" || v == "desc") {
			state.Filters.SortOrder = v
		}
	}

	if v, ok := decodeInt(raw["currentPage"]); ok && v >= 1 {
		state.CurrentPage = v
	}
	if v, ok := decodeString(raw["paginationType"]); ok {
		switch t := PaginationType(v); t {
		case PaginationNumbered, PaginationLoadMore:
			state.PaginationType = t
		}
	}
	if v, ok := decodeString(raw["activeTab"]); ok {
		state.SetActiveTab(Tab(v))
	}
	if v, ok := decodeInt(raw["categoriesPage"]); ok && v >= 1 {
		state.CategoriesPage = v
	}
	return state
}

func decodeString(raw json.RawMessage) (string, bool) {
	var s string
	if raw == nil || json.Unmarshal(raw, &s) != nil {
		return "", false
	}
	return s, true
}

func decodeInt(raw json.RawMessage) (int, bool) {
	var n int
	if raw == nil || json.Unmarshal(raw, &n) != nil {
		return 0, false
	}
	return n, true
}
