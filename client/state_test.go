package client

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultState(t *testing.T) {
	s := DefaultState()
	assert.Equal(t, "name", s.Filters.SortBy)
	assert.Equal(t, "asc", s.Filters.SortOrder)
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, PaginationNumbered, s.PaginationType)
	assert.Equal(t, TabProducts, s.ActiveTab)
}

func TestFilterChangesResetPage(t *testing.T) {
	s := DefaultState()
	s.SetPage(4)
	s.SetFilter(FilterSearch, "lamp")
	assert.Equal(t, 1, s.CurrentPage)
	assert.Equal(t, "lamp", s.Filters.Search)

	s.SetPage(3)
	s.ToggleSortOrder()
	assert.Equal(t, "desc", s.Filters.SortOrder)
	assert.Equal(t, 1, s.CurrentPage)
	s.ToggleSortOrder()
	assert.Equal(t, "asc", s.Filters.SortOrder)

	s.SetFilter(FilterSortBy, "weight")
	assert.Equal(t, "name", s.Filters.SortBy, "unknown columns are ignored")

	s.SetPage(2)
	s.SetPaginationType(PaginationLoadMore)
	assert.Equal(t, PaginationLoadMore, s.PaginationType)
	assert.Equal(t, 1, s.CurrentPage)

	s.SetPage(-3)
	assert.Equal(t, 1, s.CurrentPage)
}

func TestLoadState(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		s := DefaultState()
		s.SetFilter(FilterCategory, "7")
		s.SetFilter(FilterSortBy, "price")
		s.SetPaginationType(PaginationLoadMore)
		s.SetActiveTab(TabCategories)
		s.SetCategoriesPage(2)

		data, err := s.Marshal()
		require.NoError(t, err)
		assert.Equal(t, s, LoadState(data))
	})

	t.Run("corrupt data", func(t *testing.T) {
		assert.Equal(t, DefaultState(), LoadState([]byte("{not json")))
		assert.Equal(t, DefaultState(), LoadState(nil))
	})

	t.Run("invalid entries keep defaults", func(t *testing.T) {
		s := LoadState([]byte(`{
			"filters": {"search": "desk", "sortBy": "weight", "sortOrder": 3},
			"currentPage": 0,
			"paginationType": "infinite",
			"activeTab": "categories",
			"extra": true
		}`))

		want := DefaultState()
		want.Filters.Search = "desk"
		want.ActiveTab = TabCategories
		assert.Equal(t, want, s)
	})
}

func TestStorePersistsEveryUpdate(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	storage := NewMemoryStorage()

	store := NewStore(storage, logger)
	store.Update(func(s *State) { s.SetFilter(FilterSearch, "chair") })

	reloaded := NewStore(storage, logger)
	assert.Equal(t, "chair", reloaded.State().Filters.Search)
}
