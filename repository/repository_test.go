package repository

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"catalog/db"
	"catalog/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type RepositorySuite struct {
	suite.Suite
	conn       *gorm.DB
	products   *ProductRepository
	categories *CategoryRepository
	ctx        context.Context
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	conn, err := db.OpenInMemory(logger)
	s.Require().NoError(err)

	s.conn = conn
	s.ctx = context.Background()
	s.products = NewProductRepository(conn, logger)
	s.categories = NewCategoryRepository(conn, logger)
}

func (s *RepositorySuite) TearDownTest() {
	s.Require().NoError(db.Close(s.conn))
}

func (s *RepositorySuite) category(name string) models.Category {
	c, err := s.categories.Create(s.ctx, &models.Category{Name: name})
	s.Require().NoError(err)
	return *c
}

func (s *RepositorySuite) product(name, price string, categoryID uint, stock int, status string) models.Product {
	p, err := s.products.Create(s.ctx, &models.Product{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		CategoryID: categoryID,
		Stock:      stock,
		Status:     status,
	})
	s.Require().NoError(err)
	return *p
}

func ids(products []models.Product) []uint {
	out := make([]uint, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func (s *RepositorySuite) TestCombinedFilterSearchAndSort() {
	electronics := s.category("Electronics")
	clothing := s.category("Clothing")

	s.product("Laptop Pro", "1500.00", electronics.ID, 5, models.StatusActive)
	s.product("Laptop Basic", "800.00", electronics.ID, 10, models.StatusActive)
	s.product("Phone", "600.00", electronics.ID, 3, models.StatusActive)
	s.product("Laptop Bag", "50.00", clothing.ID, 20, models.StatusActive)

	page, err := s.products.List(s.ctx, ProductQuery{
		CategoryID: electronics.ID,
		Search:     "laptop",
		SortBy:     "price",
		SortOrder:  "desc",
	})
	s.Require().NoError(err)
	s.Require().Len(page.Products, 2)
	s.Equal("Laptop Pro", page.Products[0].Name)
	s.Equal("Laptop Basic", page.Products[1].Name)
	s.Equal("Electronics", page.Products[0].Category.Name)
	s.EqualValues(2, page.Pagination.Total)
}

func (s *RepositorySuite) TestPagination() {
	c := s.category("Bulk")
	for i := 1; i <= 15; i++ {
		s.product(fmt.Sprintf("Item %02d", i), "1.00", c.ID, i, models.StatusActive)
	}

	first, err := s.products.List(s.ctx, ProductQuery{Page: 1})
	s.Require().NoError(err)
	s.Len(first.Products, 12)
	s.Equal(Pagination{CurrentPage: 1, PerPage: 12, Total: 15, LastPage: 2, HasMore: true, From: 1, To: 12}, first.Pagination)

	second, err := s.products.List(s.ctx, ProductQuery{Page: 2})
	s.Require().NoError(err)
	s.Len(second.Products, 3)
	s.False(second.Pagination.HasMore)
	s.Equal(13, second.Pagination.From)
	s.Equal(15, second.Pagination.To)

	s.NotSubset(ids(first.Products), ids(second.Products))
	s.Len(append(ids(first.Products), ids(second.Products)...), 15)

	beyond, err := s.products.List(s.ctx, ProductQuery{Page: 9})
	s.Require().NoError(err)
	s.Empty(beyond.Products)
	s.EqualValues(15, beyond.Pagination.Total)
	s.Zero(beyond.Pagination.From)
	s.False(beyond.Pagination.HasMore)
}

func (s *RepositorySuite) TestPagesAreDisjointWithTies() {
	c := s.category("Same")
	for i := 0; i < 30; i++ {
		s.product("Identical", "5.00", c.ID, 1, models.StatusActive)
	}

	seen := map[uint]bool{}
	for page := 1; page <= 3; page++ {
		result, err := s.products.List(s.ctx, ProductQuery{Page: page, SortBy: "price"})
		s.Require().NoError(err)
		for _, p := range result.Products {
			s.False(seen[p.ID], "product %d returned twice", p.ID)
			seen[p.ID] = true
		}
	}
	s.Len(seen, 30)
}

func (s *RepositorySuite) TestSortOrdering() {
	c := s.category("Mixed")
	s.product("b", "30.00", c.ID, 2, models.StatusInactive)
	s.product("a", "10.00", c.ID, 9, models.StatusActive)
	s.product("c", "20.00", c.ID, 5, models.StatusActive)

	for _, column := range []string{"name", "price", "stock", "status"} {
		for _, order := range []string{SortAsc, SortDesc} {
			page, err := s.products.List(s.ctx, ProductQuery{SortBy: column, SortOrder: order})
			s.Require().NoError(err)
			for i := 1; i < len(page.Products); i++ {
				prev, cur := sortKey(page.Products[i-1], column), sortKey(page.Products[i], column)
				if order == SortAsc {
					s.LessOrEqual(prev, cur, "%s %s", column, order)
				} else {
					s.GreaterOrEqual(prev, cur, "%s %s", column, order)
				}
			}
		}
	}
}

func sortKey(p models.Product, column string) string {
	switch column {
	case "price":
		return p.Price.StringFixed(2)
	case "stock":
		return fmt.Sprintf("%08d", p.Stock)
	case "status":
		return p.Status
	}
	return p.Name
}

func (s *RepositorySuite) TestUnknownSortFallsBackToID() {
	c := s.category("Fallback")
	first := s.product("zeta", "1.00", c.ID, 1, models.StatusActive)
	second := s.product("alpha", "1.00", c.ID, 1, models.StatusActive)

	page, err := s.products.List(s.ctx, ProductQuery{SortBy: "created_at; DROP TABLE products"})
	s.Require().NoError(err)
	s.Equal([]uint{first.ID, second.ID}, ids(page.Products))
}

func (s *RepositorySuite) TestSearchMatchesDescriptionCaseInsensitively() {
	c := s.category("Search")
	desc := "Contains the WORD Widget"
	p, err := s.products.Create(s.ctx, &models.Product{
		Name: "Thing", Price: decimal.NewFromInt(1), Description: &desc,
		CategoryID: c.ID, Stock: 1, Status: models.StatusActive,
	})
	s.Require().NoError(err)
	s.product("Other", "1.00", c.ID, 1, models.StatusActive)

	page, err := s.products.List(s.ctx, ProductQuery{Search: "  widget "})
	s.Require().NoError(err)
	s.Equal([]uint{p.ID}, ids(page.Products))
}

func (s *RepositorySuite) TestSearchMatchesNonASCIINames() {
	c := s.category("Chairs")
	emile := s.product("Émile Chair", "120.00", c.ID, 2, models.StatusActive)
	s.product("Plain Stool", "40.00", c.ID, 2, models.StatusActive)

	for _, term := range []string{"Émile", "ÉMILE", "mile CHAIR", "Chair"} {
		page, err := s.products.List(s.ctx, ProductQuery{Search: term})
		s.Require().NoError(err)
		s.Equal([]uint{emile.ID}, ids(page.Products), "search %q", term)
	}
}

func (s *RepositorySuite) TestSearchEscapesWildcards() {
	c := s.category("Wild")
	percent := s.product("100% cotton", "1.00", c.ID, 1, models.StatusActive)
	s.product("1000 cotton", "1.00", c.ID, 1, models.StatusActive)
	underscore := s.product("a_b", "1.00", c.ID, 1, models.StatusActive)
	s.product("axb", "1.00", c.ID, 1, models.StatusActive)

	page, err := s.products.List(s.ctx, ProductQuery{Search: "100%"})
	s.Require().NoError(err)
	s.Equal([]uint{percent.ID}, ids(page.Products))

	page, err = s.products.List(s.ctx, ProductQuery{Search: "a_b"})
	s.Require().NoError(err)
	s.Equal([]uint{underscore.ID}, ids(page.Products))
}

func (s *RepositorySuite) TestProductCRUD() {
	c := s.category("Tools")
	other := s.category("Garden")

	created := s.product("Hammer", "12.5", c.ID, 4, models.StatusActive)
	s.Equal("12.50", created.Price.StringFixed(2))
	s.Equal("Tools", created.Category.Name)

	created.Name = "Sledgehammer"
	created.CategoryID = other.ID
	updated, err := s.products.Update(s.ctx, &created)
	s.Require().NoError(err)
	s.Equal("Sledgehammer", updated.Name)
	s.Equal("Garden", updated.Category.Name)

	_, err = s.products.Update(s.ctx, &models.Product{ID: 999, Name: "x", CategoryID: c.ID, Status: models.StatusActive})
	s.ErrorIs(err, ErrProductNotFound)

	s.Require().NoError(s.products.Delete(s.ctx, created.ID))
	_, err = s.products.Find(s.ctx, created.ID)
	s.ErrorIs(err, ErrProductNotFound)
	s.ErrorIs(s.products.Delete(s.ctx, created.ID), ErrProductNotFound)
}

func (s *RepositorySuite) TestCategoryListCountsProducts() {
	b := s.category("Beta")
	a := s.category("Alpha")
	s.product("one", "1.00", b.ID, 1, models.StatusActive)
	s.product("two", "1.00", b.ID, 1, models.StatusActive)

	page, err := s.categories.List(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(page.Categories, 2)
	s.Equal(a.ID, page.Categories[0].ID)
	s.EqualValues(0, page.Categories[0].ProductsCount)
	s.EqualValues(2, page.Categories[1].ProductsCount)
	s.EqualValues(2, page.Pagination.Total)
}

func (s *RepositorySuite) TestCategoryDeleteGuard() {
	c := s.category("Guarded")
	p := s.product("Item", "1.00", c.ID, 1, models.StatusActive)

	s.ErrorIs(s.categories.Delete(s.ctx, c.ID), ErrCategoryHasProducts)
	_, err := s.categories.Find(s.ctx, c.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.products.Delete(s.ctx, p.ID))
	s.Require().NoError(s.categories.Delete(s.ctx, c.ID))
	s.ErrorIs(s.categories.Delete(s.ctx, c.ID), ErrCategoryNotFound)
}

func (s *RepositorySuite) TestCategoryUpdateAndExists() {
	c := s.category("Old")
	desc := "fresh"
	c.Name = "New"
	c.Description = &desc

	updated, err := s.categories.Update(s.ctx, &c)
	s.Require().NoError(err)
	s.Equal("New", updated.Name)
	s.Equal("fresh", *updated.Description)

	// Saving identical values is still a successful update.
	unchanged, err := s.categories.Update(s.ctx, &c)
	s.Require().NoError(err)
	s.Equal(c.ID, unchanged.ID)
	s.Equal("New", unchanged.Name)

	_, err = s.categories.Update(s.ctx, &models.Category{ID: 404, Name: "x"})
	s.ErrorIs(err, ErrCategoryNotFound)

	ok, err := s.categories.Exists(s.ctx, c.ID)
	s.Require().NoError(err)
	s.True(ok)
	ok, err = s.categories.Exists(s.ctx, 404)
	s.Require().NoError(err)
	s.False(ok)
}

func TestParseProductQuery(t *testing.T) {
	params := map[string]string{
		"category":   "abc",
		"search":     "  shoe ",
		"sort_by":    "PRICE",
		"sort_order": "DESC",
		"page":       "-4",
	}
	q := ParseProductQuery(func(key string) string { return params[key] })

	assert.Equal(t, ProductQuery{Search: "shoe", SortBy: "price", SortOrder: SortDesc, Page: 1}, q)

	q = ParseProductQuery(func(string) string { return "" })
	assert.Equal(t, ProductQuery{SortBy: DefaultSortBy, SortOrder: SortAsc, Page: 1}, q)

	q = ParseProductQuery(func(key string) string {
		return map[string]string{"category": "7", "sort_by": "bogus", "sort_order": "sideways", "page": "3"}[key]
	})
	assert.Equal(t, ProductQuery{CategoryID: 7, SortBy: "", SortOrder: SortAsc, Page: 3}, q)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "50!% off!!", escapeLike("50% off!"))
	assert.Equal(t, "a!_b", escapeLike("a_b"))
	assert.False(t, strings.Contains(escapeLike("plain"), "!"))
}

func TestNewPagination(t *testing.T) {
	empty := newPagination(1, 0, 0)
	require.Equal(t, 1, empty.LastPage)
	assert.False(t, empty.HasMore)
	assert.Zero(t, empty.From)
	assert.Zero(t, empty.To)

	exact := newPagination(2, 24, 12)
	assert.Equal(t, 2, exact.LastPage)
	assert.False(t, exact.HasMore)
	assert.Equal(t, 13, exact.From)
	assert.Equal(t, 24, exact.To)
}
