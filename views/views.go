package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"catalog/models"
	"catalog/money"
	"catalog/repository"
)

//go:embed templates/*.html
var templateFS embed.FS

type PageData struct {
	AppName    string
	Categories []models.Category
}

type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.New("views").Funcs(template.FuncMap{
		"price":    money.Format,
		"truncate": truncate,
		"pages":    pageNumbers,
		"add":      func(a, b int) int { return a + b },
		"sub":      func(a, b int) int { return a - b },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("could not parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Page renders the full page shell with the filter and form category options.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.tmpl.ExecuteTemplate(w, "page", data)
}

// Products renders the product cards and pagination fragment.
func (r *Renderer) Products(w io.Writer, page *repository.ProductPage) error {
	return r.tmpl.ExecuteTemplate(w, "products", page)
}

// Categories renders the category cards and pagination fragment.
func (r *Renderer) Categories(w io.Writer, page *repository.CategoryPage) error {
	return r.tmpl.ExecuteTemplate(w, "categories", page)
}

func truncate(s *string, limit int) string {
	if s == nil {
		return ""
	}
	runes := []rune(*s)
	if len(runes) <= limit {
		return *s
	}
	return string(runes[:limit]) + "..."
}

// pageNumbers lists the page links around the current page.
func pageNumbers(p repository.Pagination) []int {
	const window = 2

	start := max(1, p.CurrentPage-window)
	end := min(p.LastPage, p.CurrentPage+window)

	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}
