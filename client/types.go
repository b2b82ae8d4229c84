package client

import (
	"strconv"
	"strings"
)

type Category struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	ProductsCount int64   `json:"products_count"`
}

type Product struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Description *string   `json:"description"`
	CategoryID  uint      `json:"category_id"`
	Stock       int       `json:"stock"`
	Status      string    `json:"status"`
	Category    *Category `json:"category,omitempty"`
}

type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
	HasMore     bool  `json:"has_more"`
	From        int   `json:"from"`
	To          int   `json:"to"`
}

type ProductPage struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

type CategoryPage struct {
	Categories []Category `json:"categories"`
	Pagination Pagination `json:"pagination"`
}

type ProductResult struct {
	Message string  `json:"message"`
	Product Product `json:"product"`
}

type CategoryResult struct {
	Message  string   `json:"message"`
	Category Category `json:"category"`
}

// ProductInput is a full product payload. Values are sent as strings the
// way a form would submit them.
type ProductInput struct {
	Name        string  `json:"name"`
	Price       string  `json:"price"`
	Description *string `json:"description"`
	CategoryID  string  `json:"category_id"`
	Stock       string  `json:"stock"`
	Status      string  `json:"status"`
}

type CategoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// FormValues holds modal form fields keyed by their JSON names.
type FormValues map[string]string

// Input converts a loaded product back into a full update payload.
func (p Product) Input() ProductInput {
	return ProductInput{
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		CategoryID:  strconv.FormatUint(uint64(p.CategoryID), 10),
		Stock:       strconv.Itoa(p.Stock),
		Status:      p.Status,
	}
}

func (p Product) FormValues() FormValues {
	values := FormValues{
		"name":        p.Name,
		"price":       p.Price,
		"description": "",
		"category_id": strconv.FormatUint(uint64(p.CategoryID), 10),
		"stock":       strconv.Itoa(p.Stock),
		"status":      p.Status,
	}
	if p.Description != nil {
		values["description"] = *p.Description
	}
	return values
}

func (c Category) FormValues() FormValues {
	values := FormValues{
		"name":        c.Name,
		"description": "",
	}
	if c.Description != nil {
		values["description"] = *c.Description
	}
	return values
}

func (v FormValues) ProductInput() ProductInput {
	return ProductInput{
		Name:        strings.TrimSpace(v["name"]),
		Price:       strings.TrimSpace(v["price"]),
		Description: optional(v["description"]),
		CategoryID:  strings.TrimSpace(v["category_id"]),
		Stock:       strings.TrimSpace(v["stock"]),
		Status:      strings.TrimSpace(v["status"]),
	}
}

func (v FormValues) CategoryInput() CategoryInput {
	return CategoryInput{
		Name:        strings.TrimSpace(v["name"]),
		Description: optional(v["description"]),
	}
}

func (v FormValues) clone() FormValues {
	out := make(FormValues, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
