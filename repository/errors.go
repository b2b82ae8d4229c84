package repository

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryHasProducts = errors.New("cannot delete category with existing products")
)
