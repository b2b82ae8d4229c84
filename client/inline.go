package client

import (
	"fmt"
	"strconv"
	"strings"

	"catalog/money"
)

type Field string

const (
	FieldName  Field = "name"
	FieldPrice Field = "price"
	FieldStock Field = "stock"
)

type InlineState string

const (
	InlineDisplay InlineState = "display"
	InlineEditing InlineState = "editing"
	InlineSaving  InlineState = "saving"
)

// InlineEditor is the state of one field being edited in place.
type InlineEditor struct {
	ProductID uint
	Field     Field
	State     InlineState
	// Original is the displayed text before editing.
	Original string
	Input    string
	Numeric  bool
	Step     string
}

type inlineKey struct {
	productID uint
	field     Field
}

func newInlineEditor(productID uint, field Field, displayed string) *InlineEditor {
	displayed = strings.TrimSpace(displayed)
	e := &InlineEditor{
		ProductID: productID,
		Field:     field,
		State:     InlineEditing,
		Original:  displayed,
		Input:     displayed,
	}
	switch field {
	case FieldPrice:
		e.Numeric = true
		e.Step = "0.01"
		e.Input = money.Strip(displayed)
	case FieldStock:
		e.Numeric = true
		e.Step = "1"
	}
	return e
}

// seed is the plain value the input started with.
func (e *InlineEditor) seed() string {
	if e.Field == FieldPrice {
		return money.Strip(e.Original)
	}
	return e.Original
}

// validate checks the edited value before any request is made. It returns
// the value in wire form, or a user facing problem.
func (e *InlineEditor) validate() (value, problem string) {
	value = strings.TrimSpace(e.Input)
	switch e.Field {
	case FieldName:
		if value == "" {
			return "", "Product name is required."
		}
	case FieldPrice:
		d, err := money.Parse(value)
		if err != nil {
			return "", "Price must be a valid number."
		}
		if d.IsNegative() {
			return "", "Price must be at least 0."
		}
		value = money.Strip(value)
	case FieldStock:
		n, err := strconv.Atoi(value)
		if err != nil {
			return "", "Stock must be a whole number."
		}
		if n < 0 {
			return "", "Stock must be at least 0."
		}
	default:
		return "", fmt.Sprintf("%s cannot be edited inline.", e.Field.label())
	}
	return value, ""
}

// apply writes value into the matching field of a full update payload.
func (f Field) apply(input *ProductInput, value string) {
	switch f {
	case FieldName:
		input.Name = value
	case FieldPrice:
		input.Price = value
	case FieldStock:
		input.Stock = value
	}
}

// display renders the field of a saved product the way the list shows it.
func (f Field) display(p Product) string {
	switch f {
	case FieldPrice:
		return money.FormatString(p.Price)
	case FieldStock:
		return strconv.Itoa(p.Stock)
	default:
		return p.Name
	}
}

func (f Field) label() string {
	s := string(f)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
