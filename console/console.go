// Package console is a line oriented front end for the client controller.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"catalog/client"
)

const help = `Commands:
  products | categories            switch tab
  page N | next | prev | more      product pages
  cpage N                          category pages
  search TEXT                      filter by name or description
  filter CATEGORY_ID | all         filter by category
  sort name|price|stock|status     sort column
  order                            toggle ascending/descending
  mode                             toggle numbered/load more pagination
  add product|category [k=v ...]   open a create form
  edit product|category ID [k=v]   open an edit form
  submit k=v ...                   save the open form
  delete product|category ID       ask to delete
  yes | no                         answer a delete prompt
  cancel                           close the open form
  set ID name|price|stock VALUE    edit one product field in place
  quit
`

type Console struct {
	c    *client.Controller
	view *View
}

func New(c *client.Controller, view *View) *Console {
	return &Console{c: c, view: view}
}

// Run reads commands from in until quit, end of input or ctx is done.
func (con *Console) Run(ctx context.Context, in io.Reader) error {
	con.c.Start(ctx)

	scanner := bufio.NewScanner(in)
	for {
		con.view.Printf("> ")
		if !scanner.Scan() {
			con.view.Printf("\n")
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		args, err := splitArgs(scanner.Text())
		if err != nil {
			con.view.Printf("%v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "quit" || args[0] == "exit" {
			return nil
		}
		if err := con.exec(ctx, args[0], args[1:]); err != nil {
			con.view.Printf("%v\n", err)
		}
	}
}

func (con *Console) exec(ctx context.Context, cmd string, args []string) error {
	c := con.c
	switch cmd {
	case "help":
		con.view.Printf("%s", help)
	case "products":
		c.SwitchTab(ctx, client.TabProducts)
	case "categories":
		c.SwitchTab(ctx, client.TabCategories)
	case "page":
		n, err := intArg(args, 0)
		if err != nil {
			return err
		}
		c.GoToPage(ctx, n)
	case "next", "prev":
		page := c.State().CurrentPage + 1
		if cmd == "prev" {
			page -= 2
		}
		c.GoToPage(ctx, page)
	case "more":
		c.LoadMore(ctx)
	case "cpage":
		n, err := intArg(args, 0)
		if err != nil {
			return err
		}
		c.GoToCategoriesPage(ctx, n)
	case "search":
		c.TypeSearch(strings.Join(args, " "))
	case "filter":
		category := strings.Join(args, "")
		if category == "all" {
			category = ""
		}
		c.SetCategoryFilter(ctx, category)
	case "sort":
		if len(args) != 1 {
			return errors.New("usage: sort name|price|stock|status")
		}
		c.SetSortBy(ctx, args[0])
	case "order":
		c.ToggleSortOrder(ctx)
	case "mode":
		c.TogglePaginationType(ctx)
	case "add":
		return con.add(ctx, args)
	case "edit":
		return con.edit(ctx, args)
	case "submit":
		return con.submit(ctx, args)
	case "delete":
		return con.delete(args)
	case "yes":
		return c.Confirm(ctx)
	case "no", "cancel":
		c.CloseModal()
	case "set":
		return con.set(ctx, args)
	default:
		return fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
	return nil
}

func (con *Console) add(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: add product|category [key=value ...]")
	}
	switch args[0] {
	case "product":
		con.c.OpenCreateProduct()
	case "category":
		con.c.OpenCreateCategory()
	default:
		return fmt.Errorf("cannot add %q", args[0])
	}
	if len(args) > 1 {
		return con.submit(ctx, args[1:])
	}
	return nil
}

func (con *Console) edit(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: edit product|category ID [key=value ...]")
	}
	id, err := idArg(args[1])
	if err != nil {
		return err
	}
	switch args[0] {
	case "product":
		con.c.OpenEditProduct(ctx, id)
	case "category":
		con.c.OpenEditCategory(ctx, id)
	default:
		return fmt.Errorf("cannot edit %q", args[0])
	}
	if _, open := con.c.Modal(); open && len(args) > 2 {
		return con.submit(ctx, args[2:])
	}
	return nil
}

// submit sends the open form with the given fields changed.
func (con *Console) submit(ctx context.Context, args []string) error {
	modal, open := con.c.Modal()
	if !open {
		return client.ErrNoModal
	}
	values := modal.Values
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", arg)
		}
		values[key] = value
	}
	return con.c.Submit(ctx, values)
}

func (con *Console) delete(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: delete product|category ID")
	}
	id, err := idArg(args[1])
	if err != nil {
		return err
	}

	switch args[0] {
	case "product":
		name := fmt.Sprintf("#%d", id)
		if p, ok := con.product(id); ok {
			name = p.Name
		}
		con.c.OpenDeleteProduct(id, name)
	case "category":
		name, count := fmt.Sprintf("#%d", id), int64(0)
		if page := con.c.Categories(); page != nil {
			for _, cat := range page.Categories {
				if cat.ID == id {
					name, count = cat.Name, cat.ProductsCount
				}
			}
		}
		con.c.OpenDeleteCategory(id, name, count)
	default:
		return fmt.Errorf("cannot delete %q", args[0])
	}
	return nil
}

func (con *Console) set(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: set ID name|price|stock VALUE")
	}
	id, err := idArg(args[0])
	if err != nil {
		return err
	}
	field := client.Field(args[1])
	switch field {
	case client.FieldName, client.FieldPrice, client.FieldStock:
	default:
		return fmt.Errorf("%q cannot be edited in place", args[1])
	}
	p, ok := con.product(id)
	if !ok {
		return fmt.Errorf("product %d is not on the current page", id)
	}

	con.c.BeginInlineEdit(id, field, displayed(p, field))
	con.c.SetInlineInput(id, field, strings.Join(args[2:], " "))
	con.c.SaveInlineEdit(ctx, id, field)
	return nil
}

func (con *Console) product(id uint) (client.Product, bool) {
	page := con.c.Products()
	if page == nil {
		return client.Product{}, false
	}
	for _, p := range page.Products {
		if p.ID == id {
			return p, true
		}
	}
	return client.Product{}, false
}

func intArg(args []string, i int) (int, error) {
	if len(args) <= i {
		return 0, errors.New("missing number")
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", args[i])
	}
	return n, nil
}

func idArg(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%q is not a valid id", s)
	}
	return uint(id), nil
}

// splitArgs splits on spaces, keeping double quoted runs together.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case (r == ' ' || r == '\t') && !quoted:
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if quoted {
		return nil, errors.New("unterminated quote")
	}
	if started {
		args = append(args, current.String())
	}
	return args, nil
}
