package console

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"

	"catalog/client"
	"catalog/money"
)

var _ client.View = (*View)(nil)

// View prints controller output as plain text tables.
type View struct {
	mu  sync.Mutex
	out io.Writer
}

func NewView(out io.Writer) *View {
	return &View{out: out}
}

func (v *View) Printf(format string, args ...any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, format, args...)
}

func (v *View) ShowTab(tab client.Tab) {
	v.Printf("== %s ==\n", titleCase(string(tab)))
}

func (v *View) SetLoading(tab client.Tab, loading bool) {
	if loading {
		v.Printf("Loading %s...\n", tab)
	}
}

func (v *View) RenderProducts(page *client.ProductPage, appended bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(page.Products) == 0 {
		fmt.Fprintln(v.out, "No products found")
		return
	}

	tw := tabwriter.NewWriter(v.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK\tSTATUS\tCATEGORY")
	for _, p := range page.Products {
		category := "-"
		if p.Category != nil {
			category = p.Category.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n", p.ID, p.Name, money.FormatString(p.Price), p.Stock, p.Status, category)
	}
	tw.Flush()

	pg := page.Pagination
	if appended {
		fmt.Fprintf(v.out, "Showing 1 to %d of %d results\n", pg.To, pg.Total)
	} else {
		fmt.Fprintf(v.out, "Showing %d to %d of %d results\n", pg.From, pg.To, pg.Total)
	}
	if pg.HasMore {
		fmt.Fprintf(v.out, "Page %d of %d (type 'next' or 'more')\n", pg.CurrentPage, pg.LastPage)
	}
}

func (v *View) RenderCategories(page *client.CategoryPage) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(page.Categories) == 0 {
		fmt.Fprintln(v.out, "No categories found")
		return
	}

	tw := tabwriter.NewWriter(v.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRODUCTS\tDESCRIPTION")
	for _, c := range page.Categories {
		description := ""
		if c.Description != nil {
			description = *c.Description
		}
		fmt.Fprintf(tw, "%d\t%s\t%d products\t%s\n", c.ID, c.Name, c.ProductsCount, description)
	}
	tw.Flush()

	pg := page.Pagination
	fmt.Fprintf(v.out, "Page %d of %d\n", pg.CurrentPage, pg.LastPage)
}

func (v *View) ShowModal(m client.Modal) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fmt.Fprintf(v.out, "-- %s --\n", m.Title)
	if m.Kind == client.ModalDeleteConfirm && m.Target != nil {
		fmt.Fprintf(v.out, "Delete %s %q? Type 'yes' to confirm or 'no' to cancel.\n", m.Target.Type, m.Target.Name)
		return
	}
	for _, key := range sortedKeys(m.Values) {
		fmt.Fprintf(v.out, "  %s=%s\n", key, m.Values[key])
	}
	fmt.Fprintln(v.out, "Type 'submit key=value ...' to save or 'cancel'.")
}

func (v *View) ShowFieldErrors(fields map[string][]string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, msg := range fields[k] {
			fmt.Fprintf(v.out, "  %s: %s\n", k, msg)
		}
	}
}

func (v *View) HideModal() {}

func (v *View) ShowNotification(n client.Notification) {
	v.Printf("[%s] %s\n", n.Title, n.Message)
}

func (v *View) DismissNotification(string) {}

func (v *View) ShowInlineEditor(e client.InlineEditor) {
	if e.State == client.InlineSaving {
		v.Printf("Saving %s of product %d...\n", e.Field, e.ProductID)
	}
}

func (v *View) RenderField(productID uint, field client.Field, display string) {
	v.Printf("Product %d %s: %s\n", productID, field, display)
}

func sortedKeys(values client.FormValues) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// displayed is how the product list shows a field, used to seed inline edits.
func displayed(p client.Product, field client.Field) string {
	switch field {
	case client.FieldPrice:
		return money.FormatString(p.Price)
	case client.FieldStock:
		return strconv.Itoa(p.Stock)
	default:
		return p.Name
	}
}
