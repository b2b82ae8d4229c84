package console

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"catalog/apptest"
	"catalog/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runScript(t *testing.T, script string) string {
	t.Helper()
	server := apptest.NewServer(t)

	var out bytes.Buffer
	view := NewView(&out)
	c := client.NewController(client.ControllerConfig{
		API:    client.NewHTTPClient(server.URL, server.Logger),
		View:   view,
		Logger: server.Logger,
	})
	t.Cleanup(c.Close)

	require.NoError(t, New(c, view).Run(context.Background(), strings.NewReader(script)))
	return out.String()
}

func TestConsoleSession(t *testing.T) {
	out := runScript(t, strings.Join([]string{
		`add category name=Garden description="Outdoor things"`,
		`categories`,
		`add product name="Desk Lamp" price=20 category_id=1 stock=3 status=Active`,
		`products`,
		`set 1 price 1250`,
		`delete product 1`,
		`yes`,
		`categories`,
		`delete category 1`,
		`yes`,
		`quit`,
		`products`,
	}, "\n"))

	assert.Contains(t, out, "No products found")
	assert.Contains(t, out, "[Success] Category created successfully.")
	assert.Contains(t, out, "Outdoor things")
	assert.Contains(t, out, "0 products")
	assert.Contains(t, out, "[Success] Product created successfully.")
	assert.Contains(t, out, "Desk Lamp")
	assert.Contains(t, out, "$20.00")
	assert.Contains(t, out, "Product 1 price: $1,250.00")
	assert.Contains(t, out, "[Success] Price updated successfully")
	assert.Contains(t, out, `Delete product "Desk Lamp"? Type 'yes' to confirm or 'no' to cancel.`)
	assert.Contains(t, out, "[Success] Product deleted successfully.")
	assert.Contains(t, out, "[Success] Category deleted successfully.")
	assert.Contains(t, out, "No categories found")
	assert.Equal(t, 2, strings.Count(out, "== Products =="), "nothing runs after quit")
}

func TestConsoleShowsValidationErrors(t *testing.T) {
	out := runScript(t, "add product name=\ncancel\nsubmit name=x\nfrobnicate\n")

	assert.Contains(t, out, "[Error] Product name is required. (and 3 more errors)")
	assert.Contains(t, out, "  name: Product name is required.")
	assert.Contains(t, out, "  stock: Stock quantity is required.")
	assert.Contains(t, out, client.ErrNoModal.Error())
	assert.Contains(t, out, `unknown command "frobnicate", type 'help'`)
}

func TestSplitArgs(t *testing.T) {
	for _, tc := range []struct {
		line string
		want []string
	}{
		{line: "", want: nil},
		{line: "  products  ", want: []string{"products"}},
		{line: `add product name="Desk Lamp" price=20`, want: []string{"add", "product", "name=Desk Lamp", "price=20"}},
		{line: `submit description=""`, want: []string{"submit", "description="}},
		{line: "set 1\tstock 4", want: []string{"set", "1", "stock", "4"}},
	} {
		got, err := splitArgs(tc.line)
		require.NoError(t, err, tc.line)
		assert.Equal(t, tc.want, got, tc.line)
	}

	_, err := splitArgs(`search "lamp`)
	assert.Error(t, err)
}
