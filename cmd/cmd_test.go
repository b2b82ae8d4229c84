package cmd

import (
	"path/filepath"
	"testing"

	"catalog/config"
	"catalog/db"
	"catalog/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalURL(t *testing.T) {
	assert.Equal(t, "http://localhost:3000", localURL(":3000"))
	assert.Equal(t, "http://10.0.0.5:8080", localURL("10.0.0.5:8080"))
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := NewRootCommand()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "seed", "console"}, names)
}

func TestSubcommandFlags(t *testing.T) {
	seed := newSeedCommand(&runtime{})
	for name, def := range map[string]string{"categories": "5", "products": "10", "seed": "0"} {
		f := seed.Flags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, def, f.DefValue, name)
	}

	console := newConsoleCommand(&runtime{})
	for _, name := range []string{"server", "state-file", "method-override"} {
		assert.NotNil(t, console.Flags().Lookup(name), name)
	}
}

func TestSeedCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", path)
	t.Setenv("LOG_LEVEL", "error")

	root := NewRootCommand()
	root.SetArgs([]string{"seed", "--categories", "2", "--products", "3", "--seed", "7"})
	require.NoError(t, root.Execute())

	conn, err := db.Open(&config.Config{DBDriver: config.DriverSQLite, DatabaseURL: path}, logrus.New())
	require.NoError(t, err)
	defer db.Close(conn)

	var categories, products int64
	require.NoError(t, conn.Model(&models.Category{}).Count(&categories).Error)
	require.NoError(t, conn.Model(&models.Product{}).Count(&products).Error)
	assert.Equal(t, int64(2), categories)
	assert.Equal(t, int64(6), products)
}

func TestRootRejectsBadConfig(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	root := NewRootCommand()
	root.SetArgs([]string{"migrate"})
	assert.ErrorContains(t, root.Execute(), "unsupported DB_DRIVER")
}
