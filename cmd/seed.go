package cmd

import (
	"catalog/db"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

const (
	categoriesFlag = "categories"
	productsFlag   = "products"
	seedFlag       = "seed"
)

var seedFlags = map[string]cobraflags.Flag{
	categoriesFlag: &cobraflags.IntFlag{
		Name:  categoriesFlag,
		Value: 5,
		Usage: "Number of categories to create",
	},
	productsFlag: &cobraflags.IntFlag{
		Name:  productsFlag,
		Value: 10,
		Usage: "Products per category",
	},
	seedFlag: &cobraflags.IntFlag{
		Name:  seedFlag,
		Value: 0,
		Usage: "Random seed, 0 for a random one",
	},
}

func newSeedCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with sample categories and products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := db.SeedOptions{
				Categories:          seedFlags[categoriesFlag].GetInt(),
				ProductsPerCategory: seedFlags[productsFlag].GetInt(),
				Seed:                int64(seedFlags[seedFlag].GetInt()),
			}

			conn, err := db.Open(rt.cfg, rt.logger)
			if err != nil {
				return err
			}
			defer db.Close(conn)

			if err := db.Migrate(conn); err != nil {
				return err
			}
			return db.Seed(cmd.Context(), conn, opts, rt.logger)
		},
	}

	cobraflags.RegisterMap(cmd, seedFlags)
	return cmd
}
