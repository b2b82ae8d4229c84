package cmd

import (
	"os"

	"catalog/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// runtime is what every subcommand gets after the root has loaded config.
type runtime struct {
	cfg    *config.Config
	logger *logrus.Logger
}

func NewRootCommand() *cobra.Command {
	rt := &runtime{}

	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Product and category management",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			bootstrap := logrus.New()
			cfg, err := config.Load(bootstrap)
			if err != nil {
				return err
			}
			rt.cfg = cfg
			rt.logger = config.NewLogger(cfg)
			return nil
		},
	}

	root.AddCommand(
		newServeCommand(rt),
		newMigrateCommand(rt),
		newSeedCommand(rt),
		newConsoleCommand(rt),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		logrus.Errorf("%v", err)
		os.Exit(1)
	}
}
