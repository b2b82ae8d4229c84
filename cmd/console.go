package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"catalog/client"
	"catalog/console"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

const (
	serverFlag         = "server"
	stateFileFlag      = "state-file"
	methodOverrideFlag = "method-override"
)

var consoleFlags = map[string]cobraflags.Flag{
	serverFlag: &cobraflags.StringFlag{
		Name:  serverFlag,
		Value: "",
		Usage: "Base URL of the server (defaults to APP_ADDR on localhost)",
	},
	stateFileFlag: &cobraflags.StringFlag{
		Name:  stateFileFlag,
		Value: "",
		Usage: "Where filters and tabs are remembered (defaults to the user config dir)",
	},
	methodOverrideFlag: &cobraflags.BoolFlag{
		Name:  methodOverrideFlag,
		Value: false,
		Usage: "Send PUT and DELETE as POST with X-HTTP-Method-Override",
	},
}

func newConsoleCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Manage products and categories from the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			// keep log lines off the interactive output
			rt.logger.SetOutput(os.Stderr)

			server := consoleFlags[serverFlag].GetString()
			if server == "" {
				server = localURL(rt.cfg.Addr)
			}
			statePath := consoleFlags[stateFileFlag].GetString()
			if statePath == "" {
				path, err := client.DefaultStatePath()
				if err != nil {
					return fmt.Errorf("failed to locate state file: %w", err)
				}
				statePath = path
			}

			var opts []client.Option
			if consoleFlags[methodOverrideFlag].GetBool() {
				opts = append(opts, client.WithMethodOverride())
			}

			view := console.NewView(cmd.OutOrStdout())
			c := client.NewController(client.ControllerConfig{
				API:     client.NewHTTPClient(server, rt.logger, opts...),
				View:    view,
				Storage: client.NewFileStorage(statePath),
				Logger:  rt.logger,
			})
			defer c.Close()

			return console.New(c, view).Run(ctx, cmd.InOrStdin())
		},
	}

	cobraflags.RegisterMap(cmd, consoleFlags)
	return cmd
}

func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
