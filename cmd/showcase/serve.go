package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-showcase"
	showcasehttp "github.com/goliatone/go-showcase/internal/http"
)

func newServeCommand(opts *cliOptions, v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the showcase JSON API",
		Long: `Start the HTTP API. The snapshot is fetched in the background; until it
arrives the listing endpoints answer 503. The server stops gracefully on
SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := buildModule(opts, v)
			if err != nil {
				return err
			}
			defer module.Close()

			ctx := cmd.Context()
			cfg := module.Container().Config
			module.Session().Mount(ctx)

			server := showcasehttp.NewServer(cfg.HTTP, module.Handler())
			fmt.Fprintf(cmd.OutOrStdout(), "showcase listening on %s%s\n", cfg.HTTP.Addr, cfg.HTTP.BasePath)
			return showcasehttp.Serve(ctx, server, cfg.HTTP.ShutdownTimeout)
		},
	}

	cmd.Flags().String("addr", showcase.DefaultConfig().HTTP.Addr, "listen address")
	_ = v.BindPFlag("http.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
