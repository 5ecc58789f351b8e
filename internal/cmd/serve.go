package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atikulmunna/logreport/internal/report"
	"github.com/atikulmunna/logreport/internal/server"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve LOG_FILE...",
		Short: "Serve reports over HTTP",
		Long: `Serve reports for the given log files over HTTP. The files are
re-read on every request.

Endpoints:
  GET /report?kind=handlers       plain-text table
  GET /api/report?kind=handlers   JSON table and statistics
  GET /api/reports                registered report kinds
  GET /healthz                    liveness`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageError(errors.New("at least one LOG_FILE is required"))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), v.GetBool("verbose"))
			defer flushLogger(logger)

			paths, err := resolveFiles(args)
			if err != nil {
				return err
			}

			// Fail fast instead of answering every request with 400.
			if _, err := report.Lookup(v.GetString("report")); err != nil {
				return usageError(err)
			}

			srv := server.New(server.Config{
				Addr:          v.GetString("addr"),
				Paths:         paths,
				DefaultReport: v.GetString("report"),
				Workers:       v.GetInt("workers"),
				Logger:        logger,
			})
			return srv.Start()
		},
	}

	serveCmd.Flags().String("addr", ":8080", "listen address")
	_ = v.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))

	return serveCmd
}
