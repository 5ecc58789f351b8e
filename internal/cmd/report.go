package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atikulmunna/logreport/internal/analyzer"
	"github.com/atikulmunna/logreport/internal/files"
	"github.com/atikulmunna/logreport/internal/output"
	"github.com/atikulmunna/logreport/internal/report"
)

func runReport(cmd *cobra.Command, v *viper.Viper, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), v.GetBool("verbose"))
	defer flushLogger(logger)

	paths, err := resolveFiles(args)
	if err != nil {
		return err
	}

	renderer, err := output.New(v.GetString("output"), v.GetBool("color"))
	if err != nil {
		return usageError(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := analyzer.Generate(ctx, paths, v.GetString("report"), analyzer.Options{
		Workers: v.GetInt("workers"),
		Logger:  logger,
	})
	if err != nil {
		if errors.Is(err, report.ErrUnknownReport) {
			return usageError(err)
		}
		return fmt.Errorf("unexpected error: %w", err)
	}

	return renderer.Render(cmd.OutOrStdout(), res)
}

// resolveFiles expands and validates the LOG_FILE arguments.
func resolveFiles(args []string) ([]string, error) {
	paths, err := files.Resolve(args)
	if err != nil {
		var pe *files.PathError
		if errors.As(err, &pe) {
			return nil, usageError(err)
		}
		return nil, err
	}
	return paths, nil
}
