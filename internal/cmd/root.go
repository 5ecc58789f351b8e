package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/atikulmunna/logreport/internal/report"
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// Execute runs the root command and exits with its status.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the exit code. Errors go to stderr;
// stdout only receives the report.
func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}

	root := newRootCmd(viper.New())
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		fmt.Fprintf(stderr, "Error: %s\n", exitErr.Message)
		return exitErr.Code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

// newRootCmd builds the command tree. Flags are bound to v so values can
// also come from the config file or LOGREPORT_* environment variables.
func newRootCmd(v *viper.Viper) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "logreport [flags] LOG_FILE...",
		Short: "logreport - Django request log analyzer",
		Long: `logreport reads Django application log files, extracts the
django.requests entries and prints a summary table of requests per handler
and severity level.

Examples:
  logreport app1.log app2.log
  logreport "logs/**/*.log" --report handlers
  logreport app.log --output json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageError(errors.New("at least one LOG_FILE is required"))
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, v, args)
		},
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: $HOME/.logreport.yaml)")
	flags.StringP("report", "r", report.HandlersName, fmt.Sprintf("report kind to generate %v", report.Names()))
	flags.IntP("workers", "w", 1, "number of parse workers")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringP("output", "o", "text", "output format: text, json")
	rootCmd.Flags().Bool("color", false, "colorize text output")

	for _, name := range []string{"report", "workers", "verbose"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
	for _, name := range []string{"output", "color"} {
		_ = v.BindPFlag(name, rootCmd.Flags().Lookup(name))
	}

	rootCmd.AddCommand(newServeCmd(v), newReportsCmd())
	return rootCmd
}

func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".logreport")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("logreport")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return usageError(fmt.Errorf("cannot read config: %w", err))
	}
	return nil
}
