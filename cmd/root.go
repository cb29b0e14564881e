package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"repo-flatten/config"
	"repo-flatten/fetcher"
	"repo-flatten/helpers"
)

const appName = "repo-flatten"

var version = "dev"

// newCloner is swapped out in tests.
var newCloner = func(timeoutSeconds int, logger *slog.Logger) fetcher.Cloner {
	return fetcher.NewGit(timeoutSeconds, logger)
}

// NewRootCmd builds the command tree writing to stdout and stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		cfgFile    string
		noProgress bool
	)

	rootCmd := &cobra.Command{
		Use:   appName + " <url>",
		Short: "Flatten a GitHub folder into a single text file",
		Long: `repo-flatten shallow-clones the repository behind a GitHub folder URL and
writes every file directly inside that folder into one text file, each
preceded by a "File: <folder>/<name>" header. Subfolders are not included.

Examples:
  repo-flatten https://github.com/acme/widgets/tree/main/docs/guides
  repo-flatten -t 30 -o dumps https://github.com/acme/widgets/tree/main/src`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(viper.New(), cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			if noProgress {
				cfg.Progress = false
			}

			logger := newLogger(stderr, cfg.Verbose)
			r := &runner{
				cloner:   newCloner(cfg.Timeout, logger),
				printer:  helpers.NewPrinter(stdout),
				progress: stderr,
				logger:   logger,
			}
			_, err = r.run(cmd.Context(), args[0], cfg)
			return err
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: "+config.GetConfigPath()+")")
	rootCmd.Flags().IntP("timeout", "t", fetcher.DefaultTimeout, "timeout in seconds for the git clone")
	rootCmd.Flags().StringP("output-dir", "o", "output", "directory receiving the generated text file")
	rootCmd.Flags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")

	rootCmd.AddCommand(newConfigCmd(stdout))
	return rootCmd
}

// newLogger logs to w at Warn, or Debug when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Execute runs the CLI and reports a failure on stderr.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		helpers.Error(os.Stderr, err)
		return err
	}
	return nil
}

// SetVersion sets the version reported by --version. main passes the value
// injected with ldflags.
func SetVersion(v string) {
	version = v
}
