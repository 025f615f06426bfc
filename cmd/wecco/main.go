package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wecco-dev/wecco/internal/config"
	"github.com/wecco-dev/wecco/internal/errors"
	"github.com/wecco-dev/wecco/pkg/metrics"
	"github.com/wecco-dev/wecco/pkg/template"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦ ╦┌─┐┌─┐┌─┐┌─┐
  ║║║├┤ │  │  │ │
  ╚╩╝└─┘└─┘└─┘└─┘
`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wecco",
		Short: "Compile and render wecco templates",
		Long: `wecco compiles tagged markup templates and renders them against
data documents.

Templates are markup files with ${key} holes. Data documents may be
JSON, YAML or MessagePack. With --watch the output is re-rendered
incrementally whenever the template or the data changes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		initCmd(),
		compileCmd(),
		renderCmd(),
		versionCmd(),
	)
	return rootCmd
}

// setup loads the project configuration and installs the logger and
// collectors it asks for.
func setup(stderr io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, newLogger(cfg, stderr), nil
}

func newLogger(cfg *config.Config, stderr io.Writer) *slog.Logger {
	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	template.SetLogger(logger)
	template.DebugMode = cfg.Debug
	if cfg.Metrics.Enabled && metrics.Default() == nil {
		metrics.SetDefault(metrics.New(metrics.WithNamespace(cfg.Metrics.Namespace)))
	}
	return logger
}

// printBanner prints the wecco ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
