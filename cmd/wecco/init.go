package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wecco-dev/wecco/internal/config"
	"github.com/wecco-dev/wecco/internal/errors"
	"github.com/wecco-dev/wecco/internal/starter"
)

func initCmd() *cobra.Command {
	var (
		useYAML bool
		kit     string
	)

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a configuration file",
		Long: `Create wecco.json (or wecco.yaml with --yaml) with default settings
and the example files of a starter.

Starters:
  minimal   configuration only
  page      a page template with a JSON data document (default)
  list      a list page with a YAML data document

Examples:
  wecco init
  wecco init site --yaml --starter list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			st, err := starter.Get(kit)
			if err != nil {
				return err
			}
			if config.Exists(dir) {
				return errors.New("W010").
					WithDetail("a configuration file already exists in " + dir)
			}
			name := config.ConfigFileName
			if useYAML {
				name = "wecco.yaml"
			}
			cfg := config.New()
			if abs, err := filepath.Abs(dir); err == nil {
				cfg.Name = filepath.Base(abs)
			}
			path := filepath.Join(dir, name)
			if err := cfg.SaveTo(path); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			success(out, "Created %s", path)

			skipped, err := st.Create(dir, starter.Config{ProjectName: cfg.Name})
			if err != nil {
				return err
			}
			for _, f := range skipped {
				warn(out, "Kept existing %s", f)
			}
			if len(st.Files) > len(skipped) {
				success(out, "Added %s starter", st.Name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&useYAML, "yaml", false, "Write wecco.yaml instead of wecco.json")
	cmd.Flags().StringVar(&kit, "starter", "page", "Starter files to add (minimal, page, list)")

	return cmd
}
