package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/assetref/internal/config"
	"github.com/vango-dev/assetref/internal/errors"
)

func initCmd() *cobra.Command {
	var (
		useYAML bool
		force   bool
		prefix  string
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a configuration file",
		Long: `Write a default assetref.json (or assetref.yaml with --yaml) to the
given directory, or the current one.

Examples:
  assetref init
  assetref init --yaml --prefix assets site/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(dir, useYAML, force, prefix)
		},
	}

	cmd.Flags().BoolVar(&useYAML, "yaml", false, "Write assetref.yaml")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing configuration")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Site prefix")

	return cmd
}

func runInit(dir string, useYAML, force bool, prefix string) error {
	if config.Exists(dir) && !force {
		return errors.New("X001").
			WithDetail("A configuration file already exists in " + dir).
			WithSuggestion("Use --force to overwrite it")
	}

	name := config.ConfigFileName
	if useYAML {
		name = config.YAMLFileName
	}

	cfg := config.New()
	cfg.SitePrefix = strings.Trim(prefix, "/")
	if err := cfg.Validate(); err != nil {
		return err
	}

	path := filepath.Join(dir, name)
	if err := cfg.SaveTo(path); err != nil {
		return err
	}
	success("Created %s", path)
	return nil
}
