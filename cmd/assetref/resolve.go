package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/assetref/pkg/assets"
	"github.com/vango-dev/assetref/pkg/resource"
)

func resolveCmd(flags *globalFlags) *cobra.Command {
	var (
		module  string
		noCheck bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <reference>...",
		Short: "Resolve asset references to logical paths",
		Long: `Resolve asset references the way the rewriter does and print the
logical path of each.

A reference containing ':' names a module ("example.com/theme:static/x.css").
Other references are relative to the module given with --module. External
references are reported and left alone.

Examples:
  assetref resolve example.com/theme:static/theme.css
  assetref resolve --module example.com/site static/site.css ../theme/x.css`,
		Args: minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd.Context(), flags)
			if err != nil {
				return err
			}
			return runResolve(p, module, args, !noCheck)
		},
	}

	cmd.Flags().StringVarP(&module, "module", "m", "", "Module relative references are resolved against")
	cmd.Flags().BoolVar(&noCheck, "no-check", false, "Do not check that the resources exist")

	return cmd
}

func runResolve(p *project, module string, refs []string, check bool) error {
	var component any
	if module != "" {
		component = assets.Module(module)
	}

	for _, raw := range refs {
		if !assets.IsLocalReference(raw) {
			info("%s  (external, unchanged)", raw)
			continue
		}
		h, err := resolveChecked(p, component, raw, check)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", raw, h)
	}
	return nil
}

// resolveChecked resolves raw without its query or fragment and, when
// check is set, validates the result exists.
func resolveChecked(p *project, component any, raw string, check bool) (resource.Handle, error) {
	ref, _ := assets.SplitSuffix(raw)
	h, err := p.resolver.Resolve(component, ref)
	if err != nil {
		return nil, err
	}
	if check {
		if err := assets.ValidateExists(h); err != nil {
			return nil, err
		}
	}
	return h, nil
}
