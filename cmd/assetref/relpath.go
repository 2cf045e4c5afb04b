package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/assetref/internal/errors"
	"github.com/vango-dev/assetref/pkg/assets"
)

func relpathCmd(flags *globalFlags) *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "relpath <logical-path> <target>",
		Short: "Print the relative path from an output document to an asset",
		Long: `Print the path a page written to <target> uses to reach the asset
with logical path <logical-path>. The site prefix defaults to the
configured sitePrefix.

Examples:
  assetref relpath example.com/theme/static/x.css example.com/site/index.html
  assetref relpath --prefix assets a/b/static/x.css docs/`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("prefix") {
				cfg, err := loadConfig(flags)
				if err != nil {
					return err
				}
				prefix = cfg.SitePrefix
			}
			p, err := assets.RelativePath(args[0], args[1], prefix)
			if err != nil {
				return errors.New("X001").WithDetail(err.Error())
			}
			fmt.Println(p)
			return nil
		},
	}

	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Site prefix (default from configuration)")

	return cmd
}
