package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/assetref/internal/errors"
	"github.com/vango-dev/assetref/pkg/assets"
	"github.com/vango-dev/assetref/pkg/publish"
)

type copyOptions struct {
	module      string
	output      string
	prefix      string
	fingerprint bool
	toS3        bool
	concurrency int
}

func copyCmd(flags *globalFlags) *cobra.Command {
	opts := copyOptions{}

	cmd := &cobra.Command{
		Use:   "copy <reference>...",
		Short: "Copy referenced assets into the output site",
		Long: `Resolve asset references, check they exist, and copy the files into
the output site under the site prefix, at their logical paths. This is the
layout the relative paths rendered into pages expect.

With --fingerprint a content hash is added to every file name and
manifest.json maps logical paths to the published names.

Examples:
  assetref copy example.com/theme:static/theme.css
  assetref copy --module example.com/site static/site.css static/app.js
  assetref copy --s3 --fingerprint example.com/theme:static/theme.css`,
		Args: minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			p, err := openProject(ctx, flags)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("prefix") {
				opts.prefix = p.cfg.SitePrefix
			}
			if !cmd.Flags().Changed("fingerprint") {
				opts.fingerprint = p.cfg.Fingerprint
			}
			if opts.concurrency == 0 {
				opts.concurrency = p.cfg.Concurrency
			}
			return runCopy(ctx, p, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.module, "module", "m", "", "Module relative references are resolved against")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory (default from configuration)")
	cmd.Flags().StringVarP(&opts.prefix, "prefix", "p", "", "Site prefix (default from configuration)")
	cmd.Flags().BoolVar(&opts.fingerprint, "fingerprint", false, "Add content hashes to file names")
	cmd.Flags().BoolVar(&opts.toS3, "s3", false, "Upload to the configured S3 bucket instead of a directory")
	cmd.Flags().IntVarP(&opts.concurrency, "jobs", "j", 0, "Parallel writes (default 8)")

	return cmd
}

func runCopy(ctx context.Context, p *project, opts copyOptions, refs []string) error {
	var component any
	if opts.module != "" {
		component = assets.Module(opts.module)
	}

	set := assets.NewAssetSet()
	for _, raw := range refs {
		if !assets.IsLocalReference(raw) {
			info("%s  (external, skipped)", raw)
			continue
		}
		h, err := resolveChecked(p, component, raw, true)
		if err != nil {
			return err
		}
		set.Add(assets.NewAssetReference(h))
	}
	if set.Len() == 0 {
		warn("Nothing to copy")
		return nil
	}

	pubOpts := publish.Options{
		SitePrefix:  opts.prefix,
		Fingerprint: opts.fingerprint,
		Concurrency: opts.concurrency,
		Logger:      p.logger,
		OnProgress: func(logical string) {
			info("%s", logical)
		},
	}

	var (
		publisher publish.Publisher
		dest      string
	)
	if opts.toS3 {
		if p.s3 == nil {
			return errors.New("C003").
				WithDetail("--s3 needs an s3 bucket in the configuration").
				WithField("key", "s3.bucket")
		}
		publisher = publish.NewS3Publisher(p.s3, p.cfg.S3.Bucket, p.cfg.S3.Prefix, pubOpts)
		dest = "s3://" + p.cfg.S3.Bucket + "/" + p.cfg.S3.Prefix
	} else {
		dir := p.cfg.OutputPath()
		if opts.output != "" {
			dir = opts.output
		}
		publisher = publish.NewDirPublisher(dir, pubOpts)
		dest = dir
	}

	result, err := publisher.Publish(ctx, set.All())
	if err != nil {
		return errors.New("P001").Wrap(err)
	}

	fmt.Println()
	success("Copied %d assets (%s) to %s in %s",
		result.Files, formatBytes(result.Bytes), dest, result.Duration.Round(1000000))
	if opts.fingerprint {
		info("Manifest: %s", publish.ManifestName)
	}
	return nil
}
