package main

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/assetref/internal/config"
	"github.com/vango-dev/assetref/internal/errors"
	"github.com/vango-dev/assetref/pkg/assets"
	"github.com/vango-dev/assetref/pkg/resource"
)

// project bundles what the commands build from the configuration.
type project struct {
	cfg      *config.Config
	logger   *slog.Logger
	resolver *assets.Resolver
	s3       *s3.Client
}

// loadConfig reads the --config file, or searches the working directory and
// its parents. Without any configuration file the defaults are used.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	if flags.config != "" {
		return config.LoadFile(flags.config)
	}
	cfg, err := config.LoadFromWorkingDir()
	if err == nil {
		return cfg, nil
	}
	var coded *errors.CodedError
	if stderrors.As(err, &coded) && coded.Code == "C001" {
		warn("No assetref.json found, using defaults")
		return config.New(), nil
	}
	return nil, err
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func openProject(ctx context.Context, flags *globalFlags) (*project, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	p := &project{
		cfg:    cfg,
		logger: newLogger(flags.verbose),
	}

	loader := cfg.Loader()
	if cfg.S3.Enabled() {
		p.s3 = newS3Client(cfg.S3)
		if cfg.S3.Modules != "" {
			s3Loader := resource.NewS3Loader(p.s3, cfg.S3.Bucket, cfg.S3.Modules).WithContext(ctx)
			loader = resource.Chain{loader, s3Loader}
		}
	}

	p.resolver, err = assets.NewResolver(loader, p.options()...)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// options are the pipeline options described by the configuration.
func (p *project) options() []assets.Option {
	opts := []assets.Option{
		assets.WithLogger(p.logger),
		assets.WithCacheSize(p.cfg.CacheSize),
	}
	if len(p.cfg.AssetAttrs) > 0 {
		opts = append(opts, assets.WithAssetAttrs(p.cfg.AssetAttrs))
	}
	return opts
}

// newS3Client creates a client from the configuration. Credentials come from
// the standard AWS environment variables.
func newS3Client(c config.S3Config) *s3.Client {
	opts := s3.Options{
		Region:      c.Region,
		Credentials: aws.NewCredentialsCache(envCredentials()),
	}
	if opts.Region == "" {
		opts.Region = os.Getenv("AWS_REGION")
	}
	if c.Endpoint != "" {
		opts.BaseEndpoint = aws.String(c.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func envCredentials() aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		creds := aws.Credentials{
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "environment",
		}
		if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
			return aws.Credentials{}, errors.Newf(errors.CategoryConfig, "AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
		}
		return creds, nil
	})
}
