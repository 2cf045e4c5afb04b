package publish

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/assetref/pkg/assets"
)

// S3PutAPI is the subset of *s3.Client used by S3Publisher.
type S3PutAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher uploads assets to an S3 bucket.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	pub := publish.NewS3Publisher(s3.NewFromConfig(cfg), "my-site", "www/", publish.Options{
//	    SitePrefix:  "assets",
//	    Fingerprint: true,
//	})
type S3Publisher struct {
	client S3PutAPI
	bucket string
	prefix string
	opts   Options
}

// NewS3Publisher creates a publisher uploading below prefix in bucket.
func NewS3Publisher(client S3PutAPI, bucket, prefix string, opts Options) *S3Publisher {
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &S3Publisher{
		client: client,
		bucket: bucket,
		prefix: prefix,
		opts:   opts.withDefaults(),
	}
}

// Publish implements Publisher.
func (p *S3Publisher) Publish(ctx context.Context, refs []assets.AssetReference) (*Result, error) {
	return publish(ctx, "s3", refs, p.opts, p.putObject)
}

func (p *S3Publisher) putObject(ctx context.Context, name string, data []byte) error {
	key := p.prefix + name

	input := &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType(name)),
	}
	if p.opts.Fingerprint && name != ManifestName {
		input.CacheControl = aws.String("public, max-age=31536000, immutable")
	}

	if _, err := p.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3 upload %s: %w", key, err)
	}
	return nil
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
