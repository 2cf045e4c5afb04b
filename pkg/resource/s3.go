package resource

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of the S3 client used by S3Loader.
// *s3.Client satisfies it.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Loader loads module roots from an S3 bucket. Module "a/b" lives below
// the key prefix Prefix + "a/b/". A module exists when at least one object
// is stored below it.
//
// Example usage:
//
//	client := s3.NewFromConfig(cfg)
//	loader := resource.NewS3Loader(client, "my-assets", "modules/")
type S3Loader struct {
	client S3API
	bucket string
	prefix string
	ctx    context.Context
}

// NewS3Loader creates a loader for bucket. prefix may be empty.
func NewS3Loader(client S3API, bucket, prefix string) *S3Loader {
	return &S3Loader{
		client: client,
		bucket: bucket,
		prefix: normalizePrefix(prefix),
		ctx:    context.Background(),
	}
}

// WithContext sets the context used for all S3 calls made by the loader
// and the roots it returns.
func (l *S3Loader) WithContext(ctx context.Context) *S3Loader {
	l.ctx = ctx
	return l
}

// Root implements Loader.
func (l *S3Loader) Root(name string) (fs.FS, error) {
	if !validModuleName(name) {
		return nil, notFound(name)
	}
	keyPrefix := l.prefix + name + "/"
	out, err := l.client.ListObjectsV2(l.ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(l.bucket),
		Prefix:  aws.String(keyPrefix),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Contents) == 0 {
		return nil, notFound(name)
	}
	return &S3FS{
		client: l.client,
		bucket: l.bucket,
		prefix: keyPrefix,
		ctx:    l.ctx,
	}, nil
}

// S3FS is a read-only fs.FS over the objects below a key prefix.
// Directories are not listable.
type S3FS struct {
	client S3API
	bucket string
	prefix string
	ctx    context.Context
}

// Open implements fs.FS.
func (f *S3FS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) || name == "." {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	out, err := f.client.GetObject(f.ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.prefix + name),
	})
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: mapS3Error(err)}
	}
	return &s3File{
		body: out.Body,
		info: s3FileInfo{
			name:    path.Base(name),
			size:    aws.ToInt64(out.ContentLength),
			modTime: aws.ToTime(out.LastModified),
		},
	}, nil
}

// Stat implements fs.StatFS with a HEAD request.
func (f *S3FS) Stat(name string) (fs.FileInfo, error) {
	if !fs.ValidPath(name) || name == "." {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}
	out, err := f.client.HeadObject(f.ctx, &s3.HeadObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.prefix + name),
	})
	if err != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: mapS3Error(err)}
	}
	return s3FileInfo{
		name:    path.Base(name),
		size:    aws.ToInt64(out.ContentLength),
		modTime: aws.ToTime(out.LastModified),
	}, nil
}

// mapS3Error converts S3 "missing object" errors into fs.ErrNotExist.
func mapS3Error(err error) error {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return fs.ErrNotExist
	}
	return err
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

type s3File struct {
	body io.ReadCloser
	info s3FileInfo
}

func (f *s3File) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *s3File) Read(p []byte) (int, error) { return f.body.Read(p) }
func (f *s3File) Close() error               { return f.body.Close() }

type s3FileInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func (i s3FileInfo) Name() string       { return i.name }
func (i s3FileInfo) Size() int64        { return i.size }
func (i s3FileInfo) Mode() fs.FileMode  { return 0o444 }
func (i s3FileInfo) ModTime() time.Time { return i.modTime }
func (i s3FileInfo) IsDir() bool        { return false }
func (i s3FileInfo) Sys() any           { return nil }
