// Package resource provides resource handles and the loaders that produce
// their roots.
//
// A Handle is an opaque reference to a single file-like asset. It knows its
// logical path (a slash-separated, root-relative name such as
// "pkga/sub/static/x.css") and can check whether it exists or read its
// content. Handles never expose filesystem paths; relative-path arithmetic is
// done on logical paths only.
//
// # Loaders
//
// A Loader maps a module or package name to a resource root (an fs.FS). The
// package ships three loaders:
//
//   - Registry: in-memory, typically filled with embed.FS values
//   - DirLoader: a directory tree where module "a/b" lives in Base/a/b
//   - S3Loader: the same layout stored below a key prefix in an S3 bucket
//
// Loaders can be combined with Chain:
//
//	reg := resource.NewRegistry()
//	reg.Register("example.com/site/widgets", widgets.Static)
//
//	loader := resource.Chain{reg, resource.NewDirLoader("vendor/assets")}
//	root, err := loader.Root("example.com/site/widgets")
package resource
