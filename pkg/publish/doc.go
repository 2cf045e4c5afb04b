// Package publish copies collected assets to their output location.
//
// The asset pipeline only records which resources a site references
// (assets.AssetSet). A Publisher takes that set after a build and writes
// every resource to a directory or an S3 bucket, under the same site prefix
// the pages were rendered with:
//
//	strategy := assets.NewRelativePathStrategy("assets")
//	// ... render every page with strategy ...
//	pub := publish.NewDirPublisher("dist", publish.Options{SitePrefix: "assets"})
//	result, err := pub.Publish(ctx, strategy.Collected().All())
//
// With Fingerprint set, file names carry a content hash and a manifest.json
// maps logical paths to published ones, for use with assets.URLStrategy.
package publish
