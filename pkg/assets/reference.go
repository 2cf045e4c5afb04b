package assets

import "strings"

// externalPrefixes are reference prefixes that are never resolved.
// Matching is case-insensitive.
var externalPrefixes = []string{
	"http://",
	"https://",
	"//",
	"mailto:",
	"tel:",
	"data:",
	"javascript:",
}

// IsLocalReference reports whether an attribute value should be resolved
// as an asset. Empty values, external or non-fetchable URLs and anchor-only
// references are not local.
func IsLocalReference(ref string) bool {
	if ref == "" || ref[0] == '#' {
		return false
	}
	lower := strings.ToLower(ref)
	for _, prefix := range externalPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}
	// Any other URL scheme ("ftp://", "s3://") is external as well.
	return !strings.Contains(ref, "://")
}

// SplitSuffix separates a reference into its path and the query or
// fragment that follows it: "icons.svg#home" → ("icons.svg", "#home").
func SplitSuffix(ref string) (string, string) {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		return ref[:i], ref[i:]
	}
	return ref, ""
}

// isPackagePath reports whether ref names a package resource and splits it.
func isPackagePath(ref string) (pkg, rel string, ok bool) {
	i := strings.IndexByte(ref, ':')
	if i < 0 {
		return "", "", false
	}
	return ref[:i], ref[i+1:], true
}
