package assets

import (
	"fmt"
	"path"
	"strings"
)

// RelativePath returns the shortest relative path from the document at
// target to the asset at source, both logical paths.
//
// The target's directory is its parent, except when target is empty or
// ends in "/": a directory and its index document are the same location,
// so "docs/" and "docs/index.html" give the same result. A leading "/" on
// target is ignored.
//
// When sitePrefix is set its segments are inserted after the "../" hops,
// at the common-ancestor boundary:
//
//	RelativePath("a/b/static/x.css", "a/c/page.html", "")       // "../b/static/x.css"
//	RelativePath("a/b/static/x.css", "a/c/page.html", "assets") // "../assets/b/static/x.css"
//	RelativePath("a/b/x.css", "a/b/page.html", "")              // "x.css"
func RelativePath(source, target, sitePrefix string) (string, error) {
	if err := checkLogical(source); err != nil {
		return "", err
	}

	srcDir, file := path.Split(source)
	srcSegs := segments(srcDir)
	tgtSegs := targetDir(target)

	common := 0
	for common < len(srcSegs) && common < len(tgtSegs) && srcSegs[common] == tgtSegs[common] {
		common++
	}

	hops := len(tgtSegs) - common
	parts := make([]string, 0, hops+len(srcSegs)-common+2)
	for i := 0; i < hops; i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, segments(sitePrefix)...)
	parts = append(parts, srcSegs[common:]...)
	parts = append(parts, file)

	return strings.Join(parts, "/"), nil
}

// checkLogical rejects paths that cannot be rendered: empty, absolute,
// directory-like, or containing dot segments.
func checkLogical(p string) error {
	switch {
	case p == "":
		return fmt.Errorf("empty logical path")
	case strings.HasPrefix(p, "/"):
		return fmt.Errorf("logical path %q is absolute", p)
	case strings.HasSuffix(p, "/"):
		return fmt.Errorf("logical path %q names a directory", p)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("logical path %q is not clean", p)
		}
	}
	return nil
}

// targetDir returns the directory segments of an output target.
func targetDir(target string) []string {
	target = strings.TrimLeft(target, "/")
	if target == "" {
		return nil
	}
	isDir := strings.HasSuffix(target, "/")
	clean := path.Clean("/" + target)[1:]
	if isDir {
		return segments(clean)
	}
	return segments(path.Dir(clean))
}

// segments splits a slash-separated path, dropping empty and "." parts.
func segments(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" && seg != "." {
			out = append(out, seg)
		}
	}
	return out
}
