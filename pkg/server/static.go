package server

import (
	"bytes"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/vango-dev/assetref/pkg/assets"
)

// serveAsset serves a collected asset. Relative rendering anchors the site
// prefix at the common ancestor of page and asset, so the prefix may appear
// at any depth of the request path: "docs/assets/site/x.css" is the asset
// "docs/site/x.css" under prefix "assets".
func (s *Server) serveAsset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	ref, ok := s.lookupAsset(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	data, err := ref.Source.ReadBytes()
	if err != nil {
		s.logger.Error("asset read failed", "asset", ref.ModulePath, "error", err)
		http.Error(w, "asset unavailable", http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, r, path.Base(ref.ModulePath), time.Time{}, bytes.NewReader(data))
}

// lookupAsset maps a request path to a collected asset.
func (s *Server) lookupAsset(urlPath string) (assets.AssetReference, bool) {
	segs := splitPath(urlPath)
	if len(segs) == 0 {
		return assets.AssetReference{}, false
	}

	if len(s.prefix) == 0 {
		return s.collected.Get(strings.Join(segs, "/"))
	}

	for i := 0; i+len(s.prefix) < len(segs); i++ {
		if !hasPrefixAt(segs, s.prefix, i) {
			continue
		}
		logical := make([]string, 0, len(segs)-len(s.prefix))
		logical = append(logical, segs[:i]...)
		logical = append(logical, segs[i+len(s.prefix):]...)
		if ref, ok := s.collected.Get(strings.Join(logical, "/")); ok {
			return ref, true
		}
	}
	return assets.AssetReference{}, false
}

func hasPrefixAt(segs, prefix []string, i int) bool {
	for j, p := range prefix {
		if segs[i+j] != p {
			return false
		}
	}
	return true
}
