package server

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/vango-dev/assetref/pkg/vdom"
)

// PageFunc builds the component tree for a request.
type PageFunc func(r *http.Request) *vdom.VNode

// Page mounts a page on pattern. component identifies the module the
// tree's relative asset references belong to.
func (s *Server) Page(pattern string, component any, build PageFunc) {
	s.router.Get(pattern, s.pageHandler(component, build))
}

func (s *Server) pageHandler(component any, build PageFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		target := pageTarget(r.URL.Path)

		tree, err := s.pipeline.Process(r.Context(), build(r), component, target)
		if err != nil {
			s.logger.Error("page render failed", "path", r.URL.Path, "error", err, "duration", time.Since(start))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := s.html.RenderDocument(&buf, tree); err != nil {
			s.logger.Error("page serialization failed", "path", r.URL.Path, "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
	}
}

// pageTarget converts a request path to the logical path of the output
// document. "/" and "/docs/" are directories; browsers resolve relative
// URLs against them the same way.
func pageTarget(urlPath string) string {
	return strings.TrimPrefix(urlPath, "/")
}
