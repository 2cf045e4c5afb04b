// Package server serves pages built from component trees, with their
// assets, over HTTP.
//
// Each page request runs the full asset pipeline with the request path as
// the output target, so relative asset paths are correct for whatever
// route the page is mounted on. Assets are served from the same collection
// the pipeline fills, so only assets some rendered page referenced are
// reachable.
//
//	pipeline, _ := assets.NewPipeline(loader, assets.NewRelativePathStrategy("assets"))
//	srv := server.New(nil, pipeline)
//	srv.Page("/", assets.Module("example.com/site"), func(r *http.Request) *vdom.VNode {
//	    return vdom.Html(vdom.Head(vdom.Link(vdom.Rel("stylesheet"), vdom.Href("static/site.css"))))
//	})
//	log.Fatal(srv.Run())
//
// The router is chi; use Router() to add API routes or middleware.
package server
