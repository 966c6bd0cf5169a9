package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed *.html
var fsys embed.FS

// Templates parses the named embedded files into one template set.
func Templates(names ...string) (*template.Template, error) {
	return template.ParseFS(fsys, names...)
}

func MustTemplates(names ...string) *template.Template {
	return template.Must(Templates(names...))
}

// IndexHandler serves the storefront page for "/" and 404s everything else,
// so template partials are never exposed raw.
func IndexHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && r.URL.Path != "/index.html" {
			http.NotFound(w, r)
			return
		}
		b, err := fs.ReadFile(fsys, "index.html")
		if err != nil {
			http.Error(w, "page unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(b)
	})
}
