// Package routes declares HTTP endpoints as nested, prefixed groups.
package routes

import "net/http"

// Route binds an HTTP method and pattern, relative to its group, to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group organizes routes under a common prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		g.register(mux, "")
	}
}

// Patterns returns every "METHOD /path" pattern the group would register.
func (g Group) Patterns() []string {
	var out []string
	g.walk("", func(pattern string, _ http.HandlerFunc) {
		out = append(out, pattern)
	})
	return out
}

func (g Group) register(mux *http.ServeMux, parent string) {
	g.walk(parent, func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, h)
	})
}

func (g Group) walk(parent string, visit func(string, http.HandlerFunc)) {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		visit(r.Method+" "+prefix+r.Pattern, r.Handler)
	}
	for _, child := range g.Children {
		child.walk(prefix, visit)
	}
}
