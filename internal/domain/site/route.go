package site

import (
	"sort"
)

type RouteKind string

const (
	RoutePost     RouteKind = "post"
	RouteTag      RouteKind = "tag"
	RouteCategory RouteKind = "category"
)

var routePrefix = map[RouteKind]string{
	RoutePost:     "/posts/",
	RouteTag:      "/tags/",
	RouteCategory: "/categories/",
}

type Route struct {
	Kind RouteKind
	Slug string
}

// Path is the addressable URL path of the route, e.g. /posts/hello-world.
func (r Route) Path() string {
	return routePrefix[r.Kind] + r.Slug
}

func (r Route) String() string {
	return r.Path()
}

// Paths renders routes to paths, sorted and without duplicates.
func Paths(routes []Route) []string {
	seen := make(map[string]struct{}, len(routes))
	out := make([]string, 0, len(routes))
	for _, r := range routes {
		p := r.Path()
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
