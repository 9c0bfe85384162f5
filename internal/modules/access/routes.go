package access

import (
	"path"
	"strings"
)

const (
	PathAuth       = "/auth"
	PathDashboard  = "/dashboard"
	PathOnboarding = "/onboarding"
	PathDemoLogin  = "/demo-login"
)

// Route binds a page path to its guard. Prefix routes match the path and
// everything below it.
type Route struct {
	Path     string
	Prefix   bool
	Public   bool
	Feature  Feature
	Fallback string
}

func (r Route) fallback() string {
	if r.Fallback != "" {
		return r.Fallback
	}
	return PathDashboard
}

// Routes is the page table served by the web client.
var Routes = []Route{
	{Path: "/", Public: true},
	{Path: "/about", Public: true},
	{Path: "/features", Public: true},
	{Path: "/pricing", Public: true},
	{Path: "/contact", Public: true},
	{Path: "/privacy", Public: true},
	{Path: "/terms", Public: true},
	{Path: PathAuth, Public: true},
	{Path: "/admin-login", Public: true},
	{Path: PathDemoLogin, Public: true},

	{Path: PathDashboard},
	{Path: PathOnboarding},
	{Path: "/settings"},
	{Path: "/profile"},
	{Path: "/messages", Prefix: true},
	{Path: "/helpdesk", Prefix: true},
	{Path: "/content", Prefix: true},
	{Path: "/schemes", Prefix: true},

	{Path: "/animals", Prefix: true, Feature: FeatureFarm},
	{Path: "/health", Prefix: true, Feature: FeatureFarm},
	{Path: "/vaccination", Prefix: true, Feature: FeatureFarm},
	{Path: "/breeding", Prefix: true, Feature: FeatureFarm},
	{Path: "/feeding", Prefix: true, Feature: FeatureFarm},
	{Path: "/marketplace", Prefix: true, Feature: FeatureFarm},
	{Path: "/ai-chat", Prefix: true, Feature: FeatureFarm},

	{Path: "/vet", Prefix: true, Feature: FeatureVet},
	{Path: "/coordinator", Prefix: true, Feature: FeatureCoordinator},
	{Path: "/admin", Prefix: true, Feature: FeatureAdmin},
}

// Match finds the route for p. Exact routes win over prefix routes and
// longer prefixes over shorter ones. Unknown paths need a signed-in user but
// no particular role.
func Match(p string) Route {
	p = normalize(p)

	var best *Route
	for i := range Routes {
		r := &Routes[i]
		if r.Path == p {
			return *r
		}
		if r.Prefix && strings.HasPrefix(p, r.Path+"/") {
			if best == nil || len(r.Path) > len(best.Path) {
				best = r
			}
		}
	}
	if best != nil {
		return *best
	}
	return Route{Path: p}
}

// normalize drops the query and fragment, resolves dot segments and
// trailing slashes and lower-cases the result.
func normalize(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return strings.ToLower(path.Clean("/" + p))
}
