package httpapi

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/riskibarqy/creator-hub/internal/domain/session"
)

const (
	pathHome       = "/"
	pathSignIn     = "/auth/creator"
	pathOnboarding = "/onboarding"
	pathDashboard  = "/dashboard"
)

type routeAccess int

const (
	accessPublic routeAccess = iota
	// accessSignedIn needs a session but not a finished profile.
	accessSignedIn
	// accessCreator needs a session and a complete profile.
	accessCreator
)

// clientRoute is a page the web client can navigate to.
type clientRoute struct {
	Name        string
	Pattern     string
	Access      routeAccess
	Placeholder bool
}

var clientRoutes = []clientRoute{
	{Name: "home", Pattern: "/{$}", Access: accessPublic},
	{Name: "creator_sign_in", Pattern: pathSignIn, Access: accessPublic},
	{Name: "onboarding", Pattern: pathOnboarding, Access: accessSignedIn},
	{Name: "dashboard", Pattern: pathDashboard, Access: accessCreator},
	{Name: "campaigns", Pattern: "/dashboard/campaigns", Access: accessCreator},
	{Name: "campaign_detail", Pattern: "/dashboard/campaigns/{campaignID}", Access: accessCreator},
	{Name: "campaign_apply", Pattern: "/dashboard/campaigns/{campaignID}/apply", Access: accessSignedIn},
	{Name: "deliverables", Pattern: "/dashboard/deliverables", Access: accessCreator, Placeholder: true},
	{Name: "messages", Pattern: "/dashboard/messages", Access: accessCreator, Placeholder: true},
	{Name: "settings", Pattern: "/dashboard/settings", Access: accessCreator, Placeholder: true},
}

// RouteResolution is the outcome of matching a client path.
type RouteResolution struct {
	Path        string
	Name        string
	Params      map[string]string
	Placeholder bool
	Redirect    string
}

// RouteResolver matches client paths with the same pattern syntax as the
// API mux.
type RouteResolver struct {
	mux    *http.ServeMux
	byName map[string]clientRoute
}

func NewRouteResolver() *RouteResolver {
	resolver := &RouteResolver{
		mux:    http.NewServeMux(),
		byName: make(map[string]clientRoute, len(clientRoutes)),
	}
	for _, route := range clientRoutes {
		resolver.mux.Handle("GET "+route.Pattern, http.NotFoundHandler())
		resolver.byName["GET "+route.Pattern] = route
	}
	return resolver
}

// Resolve matches path and applies the session guard. Unknown paths redirect
// home; guarded pages redirect to sign-in or onboarding.
func (r *RouteResolver) Resolve(path string, state session.State) RouteResolution {
	path = strings.TrimSpace(path)
	if path == "" {
		path = pathHome
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	out := RouteResolution{Path: path}

	parsed, err := url.Parse(path)
	if err != nil {
		out.Redirect = pathHome
		return out
	}
	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: parsed.Path}, Host: "client"}
	_, pattern := r.mux.Handler(req)
	route, ok := r.byName[pattern]
	if !ok {
		out.Redirect = pathHome
		return out
	}

	out.Name = route.Name
	out.Placeholder = route.Placeholder
	out.Params = routeParams(route.Pattern, parsed.Path)
	out.Redirect = guardRedirect(route, state)
	return out
}

func guardRedirect(route clientRoute, state session.State) string {
	switch route.Access {
	case accessSignedIn:
		if !state.IsAuthenticated() {
			return pathSignIn
		}
	case accessCreator:
		if !state.IsAuthenticated() {
			return pathSignIn
		}
		if !state.ProfileComplete {
			return pathOnboarding
		}
	}
	return ""
}

func routeParams(pattern, path string) map[string]string {
	params := map[string]string{}
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")
	if len(patternParts) != len(pathParts) {
		return params
	}
	for i, part := range patternParts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") && part != "{$}" {
			params[strings.Trim(part, "{}")] = pathParts[i]
		}
	}
	return params
}

// redirectHome answers unmatched non-API requests.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, pathHome, http.StatusFound)
}
