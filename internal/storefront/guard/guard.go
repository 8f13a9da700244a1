// Package guard decides what the client shows for a navigation target given
// the signed-in role.
package guard

import (
	"strings"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/auth"
)

type Outcome int

const (
	Allow Outcome = iota
	Loading
	Redirect
	Denied
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case Loading:
		return "loading"
	case Redirect:
		return "redirect"
	case Denied:
		return "denied"
	case NotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

const (
	LoginPath        = "/login"
	HomePath         = "/"
	DeniedMessage    = "You don't have permission to access this page."
	NotFoundMessage  = "Page not found."
	routeParamPrefix = ":"
)

// Decision is what to render. Target is set for redirects; Links lists the
// navigation offered with a denial.
type Decision struct {
	Outcome Outcome
	Route   *Route
	Target  string
	Message string
	Links   []string
	Params  map[string]string
}

type Route struct {
	Pattern string
	Name    string
	Allowed []auth.Role
}

func (r Route) allows(role auth.Role) bool {
	for _, allowed := range r.Allowed {
		if allowed == role {
			return true
		}
	}
	return false
}

// match compares path segments; ":name" segments capture one segment.
func (r Route) match(path string) (map[string]string, bool) {
	want := splitPath(r.Pattern)
	got := splitPath(path)
	if len(want) != len(got) {
		return nil, false
	}

	var params map[string]string
	for i, segment := range want {
		if name, ok := strings.CutPrefix(segment, routeParamPrefix); ok {
			if got[i] == "" {
				return nil, false
			}
			if params == nil {
				params = map[string]string{}
			}
			params[name] = got[i]
			continue
		}
		if segment != got[i] {
			return nil, false
		}
	}

	return params, true
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

type Guard struct {
	routes []Route
}

func New(routes []Route) *Guard {
	return &Guard{routes: routes}
}

var (
	anyone     = []auth.Role{auth.RoleGuest, auth.RoleUser, auth.RoleAdmin}
	signedIn   = []auth.Role{auth.RoleUser, auth.RoleAdmin}
	adminsOnly = []auth.Role{auth.RoleAdmin}
)

// DefaultRoutes is the storefront's navigation table.
func DefaultRoutes() []Route {
	return []Route{
		{Pattern: "/", Name: "Home", Allowed: anyone},
		{Pattern: "/products", Name: "Products", Allowed: anyone},
		{Pattern: "/product/:id", Name: "Product", Allowed: anyone},
		{Pattern: "/cart", Name: "Cart", Allowed: anyone},
		{Pattern: "/checkout", Name: "Checkout", Allowed: anyone},
		{Pattern: "/login", Name: "Login", Allowed: anyone},
		{Pattern: "/register", Name: "Register", Allowed: anyone},
		{Pattern: "/contact", Name: "Contact", Allowed: anyone},
		{Pattern: "/about", Name: "About", Allowed: anyone},
		{Pattern: "/profile", Name: "Profile", Allowed: signedIn},
		{Pattern: "/order-history", Name: "Order history", Allowed: signedIn},
		{Pattern: "/admin", Name: "Dashboard", Allowed: adminsOnly},
		{Pattern: "/admin/products", Name: "Manage products", Allowed: adminsOnly},
		{Pattern: "/admin/orders", Name: "Manage orders", Allowed: adminsOnly},
		{Pattern: "/admin/users", Name: "Manage users", Allowed: adminsOnly},
		{Pattern: "/admin/reviews", Name: "Manage reviews", Allowed: adminsOnly},
	}
}

func (g *Guard) Routes() []Route {
	return g.routes
}

// Resolve never redirects or denies while loading is true.
func (g *Guard) Resolve(path string, role auth.Role, loading bool) Decision {
	route, params := g.lookup(path)
	if route == nil {
		return Decision{Outcome: NotFound, Message: NotFoundMessage, Links: []string{HomePath}}
	}

	if loading {
		return Decision{Outcome: Loading, Route: route, Params: params}
	}

	if route.allows(role) {
		return Decision{Outcome: Allow, Route: route, Params: params}
	}

	if role == auth.RoleGuest {
		return Decision{Outcome: Redirect, Route: route, Target: LoginPath}
	}

	return Decision{Outcome: Denied, Route: route, Message: DeniedMessage, Links: []string{HomePath}}
}

func (g *Guard) lookup(path string) (*Route, map[string]string) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}

	for i := range g.routes {
		if params, ok := g.routes[i].match(path); ok {
			return &g.routes[i], params
		}
	}
	return nil, nil
}
