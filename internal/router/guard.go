package router

// AuthState is the session predicate the guard consults
type AuthState interface {
	IsAuthenticated() bool
}

// Decision is the outcome of a navigation check. When Allow is false,
// RedirectTo names the route to go to instead; Redirect preserves the
// originally requested path for post-login restoration.
type Decision struct {
	Allow      bool
	RedirectTo string
	Redirect   string
}

// Guard gates navigation on route metadata and session state
type Guard struct {
	auth AuthState
}

// NewGuard creates a navigation guard over the given session state
func NewGuard(auth AuthState) *Guard {
	return &Guard{auth: auth}
}

// Check decides whether navigation to the target path may proceed.
// Protected route without a session redirects to login, carrying the
// target for restoration. Login or register with a session redirects to
// the default landing view. Everything else proceeds unmodified.
func (g *Guard) Check(target string) Decision {
	route := Find(target)
	authenticated := g.auth != nil && g.auth.IsAuthenticated()

	if route.RequiresAuth && !authenticated {
		return Decision{RedirectTo: PathLogin, Redirect: route.Path}
	}

	if (route.Path == PathLogin || route.Path == PathRegister) && authenticated {
		return Decision{RedirectTo: DefaultPath}
	}

	return Decision{Allow: true}
}
