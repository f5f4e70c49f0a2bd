package router

// Well-known paths
const (
	PathRoot     = "/"
	PathLogin    = "/login"
	PathRegister = "/register"
	PathChat     = "/chat"
	PathHistory  = "/history"
	PathTraining = "/training"
	PathSettings = "/settings"
	PathNotFound = "/404"
)

// DefaultPath is the authenticated landing view
const DefaultPath = PathChat

// Route maps a path to a view with its navigation metadata
type Route struct {
	Path         string
	Name         string
	Title        string
	RequiresAuth bool
}

// routes is the navigation table, mirroring the client's views
var routes = []Route{
	{Path: PathLogin, Name: "Login", Title: "Login", RequiresAuth: false},
	{Path: PathRegister, Name: "Register", Title: "Register", RequiresAuth: false},
	{Path: PathChat, Name: "Chat", Title: "Chat", RequiresAuth: true},
	{Path: PathHistory, Name: "History", Title: "Query History", RequiresAuth: true},
	{Path: PathTraining, Name: "Training", Title: "Training Data", RequiresAuth: true},
	{Path: PathSettings, Name: "Settings", Title: "Settings", RequiresAuth: true},
	{Path: PathNotFound, Name: "NotFound", Title: "404 Not Found", RequiresAuth: false},
}

// Routes returns the full navigation table
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Find resolves a path to its route. The root path redirects to the
// default landing view; unknown paths resolve to the not-found route.
func Find(path string) Route {
	if path == PathRoot || path == "" {
		path = DefaultPath
	}
	for _, route := range routes {
		if route.Path == path {
			return route
		}
	}
	notFound := routes[len(routes)-1]
	return notFound
}

// Title returns the window title for a path
func Title(path string) string {
	route := Find(path)
	if route.Title == "" {
		return "SQL Pilot"
	}
	return route.Title + " - SQL Pilot"
}
