package web

// Route names.
const (
	HomeRoute  = "Home"
	AboutRoute = "About"
)

type Route struct {
	Name  string
	Path  string
	Title string
}

// Routes lists the pages served by the application. Title is used as the document title.
func Routes() []Route {
	return []Route{
		{Name: HomeRoute, Path: "/", Title: "Calendar Events"},
		{Name: AboutRoute, Path: "/about", Title: "About the creator"},
	}
}

// RouteByName returns the route with the given name.
func RouteByName(name string) (Route, bool) {
	for _, route := range Routes() {
		if route.Name == name {
			return route, true
		}
	}
	return Route{}, false
}

// pattern builds a ServeMux pattern that matches path exactly.
func pattern(method, path string) string {
	if path == "/" {
		path = "/{$}"
	}
	return method + " " + path
}
