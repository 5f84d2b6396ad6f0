package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		registrars: make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine under the versioned prefix
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// ResourceGroup collects routes for one resource under a common prefix
type ResourceGroup struct {
	prefix     string
	routes     []routeDefinition
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewResourceGroup creates a route group for a resource
func NewResourceGroup(prefix string) *ResourceGroup {
	return &ResourceGroup{
		prefix: prefix,
		routes: make([]routeDefinition, 0),
	}
}

// Use adds middleware to this group
func (rg *ResourceGroup) Use(middleware ...gin.HandlerFunc) *ResourceGroup {
	rg.middleware = append(rg.middleware, middleware...)
	return rg
}

// GET registers a GET route
func (rg *ResourceGroup) GET(path string, handlers ...gin.HandlerFunc) *ResourceGroup {
	return rg.handle("GET", path, handlers)
}

// POST registers a POST route
func (rg *ResourceGroup) POST(path string, handlers ...gin.HandlerFunc) *ResourceGroup {
	return rg.handle("POST", path, handlers)
}

// PUT registers a PUT route
func (rg *ResourceGroup) PUT(path string, handlers ...gin.HandlerFunc) *ResourceGroup {
	return rg.handle("PUT", path, handlers)
}

// DELETE registers a DELETE route
func (rg *ResourceGroup) DELETE(path string, handlers ...gin.HandlerFunc) *ResourceGroup {
	return rg.handle("DELETE", path, handlers)
}

func (rg *ResourceGroup) handle(method, path string, handlers []gin.HandlerFunc) *ResourceGroup {
	rg.routes = append(rg.routes, routeDefinition{
		method:   method,
		path:     path,
		handlers: handlers,
	})
	return rg
}

// RegisterRoutes implements RouteRegistrar
func (rg *ResourceGroup) RegisterRoutes(parent *gin.RouterGroup) {
	group := parent.Group(rg.prefix)

	if len(rg.middleware) > 0 {
		group.Use(rg.middleware...)
	}

	for _, route := range rg.routes {
		switch route.method {
		case "GET":
			group.GET(route.path, route.handlers...)
		case "POST":
			group.POST(route.path, route.handlers...)
		case "PUT":
			group.PUT(route.path, route.handlers...)
		case "DELETE":
			group.DELETE(route.path, route.handlers...)
		}
	}
}

// Prefix returns the group prefix
func (rg *ResourceGroup) Prefix() string {
	return rg.prefix
}
