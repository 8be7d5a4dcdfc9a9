package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/avelora/storefront/api-gateway/config"
	"github.com/avelora/storefront/api-gateway/health"
	"github.com/avelora/storefront/api-gateway/middleware"
	"github.com/avelora/storefront/api-gateway/proxy"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix       string
	ServiceName  string
	Description  string
	OptionalAuth bool // Forwards identity if a token is present
	RequireAuth  bool // Requires authentication
	RequireAdmin bool // Requires admin role
}

// Routes holds all route definitions. Fine-grained authorization
// (e.g. admin-only product writes) is enforced by the backend services;
// the gateway only gates prefixes that are admin-only end to end.
// The favorites merge endpoint under /internal is deliberately absent:
// it is service-to-service only and never exposed through the gateway.
var Routes = []RouteDefinition{
	{
		Prefix:       "/api/customers",
		ServiceName:  "customer",
		Description:  "Registration, login and profile management",
		OptionalAuth: true,
	},
	{
		Prefix:       "/api/products",
		ServiceName:  "catalog",
		Description:  "Product browsing and back-office management",
		OptionalAuth: true,
	},
	{
		Prefix:      "/api/taxonomy",
		ServiceName: "catalog",
		Description: "Brand and category listing",
	},
	{
		Prefix:       "/api/brands",
		ServiceName:  "catalog",
		Description:  "Brand management",
		RequireAuth:  true,
		RequireAdmin: true,
	},
	{
		Prefix:       "/api/categories",
		ServiceName:  "catalog",
		Description:  "Category management",
		RequireAuth:  true,
		RequireAdmin: true,
	},
	{
		Prefix:       "/api/favorites",
		ServiceName:  "favorites",
		Description:  "Favorites for customers and guests (X-Guest-ID)",
		OptionalAuth: true,
	},
	{
		Prefix:       "/api/posts",
		ServiceName:  "blog",
		Description:  "Blog posts (admin-only writes enforced downstream)",
		OptionalAuth: true,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, cbManager *middleware.CircuitBreakerManager) {
	reverseProxy := proxy.NewReverseProxy(cfg)
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no downstream checks)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe (for Kubernetes)
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness probe (checks downstream services)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)

		statusCode := fiber.StatusOK
		if healthStatus.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(healthStatus)
	})

	// Detailed service health checks
	app.Get("/health/services", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)
		return c.JSON(healthStatus)
	})

	// Circuit breaker stats
	app.Get("/gateway/circuit-breakers", func(c *fiber.Ctx) error {
		return c.JSON(cbManager.GetAllStats())
	})

	// Load balancer stats
	app.Get("/gateway/load-balancers", func(c *fiber.Ctx) error {
		stats := make(map[string]interface{})
		for name, lb := range reverseProxy.GetLoadBalancers() {
			stats[name] = lb.GetStats()
		}
		return c.JSON(stats)
	})

	// API routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Storefront API Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy)
	}
}

// registerServiceRoutes registers all HTTP methods for a service prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy) {
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	var middlewares []fiber.Handler
	switch {
	case route.RequireAdmin:
		middlewares = append(middlewares, middleware.AuthMiddleware(), middleware.AdminMiddleware())
	case route.RequireAuth:
		middlewares = append(middlewares, middleware.AuthMiddleware())
	case route.OptionalAuth:
		middlewares = append(middlewares, middleware.OptionalAuthMiddleware())
	}

	group := app.Group(route.Prefix, middlewares...)
	group.All("/*", handler)

	// Also handle the exact prefix path (without /*)
	if len(middlewares) > 0 {
		app.All(route.Prefix, append(middlewares, handler)...)
	} else {
		app.All(route.Prefix, handler)
	}
}
