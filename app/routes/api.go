// Package routes wires the controllers onto the router. The split between
// the public group and the authenticated group mirrors what the storefront
// needs without a session versus what only a signed-in admin may touch.
package routes

import (
	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/controllers"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/metrics"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/middleware"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/router"
)

// API bundles everything RegisterAPI mounts.
type API struct {
	Auth     *controllers.AuthController
	Admins   *controllers.AdminController
	Products *controllers.ProductController
	Orders   *controllers.OrderController
	Users    *controllers.UserController
	Stats    *controllers.StatsController
	Live     *controllers.LiveController
}

// RegisterAPI mounts all routes.
func RegisterAPI(r *router.Router, api *API) {
	r.Get("/metrics", "metrics", metrics.Handler())

	// Public: the storefront reads the catalog, places orders, and tracks
	// them by number without an admin session.
	pub := r.Group("/api")
	pub.Post("/auth/login", "auth.login", api.Auth.Login)
	pub.Post("/auth/logout", "auth.logout", api.Auth.Logout)

	pub.Get("/products", "products.list", api.Products.List)
	pub.Get("/products/{productId}", "products.get", api.Products.Get)

	pub.Get("/orders", "orders.list", api.Orders.List)
	pub.Post("/orders/order-inquiry", "orders.inquiry", api.Orders.Inquiry)

	pub.Get("/stats", "stats.get", api.Stats.Get)

	// Authenticated: everything that mutates state or exposes customer data.
	priv := r.Group("/api", middleware.RequireAuth)

	priv.Post("/products", "products.create", api.Products.Create)
	priv.Patch("/products/{productId}", "products.update", api.Products.Update)
	priv.Delete("/products/{productId}", "products.delete", api.Products.Delete)

	priv.Post("/orders", "orders.create", api.Orders.Create)
	priv.Get("/orders/{orderId}", "orders.get", api.Orders.Get)
	priv.Patch("/orders/{orderId}/update-status", "orders.update_status", api.Orders.UpdateStatus)
	priv.Delete("/orders/{orderId}", "orders.delete", api.Orders.Delete)

	priv.Get("/users", "users.list", api.Users.List)
	priv.Get("/users/{userId}", "users.get", api.Users.Get)

	priv.Get("/admins", "admins.list", api.Admins.List)
	priv.Post("/admins", "admins.create", api.Admins.Create)
	priv.Delete("/admins/{adminId}", "admins.delete", api.Admins.Delete)
	priv.Patch("/admins/{adminId}/admin-settings", "admins.settings",
		api.Admins.UpdateSettings, middleware.RequireSelf("adminId"))

	priv.Get("/live", "live.connect", api.Live.Connect)
}
