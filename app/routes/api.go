package routes

import (
	"net/http"

	"github.com/skbags/atelier/app/controllers"
	"github.com/skbags/atelier/app/repositories"
	"github.com/skbags/atelier/app/services"
	"github.com/skbags/atelier/pkg/database"
	"github.com/skbags/atelier/pkg/metrics"
	"github.com/skbags/atelier/pkg/middleware"
	"github.com/skbags/atelier/pkg/response"
	"github.com/skbags/atelier/pkg/router"
	"github.com/skbags/atelier/pkg/storage"
)

// RegisterAPI wires every HTTP endpoint onto the router.
func RegisterAPI(r *router.Router) {
	admins := repositories.NewAdminRepository(database.DB)
	products := repositories.NewProductRepository(database.DB)
	orders := repositories.NewOrderRepository(database.DB)

	authService := services.NewAuthService(admins)
	catalogService := services.NewCatalogService(products)
	orderService := services.NewOrderService(orders, products)
	dashboardService := services.NewDashboardService(products, orders)
	uploadService := services.NewUploadService()

	auth := controllers.NewAuthController(authService)
	product := controllers.NewProductController(catalogService)
	order := controllers.NewOrderController(orderService)
	dashboard := controllers.NewDashboardController(dashboardService)
	upload := controllers.NewUploadController(uploadService)

	requireAdmin := router.Middleware(middleware.Auth(authService))

	// Public storefront.
	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	r.Get("/products", "products.index", product.Index)
	r.Get("/products/{id}", "products.show", product.Show)
	r.Get("/categories", "products.categories", product.Categories)
	r.Get("/search", "products.search", product.Search)
	r.Post("/orders", "orders.store", order.Store)

	// Auth. /auth/login is kept as an alias for older storefront builds.
	r.Post("/admin/login", "auth.login", auth.Login)
	r.Post("/auth/login", "auth.login.alias", auth.Login)
	r.Get("/admin/me", "auth.me", auth.Me, requireAdmin)

	// Admin back office.
	admin := r.Group("/admin", requireAdmin)
	admin.Post("/products", "admin.products.store", product.Store)
	admin.Put("/products/{id}", "admin.products.update", product.Update)
	admin.Delete("/products/{id}", "admin.products.destroy", product.Destroy)
	admin.Get("/orders", "admin.orders.index", order.Index)
	admin.Get("/orders/{id}", "admin.orders.show", order.Show)
	admin.Put("/orders/{id}/status", "admin.orders.status", order.UpdateStatus)
	admin.Get("/dashboard/stats", "admin.dashboard.stats", dashboard.Stats)
	admin.Get("/ws/orders", "admin.ws.orders", dashboard.OrderFeed)
	admin.Post("/upload", "admin.upload", upload.Store)
	// Older admin builds post here without the /admin prefix.
	r.Post("/upload-simple", "upload.simple", upload.Store, requireAdmin)

	// GET /orders is an admin alias predating the /admin prefix.
	r.Get("/orders", "orders.index.alias", order.Index, requireAdmin)

	// Ops.
	r.Get("/metrics", "metrics", metrics.Handler())

	// Locally stored uploads are served straight from disk.
	fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(storage.LocalRoot())))
	r.Mount("/uploads", fs)
}
