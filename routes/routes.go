package routes

import (
	"neonpet/auth"
	"neonpet/cart"
	"neonpet/cartws"
	"neonpet/catalog"
	"neonpet/middleware"
	"neonpet/qr"
	"neonpet/ratelim"
	"neonpet/receipt"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, reg *cart.Registry, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser(reg)))
	router.POST("/api/auth/token/refresh", rl.Limit(middleware.Authenticate(auth.RefreshToken)))
}

func AddCatalogRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/categories", middleware.Authenticate(catalog.GetCategories))
	router.POST("/api/categories", rl.Limit(middleware.RequireRole("admin", catalog.CreateCategory)))

	router.GET("/api/categories/:slug/products", middleware.Authenticate(catalog.GetProductsByCategory))
	router.GET("/api/products/:productid", middleware.Authenticate(catalog.GetProduct))
	router.POST("/api/products", rl.Limit(middleware.RequireRole("admin", catalog.CreateProduct)))
	router.DELETE("/api/products/:productid", rl.Limit(middleware.RequireRole("admin", catalog.DeleteProduct)))
	router.POST("/api/products/images", rl.Limit(middleware.RequireRole("admin", catalog.UploadProductImage)))
}

func AddCartRoutes(router *httprouter.Router, h *cart.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/cart", middleware.Authenticate(h.GetCart))
	router.POST("/api/cart", rl.Limit(middleware.Authenticate(h.AddToCart)))
	router.PUT("/api/cart/:productid", middleware.Authenticate(h.UpdateQuantity))
	router.DELETE("/api/cart/:productid", middleware.Authenticate(h.RemoveItem))
	router.DELETE("/api/cart", middleware.Authenticate(h.ClearCart))
}

func AddReceiptRoutes(router *httprouter.Router, h *receipt.Handler, rl *ratelim.RateLimiter) {
	router.GET("/api/receipt", rl.Limit(middleware.Authenticate(h.Download)))
}

func AddQRRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/qr/catalog", rl.Limit(qr.CatalogQR))
}

func AddCartWSRoutes(router *httprouter.Router, hub *cartws.Hub, reg *cart.Registry) {
	router.GET("/ws/cart", cartws.WebSocketHandler(hub, reg))
}
