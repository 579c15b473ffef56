package routes

import (
	"net/http"
	"path/filepath"

	"reidossalgados/auth"
	"reidossalgados/categories"
	"reidossalgados/menu"
	"reidossalgados/middleware"
	"reidossalgados/notify"
	"reidossalgados/orders"
	"reidossalgados/ratelim"
	"reidossalgados/settings"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router, staticDir string) {
	router.ServeFiles("/static/menupic/*filepath", http.Dir(filepath.Join(staticDir, "menupic")))
}

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/login", rl.Limit(h.Login))
	router.POST("/api/auth/logout", h.Logout)
	router.POST("/api/auth/refresh", rl.Limit(h.Refresh))
	router.GET("/api/auth/session", h.Session)
}

func AddMenuRoutes(router *httprouter.Router, h *menu.Handler, am *middleware.Auth) {
	router.GET("/api/menu", h.List)
	router.GET("/api/menu/:menuid", h.Get)
	router.POST("/api/menu", am.Authenticate(h.Create))
	router.PUT("/api/menu/:menuid", am.Authenticate(h.Update))
	router.PATCH("/api/menu/:menuid/availability", am.Authenticate(h.SetAvailability))
	router.POST("/api/menu/:menuid/photo", am.Authenticate(h.UploadPhoto))
	router.DELETE("/api/menu/:menuid", am.Authenticate(h.Delete))
}

func AddCategoryRoutes(router *httprouter.Router, h *categories.Handler, am *middleware.Auth) {
	router.GET("/api/categories", h.List)
	router.POST("/api/categories", am.Authenticate(h.Create))
	router.PATCH("/api/categories/reorder", am.Authenticate(h.Reorder))
	router.PUT("/api/categories/:categoryid", am.Authenticate(h.Update))
	router.DELETE("/api/categories/:categoryid", am.Authenticate(h.Delete))
}

func AddSettingsRoutes(router *httprouter.Router, h *settings.Handler, am *middleware.Auth) {
	router.GET("/api/settings", h.Get)
	router.GET("/api/settings/status", h.Status)
	router.PUT("/api/settings", am.Authenticate(h.Update))
}

func AddOrderRoutes(router *httprouter.Router, h *orders.Handler, am *middleware.Auth, rl *ratelim.RateLimiter) {
	router.POST("/api/orders", rl.Limit(h.Create))
	router.GET("/api/orders/track/:orderid", h.Track)
	router.GET("/api/orders/track/:orderid/whatsapp", h.WhatsAppLink)
	router.GET("/api/orders/track/:orderid/qr", h.QR)

	router.GET("/api/admin/orders", am.Authenticate(h.List))
	router.PATCH("/api/admin/orders/:orderid/status", am.Authenticate(h.UpdateStatus))
	router.GET("/api/admin/orders/:orderid/receipt", am.Authenticate(h.Receipt))
}

func AddNotifyRoutes(router *httprouter.Router, hub *notify.Hub, am *middleware.Auth) {
	router.GET("/api/ws/orders", notify.ServeOrders(hub, am))
}
