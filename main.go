package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reidossalgados/auth"
	"reidossalgados/categories"
	"reidossalgados/config"
	"reidossalgados/db"
	"reidossalgados/menu"
	"reidossalgados/middleware"
	"reidossalgados/notify"
	"reidossalgados/orders"
	"reidossalgados/ratelim"
	"reidossalgados/rdx"
	"reidossalgados/routes"
	"reidossalgados/settings"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s - %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(cfg *config.Config, store *db.Store, cache *rdx.Cache, hub *notify.Hub, rateLimiter *ratelim.RateLimiter) *httprouter.Router {
	authMW := middleware.New(cfg.JWTSecret)

	settingsHandler := settings.NewHandler(store, cache, cfg.Timezone)
	menuHandler := menu.NewHandler(store, cache, cfg.StaticDir)
	categoryHandler := categories.NewHandler(store, cache)
	orderHandler := orders.NewHandler(store, hub, settingsHandler)
	authHandler := auth.NewHandler(store, authMW)

	router := httprouter.New()
	router.GET("/health", Index)

	routes.AddStaticRoutes(router, cfg.StaticDir)
	routes.AddAuthRoutes(router, authHandler, rateLimiter)
	routes.AddMenuRoutes(router, menuHandler, authMW)
	routes.AddCategoryRoutes(router, categoryHandler, authMW)
	routes.AddSettingsRoutes(router, settingsHandler, authMW)
	routes.AddOrderRoutes(router, orderHandler, authMW, rateLimiter)
	routes.AddNotifyRoutes(router, hub, authMW)

	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	store, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("mongodb: %v", err)
	}

	if err := auth.Seed(ctx, store, cfg.AdminUser, cfg.AdminPassword); err != nil {
		log.Fatalf("admin seed: %v", err)
	}

	cache := rdx.New(cfg.RedisAddr)
	rateLimiter := ratelim.NewRateLimiter()

	hub := notify.NewHub()
	go hub.Run()

	router := setupRouter(cfg, store, cache, hub, rateLimiter)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		hub.Stop()
	})

	go func() {
		log.Printf("Server listening on %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}

	if err := cache.Close(); err != nil {
		log.Println("redis close:", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Println("mongodb close:", err)
	}

	log.Println("Server stopped cleanly")
}
