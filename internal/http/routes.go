package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/bhaktikarche/story-tales1/internal/config"
	"github.com/bhaktikarche/story-tales1/internal/storage"
)

// SetupRoutes configures all application routes and middleware.
func SetupRoutes(router *gin.Engine, db *gorm.DB, store *storage.Store, cfg *config.Config) {

	// --- Dependencies ---
	env := &Env{DB: db, Store: store}

	// --- Middleware ---
	router.Use(SecurityHeadersMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// --- Rate Limiter Setup ---
	limiter := NewIPRateLimiter(rate.Limit(rateLimitRPS), rateLimitBurst)
	go limiter.sweep(10 * time.Minute)

	// --- API Routes ---
	api := router.Group("/api")
	{
		api.GET("/posts", env.GetPosts)
		api.POST("/posts", RateLimitMiddleware(limiter), IdentityMiddleware(cfg.DefaultUserID), env.CreatePost)
		api.GET("/location-search", env.SearchLocations)
	}

	// --- Uploaded images, served verbatim ---
	router.Static(storage.PublicPrefix, store.Dir())

	// --- Serve Frontend ---
	// This MUST come AFTER the API routes.
	router.StaticFile("/", "./public/index.html")
}
