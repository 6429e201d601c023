package bootstrap

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpapi "github.com/GoSim-25-26J-441/showcase-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/api/http/middleware"
	"github.com/GoSim-25-26J-441/showcase-backend/internal/auth"
	cataloghttp "github.com/GoSim-25-26J-441/showcase-backend/internal/catalog/http"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          httpapi.Pinger
	Cache       httpapi.Pinger
	CORSOrigins []string
	Catalog     *cataloghttp.Handler
	Resolver    auth.Resolver
	RateLimit   float64
	RateBurst   int
	// UploadDir is served under /uploads when images are stored locally.
	UploadDir string
	// Gatherer backs /metrics; omitted when nil.
	Gatherer prometheus.Gatherer
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())

	if len(dep.CORSOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = dep.CORSOrigins
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"}
		corsConfig.ExposeHeaders = []string{"X-Request-Id"}
		corsConfig.AllowCredentials = true
		r.Use(cors.New(corsConfig))
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Cache)
	healthHandler.RegisterRoutes(r)

	if dep.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(dep.Gatherer, promhttp.HandlerOpts{})))
	}
	if dep.UploadDir != "" {
		r.StaticFS("/uploads", gin.Dir(dep.UploadDir, false))
	}

	resolver := dep.Resolver
	if resolver == nil {
		resolver = auth.HeaderResolver{}
	}

	api := r.Group("/api/v1")
	api.Use(auth.Identify(resolver))
	dep.Catalog.RegisterPublic(api)

	admin := api.Group("/admin")
	admin.Use(middleware.RateLimit(dep.RateLimit, dep.RateBurst))
	dep.Catalog.RegisterAdmin(admin)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not found"})
	})

	return r
}
