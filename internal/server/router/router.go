package router

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mamadbah2/prodtracker/internal/domain/models"
	"github.com/mamadbah2/prodtracker/internal/server/handlers"
	"github.com/mamadbah2/prodtracker/internal/server/middleware"
	"github.com/mamadbah2/prodtracker/internal/service/auth"
	"github.com/mamadbah2/prodtracker/internal/service/catalog"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Entry   *handlers.EntryHandler
	Events  *handlers.EventsHandler
	Summary *handlers.SummaryHandler
	Export  *handlers.ExportHandler
	Users   *handlers.UsersHandler
	Catalog *handlers.CatalogHandler
}

// Options carries the non-handler dependencies of the router.
type Options struct {
	Auth      *auth.Service
	Gatherer  prometheus.Gatherer
	StaticDir string
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, opts Options, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Session(opts.Auth))
	r.Use(middleware.Logger(logger))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/events", "/metrics"})))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{
			ErrorHandling: promhttp.HTTPErrorOnError,
		})))
	}
	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}

	api := r.Group("/api")
	api.POST("/login", h.Auth.Login)
	api.POST("/logout", h.Auth.Logout)
	api.POST("/entry", h.Entry.Submit)
	api.GET("/events", h.Events.Stream)

	summary := api.Group("/summary")
	summary.GET("/orders", h.Summary.Orders)
	summary.GET("/operators", h.Summary.Operators)
	summary.GET("/machines", h.Summary.Machines)
	summary.GET("/date", h.Summary.Date)
	api.GET("/compare", h.Summary.Compare)
	api.GET("/predict/production", h.Summary.Predict)

	for _, name := range catalog.Names {
		api.GET("/"+name, h.Catalog.Serve(name))
	}

	api.GET("/my-entries", middleware.RequireLogin(), h.Export.MyEntries)

	admin := api.Group("", middleware.RequireRole(models.RoleAdmin))
	admin.GET("/export", h.Export.Export)
	admin.GET("/users", h.Users.List)
	admin.DELETE("/users/:id", h.Users.Delete)
	admin.GET("/user-roles", h.Users.Roles)

	logger.Info("router initialized")
	return r
}
