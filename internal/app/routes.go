package app

import (
	"technotes/internal/cache"
	"technotes/internal/config"
	dom "technotes/internal/domain"
	"technotes/internal/handlers"
	"technotes/internal/repo"
	"technotes/internal/service"

	_ "technotes/docs"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

const (
	noteListPrefix = "note:list"
	userListPrefix = "user:list"
)

// Deps are the collaborators the routes need. A nil Redis disables list caching.
type Deps struct {
	Notes repo.NoteRepo
	Users repo.UserRepo
	Redis *redis.Client
}

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, deps Deps) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	var noteCache *cache.ListCache[dom.Note]
	var userCache *cache.ListCache[dom.User]
	if deps.Redis != nil {
		ttl := cfg.Redis.DefaultTTL.Duration()
		noteCache = cache.NewListCache[dom.Note](deps.Redis, noteListPrefix, ttl)
		userCache = cache.NewListCache[dom.User](deps.Redis, userListPrefix, ttl)
	}

	noteSvc := service.NewNoteService(deps.Notes, noteCache)
	registerNoteRoutes(r, handlers.NewNoteHandler(noteSvc))

	userSvc := service.NewUserService(deps.Users, deps.Notes, userCache)
	registerUserRoutes(r, handlers.NewUserHandler(userSvc))
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Technotes API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerNoteRoutes(r gin.IRouter, h *handlers.NoteHandler) {
	r.GET("/notes", h.List)
	r.POST("/notes", h.Create)
	r.PATCH("/notes", h.Update)
	r.DELETE("/notes", h.Delete)
}

func registerUserRoutes(r gin.IRouter, h *handlers.UserHandler) {
	r.GET("/users", h.List)
	r.POST("/users", h.Create)
	r.PATCH("/users", h.Update)
	r.DELETE("/users", h.Delete)
}
