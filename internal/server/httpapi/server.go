// Package httpapi exposes the platform over an HTTP JSON API:
// authentication under /api/auth and blog posts under /api/blogposts.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/inkwell/internal/logging"
	"github.com/dmitrijs2005/inkwell/internal/server/config"
	"github.com/dmitrijs2005/inkwell/internal/server/services"
)

type HTTPServer struct {
	address     string
	logger      logging.Logger
	users       *services.UserService
	posts       *services.PostService
	corsOrigins []string
	ginMode     string
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, us *services.UserService, ps *services.PostService) *HTTPServer {
	return &HTTPServer{
		address:     cfg.EndpointAddr,
		logger:      l.With("module", "http_server"),
		users:       us,
		posts:       ps,
		corsOrigins: splitOrigins(cfg.CORSAllowedOrigins),
		ginMode:     cfg.GinMode,
	}
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// setupRouter wires the routes. Read endpoints are public; every mutation of
// a post and the profile endpoint go through RequireAuth.
func (s *HTTPServer) setupRouter() *gin.Engine {
	gin.SetMode(s.ginMode)

	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = s.corsOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Inkwell blogging platform API is running")
	})

	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", s.handleRegister)
		authGroup.POST("/login", s.handleLogin)
		authGroup.GET("/user", s.RequireAuth(), s.handleGetUser)
	}

	postGroup := router.Group("/api/blogposts")
	{
		postGroup.GET("", s.handleListPosts)
		postGroup.GET("/:id", s.handleGetPost)
		postGroup.POST("", s.RequireAuth(), s.handleCreatePost)
		postGroup.PUT("/:id", s.RequireAuth(), s.handleUpdatePost)
		postGroup.DELETE("/:id", s.RequireAuth(), s.handleDeletePost)
	}

	return router
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
