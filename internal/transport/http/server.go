package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/multiroom-server/internal/config"
	"github.com/vovakirdan/multiroom-server/internal/core"
)

// NewServer builds the HTTP server: health, websocket endpoint,
// read-only snapshot API and the static client bundle.
func NewServer(hub *core.Hub, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger))

	router.GET("/health", healthHandler)
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, logger)))

	api := NewAPIHandlers(hub, logger)
	apiGroup := router.Group("/api")
	apiGroup.GET("/rooms", api.ListRooms)
	apiGroup.GET("/users", api.ListUsers)

	registerStatic(router, cfg.StaticDir)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
