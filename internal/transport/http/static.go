package http

import (
	stdhttp "net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// registerStatic serves the client asset bundle from dir. Any GET that
// matches no route and no file falls back to the entry document, so
// client-side routes resolve to the single-page app.
func registerStatic(router *gin.Engine, dir string) {
	if dir == "" {
		return
	}
	index := filepath.Join(dir, "index.html")

	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != stdhttp.MethodGet {
			c.Status(stdhttp.StatusNotFound)
			return
		}

		path := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			c.File(path)
			return
		}
		c.File(index)
	})
}
