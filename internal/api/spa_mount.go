package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/jroosing/hydrakey/internal/api/models"
)

// MountSPA serves a web UI from dir. Unknown paths outside /api and
// /swagger fall back to index.html so client-side routes resolve.
func MountSPA(r *gin.Engine, dir string, logger *slog.Logger) {
	fs := static.LocalFile(dir, false)
	r.Use(static.Serve("/", fs))

	r.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api") || strings.HasPrefix(path, "/swagger") {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found"})
			return
		}

		index, err := fs.Open("index.html")
		if err != nil {
			logger.Error("failed to open index.html", "dir", dir, "error", err)
			c.Status(http.StatusNotFound)
			return
		}
		defer index.Close()

		stat, err := index.Stat()
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		http.ServeContent(c.Writer, c.Request, "index.html", stat.ModTime(), index)
	})
}
