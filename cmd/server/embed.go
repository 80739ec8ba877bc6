//go:build !dev
// +build !dev

package main

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed web
var webFiles embed.FS

// setupStaticFiles serves the embedded page
func setupStaticFiles(router *gin.Engine) {
	log.Println("📦 Using embedded page assets")

	webFS, err := fs.Sub(webFiles, "web")
	if err != nil {
		log.Fatalf("Failed to get web subdirectory: %v", err)
	}

	router.NoRoute(func(c *gin.Context) {
		urlPath := c.Request.URL.Path

		// Skip API routes (they are handled by other routes)
		if isAPIPath(urlPath) {
			c.JSON(404, gin.H{"error": "API endpoint not found"})
			return
		}

		cleanPath := path.Clean(urlPath)
		if cleanPath == "/" {
			cleanPath = "index.html"
		} else {
			cleanPath = strings.TrimPrefix(cleanPath, "/")
		}

		content, err := fs.ReadFile(webFS, cleanPath)
		if err != nil {
			// single page: everything else gets the form
			cleanPath = "index.html"
			content, err = fs.ReadFile(webFS, cleanPath)
			if err != nil {
				c.String(http.StatusNotFound, "404 page not found")
				return
			}
		}

		c.Data(http.StatusOK, contentType(cleanPath), content)
	})
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".js":
		return "application/javascript; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".json":
		return "application/json; charset=utf-8"
	case ".svg":
		return "image/svg+xml"
	case ".ico":
		return "image/x-icon"
	}
	return "text/html; charset=utf-8"
}
