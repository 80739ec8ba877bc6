//go:build dev
// +build dev

package main

import (
	"log"

	"github.com/gin-gonic/gin"
)

// setupStaticFiles serves the page from disk so edits show up without a rebuild
func setupStaticFiles(router *gin.Engine) {
	log.Println("🔧 Using local filesystem for page assets (development mode)")

	router.Static("/static", "./cmd/server/web/static")
	router.StaticFile("/", "./cmd/server/web/index.html")

	router.NoRoute(func(c *gin.Context) {
		if isAPIPath(c.Request.URL.Path) {
			c.JSON(404, gin.H{"error": "API endpoint not found"})
			return
		}
		c.File("./cmd/server/web/index.html")
	})
}
