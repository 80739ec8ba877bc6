package main

import "strings"

// isAPIPath reports whether a path belongs to the JSON API rather than the page
func isAPIPath(urlPath string) bool {
	return urlPath == "/api" || strings.HasPrefix(urlPath, "/api/")
}
