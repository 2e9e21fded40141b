// Package webui provides the embedded browser editor served by the API.
package webui

import (
	"embed"
	"path"
	"sort"
)

//go:embed static/*
var staticFS embed.FS

// Read returns one embedded file by name.
func Read(name string) ([]byte, error) {
	return staticFS.ReadFile(path.Join("static", name))
}

// Assets lists the embedded file names, except index.html which is served
// at the root.
func Assets() []string {
	entries, err := staticFS.ReadDir("static")
	if err != nil {
		// The embed path is fixed at build time.
		panic(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || e.Name() == "index.html" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// ContentType maps an asset name to its MIME type.
func ContentType(name string) string {
	switch path.Ext(name) {
	case ".html":
		return "text/html; charset=utf-8"
	case ".js":
		return "application/javascript; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
