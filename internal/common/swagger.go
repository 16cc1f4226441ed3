// Package common provides shared utilities for the authorization core and
// its demo server.
package common

import (
	"embed"
	"io/fs"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

// AddSwaggerUI serves specFile out of specFS at specPath and wires
// swaggo/http-swagger's bundled UI at uiPath to read from it.
func AddSwaggerUI(r *chi.Mux, specFS embed.FS, specFile, uiPath, specPath string) error {
	content, err := fs.ReadFile(specFS, specFile)
	if err != nil {
		return err
	}

	r.Get(specPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(content)
	})

	r.Get(uiPath+"/*", httpSwagger.Handler(httpSwagger.URL(specPath)))

	log.Printf("📖 Swagger UI available at %s", uiPath)
	log.Printf("📄 OpenAPI spec available at %s", specPath)
	return nil
}
