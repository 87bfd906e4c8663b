package handler

import (
	"net/http"
	"lodging/config"
	"lodging/di"
	"lodging/shared/logger"
	"sync"
)

var (
	app     *di.App
	appOnce sync.Once
)

// Handler serves the application as a single serverless function. The object
// graph is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	appOnce.Do(func() {
		cfg := config.Get()

		logger.Init(cfg)

		app = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	app.HTTP.ServeHTTP(w, r)
}
