package handler

import (
	"net/http"
	"sync"

	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
)

var (
	once sync.Once
	mux  http.Handler
)

// Handler is the serverless entry point. The dependency graph is built on the first
// request and reused while the instance stays warm, so the in-memory store survives
// between invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		mux = di.InitializeService().Handler()
	})

	mux.ServeHTTP(w, r)
}
