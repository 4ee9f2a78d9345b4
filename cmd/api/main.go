package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"basket-kpis-go/internal/dataset"
	"basket-kpis-go/internal/logger"
	"basket-kpis-go/internal/server"
)

func main() {
	_ = godotenv.Load() // loads .env when present

	log := logger.New()
	log.WithField("service", "basket-kpis-go").Info("starting service")

	dataPath := envOr("ORDERS_PATH", "orders.csv")
	log.WithField("orders_path", dataPath).Info("loading order table")
	table, err := dataset.Load(dataPath)
	if err != nil {
		// No partial service: without the table there is nothing to serve.
		log.WithError(err).Fatal("failed to load order table")
	}

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.New(table),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
