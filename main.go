package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"insurecost/config"
	"insurecost/db"
	qhttp "insurecost/http"
	"insurecost/insurance"
	"insurecost/logging"
	"insurecost/ml"
	"insurecost/report"
	"insurecost/services"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// 1. Load config
	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		Mode:       cfg.Log.Mode,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 2. Load the model once; it is shared read-only until exit
	model, err := ml.LoadModel(cfg.ML.ModelType, cfg.ML.ModelPath, insurance.FeatureNames())
	if err != nil {
		log.Fatal("failed to load model", "type", cfg.ML.ModelType, "path", cfg.ML.ModelPath, "error", err)
	}
	log.Info("model loaded", "type", cfg.ML.ModelType, "path", cfg.ML.ModelPath, "features", model.FeatureNames())

	// 3. Prepare the store
	gateway, err := db.FromConfig(cfg.Database)
	if err != nil {
		log.Fatal("invalid database config", "error", err)
	}
	if err := gateway.EnsureSchema(context.Background()); err != nil {
		// The store may come up later; requests report the failure themselves.
		log.Warn("could not ensure schema", "driver", gateway.Driver(), "error", err)
	} else {
		log.Info("database ready", "driver", gateway.Driver())
	}

	feed := qhttp.NewFeed(log)
	predictions := services.NewPredictionService(model, gateway, feed, log)
	reports := services.NewReportingService(gateway, report.NewLocale(cfg.Report.Locale), log)

	// 4. Start HTTP server
	server := qhttp.NewServer(qhttp.NewHandlers(predictions, reports, feed, log), qhttp.ServerConfig{
		Port:           cfg.Http.Port,
		Timeout:        cfg.Http.Timeout,
		AllowedOrigins: cfg.Http.AllowedOrigins,
		MaxBodyBytes:   cfg.Http.MaxBodyBytes,
	}, log)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", "error", err)
		}
	}()

	// 5. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	if err := server.Stop(); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	log.Info("exiting")
}
