package main

import (
	"fmt"
	"os"

	"airbnb-cleaner/config"
	"airbnb-cleaner/scraper/lga"
	"airbnb-cleaner/services"
	"airbnb-cleaner/storage"
	"airbnb-cleaner/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Airbnb Listings Cleaning Pipeline starting ===")
	logger.Info("Config — listings: %s | LGA source: %s | output: %s",
		cfg.ListingsCSVPath, cfg.LGASourceURL, cfg.CleanOutputPath)

	reader := storage.NewCSVReader(cfg.ListingsCSVPath, logger)
	rawListings, err := reader.ReadAll()
	if err != nil {
		logger.Error("Failed to read listings: %v", err)
		os.Exit(1)
	}

	lgaScraper := lga.New(cfg, logger)
	refs, err := lgaScraper.Scrape()
	if err != nil {
		logger.Error("LGA reference scrape failed: %v", err)
		os.Exit(1)
	}

	pipeline := services.NewPipeline(logger)
	cleaned, report, err := pipeline.Run(rawListings, refs)
	if err != nil {
		logger.Error("Pipeline aborted: %v", err)
		os.Exit(1)
	}

	csvWriter, err := storage.NewCSVWriter(cfg.CleanOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	defer csvWriter.Close()

	if err := csvWriter.Write(cleaned); err != nil {
		logger.Error("CSV write failed: %v", err)
	} else {
		logger.Info("Clean listings saved to %s", cfg.CleanOutputPath)
	}

	pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
	} else {
		defer pgWriter.Close()
		if err := pgWriter.Write(cleaned); err != nil {
			logger.Error("PostgreSQL write failed: %v", err)
		} else if n, err := pgWriter.Count(); err == nil {
			logger.Info("Clean listings stored in PostgreSQL (%d rows, table: clean_listings)", n)
		}
	}

	reportSvc := services.NewReportService(logger)
	reportSvc.Print(report)

	fmt.Printf("  Done. Clean data → %s | PostgreSQL (clean_listings table)\n\n",
		cfg.CleanOutputPath)
}
