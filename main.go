package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cgweb/market-proxy/api"
	"github.com/cgweb/market-proxy/cache"
	"github.com/cgweb/market-proxy/config"
	"github.com/cgweb/market-proxy/pricehistory"
	"github.com/cgweb/market-proxy/simpleprice"
	"github.com/cgweb/market-proxy/topcoins"
)

func main() {
	// Load configuration, falling back to defaults when no file is present
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatal("Error loading config:", err)
		}
		log.Println("No config.yaml found, using defaults")
		cfg = config.DefaultConfig()
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping services...")
		cancel()
	}()

	// One shared TTL cache behind all fetchers
	ttlCache := cache.NewGoCache(cfg.Cache.GetTTL())

	topService := topcoins.NewService(ttlCache, cfg)
	if err := topService.Start(ctx); err != nil {
		log.Fatal("Failed to start topcoins service:", err)
	}
	defer topService.Stop()

	priceService := simpleprice.NewService(ttlCache, cfg)
	if err := priceService.Start(ctx); err != nil {
		log.Fatal("Failed to start simpleprice service:", err)
	}
	defer priceService.Stop()

	historyService := pricehistory.NewService(ttlCache, cfg)
	if err := historyService.Start(ctx); err != nil {
		log.Fatal("Failed to start pricehistory service:", err)
	}
	defer historyService.Stop()

	// Log warm refresh activity
	topService.SubscribeUpdate().Watch(ctx, func() {
		log.Printf("Snapshot refreshed, cache holds %d entries", ttlCache.ItemCount())
	}, false)

	// Get port from environment or use config default
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	// Create and start HTTP server
	server := api.New(port, topService, priceService, historyService)
	if err := server.Start(ctx); err != nil {
		log.Fatal("Server failed:", err)
	}
	defer server.Stop()

	<-ctx.Done()
}
