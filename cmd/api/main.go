package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tabdeck/tabdeck/internal/api"
	"github.com/tabdeck/tabdeck/internal/config"
	"github.com/tabdeck/tabdeck/internal/tabs"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := api.Dependencies{
		Store: api.NewStore(newController(cfg)),
	}
	server := api.NewServer(api.Config{Addr: cfg.APIAddr}, deps)

	go func() {
		log.Printf("starting api server on %s", server.Addr())
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}

	log.Println("server shutdown complete")
}

func newController(cfg config.Config) *tabs.Controller {
	records := make([]*tabs.Record, 0, len(cfg.StartTabs))
	for _, seed := range cfg.StartTabs {
		r := tabs.NewRecord(seed.Label)
		r.SetLabelColor(seed.Color)
		r.SetClosable(seed.IsClosable())
		r.SetDraggable(!seed.Pinned)
		records = append(records, r)
	}

	opts := []tabs.Option{tabs.WithCapacity(cfg.Capacity)}
	if !cfg.Reorder() {
		opts = append(opts, tabs.WithoutReorder())
	}
	return tabs.New(records, opts...)
}
