package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"newsanalyst/internal/config"
	"newsanalyst/internal/corpus"
	"newsanalyst/internal/gnews"
	"newsanalyst/internal/httpapi"
	"newsanalyst/internal/logger"
	"newsanalyst/internal/poller"
	"newsanalyst/internal/query"
	"newsanalyst/internal/rssfeed"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	store := corpus.NewStore(cfg.CorpusMaxArticles)
	client := gnews.NewClient(cfg)

	var sources []poller.Source
	for _, topic := range cfg.Topics {
		sources = append(sources, client.TopicSource(topic))
	}

	if cfg.FeedsConfigPath != "" {
		feeds, err := rssfeed.LoadFeeds(cfg.FeedsConfigPath)
		if err != nil {
			logger.Error("cannot load RSS feeds config", "path", cfg.FeedsConfigPath, "error", err)
			os.Exit(1)
		}
		sources = append(sources, rssfeed.NewSource(feeds))
		logger.Info("rss feeds enabled", "feeds", len(feeds))
	}

	p := poller.New(sources, store, cfg.PollingInterval, cfg.MaxConsecutiveErrors)
	service := query.New(store, cfg.RecentWindow)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The poller halts on its own after too many consecutive failures;
	// serving continues on whatever corpus was ingested.
	go p.Run(ctx)

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: httpapi.NewServer(store, service, p, cfg.Topics).Routes(),
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		_ = server.Shutdown(context.Background())
	}()

	logger.Info("server starting", "addr", server.Addr, "topics", cfg.Topics)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
