package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/braindump/internal/domain/board"
	"github.com/yanqian/braindump/internal/domain/braindump"
	"github.com/yanqian/braindump/internal/domain/feed"
	"github.com/yanqian/braindump/internal/domain/selfie"
	"github.com/yanqian/braindump/internal/infra/boardstore"
	"github.com/yanqian/braindump/internal/infra/braindumpapi"
	"github.com/yanqian/braindump/internal/infra/capability"
	"github.com/yanqian/braindump/internal/infra/config"
	"github.com/yanqian/braindump/internal/infra/feedcache"
)

// placeholderFrame is the smallest valid JPEG (SOI + EOI markers).
var placeholderFrame = []byte{0xff, 0xd8, 0xff, 0xd9}

func provideSessionConfig(cfg *config.Config) (braindump.Config, error) {
	seeds := make([]braindump.MoodEntry, 0, len(cfg.Mood.Seeds))
	for i, seed := range cfg.Mood.Seeds {
		entry := braindump.MoodEntry{
			Date:      seed.Date,
			Emotion:   braindump.Emotion(strings.ToLower(strings.TrimSpace(seed.Emotion))),
			Intensity: seed.Intensity,
		}
		if err := entry.Validate(); err != nil {
			return braindump.Config{}, fmt.Errorf("mood.seeds[%d]: %w", i, err)
		}
		seeds = append(seeds, entry)
	}
	return braindump.Config{
		UserID: cfg.Backend.UserID,
		Seeds:  seeds,
	}, nil
}

func provideBackendClient(cfg *config.Config) *braindumpapi.Client {
	return braindumpapi.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout)
}

func provideFeedConfig(cfg *config.Config) feed.Config {
	return feed.Config{
		UserID:    cfg.Backend.UserID,
		RecentTTL: cfg.Feed.RecentTTL,
		HealthTTL: cfg.Feed.HealthTTL,
	}
}

func provideFeedCache(cfg *config.Config, logger *slog.Logger) feed.Cache {
	if cfg.Feed.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return feedcache.NewMemoryCache()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return feedcache.NewMemoryCache()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
			client.Close()
		} else {
			logger.Info("feed valkey cache enabled", "addr", cfg.Feed.Redis.Addr)
			return feedcache.NewValkeyCache(client, cfg.Feed.Redis.Prefix)
		}
	}
	return feedcache.NewMemoryCache()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Feed.Redis.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Feed.Redis.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Feed.Redis.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

func provideBoardStore(cfg *config.Config, logger *slog.Logger) (board.Store, error) {
	store := boardstore.NewMemoryStore()
	seeds := make([]board.Seed, 0, len(cfg.Board.Seeds))
	for _, seed := range cfg.Board.Seeds {
		seeds = append(seeds, board.Seed{Text: seed.Text, MeToo: seed.MeToo, Support: seed.Support})
	}
	if err := board.SeedStore(context.Background(), store, seeds); err != nil {
		return nil, err
	}
	logger.Info("board seeded", "posts", len(seeds))
	return store, nil
}

func provideCamera(cfg *config.Config) selfie.Camera {
	if cfg.Selfie.Camera == config.CameraNone {
		return capability.NoCamera{}
	}
	return capability.NewStaticCamera(placeholderFrame, "image/jpeg")
}

func provideAnalyzer(cfg *config.Config) selfie.Analyzer {
	return capability.NewMockAnalyzer(cfg.Selfie.AnalysisDelay, nil)
}
