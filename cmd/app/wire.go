//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/braindump/internal/bootstrap"
	"github.com/yanqian/braindump/internal/domain/board"
	"github.com/yanqian/braindump/internal/domain/braindump"
	"github.com/yanqian/braindump/internal/domain/feed"
	"github.com/yanqian/braindump/internal/domain/selfie"
	"github.com/yanqian/braindump/internal/infra/braindumpapi"
	"github.com/yanqian/braindump/internal/infra/config"
	httpiface "github.com/yanqian/braindump/internal/interface/http"
	"github.com/yanqian/braindump/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideSessionConfig,
		provideBackendClient,
		provideFeedConfig,
		provideFeedCache,
		provideBoardStore,
		provideCamera,
		provideAnalyzer,
		braindump.NewSession,
		feed.NewService,
		board.NewService,
		selfie.NewService,
		wire.Bind(new(braindump.Client), new(*braindumpapi.Client)),
		wire.Bind(new(feed.Backend), new(*braindumpapi.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
