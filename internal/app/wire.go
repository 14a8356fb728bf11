//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"campusnet-service/internal/generator"
)

func InitializeApp(ctx context.Context) (*App, func(), error) {
	panic(wire.Build(
		provideConfig,
		provideLogger,
		provideShutdownManager,
		provideRepository,
		provideTimeline,
		provideStatsService,
		provideGeneratorConfig,
		generator.New,
		provideWorkerPool,
		New,
	))
}
