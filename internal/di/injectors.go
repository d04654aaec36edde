//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"picktime/internal"
	"picktime/internal/controllers"
	"picktime/internal/persistence"
	"picktime/internal/providers"
	"picktime/internal/scheduler"
	"picktime/internal/services"
	"picktime/internal/structures"
)

var coreSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,
	providers.NewCatalogProvider,
	providers.NewShiftPolicyProvider,

	persistence.NewCompressor,
	persistence.NewKVStore,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		coreSet,
		services.NewLedgerService,
		providers.NewInstrumentedCacheProvider,

		services.NewSessionService,
		services.NewReportService,
		services.NewShiftMonitor,
		scheduler.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitReport(cfg *structures.CliFlags) (*internal.ReportCommand, error) {

	wire.Build(
		coreSet,
		services.NewReadOnlyLedgerService,
		services.NewReportService,
		internal.NewReportCommand,
	)

	return nil, nil
}
