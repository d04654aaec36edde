package internal

import (
	"net/http"

	"picktime/internal/controllers"
	"picktime/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController, healthController *controllers.HealthController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/toggle", http.HandlerFunc(apiController.Toggle))
	routers.Get("/status", http.HandlerFunc(apiController.Status))
	routers.Get("/stations", http.HandlerFunc(apiController.Stations))
	routers.Get("/report", http.HandlerFunc(apiController.Report))
	routers.Any("/health", http.HandlerFunc(healthController.Health))
	return routers
}
