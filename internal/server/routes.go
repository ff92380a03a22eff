package server

import (
	"github.com/gin-contrib/cors"
	"go.uber.org/fx"

	"github.com/porticohq/portico/internal/server/api"
	"github.com/porticohq/portico/internal/server/biz"
	"github.com/porticohq/portico/internal/server/middleware"
)

type Handlers struct {
	fx.In

	Auth      *api.AuthHandlers
	Portfolio *api.PortfolioHandlers
	Analytics *api.AnalyticsHandlers
	Legal     *api.LegalHandlers
	Predict   *api.PredictHandlers
	System    *api.SystemHandlers
}

type Services struct {
	fx.In

	AuthService *biz.AuthService
}

func SetupRoutes(server *Server, handlers Handlers, services Services) {
	server.Use(middleware.AccessLog())
	server.Use(middleware.WithLoggingTracing(server.Config.Trace))

	// Setup CORS middleware at server level if enabled
	if server.Config.CORS.Enabled {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = server.Config.CORS.AllowedOrigins
		corsConfig.AllowMethods = server.Config.CORS.AllowedMethods
		corsConfig.AllowHeaders = server.Config.CORS.AllowedHeaders
		corsConfig.ExposeHeaders = server.Config.CORS.ExposedHeaders
		corsConfig.AllowCredentials = server.Config.CORS.AllowCredentials
		corsConfig.MaxAge = server.Config.CORS.MaxAge

		corsHandler := cors.New(corsConfig)
		server.Use(corsHandler)
		server.OPTIONS("*any", corsHandler)
	}

	publicGroup := server.Group("", middleware.WithTimeout(server.Config.RequestTimeout))
	{
		// Liveness and build info - DO NOT AUTH
		publicGroup.GET("/health", handlers.System.Health)
		publicGroup.GET("/version", handlers.System.Version)
		// Credential exchange - DO NOT AUTH
		publicGroup.POST("/auth/token", handlers.Auth.IssueToken)
	}

	// Every resource-returning route sits behind bearer auth; scope
	// filtering happens in the services.
	protectedGroup := server.Group("", middleware.WithBearerAuth(services.AuthService))
	{
		portfolioGroup := protectedGroup.Group("", middleware.WithTimeout(server.Config.RequestTimeout))
		portfolioGroup.GET("/properties", handlers.Portfolio.ListProperties)
		portfolioGroup.GET("/properties/:id/yield", handlers.Portfolio.GetYield)
		portfolioGroup.GET("/tenants", handlers.Portfolio.ListTenants)
		portfolioGroup.GET("/analytics/data", handlers.Analytics.GetData)
		portfolioGroup.POST("/predict/rent", handlers.Predict.PredictRent)
		portfolioGroup.POST("/predict/churn", handlers.Predict.PredictChurn)

		researchGroup := protectedGroup.Group("", middleware.WithTimeout(server.Config.ResearchRequestTimeout))
		researchGroup.POST("/analytics/report", handlers.Analytics.RunReport)
		researchGroup.POST("/analytics/scenario", handlers.Analytics.RunScenario)
		researchGroup.POST("/legal/analyze", handlers.Legal.Analyze)
	}
}
