package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jroosing/hydrakey/internal/api/handlers"
	"github.com/jroosing/hydrakey/internal/api/middleware"
	"github.com/jroosing/hydrakey/internal/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/jroosing/hydrakey/internal/api/docs" // swagger docs
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	// Swagger UI at /swagger/*
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// Optional API key protection; health stays open for probes.
	if cfg != nil && cfg.API.APIKey != "" {
		api.Use(middleware.RequireAPIKey(cfg.API.APIKey, "/api/v1/health"))
	}

	api.GET("/health", h.Health)
	api.GET("/stats", h.Stats)
	api.GET("/config", h.GetConfig)

	api.POST("/dnskey/decode", h.DecodeDNSKey)
	api.POST("/dnskey/encode", h.EncodeDNSKey)

	api.GET("/keys", h.ListKeys)
	api.POST("/keys", h.CreateKey)
	api.GET("/keys/:id", h.GetKey)
	api.DELETE("/keys/:id", h.DeleteKey)

	api.GET("/zones", h.ListZones)
	api.POST("/zones/:zone/fetch", h.FetchZone)
	api.GET("/zones/:zone/live", h.LiveZone)
}
