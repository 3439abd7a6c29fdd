package server

import (
	handler "bid-marketplace/services/marketplace/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the marketplace API
func SetupRouter(service handler.MarketplaceServiceInterface) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	marketplaceHandler := handler.NewMarketplaceHandler(service)

	api := router.Group("/api")

	collections := api.Group("/collections")
	{
		collections.GET("", marketplaceHandler.ListCollectionsHandler)
		collections.POST("", marketplaceHandler.CreateCollectionHandler)
		collections.GET("/:id", marketplaceHandler.GetCollectionHandler)
		collections.PUT("/:id", marketplaceHandler.UpdateCollectionHandler)
		collections.DELETE("/:id", marketplaceHandler.DeleteCollectionHandler)
	}

	bids := api.Group("/bids")
	{
		bids.GET("", marketplaceHandler.ListBidsHandler)
		bids.POST("", marketplaceHandler.PlaceBidHandler)
		bids.POST("/accept", marketplaceHandler.AcceptBidHandler)
		bids.GET("/:id", marketplaceHandler.GetBidHandler)
		bids.PUT("/:id", marketplaceHandler.UpdateBidHandler)
		bids.DELETE("/:id", marketplaceHandler.DeleteBidHandler)
	}

	users := api.Group("/users")
	{
		users.GET("", marketplaceHandler.ListUsersHandler)
	}

	return router
}
