package handler

import (
	"context"

	model "bid-marketplace/internal/models"
)

//go:generate mockgen -source=handler.go -destination=mock_marketplace_service.go -package=handler

// MarketplaceServiceInterface is the service surface the HTTP layer depends on
type MarketplaceServiceInterface interface {
	PlaceBid(ctx context.Context, collectionID, userID string, price float64) (model.Bid, error)
	GetBid(ctx context.Context, bidID string) (model.Bid, error)
	GetBidsForCollection(ctx context.Context, collectionID string) ([]model.Bid, error)
	UpdateBidPrice(ctx context.Context, bidID string, price float64) (model.Bid, error)
	DeleteBid(ctx context.Context, bidID string) (model.Bid, error)
	AcceptBid(ctx context.Context, bidID, collectionID string) (model.Bid, error)

	CreateCollection(ctx context.Context, name, description string, stock int, price float64, userID string) (model.Collection, error)
	GetCollection(ctx context.Context, collectionID string) (model.Collection, error)
	ListCollections(ctx context.Context) ([]model.Collection, error)
	UpdateCollection(ctx context.Context, collectionID, name, description string, stock int, price float64) (model.Collection, error)
	DeleteCollection(ctx context.Context, collectionID string) (model.Collection, error)

	ListUsers(ctx context.Context) ([]model.User, error)
}

// MarketplaceHandler holds the HTTP handlers for the marketplace API
type MarketplaceHandler struct {
	service MarketplaceServiceInterface
}

// NewMarketplaceHandler creates a new MarketplaceHandler
func NewMarketplaceHandler(service MarketplaceServiceInterface) *MarketplaceHandler {
	return &MarketplaceHandler{service: service}
}
