package repository

import (
	"context"

	model "bid-marketplace/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_marketplace_db.go -package=repository

// MarketplaceDB defines the storage interface for the bidding marketplace
type MarketplaceDB interface {
	CreateUser(ctx context.Context, user model.User) error
	ListUsers(ctx context.Context) ([]model.User, error)

	CreateCollection(ctx context.Context, collection model.Collection) error
	GetCollectionByID(ctx context.Context, collectionID string) (model.Collection, error)
	ListCollections(ctx context.Context) ([]model.Collection, error)
	UpdateCollection(ctx context.Context, collection model.Collection) (model.Collection, error)
	DeleteCollection(ctx context.Context, collectionID string) (model.Collection, error)

	RecordBidForCollection(ctx context.Context, bid model.Bid) error
	GetBidByID(ctx context.Context, bidID string) (model.Bid, error)
	GetBidsByCollection(ctx context.Context, collectionID string) ([]model.Bid, error)
	UpdateBidPrice(ctx context.Context, bidID string, price float64) (model.Bid, error)
	DeleteBid(ctx context.Context, bidID string) (model.Bid, error)
	AcceptBid(ctx context.Context, bidID, collectionID string) (model.Bid, error)
}
