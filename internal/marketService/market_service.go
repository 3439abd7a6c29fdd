package market

import (
	"context"
	"fmt"
	"time"

	"bid-marketplace/internal/marketerrors"
	"bid-marketplace/internal/models"
	"bid-marketplace/internal/repository"
	"bid-marketplace/utils"
)

// MarketplaceService owns the bid lifecycle and collection management rules
type MarketplaceService struct {
	repo repository.MarketplaceDB
}

// NewMarketplaceService creates a new MarketplaceService instance
func NewMarketplaceService(repo repository.MarketplaceDB) *MarketplaceService {
	return &MarketplaceService{
		repo: repo,
	}
}

// PlaceBid validates and records a user's bid on a collection. The bid starts
// in PENDING state; a user may hold at most one bid per collection.
func (s *MarketplaceService) PlaceBid(ctx context.Context, collectionID, userID string, price float64) (models.Bid, error) {
	if collectionID == "" || userID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - missing collectionID or userID", marketerrors.ErrInvalidBid)
	}
	if price <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - non-positive bid price", marketerrors.ErrInvalidBid)
	}

	now := time.Now().UTC()
	bid := models.Bid{
		ID:           utils.GenerateID(),
		Price:        price,
		Status:       models.BidStatusPending,
		UserID:       userID,
		CollectionID: collectionID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.RecordBidForCollection(ctx, bid); err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to record bid on collection %s by user %s: %w", collectionID, userID, err)
	}

	return bid, nil
}

// GetBid returns a single bid with its bidder
func (s *MarketplaceService) GetBid(ctx context.Context, bidID string) (models.Bid, error) {
	if bidID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty bid ID", marketerrors.ErrInvalidBid)
	}

	bid, err := s.repo.GetBidByID(ctx, bidID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get bid %s: %w", bidID, err)
	}
	return bid, nil
}

// GetBidsForCollection returns all bids for a collection, highest price first
func (s *MarketplaceService) GetBidsForCollection(ctx context.Context, collectionID string) ([]models.Bid, error) {
	if collectionID == "" {
		return nil, fmt.Errorf("service: %w - empty collection ID", marketerrors.ErrInvalidBid)
	}

	bids, err := s.repo.GetBidsByCollection(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for collection %s: %w", collectionID, err)
	}
	return bids, nil
}

// UpdateBidPrice replaces the price of a pending bid; status is untouched
func (s *MarketplaceService) UpdateBidPrice(ctx context.Context, bidID string, price float64) (models.Bid, error) {
	if bidID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty bid ID", marketerrors.ErrInvalidBid)
	}
	if price <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - non-positive bid price", marketerrors.ErrInvalidBid)
	}

	bid, err := s.repo.UpdateBidPrice(ctx, bidID, price)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to update bid %s: %w", bidID, err)
	}
	return bid, nil
}

// DeleteBid removes a pending bid
func (s *MarketplaceService) DeleteBid(ctx context.Context, bidID string) (models.Bid, error) {
	if bidID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty bid ID", marketerrors.ErrInvalidBid)
	}

	bid, err := s.repo.DeleteBid(ctx, bidID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to delete bid %s: %w", bidID, err)
	}
	return bid, nil
}

// AcceptBid finalizes one bid on a collection and rejects every other bid on
// it in a single atomic step, returning the accepted bid with its bidder
func (s *MarketplaceService) AcceptBid(ctx context.Context, bidID, collectionID string) (models.Bid, error) {
	if bidID == "" || collectionID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - missing bidID or collectionID", marketerrors.ErrInvalidBid)
	}

	bid, err := s.repo.AcceptBid(ctx, bidID, collectionID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to accept bid %s on collection %s: %w", bidID, collectionID, err)
	}
	return bid, nil
}

// CreateCollection validates and stores a new collection listing
func (s *MarketplaceService) CreateCollection(ctx context.Context, name, description string, stock int, price float64, userID string) (models.Collection, error) {
	if name == "" || userID == "" {
		return models.Collection{}, fmt.Errorf("service: %w - missing name or userID", marketerrors.ErrInvalidCollection)
	}
	if price <= 0 {
		return models.Collection{}, fmt.Errorf("service: %w - non-positive price", marketerrors.ErrInvalidCollection)
	}
	if stock < 1 {
		return models.Collection{}, fmt.Errorf("service: %w - stock must be at least 1", marketerrors.ErrInvalidCollection)
	}

	now := time.Now().UTC()
	collection := models.Collection{
		ID:          utils.GenerateID(),
		Name:        name,
		Description: description,
		Stock:       stock,
		Price:       price,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateCollection(ctx, collection); err != nil {
		return models.Collection{}, fmt.Errorf("service: failed to create collection for user %s: %w", userID, err)
	}
	return collection, nil
}

// GetCollection returns a collection with owner and price-sorted bids
func (s *MarketplaceService) GetCollection(ctx context.Context, collectionID string) (models.Collection, error) {
	if collectionID == "" {
		return models.Collection{}, fmt.Errorf("service: %w - empty collection ID", marketerrors.ErrInvalidCollection)
	}

	collection, err := s.repo.GetCollectionByID(ctx, collectionID)
	if err != nil {
		return models.Collection{}, fmt.Errorf("service: failed to get collection %s: %w", collectionID, err)
	}
	return collection, nil
}

// ListCollections returns every collection with owner, bids and bid count
func (s *MarketplaceService) ListCollections(ctx context.Context) ([]models.Collection, error) {
	collections, err := s.repo.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list collections: %w", err)
	}
	return collections, nil
}

// UpdateCollection replaces the mutable fields of an existing collection
func (s *MarketplaceService) UpdateCollection(ctx context.Context, collectionID, name, description string, stock int, price float64) (models.Collection, error) {
	if collectionID == "" || name == "" {
		return models.Collection{}, fmt.Errorf("service: %w - missing collectionID or name", marketerrors.ErrInvalidCollection)
	}
	if price <= 0 {
		return models.Collection{}, fmt.Errorf("service: %w - non-positive price", marketerrors.ErrInvalidCollection)
	}
	if stock < 1 {
		return models.Collection{}, fmt.Errorf("service: %w - stock must be at least 1", marketerrors.ErrInvalidCollection)
	}

	collection, err := s.repo.UpdateCollection(ctx, models.Collection{
		ID:          collectionID,
		Name:        name,
		Description: description,
		Stock:       stock,
		Price:       price,
	})
	if err != nil {
		return models.Collection{}, fmt.Errorf("service: failed to update collection %s: %w", collectionID, err)
	}
	return collection, nil
}

// DeleteCollection removes a collection together with all of its bids
func (s *MarketplaceService) DeleteCollection(ctx context.Context, collectionID string) (models.Collection, error) {
	if collectionID == "" {
		return models.Collection{}, fmt.Errorf("service: %w - empty collection ID", marketerrors.ErrInvalidCollection)
	}

	collection, err := s.repo.DeleteCollection(ctx, collectionID)
	if err != nil {
		return models.Collection{}, fmt.Errorf("service: failed to delete collection %s: %w", collectionID, err)
	}
	return collection, nil
}

// ListUsers returns all registered users
func (s *MarketplaceService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list users: %w", err)
	}
	return users, nil
}
