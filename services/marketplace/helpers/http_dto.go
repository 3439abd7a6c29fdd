package helpers

import (
	"time"

	model "bid-marketplace/internal/models"
)

// Request DTOs
type PlaceBidRequest struct {
	Price        float64 `json:"price" binding:"required,gt=0"`
	UserID       string  `json:"userId" binding:"required"`
	CollectionID string  `json:"collectionId" binding:"required"`
}

type UpdateBidRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

type AcceptBidRequest struct {
	BidID        string `json:"bidId" binding:"required"`
	CollectionID string `json:"collectionId" binding:"required"`
}

type CreateCollectionRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Stock       int     `json:"stock" binding:"required,gte=1"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	UserID      string  `json:"userId" binding:"required"`
}

type UpdateCollectionRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Stock       int     `json:"stock" binding:"required,gte=1"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

// Response DTOs

// UserSummary is the bidder/owner shape embedded in bid and collection
// responses: identity only, no email
type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BidResponse struct {
	ID           string       `json:"id"`
	Price        float64      `json:"price"`
	Status       string       `json:"status"`
	UserID       string       `json:"userId"`
	CollectionID string       `json:"collectionId"`
	CreatedAt    string       `json:"createdAt"`
	UpdatedAt    string       `json:"updatedAt"`
	User         *UserSummary `json:"user,omitempty"`
}

type CollectionResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Stock       int           `json:"stock"`
	Price       float64       `json:"price"`
	UserID      string        `json:"userId"`
	CreatedAt   string        `json:"createdAt"`
	UpdatedAt   string        `json:"updatedAt"`
	User        *UserSummary  `json:"user,omitempty"`
	Bids        []BidResponse `json:"bids"`
	BidCount    int           `json:"bidCount"`
}

// NewUserSummary maps a user model to its embedded response shape
func NewUserSummary(user *model.User) *UserSummary {
	if user == nil {
		return nil
	}
	return &UserSummary{ID: user.ID, Name: user.Name}
}

// NewBidResponse maps a bid model to its response shape
func NewBidResponse(bid model.Bid) BidResponse {
	return BidResponse{
		ID:           bid.ID,
		Price:        bid.Price,
		Status:       string(bid.Status),
		UserID:       bid.UserID,
		CollectionID: bid.CollectionID,
		CreatedAt:    bid.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    bid.UpdatedAt.UTC().Format(time.RFC3339),
		User:         NewUserSummary(bid.Bidder),
	}
}

// NewBidResponses maps a slice of bids; never returns nil so empty lists
// serialize as []
func NewBidResponses(bids []model.Bid) []BidResponse {
	out := make([]BidResponse, 0, len(bids))
	for _, bid := range bids {
		out = append(out, NewBidResponse(bid))
	}
	return out
}

// NewCollectionResponse maps a collection model with whatever relations were
// loaded; BidCount always reflects the loaded bids
func NewCollectionResponse(collection model.Collection) CollectionResponse {
	bids := make([]BidResponse, 0, len(collection.Bids))
	for _, bid := range collection.Bids {
		if bid == nil {
			continue
		}
		bids = append(bids, NewBidResponse(*bid))
	}
	return CollectionResponse{
		ID:          collection.ID,
		Name:        collection.Name,
		Description: collection.Description,
		Stock:       collection.Stock,
		Price:       collection.Price,
		UserID:      collection.UserID,
		CreatedAt:   collection.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   collection.UpdatedAt.UTC().Format(time.RFC3339),
		User:        NewUserSummary(collection.Owner),
		Bids:        bids,
		BidCount:    len(bids),
	}
}

// NewUserResponse maps a user model to the users-listing shape
func NewUserResponse(user model.User) UserResponse {
	return UserResponse{ID: user.ID, Name: user.Name, Email: user.Email}
}
