package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"bid-marketplace/internal/marketerrors"
	model "bid-marketplace/internal/models"
)

// MemoryRepo is a concurrency-safe in-memory implementation of MarketplaceDB.
// It is the default store when no DATABASE_URL is configured and backs the
// integration and load tests.
type MemoryRepo struct {
	mu          sync.RWMutex
	users       map[string]model.User
	userIDs     []string // insertion order
	collections map[string]model.Collection
	colIDs      []string
	bids        map[string]model.Bid
	bidIDs      []string
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:       make(map[string]model.User),
		collections: make(map[string]model.Collection),
		bids:        make(map[string]model.Bid),
	}
}

// CreateUser stores a new user
func (r *MemoryRepo) CreateUser(_ context.Context, user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; ok {
		return fmt.Errorf("create user %s: user already exists", user.ID)
	}
	r.users[user.ID] = user
	r.userIDs = append(r.userIDs, user.ID)
	return nil
}

// ListUsers returns all users in insertion order
func (r *MemoryRepo) ListUsers(_ context.Context) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]model.User, 0, len(r.userIDs))
	for _, id := range r.userIDs {
		users = append(users, r.users[id])
	}
	return users, nil
}

// CreateCollection stores a new collection owned by an existing user
func (r *MemoryRepo) CreateCollection(_ context.Context, collection model.Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[collection.UserID]; !ok {
		return fmt.Errorf("create collection for user %s: %w", collection.UserID, marketerrors.ErrUserNotFound)
	}
	collection.Owner = nil
	collection.Bids = nil
	r.collections[collection.ID] = collection
	r.colIDs = append(r.colIDs, collection.ID)
	return nil
}

// GetCollectionByID returns a collection with its owner and its bids sorted by
// price descending, each bid carrying its bidder
func (r *MemoryRepo) GetCollectionByID(_ context.Context, collectionID string) (model.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	collection, ok := r.collections[collectionID]
	if !ok {
		return model.Collection{}, fmt.Errorf("get collection %s: %w", collectionID, marketerrors.ErrCollectionNotFound)
	}

	collection.Owner = r.userRef(collection.UserID)
	bids := r.bidsForCollection(collectionID)
	sortBidsByPriceDesc(bids)
	collection.Bids = bids
	return collection, nil
}

// ListCollections returns all collections with owners, bids and bidders
func (r *MemoryRepo) ListCollections(_ context.Context) ([]model.Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	collections := make([]model.Collection, 0, len(r.colIDs))
	for _, id := range r.colIDs {
		collection := r.collections[id]
		collection.Owner = r.userRef(collection.UserID)
		collection.Bids = r.bidsForCollection(id)
		collections = append(collections, collection)
	}
	return collections, nil
}

// UpdateCollection replaces the mutable fields of an existing collection
func (r *MemoryRepo) UpdateCollection(_ context.Context, collection model.Collection) (model.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.collections[collection.ID]
	if !ok {
		return model.Collection{}, fmt.Errorf("update collection %s: %w", collection.ID, marketerrors.ErrCollectionNotFound)
	}

	current.Name = collection.Name
	current.Description = collection.Description
	current.Stock = collection.Stock
	current.Price = collection.Price
	current.UpdatedAt = time.Now().UTC()
	r.collections[current.ID] = current
	return current, nil
}

// DeleteCollection removes a collection and all of its bids. Both steps happen
// under the same lock so no reader ever sees orphaned bids.
func (r *MemoryRepo) DeleteCollection(_ context.Context, collectionID string) (model.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	collection, ok := r.collections[collectionID]
	if !ok {
		return model.Collection{}, fmt.Errorf("delete collection %s: %w", collectionID, marketerrors.ErrCollectionNotFound)
	}

	remaining := r.bidIDs[:0]
	for _, id := range r.bidIDs {
		if r.bids[id].CollectionID == collectionID {
			delete(r.bids, id)
			continue
		}
		remaining = append(remaining, id)
	}
	r.bidIDs = remaining

	delete(r.collections, collectionID)
	for i, id := range r.colIDs {
		if id == collectionID {
			r.colIDs = append(r.colIDs[:i], r.colIDs[i+1:]...)
			break
		}
	}
	return collection, nil
}

// RecordBidForCollection records a user's bid on a collection. The duplicate
// check and the insert run under the same lock, so two concurrent placements
// by the same user cannot both slip past the check.
func (r *MemoryRepo) RecordBidForCollection(_ context.Context, bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.collections[bid.CollectionID]; !ok {
		return fmt.Errorf("record bid for collection %s: %w", bid.CollectionID, marketerrors.ErrCollectionNotFound)
	}
	if _, ok := r.users[bid.UserID]; !ok {
		return fmt.Errorf("record bid by user %s: %w", bid.UserID, marketerrors.ErrUserNotFound)
	}
	for _, id := range r.bidIDs {
		existing := r.bids[id]
		if existing.CollectionID == bid.CollectionID && existing.UserID == bid.UserID {
			return fmt.Errorf("record bid by user %s on collection %s: %w", bid.UserID, bid.CollectionID, marketerrors.ErrDuplicateBid)
		}
	}

	bid.Bidder = nil
	r.bids[bid.ID] = bid
	r.bidIDs = append(r.bidIDs, bid.ID)
	return nil
}

// GetBidByID returns a bid with its bidder attached
func (r *MemoryRepo) GetBidByID(_ context.Context, bidID string) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bid, ok := r.bids[bidID]
	if !ok {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, marketerrors.ErrBidNotFound)
	}
	bid.Bidder = r.userRef(bid.UserID)
	return bid, nil
}

// GetBidsByCollection returns all bids for a collection ordered by price
// descending; ties keep insertion order
func (r *MemoryRepo) GetBidsByCollection(_ context.Context, collectionID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids := r.bidsForCollection(collectionID)
	sortBidsByPriceDesc(bids)

	out := make([]model.Bid, 0, len(bids))
	for _, b := range bids {
		out = append(out, *b)
	}
	return out, nil
}

// UpdateBidPrice replaces the price of a pending bid
func (r *MemoryRepo) UpdateBidPrice(_ context.Context, bidID string, price float64) (model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bid, ok := r.bids[bidID]
	if !ok {
		return model.Bid{}, fmt.Errorf("update bid %s: %w", bidID, marketerrors.ErrBidNotFound)
	}
	if bid.Status != model.BidStatusPending {
		return model.Bid{}, fmt.Errorf("update bid %s with status %s: %w", bidID, bid.Status, marketerrors.ErrBidNotPending)
	}

	bid.Price = price
	bid.UpdatedAt = time.Now().UTC()
	r.bids[bidID] = bid
	return bid, nil
}

// DeleteBid removes a pending bid
func (r *MemoryRepo) DeleteBid(_ context.Context, bidID string) (model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bid, ok := r.bids[bidID]
	if !ok {
		return model.Bid{}, fmt.Errorf("delete bid %s: %w", bidID, marketerrors.ErrBidNotFound)
	}
	if bid.Status != model.BidStatusPending {
		return model.Bid{}, fmt.Errorf("delete bid %s with status %s: %w", bidID, bid.Status, marketerrors.ErrBidNotPending)
	}

	delete(r.bids, bidID)
	for i, id := range r.bidIDs {
		if id == bidID {
			r.bidIDs = append(r.bidIDs[:i], r.bidIDs[i+1:]...)
			break
		}
	}
	return bid, nil
}

// AcceptBid marks the named bid ACCEPTED and every other bid on the same
// collection REJECTED. Both updates happen under the same lock, so readers
// never observe a collection with more than one accepted bid.
func (r *MemoryRepo) AcceptBid(_ context.Context, bidID, collectionID string) (model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bid, ok := r.bids[bidID]
	if !ok || bid.CollectionID != collectionID {
		return model.Bid{}, fmt.Errorf("accept bid %s on collection %s: %w", bidID, collectionID, marketerrors.ErrBidNotFound)
	}

	now := time.Now().UTC()
	bid.Status = model.BidStatusAccepted
	bid.UpdatedAt = now
	r.bids[bidID] = bid

	for _, id := range r.bidIDs {
		sibling := r.bids[id]
		if sibling.CollectionID == collectionID && sibling.ID != bidID {
			sibling.Status = model.BidStatusRejected
			sibling.UpdatedAt = now
			r.bids[id] = sibling
		}
	}

	bid.Bidder = r.userRef(bid.UserID)
	return bid, nil
}

// userRef returns a copy of the user for attaching to query results.
// Callers must hold at least the read lock.
func (r *MemoryRepo) userRef(userID string) *model.User {
	user, ok := r.users[userID]
	if !ok {
		return nil
	}
	return &user
}

// bidsForCollection returns copies of a collection's bids with bidders
// attached, in insertion order. Callers must hold at least the read lock.
func (r *MemoryRepo) bidsForCollection(collectionID string) []*model.Bid {
	var bids []*model.Bid
	for _, id := range r.bidIDs {
		bid := r.bids[id]
		if bid.CollectionID != collectionID {
			continue
		}
		bid.Bidder = r.userRef(bid.UserID)
		bids = append(bids, &bid)
	}
	return bids
}

func sortBidsByPriceDesc(bids []*model.Bid) {
	sort.SliceStable(bids, func(i, j int) bool {
		return bids[i].Price > bids[j].Price
	})
}
