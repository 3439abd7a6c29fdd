package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"bid-marketplace/internal/marketerrors"
	model "bid-marketplace/internal/models"

	"github.com/stretchr/testify/require"
)

// Helper to create a new User
func newUser(userID, name string) model.User {
	return model.User{
		ID:        userID,
		Name:      name,
		Email:     fmt.Sprintf("%s@example.com", userID),
		CreatedAt: time.Now().UTC(),
	}
}

// Helper to create a new Collection
func newCollection(collectionID, name, userID string, price float64) model.Collection {
	return model.Collection{
		ID:          collectionID,
		Name:        name,
		Description: fmt.Sprintf("%s description", name),
		Stock:       1,
		Price:       price,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

// Helper to create a new pending Bid
func newBid(bidID, collectionID, userID string, price float64) model.Bid {
	return model.Bid{
		ID:           bidID,
		Price:        price,
		Status:       model.BidStatusPending,
		UserID:       userID,
		CollectionID: collectionID,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
}

// seededRepo returns a repo with users u1..u5 and collection col1 owned by u1
func seededRepo(t *testing.T) *MemoryRepo {
	t.Helper()
	ctx := context.Background()

	repo := NewMemoryRepo()
	for i := 1; i <= 5; i++ {
		id := fmt.Sprintf("u%d", i)
		require.NoError(t, repo.CreateUser(ctx, newUser(id, fmt.Sprintf("User %d", i))))
	}
	require.NoError(t, repo.CreateCollection(ctx, newCollection("col1", "Collection 1", "u1", 100)))
	return repo
}

// Test RecordBidForCollection
func TestMemoryRepo_RecordBidForCollection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := seededRepo(t)

	tests := []struct {
		name      string
		bid       model.Bid
		wantError error
	}{
		{name: "valid_bid", bid: newBid("bid1", "col1", "u2", 120)},
		{name: "collection_not_found", bid: newBid("bid2", "colX", "u2", 120), wantError: marketerrors.ErrCollectionNotFound},
		{name: "user_not_found", bid: newBid("bid3", "col1", "ghost", 120), wantError: marketerrors.ErrUserNotFound},
		{name: "duplicate_user_collection", bid: newBid("bid4", "col1", "u2", 150), wantError: marketerrors.ErrDuplicateBid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := repo.RecordBidForCollection(ctx, tc.bid)
			if tc.wantError != nil {
				require.Error(t, err)
				require.True(t, errors.Is(err, tc.wantError), "expected error: %v, got: %v", tc.wantError, err)
			} else {
				require.NoError(t, err)
			}
		})
	}

	// concurrency test: distinct users never collide
	t.Run("concurrent_bids_distinct_users", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		repo := NewMemoryRepo()
		require.NoError(t, repo.CreateUser(ctx, newUser("owner", "Owner")))
		require.NoError(t, repo.CreateCollection(ctx, newCollection("col1", "Collection 1", "owner", 100)))

		concurrentCount := 50
		for i := 0; i < concurrentCount; i++ {
			require.NoError(t, repo.CreateUser(ctx, newUser(fmt.Sprintf("user-%d", i), "Bidder")))
		}

		var wg sync.WaitGroup
		for i := 0; i < concurrentCount; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				b := newBid(fmt.Sprintf("bid-%d", i), "col1", fmt.Sprintf("user-%d", i), float64(100+i))
				require.NoError(t, repo.RecordBidForCollection(ctx, b))
			}(i)
		}
		wg.Wait()

		bids, err := repo.GetBidsByCollection(ctx, "col1")
		require.NoError(t, err)
		require.Len(t, bids, concurrentCount)
	})

	// concurrency test: the same user racing itself gets exactly one bid through
	t.Run("concurrent_bids_same_user", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		repo := NewMemoryRepo()
		require.NoError(t, repo.CreateUser(ctx, newUser("owner", "Owner")))
		require.NoError(t, repo.CreateUser(ctx, newUser("racer", "Racer")))
		require.NoError(t, repo.CreateCollection(ctx, newCollection("col1", "Collection 1", "owner", 100)))

		var wg sync.WaitGroup
		var successes int64
		var mu sync.Mutex
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				err := repo.RecordBidForCollection(ctx, newBid(fmt.Sprintf("bid-%d", i), "col1", "racer", 100))
				if err == nil {
					mu.Lock()
					successes++
					mu.Unlock()
				} else {
					require.True(t, errors.Is(err, marketerrors.ErrDuplicateBid))
				}
			}(i)
		}
		wg.Wait()

		require.EqualValues(t, 1, successes)
	})
}

// Test GetBidsByCollection ordering
func TestMemoryRepo_GetBidsByCollection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := seededRepo(t)

	// insertion order 50, 200, 100 -> expect 200, 100, 50
	require.NoError(t, repo.RecordBidForCollection(ctx, newBid("bid-low", "col1", "u2", 50)))
	require.NoError(t, repo.RecordBidForCollection(ctx, newBid("bid-high", "col1", "u3", 200)))
	require.NoError(t, repo.RecordBidForCollection(ctx, newBid("bid-mid", "col1", "u4", 100)))

	bids, err := repo.GetBidsByCollection(ctx, "col1")
	require.NoError(t, err)
	require.Len(t, bids, 3)
	require.Equal(t, []float64{200, 100, 50}, []float64{bids[0].Price, bids[1].Price, bids[2].Price})

	// bidder identity rides along with each bid
	require.NotNil(t, bids[0].Bidder)
	require.Equal(t, "u3", bids[0].Bidder.ID)
	require.Equal(t, "User 3", bids[0].Bidder.Name)

	t.Run("price_ties_keep_insertion_order", func(t *testing.T) {
		repo := seededRepo(t)
		require.NoError(t, repo.RecordBidForCollection(ctx, newBid("tie-first", "col1", "u2", 75)))
		require.NoError(t, repo.RecordBidForCollection(ctx, newBid("tie-second", "col1", "u3", 75)))

		bids, err := repo.GetBidsByCollection(ctx, "col1")
		require.NoError(t, err)
		require.Equal(t, "tie-first", bids[0].ID)
		require.Equal(t, "tie-second", bids[1].ID)
	})

	t.Run("unknown_collection_returns_empty", func(t *testing.T) {
		bids, err := repo.GetBidsByCollection(ctx, "missing")
		require.NoError(t, err)
		require.Empty(t, bids)
	})
}

// Test AcceptBid
func TestMemoryRepo_AcceptBid(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := seededRepo(t)

	require.NoError(t, repo.RecordBidForCollection(ctx, newBid("bid-b", "col1", "u2", 120)))
	require.NoError(t, repo.RecordBidForCollection(ctx, newBid("bid-x", "col1", "u3", 90)))
	require.NoError(t, repo.RecordBidForCollection(ctx, newBid("bid-y", "col1", "u4", 110)))

	accepted, err := repo.AcceptBid(ctx, "bid-b", "col1")
	require.NoError(t, err)
	require.Equal(t, model.BidStatusAccepted, accepted.Status)
	require.NotNil(t, accepted.Bidder)
	require.Equal(t, "u2", accepted.Bidder.ID)

	bids, err := repo.GetBidsByCollection(ctx, "col1")
	require.NoError(t, err)

	acceptedCount := 0
	for _, b := range bids {
		switch b.ID {
		case "bid-b":
			require.Equal(t, model.BidStatusAccepted, b.Status)
		default:
			require.Equal(t, model.BidStatusRejected, b.Status)
		}
		if b.Status == model.BidStatusAccepted {
			acceptedCount++
		}
	}
	require.Equal(t, 1, acceptedCount)

	t.Run("bid_not_found", func(t *testing.T) {
		_, err := repo.AcceptBid(ctx, "ghost", "col1")
		require.True(t, errors.Is(err, marketerrors.ErrBidNotFound))
	})

	t.Run("bid_on_wrong_collection", func(t *testing.T) {
		repo := seededRepo(t)
		require.NoError(t, repo.CreateCollection(ctx, newCollection("col2", "Collection 2", "u1", 80)))
		require.NoError(t, repo.RecordBidForCollection(ctx, newBid("bid-other", "col2", "u2", 90)))

		_, err := repo.AcceptBid(ctx, "bid-other", "col1")
		require.True(t, errors.Is(err, marketerrors.ErrBidNotFound))

		// nothing changed on either collection
		bid, err := repo.GetBidByID(ctx, "bid-other")
		require.NoError(t, err)
		require.Equal(t, model.BidStatusPending, bid.Status)
	})
}

// Test UpdateBidPrice
func TestMemoryRepo_UpdateBidPrice(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := seededRepo(t)
	require.NoError(t, repo.RecordBidForCollection(ctx, newBid("bid1", "col1", "u2", 100)))

	updated, err := repo.UpdateBidPrice(ctx, "bid1", 150)
	require.NoError(t, err)
	require.Equal(t, 150.0, updated.Price)
	require.Equal(t, model.BidStatusPending, updated.Status)
	require.Equal(t, "bid1", updated.ID)
	require.Equal(t, "u2", updated.UserID)
	require.Equal(t, "col1", updated.CollectionID)

	t.Run("bid_not_found", func(t *testing.T) {
		_, err := repo.UpdateBidPrice(ctx, "ghost", 150)
		require.True(t, errors.Is(err, marketerrors.ErrBidNotFound))
	})

	t.Run("bid_not_pending", func(t *testing.T) {
		_, err := repo.AcceptBid(ctx, "bid1", "col1")
		require.NoError(t, err)

		_, err = repo.UpdateBidPrice(ctx, "bid1", 200)
		require.True(t, errors.Is(err, marketerrors.ErrBidNotPending))
	})
}

// Test DeleteBid
func TestMemoryRepo_DeleteBid(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := seededRepo(t)
	require.NoError(t, repo.RecordBidForCollection(ctx, newBid("bid1", "col1", "u2", 100)))
	require.NoError(t, repo.RecordBidForCollection(ctx, newBid("bid2", "col1", "u3", 90)))

	deleted, err := repo.DeleteBid(ctx, "bid1")
	require.NoError(t, err)
	require.Equal(t, "bid1", deleted.ID)

	_, err = repo.GetBidByID(ctx, "bid1")
	require.True(t, errors.Is(err, marketerrors.ErrBidNotFound))

	t.Run("bid_not_pending", func(t *testing.T) {
		_, err := repo.AcceptBid(ctx, "bid2", "col1")
		require.NoError(t, err)

		_, err = repo.DeleteBid(ctx, "bid2")
		require.True(t, errors.Is(err, marketerrors.ErrBidNotPending))
	})
}

// Test collection CRUD and cascade delete
func TestMemoryRepo_Collections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := seededRepo(t)

	t.Run("get_includes_owner_and_sorted_bids", func(t *testing.T) {
		require.NoError(t, repo.RecordBidForCollection(ctx, newBid("bid1", "col1", "u2", 50)))
		require.NoError(t, repo.RecordBidForCollection(ctx, newBid("bid2", "col1", "u3", 200)))

		collection, err := repo.GetCollectionByID(ctx, "col1")
		require.NoError(t, err)
		require.NotNil(t, collection.Owner)
		require.Equal(t, "u1", collection.Owner.ID)
		require.Len(t, collection.Bids, 2)
		require.Equal(t, "bid2", collection.Bids[0].ID)
		require.NotNil(t, collection.Bids[0].Bidder)
	})

	t.Run("update_replaces_mutable_fields", func(t *testing.T) {
		updated, err := repo.UpdateCollection(ctx, model.Collection{
			ID:          "col1",
			Name:        "Renamed",
			Description: "new description",
			Stock:       3,
			Price:       250,
		})
		require.NoError(t, err)
		require.Equal(t, "Renamed", updated.Name)
		require.Equal(t, 3, updated.Stock)
		require.Equal(t, 250.0, updated.Price)
		require.Equal(t, "u1", updated.UserID) // owner untouched
	})

	t.Run("update_missing_collection", func(t *testing.T) {
		_, err := repo.UpdateCollection(ctx, model.Collection{ID: "ghost", Name: "x", Stock: 1, Price: 1})
		require.True(t, errors.Is(err, marketerrors.ErrCollectionNotFound))
	})

	t.Run("cascade_delete_removes_all_bids", func(t *testing.T) {
		repo := seededRepo(t)
		for i := 2; i <= 5; i++ {
			bid := newBid(fmt.Sprintf("bid%d", i), "col1", fmt.Sprintf("u%d", i), float64(100+i))
			require.NoError(t, repo.RecordBidForCollection(ctx, bid))
		}

		deleted, err := repo.DeleteCollection(ctx, "col1")
		require.NoError(t, err)
		require.Equal(t, "col1", deleted.ID)

		_, err = repo.GetCollectionByID(ctx, "col1")
		require.True(t, errors.Is(err, marketerrors.ErrCollectionNotFound))

		for i := 2; i <= 5; i++ {
			_, err := repo.GetBidByID(ctx, fmt.Sprintf("bid%d", i))
			require.True(t, errors.Is(err, marketerrors.ErrBidNotFound))
		}

		bids, err := repo.GetBidsByCollection(ctx, "col1")
		require.NoError(t, err)
		require.Empty(t, bids)
	})

	t.Run("delete_missing_collection", func(t *testing.T) {
		_, err := repo.DeleteCollection(ctx, "ghost")
		require.True(t, errors.Is(err, marketerrors.ErrCollectionNotFound))
	})

	t.Run("create_requires_existing_owner", func(t *testing.T) {
		err := repo.CreateCollection(ctx, newCollection("col-orphan", "Orphan", "ghost", 10))
		require.True(t, errors.Is(err, marketerrors.ErrUserNotFound))
	})
}

// Test users
func TestMemoryRepo_Users(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepo()

	require.NoError(t, repo.CreateUser(ctx, newUser("u1", "First")))
	require.NoError(t, repo.CreateUser(ctx, newUser("u2", "Second")))
	require.Error(t, repo.CreateUser(ctx, newUser("u1", "Duplicate")))

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "u1", users[0].ID)
	require.Equal(t, "u2", users[1].ID)
}
