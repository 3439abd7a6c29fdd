package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"bid-marketplace/internal/marketerrors"
	model "bid-marketplace/internal/models"
)

// PostgresRepo is the bun-backed implementation of MarketplaceDB
type PostgresRepo struct {
	db *bun.DB
}

// NewPostgresRepo creates a repository over an existing bun.DB
func NewPostgresRepo(db *bun.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// OpenBunDB opens a Postgres connection through pgdriver for the given DSN
func OpenBunDB(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// EnsureSchema creates the marketplace tables and indexes if they do not exist
func (r *PostgresRepo) EnsureSchema(ctx context.Context) error {
	tables := []any{
		(*model.User)(nil),
		(*model.Collection)(nil),
		(*model.Bid)(nil),
	}
	for _, table := range tables {
		if _, err := r.db.NewCreateTable().Model(table).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	if _, err := r.db.NewCreateIndex().
		Model((*model.Bid)(nil)).
		Index("bids_collection_id_idx").
		Column("collection_id").
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("ensure schema: create bid index: %w", err)
	}
	return nil
}

// CreateUser stores a new user
func (r *PostgresRepo) CreateUser(ctx context.Context, user model.User) error {
	if _, err := r.db.NewInsert().Model(&user).Exec(ctx); err != nil {
		return fmt.Errorf("create user %s: %w", user.ID, err)
	}
	return nil
}

// ListUsers returns all users ordered by creation time
func (r *PostgresRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.NewSelect().
		Model(&users).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// CreateCollection stores a new collection after verifying the owner exists
func (r *PostgresRepo) CreateCollection(ctx context.Context, collection model.Collection) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*model.User)(nil)).
			Where("id = ?", collection.UserID).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("create collection: check owner: %w", err)
		}
		if !exists {
			return fmt.Errorf("create collection for user %s: %w", collection.UserID, marketerrors.ErrUserNotFound)
		}

		if _, err := tx.NewInsert().Model(&collection).Exec(ctx); err != nil {
			return fmt.Errorf("create collection %s: %w", collection.ID, err)
		}
		return nil
	})
}

// GetCollectionByID returns a collection with its owner and its bids sorted by
// price descending, each bid carrying its bidder
func (r *PostgresRepo) GetCollectionByID(ctx context.Context, collectionID string) (model.Collection, error) {
	collection := new(model.Collection)
	err := r.db.NewSelect().
		Model(collection).
		Relation("Owner").
		Relation("Bids", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("price DESC").Order("created_at ASC")
		}).
		Relation("Bids.Bidder").
		Where("c.id = ?", collectionID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Collection{}, fmt.Errorf("get collection %s: %w", collectionID, marketerrors.ErrCollectionNotFound)
		}
		return model.Collection{}, fmt.Errorf("get collection %s: %w", collectionID, err)
	}
	return *collection, nil
}

// ListCollections returns all collections with owners, bids and bidders
func (r *PostgresRepo) ListCollections(ctx context.Context) ([]model.Collection, error) {
	var collections []model.Collection
	err := r.db.NewSelect().
		Model(&collections).
		Relation("Owner").
		Relation("Bids").
		Relation("Bids.Bidder").
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return collections, nil
}

// UpdateCollection replaces the mutable fields of an existing collection
func (r *PostgresRepo) UpdateCollection(ctx context.Context, collection model.Collection) (model.Collection, error) {
	var updated model.Collection
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(&updated).
			Where("c.id = ?", collection.ID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("update collection %s: %w", collection.ID, marketerrors.ErrCollectionNotFound)
			}
			return fmt.Errorf("update collection %s: %w", collection.ID, err)
		}

		updated.Name = collection.Name
		updated.Description = collection.Description
		updated.Stock = collection.Stock
		updated.Price = collection.Price
		updated.UpdatedAt = time.Now().UTC()

		if _, err := tx.NewUpdate().
			Model(&updated).
			Column("name", "description", "stock", "price", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("update collection %s: %w", collection.ID, err)
		}
		return nil
	})
	if err != nil {
		return model.Collection{}, err
	}
	return updated, nil
}

// DeleteCollection removes a collection and all of its bids in one transaction
func (r *PostgresRepo) DeleteCollection(ctx context.Context, collectionID string) (model.Collection, error) {
	var deleted model.Collection
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(&deleted).
			Where("c.id = ?", collectionID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("delete collection %s: %w", collectionID, marketerrors.ErrCollectionNotFound)
			}
			return fmt.Errorf("delete collection %s: %w", collectionID, err)
		}

		if _, err := tx.NewDelete().
			Model((*model.Bid)(nil)).
			Where("collection_id = ?", collectionID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete collection %s: delete bids: %w", collectionID, err)
		}

		if _, err := tx.NewDelete().
			Model((*model.Collection)(nil)).
			Where("id = ?", collectionID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete collection %s: %w", collectionID, err)
		}
		return nil
	})
	if err != nil {
		return model.Collection{}, err
	}
	return deleted, nil
}

// RecordBidForCollection inserts a bid after checking, inside the same
// transaction, that the collection exists and the user has no bid on it yet
func (r *PostgresRepo) RecordBidForCollection(ctx context.Context, bid model.Bid) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Model((*model.Collection)(nil)).
			Where("id = ?", bid.CollectionID).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("record bid: check collection: %w", err)
		}
		if !exists {
			return fmt.Errorf("record bid for collection %s: %w", bid.CollectionID, marketerrors.ErrCollectionNotFound)
		}

		exists, err = tx.NewSelect().
			Model((*model.User)(nil)).
			Where("id = ?", bid.UserID).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("record bid: check user: %w", err)
		}
		if !exists {
			return fmt.Errorf("record bid by user %s: %w", bid.UserID, marketerrors.ErrUserNotFound)
		}

		exists, err = tx.NewSelect().
			Model((*model.Bid)(nil)).
			Where("collection_id = ? AND user_id = ?", bid.CollectionID, bid.UserID).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("record bid: check duplicate: %w", err)
		}
		if exists {
			return fmt.Errorf("record bid by user %s on collection %s: %w", bid.UserID, bid.CollectionID, marketerrors.ErrDuplicateBid)
		}

		if _, err := tx.NewInsert().Model(&bid).Exec(ctx); err != nil {
			return fmt.Errorf("record bid %s: %w", bid.ID, err)
		}
		return nil
	})
}

// GetBidByID returns a bid with its bidder attached
func (r *PostgresRepo) GetBidByID(ctx context.Context, bidID string) (model.Bid, error) {
	bid := new(model.Bid)
	err := r.db.NewSelect().
		Model(bid).
		Relation("Bidder").
		Where("b.id = ?", bidID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, marketerrors.ErrBidNotFound)
		}
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, err)
	}
	return *bid, nil
}

// GetBidsByCollection returns all bids for a collection ordered by price
// descending, each with its bidder
func (r *PostgresRepo) GetBidsByCollection(ctx context.Context, collectionID string) ([]model.Bid, error) {
	var bids []model.Bid
	err := r.db.NewSelect().
		Model(&bids).
		Relation("Bidder").
		Where("collection_id = ?", collectionID).
		Order("price DESC").
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("get bids for collection %s: %w", collectionID, err)
	}
	return bids, nil
}

// UpdateBidPrice replaces the price of a pending bid
func (r *PostgresRepo) UpdateBidPrice(ctx context.Context, bidID string, price float64) (model.Bid, error) {
	var updated model.Bid
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(&updated).
			Where("b.id = ?", bidID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("update bid %s: %w", bidID, marketerrors.ErrBidNotFound)
			}
			return fmt.Errorf("update bid %s: %w", bidID, err)
		}
		if updated.Status != model.BidStatusPending {
			return fmt.Errorf("update bid %s with status %s: %w", bidID, updated.Status, marketerrors.ErrBidNotPending)
		}

		updated.Price = price
		updated.UpdatedAt = time.Now().UTC()

		if _, err := tx.NewUpdate().
			Model(&updated).
			Column("price", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return fmt.Errorf("update bid %s: %w", bidID, err)
		}
		return nil
	})
	if err != nil {
		return model.Bid{}, err
	}
	return updated, nil
}

// DeleteBid removes a pending bid
func (r *PostgresRepo) DeleteBid(ctx context.Context, bidID string) (model.Bid, error) {
	var deleted model.Bid
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(&deleted).
			Where("b.id = ?", bidID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("delete bid %s: %w", bidID, marketerrors.ErrBidNotFound)
			}
			return fmt.Errorf("delete bid %s: %w", bidID, err)
		}
		if deleted.Status != model.BidStatusPending {
			return fmt.Errorf("delete bid %s with status %s: %w", bidID, deleted.Status, marketerrors.ErrBidNotPending)
		}

		if _, err := tx.NewDelete().
			Model((*model.Bid)(nil)).
			Where("id = ?", bidID).
			Exec(ctx); err != nil {
			return fmt.Errorf("delete bid %s: %w", bidID, err)
		}
		return nil
	})
	if err != nil {
		return model.Bid{}, err
	}
	return deleted, nil
}

// AcceptBid marks the named bid ACCEPTED and every other bid on the same
// collection REJECTED in a single transaction. Either both updates commit or
// neither does.
func (r *PostgresRepo) AcceptBid(ctx context.Context, bidID, collectionID string) (model.Bid, error) {
	var accepted model.Bid
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now().UTC()

		res, err := tx.NewUpdate().
			Model((*model.Bid)(nil)).
			Set("status = ?", model.BidStatusAccepted).
			Set("updated_at = ?", now).
			Where("id = ? AND collection_id = ?", bidID, collectionID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("accept bid %s: %w", bidID, err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("accept bid %s: rows affected: %w", bidID, err)
		}
		if rows == 0 {
			return fmt.Errorf("accept bid %s on collection %s: %w", bidID, collectionID, marketerrors.ErrBidNotFound)
		}

		if _, err := tx.NewUpdate().
			Model((*model.Bid)(nil)).
			Set("status = ?", model.BidStatusRejected).
			Set("updated_at = ?", now).
			Where("collection_id = ? AND id != ?", collectionID, bidID).
			Exec(ctx); err != nil {
			return fmt.Errorf("accept bid %s: reject siblings: %w", bidID, err)
		}

		if err := tx.NewSelect().
			Model(&accepted).
			Relation("Bidder").
			Where("b.id = ?", bidID).
			Scan(ctx); err != nil {
			return fmt.Errorf("accept bid %s: reload: %w", bidID, err)
		}
		return nil
	})
	if err != nil {
		return model.Bid{}, err
	}
	return accepted, nil
}
