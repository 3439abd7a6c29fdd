package models

import (
	"time"

	"github.com/uptrace/bun"
)

// BidStatus is the lifecycle state of a bid
type BidStatus string

const (
	BidStatusPending  BidStatus = "PENDING"
	BidStatusAccepted BidStatus = "ACCEPTED"
	BidStatusRejected BidStatus = "REJECTED"
)

// User represents a marketplace participant
type User struct {
	bun.BaseModel `bun:"table:users,alias:u" json:"-"`

	ID        string    `bun:"id,pk" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Email     string    `bun:"email,notnull,unique" json:"email"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
}

// Collection represents an item listing open for bidding
type Collection struct {
	bun.BaseModel `bun:"table:collections,alias:c" json:"-"`

	ID          string    `bun:"id,pk" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description" json:"description"`
	Stock       int       `bun:"stock,notnull" json:"stock"`
	Price       float64   `bun:"price,notnull" json:"price"`
	UserID      string    `bun:"user_id,notnull" json:"userId"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,notnull" json:"updatedAt"`

	Owner *User  `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Bids  []*Bid `bun:"rel:has-many,join:id=collection_id" json:"bids,omitempty"`
}

// Bid represents a user's offer on a collection
type Bid struct {
	bun.BaseModel `bun:"table:bids,alias:b" json:"-"`

	ID           string    `bun:"id,pk" json:"id"`
	Price        float64   `bun:"price,notnull" json:"price"`
	Status       BidStatus `bun:"status,notnull" json:"status"`
	UserID       string    `bun:"user_id,notnull" json:"userId"`
	CollectionID string    `bun:"collection_id,notnull" json:"collectionId"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt    time.Time `bun:"updated_at,notnull" json:"updatedAt"`

	Bidder *User `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
}
