package rating

import (
	"context"
	"time"

	"github.com/rateport/store-ratings/internal/models"
)

// RaterEntry is one row of a store owner's feedback list.
type RaterEntry struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	// -------- Store lookups --------
	GetStoreByID(
		ctx context.Context,
		id uint,
	) (*models.Store, error)

	GetStoreByOwner(
		ctx context.Context,
		ownerID uint,
	) (*models.Store, error)

	// -------- Rating (upsert) --------
	// Upsert relies on the (user_id, store_id) unique index: a concurrent
	// duplicate submission resolves to an update, never a second row.
	Upsert(
		ctx context.Context,
		userID uint,
		storeID uint,
		value int,
	) error

	// -------- Aggregates --------
	AverageForStore(
		ctx context.Context,
		storeID uint,
	) (float64, error)

	ListRatersForStore(
		ctx context.Context,
		storeID uint,
	) ([]RaterEntry, error)
}
