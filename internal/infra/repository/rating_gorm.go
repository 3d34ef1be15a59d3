package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/rateport/store-ratings/internal/domain/rating"
	"github.com/rateport/store-ratings/internal/models"
)

type RatingGormRepository struct {
	db *gorm.DB
}

func NewRatingGormRepository(db *gorm.DB) *RatingGormRepository {
	return &RatingGormRepository{db: db}
}

// --------------------------------------------------
// Store lookups
// --------------------------------------------------

func (r *RatingGormRepository) GetStoreByID(
	ctx context.Context,
	id uint,
) (*models.Store, error) {

	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *RatingGormRepository) GetStoreByOwner(
	ctx context.Context,
	ownerID uint,
) (*models.Store, error) {

	var store models.Store
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// --------------------------------------------------
// Rating upsert
// --------------------------------------------------

func (r *RatingGormRepository) Upsert(
	ctx context.Context,
	userID uint,
	storeID uint,
	value int,
) error {

	row := models.Rating{
		UserID:  userID,
		StoreID: storeID,
		Rating:  value,
	}

	// created_at survives the conflict path; only rating and updated_at move.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"rating":     value,
			"updated_at": time.Now(),
		}),
	}).Create(&row).Error
}

// --------------------------------------------------
// Aggregates
// --------------------------------------------------

func (r *RatingGormRepository) AverageForStore(
	ctx context.Context,
	storeID uint,
) (float64, error) {

	var avg float64
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("COALESCE(AVG(rating), 0)").
		Where("store_id = ?", storeID).
		Scan(&avg).Error
	return avg, err
}

func (r *RatingGormRepository) ListRatersForStore(
	ctx context.Context,
	storeID uint,
) ([]domain.RaterEntry, error) {

	var entries []domain.RaterEntry
	err := r.db.WithContext(ctx).
		Table("ratings r").
		Select("u.name, u.email, r.rating, r.created_at").
		Joins("JOIN users u ON r.user_id = u.id").
		Where("r.store_id = ?", storeID).
		Order("r.created_at DESC").
		Scan(&entries).Error
	return entries, err
}
