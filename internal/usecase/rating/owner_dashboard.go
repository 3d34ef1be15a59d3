package rating

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/rateport/store-ratings/internal/domain/rating"
	"github.com/rateport/store-ratings/internal/httperr"
)

type OwnerDashboardResult struct {
	Store         StoreSummary        `json:"store"`
	AverageRating string              `json:"averageRating"`
	RatingUsers   []domain.RaterEntry `json:"ratingUsers"`
}

type StoreSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type OwnerDashboard struct {
	repo domain.Repository
}

func NewOwnerDashboard(repo domain.Repository) *OwnerDashboard {
	return &OwnerDashboard{repo: repo}
}

func (uc *OwnerDashboard) Execute(
	ctx context.Context,
	ownerID uint,
) (*OwnerDashboardResult, error) {

	store, err := uc.repo.GetStoreByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(domain.CodeNoOwnedStore)
		}
		return nil, err
	}

	avg, err := uc.repo.AverageForStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	raters, err := uc.repo.ListRatersForStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	if raters == nil {
		raters = []domain.RaterEntry{}
	}

	return &OwnerDashboardResult{
		Store:         StoreSummary{ID: store.ID, Name: store.Name},
		AverageRating: fmt.Sprintf("%.1f", avg),
		RatingUsers:   raters,
	}, nil
}
