package rating

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rateport/store-ratings/internal/audit"
	domain "github.com/rateport/store-ratings/internal/domain/rating"
	"github.com/rateport/store-ratings/internal/httperr"
)

// ======================================================
// INPUT
// ======================================================

type SubmitRatingInput struct {
	UserID  uint
	StoreID uint
	Rating  int
}

// ======================================================
// USE CASE
// ======================================================

type SubmitRating struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSubmitRating(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SubmitRating {
	return &SubmitRating{
		repo:  repo,
		audit: audit,
	}
}

func (uc *SubmitRating) Execute(
	ctx context.Context,
	in SubmitRatingInput,
) error {

	if err := domain.ValidateValue(in.Rating); err != nil {
		return err
	}

	store, err := uc.repo.GetStoreByID(ctx, in.StoreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness(domain.CodeStoreNotFound)
		}
		return err
	}

	if err := uc.repo.Upsert(ctx, in.UserID, store.ID, in.Rating); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "rating_submitted",
		Entity:   "store",
		EntityID: &store.ID,
		Metadata: map[string]int{"rating": in.Rating},
	})

	return nil
}
