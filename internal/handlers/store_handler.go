package handlers

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/rateport/store-ratings/internal/domain/rating"
	"github.com/rateport/store-ratings/internal/httperr"
	"github.com/rateport/store-ratings/internal/httpresp"
	"github.com/rateport/store-ratings/internal/middleware"
	"github.com/rateport/store-ratings/internal/query"
	ucRating "github.com/rateport/store-ratings/internal/usecase/rating"
)

type StoreHandler struct {
	db             *gorm.DB
	submitRating   *ucRating.SubmitRating
	ownerDashboard *ucRating.OwnerDashboard
	slog           *slog.Logger
}

func NewStoreHandler(
	db *gorm.DB,
	submitRating *ucRating.SubmitRating,
	ownerDashboard *ucRating.OwnerDashboard,
	sl *slog.Logger,
) *StoreHandler {
	return &StoreHandler{
		db:             db,
		submitRating:   submitRating,
		ownerDashboard: ownerDashboard,
		slog:           sl,
	}
}

// --------- Requests ---------

type RateRequest struct {
	StoreID uint `json:"storeId"`
	Rating  int  `json:"rating"`
}

// --------- Rows ---------

type StoreRow struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"created_at"`
	OverallRating float64   `json:"overall_rating"`
	UserRating    *int      `json:"user_rating"`
}

// ======================================================
// LIST (viewer sees their own rating per store)
// ======================================================

func (h *StoreHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		httperr.Unauthorized(c, "Access token required")
		return
	}

	order, err := query.OrderClause(query.UserStoreSortKeys, c.Query("sortBy"), c.Query("sortOrder"))
	if err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	conds := []string{"1=1"}
	args := []any{}
	query.ContainsFilter(&conds, &args, "s.name", c.Query("name"))
	query.ContainsFilter(&conds, &args, "s.address", c.Query("address"))

	var rows []StoreRow
	if err := h.db.
		Table("stores s").
		Select("s.id, s.name, s.address, s.created_at, "+
			"COALESCE(AVG(r.rating), 0) AS overall_rating, "+
			"(SELECT ur.rating FROM ratings ur WHERE ur.store_id = s.id AND ur.user_id = ?) AS user_rating",
			user.ID).
		Joins("LEFT JOIN ratings r ON s.id = r.store_id").
		Where(strings.Join(conds, " AND "), args...).
		Group("s.id, s.name, s.address, s.created_at").
		Order(order).
		Scan(&rows).Error; err != nil {
		h.slog.Error("list stores for user: query failed", "err", err)
		httperr.Internal(c)
		return
	}

	if rows == nil {
		rows = []StoreRow{}
	}
	httpresp.OK(c, rows)
}

// ======================================================
// RATE (idempotent upsert)
// ======================================================

func (h *StoreHandler) Rate(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		httperr.Unauthorized(c, "Access token required")
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	var errs []httperr.FieldError
	if req.StoreID < 1 {
		errs = append(errs, httperr.FieldError{Path: "storeId", Msg: "Valid store ID is required"})
	}
	if req.Rating < domain.MinValue || req.Rating > domain.MaxValue {
		errs = append(errs, httperr.FieldError{Path: "rating", Msg: "Rating must be between 1 and 5"})
	}
	if len(errs) > 0 {
		httperr.Fields(c, errs)
		return
	}

	err := h.submitRating.Execute(c.Request.Context(), ucRating.SubmitRatingInput{
		UserID:  user.ID,
		StoreID: req.StoreID,
		Rating:  req.Rating,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, domain.CodeStoreNotFound):
			httperr.NotFound(c, "Store not found")
		case httperr.IsBusiness(err, domain.CodeInvalidValue):
			httperr.BadRequest(c, "Rating must be between 1 and 5")
		default:
			h.slog.Error("rate: submit failed", "err", err)
			httperr.Internal(c)
		}
		return
	}

	httpresp.Message(c, "Rating submitted successfully")
}

// ======================================================
// OWNER DASHBOARD
// ======================================================

func (h *StoreHandler) OwnerDashboard(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		httperr.Unauthorized(c, "Access token required")
		return
	}

	result, err := h.ownerDashboard.Execute(c.Request.Context(), user.ID)
	if err != nil {
		if httperr.IsBusiness(err, domain.CodeNoOwnedStore) {
			httperr.NotFound(c, "No store found for this owner")
			return
		}
		h.slog.Error("owner dashboard: query failed", "err", err)
		httperr.Internal(c)
		return
	}

	httpresp.OK(c, result)
}
