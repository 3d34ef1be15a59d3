package handlers

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rateport/store-ratings/internal/httperr"
	"github.com/rateport/store-ratings/internal/httpresp"
	"github.com/rateport/store-ratings/internal/models"
)

type UserHandler struct {
	db   *gorm.DB
	slog *slog.Logger
}

func NewUserHandler(db *gorm.DB, sl *slog.Logger) *UserHandler {
	return &UserHandler{db: db, slog: sl}
}

type UserDetailRow struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	StoreRating float64   `json:"store_rating"`
	StoreName   *string   `json:"store_name"`
	StoreID     *uint     `json:"store_id"`
}

func (h *UserHandler) GetDetails(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Invalid user ID")
		return
	}

	var row UserDetailRow
	result := h.db.
		Table("users u").
		Select("u.id, u.name, u.email, u.address, u.role, u.created_at, "+
			"COALESCE(AVG(r.rating), 0) AS store_rating, s.name AS store_name, s.id AS store_id").
		Joins("LEFT JOIN stores s ON u.id = s.owner_id AND u.role = ?", models.RoleStoreOwner).
		Joins("LEFT JOIN ratings r ON s.id = r.store_id").
		Where("u.id = ?", userID).
		Group("u.id, u.name, u.email, u.address, u.role, u.created_at, s.name, s.id").
		Scan(&row)

	if result.Error != nil {
		h.slog.Error("user details: query failed", "err", result.Error)
		httperr.Internal(c)
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "User not found")
		return
	}

	httpresp.OK(c, row)
}
