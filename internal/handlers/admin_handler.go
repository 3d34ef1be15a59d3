package handlers

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rateport/store-ratings/internal/audit"
	"github.com/rateport/store-ratings/internal/httperr"
	"github.com/rateport/store-ratings/internal/httpresp"
	"github.com/rateport/store-ratings/internal/middleware"
	"github.com/rateport/store-ratings/internal/models"
	"github.com/rateport/store-ratings/internal/query"
	"github.com/rateport/store-ratings/internal/stats"
	"github.com/rateport/store-ratings/internal/validators"
)

type AdminHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	stats *stats.Cache
	slog  *slog.Logger
}

func NewAdminHandler(db *gorm.DB, ad *audit.Dispatcher, sc *stats.Cache, sl *slog.Logger) *AdminHandler {
	return &AdminHandler{db: db, audit: ad, stats: sc, slog: sl}
}

// --------- Requests ---------

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

type CreateStoreRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	OwnerID *uint  `json:"ownerId"`
}

// --------- Rows ---------

type UserRow struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	StoreRating float64   `json:"store_rating"`
}

type AdminStoreRow struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	Rating    float64   `json:"rating"`
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, ok := h.stats.Get(ctx); ok {
		httpresp.OK(c, cached)
		return
	}

	var s stats.GlobalStats
	if err := h.db.Model(&models.User{}).Count(&s.TotalUsers).Error; err != nil {
		h.slog.Error("dashboard: user count failed", "err", err)
		httperr.Internal(c)
		return
	}
	if err := h.db.Model(&models.Store{}).Count(&s.TotalStores).Error; err != nil {
		h.slog.Error("dashboard: store count failed", "err", err)
		httperr.Internal(c)
		return
	}
	if err := h.db.Model(&models.Rating{}).Count(&s.TotalRatings).Error; err != nil {
		h.slog.Error("dashboard: rating count failed", "err", err)
		httperr.Internal(c)
		return
	}

	h.stats.Set(ctx, &s)
	httpresp.OK(c, &s)
}

// ======================================================
// CREATE USER
// ======================================================

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	if errs := validators.AdminCreateUser(req.Name, req.Email, req.Password, req.Address, req.Role); len(errs) > 0 {
		httperr.Fields(c, errs)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := h.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		h.slog.Error("create user: email lookup failed", "err", err)
		httperr.Internal(c)
		return
	}
	if count > 0 {
		httperr.BadRequest(c, "User already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		h.slog.Error("create user: hash failed", "err", err)
		httperr.Internal(c)
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Address:      req.Address,
		Role:         req.Role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		h.slog.Error("create user: create failed", "err", err)
		httperr.Internal(c)
		return
	}

	admin := middleware.CurrentUser(c)
	h.audit.Dispatch(audit.Event{
		UserID:   adminID(admin),
		Action:   "user_created",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]string{"role": user.Role},
	})

	httpresp.Created(c, gin.H{
		"message": "User created successfully",
		"userId":  user.ID,
	})
}

// ======================================================
// CREATE STORE
// ======================================================

func (h *AdminHandler) CreateStore(c *gin.Context) {
	var req CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	if errs := validators.CreateStore(req.Name, req.Email, req.Address); len(errs) > 0 {
		httperr.Fields(c, errs)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := h.db.Model(&models.Store{}).Where("email = ?", email).Count(&count).Error; err != nil {
		h.slog.Error("create store: email lookup failed", "err", err)
		httperr.Internal(c)
		return
	}
	if count > 0 {
		httperr.BadRequest(c, "Store already exists")
		return
	}

	// Owner role is validated at assignment time only; a later role change
	// does not detach the store.
	if req.OwnerID != nil {
		var owners int64
		if err := h.db.Model(&models.User{}).
			Where("id = ? AND role = ?", *req.OwnerID, models.RoleStoreOwner).
			Count(&owners).Error; err != nil {
			h.slog.Error("create store: owner lookup failed", "err", err)
			httperr.Internal(c)
			return
		}
		if owners == 0 {
			httperr.BadRequest(c, "Invalid owner ID or user is not a store owner")
			return
		}
	}

	store := models.Store{
		Name:    req.Name,
		Email:   email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	}

	if err := h.db.Create(&store).Error; err != nil {
		h.slog.Error("create store: create failed", "err", err)
		httperr.Internal(c)
		return
	}

	admin := middleware.CurrentUser(c)
	h.audit.Dispatch(audit.Event{
		UserID:   adminID(admin),
		Action:   "store_created",
		Entity:   "store",
		EntityID: &store.ID,
	})

	httpresp.Created(c, gin.H{
		"message": "Store created successfully",
		"storeId": store.ID,
	})
}

// ======================================================
// LIST USERS
// ======================================================

func (h *AdminHandler) ListUsers(c *gin.Context) {
	order, err := query.OrderClause(query.UserSortKeys, c.Query("sortBy"), c.Query("sortOrder"))
	if err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	conds := []string{"1=1"}
	args := []any{}
	query.ContainsFilter(&conds, &args, "u.name", c.Query("name"))
	query.ContainsFilter(&conds, &args, "u.email", c.Query("email"))
	query.ContainsFilter(&conds, &args, "u.address", c.Query("address"))
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		conds = append(conds, "u.role = ?")
		args = append(args, role)
	}

	var rows []UserRow
	if err := h.db.
		Table("users u").
		Select("u.id, u.name, u.email, u.address, u.role, u.created_at, COALESCE(AVG(r.rating), 0) AS store_rating").
		Joins("LEFT JOIN stores s ON u.id = s.owner_id AND u.role = ?", models.RoleStoreOwner).
		Joins("LEFT JOIN ratings r ON s.id = r.store_id").
		Where(strings.Join(conds, " AND "), args...).
		Group("u.id, u.name, u.email, u.address, u.role, u.created_at").
		Order(order).
		Scan(&rows).Error; err != nil {
		h.slog.Error("list users: query failed", "err", err)
		httperr.Internal(c)
		return
	}

	if rows == nil {
		rows = []UserRow{}
	}
	httpresp.OK(c, rows)
}

// ======================================================
// LIST STORES
// ======================================================

func (h *AdminHandler) ListStores(c *gin.Context) {
	order, err := query.OrderClause(query.AdminStoreSortKeys, c.Query("sortBy"), c.Query("sortOrder"))
	if err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	conds := []string{"1=1"}
	args := []any{}
	query.ContainsFilter(&conds, &args, "s.name", c.Query("name"))
	query.ContainsFilter(&conds, &args, "s.email", c.Query("email"))
	query.ContainsFilter(&conds, &args, "s.address", c.Query("address"))

	var rows []AdminStoreRow
	if err := h.db.
		Table("stores s").
		Select("s.id, s.name, s.email, s.address, s.created_at, COALESCE(AVG(r.rating), 0) AS rating").
		Joins("LEFT JOIN ratings r ON s.id = r.store_id").
		Where(strings.Join(conds, " AND "), args...).
		Group("s.id, s.name, s.email, s.address, s.created_at").
		Order(order).
		Scan(&rows).Error; err != nil {
		h.slog.Error("list stores: query failed", "err", err)
		httperr.Internal(c)
		return
	}

	if rows == nil {
		rows = []AdminStoreRow{}
	}
	httpresp.OK(c, rows)
}

func adminID(u *models.User) *uint {
	if u == nil {
		return nil
	}
	return &u.ID
}
