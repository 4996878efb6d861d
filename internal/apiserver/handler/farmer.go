package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/cache"
	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/database"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/password"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/principal"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/cnst"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/dto"
	"github.com/kumar-97/kukkuta-Kendra/internal/i18n"
	"github.com/kumar-97/kukkuta-Kendra/pkg/metrics"
	"github.com/kumar-97/kukkuta-Kendra/pkg/trace"
)

const (
	searchMinLength    = 2
	searchDefaultLimit = 10
	searchMaxLimit     = 50
)

// Farmer serves farmer profiles, their farms and the admin farmer tools
type Farmer struct {
	db      database.Database
	hasher  password.Hasher
	stats   *cache.Cache
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewFarmer(db database.Database, hasher password.Hasher, stats *cache.Cache, m *metrics.Metrics, logger *zap.Logger) *Farmer {
	return &Farmer{db: db, hasher: hasher, stats: stats, metrics: m, logger: logger.Named("apiserver.handler.farmer")}
}

func (h *Farmer) admin(c *gin.Context) (*principal.Admin, bool) {
	p, ok := currentPrincipal(c)
	if !ok {
		return nil, false
	}
	a, err := principal.RequireAdmin(p)
	if err != nil {
		i18n.RespondWithError(c, err)
		return nil, false
	}
	return a, true
}

func (h *Farmer) farmer(c *gin.Context) (*database.Farmer, bool) {
	p, ok := currentPrincipal(c)
	if !ok {
		return nil, false
	}
	f, err := principal.RequireFarmer(c.Request.Context(), p, h.db)
	if err != nil {
		respondStoreError(c, h.logger, "failed to load farmer profile", err, nil)
		return nil, false
	}
	return f, true
}

// AdminCreate creates a farmer account and its profile in one step
func (h *Farmer) AdminCreate(c *gin.Context) {
	admin, ok := h.admin(c)
	if !ok {
		return
	}
	var req dto.AdminFarmerCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		i18n.RespondWithError(c, i18n.ErrInternalServer)
		return
	}
	user := &database.User{
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Password:   hash,
		FullName:   req.FullName,
		Role:       database.RoleFarmer,
		IsActive:   true,
		IsVerified: true,
	}
	farmer := &database.Farmer{
		Phone:           req.Phone,
		Address:         req.Address,
		FarmType:        req.FarmType,
		ExperienceYears: req.ExperienceYears,
		IsVerified:      req.IsVerified,
	}

	ctx := c.Request.Context()
	err = h.db.Transaction(ctx, func(ctx context.Context) error {
		if err := h.db.CreateFarmerWithUser(ctx, user, farmer); err != nil {
			return err
		}
		return h.db.CreateAdminLog(ctx, adminLog(c, admin, cnst.ActionCreateFarmer, cnst.TargetFarmer, farmer.ID,
			fmt.Sprintf("Created farmer %s", user.Email)))
	})
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			i18n.RespondWithError(c, i18n.ErrEmailExists)
			return
		}
		respondStoreError(c, h.logger, "failed to create farmer", err, nil)
		return
	}

	clearStats(ctx, h.stats, h.logger)

	summary, err := h.db.GetFarmerSummary(ctx, farmer.ID)
	if err != nil {
		respondStoreError(c, h.logger, "failed to load farmer", err, i18n.ErrFarmerNotFound)
		return
	}
	c.JSON(http.StatusCreated, summary)
}

// Create attaches a profile to an existing farmer account
func (h *Farmer) Create(c *gin.Context) {
	if _, ok := h.admin(c); !ok {
		return
	}
	var req dto.FarmerCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	user, err := h.db.GetUserByID(ctx, req.UserID)
	if err != nil {
		respondStoreError(c, h.logger, "failed to load user", err, i18n.ErrUserNotFound)
		return
	}
	if user.Role != database.RoleFarmer {
		i18n.RespondWithError(c, i18n.ErrUserRoleMismatch.WithParam("Role", string(database.RoleFarmer)))
		return
	}

	farmer := &database.Farmer{
		UserID:          req.UserID,
		Phone:           req.Phone,
		Address:         req.Address,
		FarmType:        req.FarmType,
		ExperienceYears: req.ExperienceYears,
	}
	if err := h.db.CreateFarmer(ctx, farmer); err != nil {
		if errors.Is(err, database.ErrConflict) {
			i18n.RespondWithError(c, i18n.ErrFarmerProfileExists)
			return
		}
		respondStoreError(c, h.logger, "failed to create farmer profile", err, nil)
		return
	}
	c.JSON(http.StatusCreated, farmer)
}

// Me returns the caller's profile with its farms
func (h *Farmer) Me(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	full, err := h.db.GetFarmer(c.Request.Context(), f.ID)
	if err != nil {
		respondStoreError(c, h.logger, "failed to load farmer", err, i18n.ErrFarmerProfileMissing)
		return
	}
	if full.Farms == nil {
		full.Farms = []database.Farm{}
	}
	c.JSON(http.StatusOK, full)
}

// UpdateMe changes the caller's own profile
func (h *Farmer) UpdateMe(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	var req dto.FarmerUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if updates := req.Updates(); len(updates) > 0 {
		if err := h.db.UpdateFarmer(ctx, f.ID, updates); err != nil {
			respondStoreError(c, h.logger, "failed to update farmer", err, i18n.ErrFarmerProfileMissing)
			return
		}
	}
	updated, err := h.db.GetFarmerByUserID(ctx, f.UserID)
	if err != nil {
		respondStoreError(c, h.logger, "failed to load farmer", err, i18n.ErrFarmerProfileMissing)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// List returns farmers joined with their account for admins
func (h *Farmer) List(c *gin.Context) {
	if _, ok := h.admin(c); !ok {
		return
	}
	page, err := queryPage(c)
	if err != nil {
		badQuery(c, err)
		return
	}
	verified, err := queryBool(c, "is_verified")
	if err != nil {
		badQuery(c, err)
		return
	}

	farmers, err := h.db.ListFarmers(c.Request.Context(), database.FarmerFilter{
		Page:     page,
		Search:   c.Query("search"),
		FarmType: c.Query("farm_type"),
		Verified: verified,
	})
	if err != nil {
		respondStoreError(c, h.logger, "failed to list farmers", err, nil)
		return
	}
	if farmers == nil {
		farmers = []*database.FarmerSummary{}
	}
	c.JSON(http.StatusOK, farmers)
}

// Get returns one farmer for admins
func (h *Farmer) Get(c *gin.Context) {
	if _, ok := h.admin(c); !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	summary, err := h.db.GetFarmerSummary(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, h.logger, "failed to load farmer", err, i18n.ErrFarmerNotFound)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Update changes a farmer profile and its account for admins
func (h *Farmer) Update(c *gin.Context) {
	admin, ok := h.admin(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AdminFarmerUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	userUpdates := req.UserUpdates()
	if email, ok := userUpdates["email"].(string); ok {
		userUpdates["email"] = strings.ToLower(strings.TrimSpace(email))
	}

	ctx := c.Request.Context()
	err := h.db.Transaction(ctx, func(ctx context.Context) error {
		farmer, err := h.db.GetFarmer(ctx, id)
		if err != nil {
			return err
		}
		if updates := req.Updates(); len(updates) > 0 {
			if err := h.db.UpdateFarmer(ctx, id, updates); err != nil {
				return err
			}
		}
		if len(userUpdates) > 0 {
			if err := h.db.UpdateUser(ctx, farmer.UserID, userUpdates); err != nil {
				return err
			}
		}
		return h.db.CreateAdminLog(ctx, adminLog(c, admin, cnst.ActionUpdateFarmer, cnst.TargetFarmer, id,
			fmt.Sprintf("Updated farmer %d", id)))
	})
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			i18n.RespondWithError(c, i18n.ErrEmailExists)
			return
		}
		respondStoreError(c, h.logger, "failed to update farmer", err, i18n.ErrFarmerNotFound)
		return
	}

	summary, err := h.db.GetFarmerSummary(ctx, id)
	if err != nil {
		respondStoreError(c, h.logger, "failed to load farmer", err, i18n.ErrFarmerNotFound)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Delete removes a farmer with everything it owns. With
// delete_user_account=true the account goes too.
func (h *Farmer) Delete(c *gin.Context) {
	admin, ok := h.admin(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	deleteUser, err := queryBool(c, "delete_user_account")
	if err != nil {
		badQuery(c, err)
		return
	}
	withUser := deleteUser != nil && *deleteUser

	ctx := c.Request.Context()
	err = h.db.Transaction(ctx, func(ctx context.Context) error {
		if err := h.db.DeleteFarmer(ctx, id, withUser); err != nil {
			return err
		}
		return h.db.CreateAdminLog(ctx, adminLog(c, admin, cnst.ActionDeleteFarmer, cnst.TargetFarmer, id,
			fmt.Sprintf("Deleted farmer %d (user deleted: %t)", id, withUser)))
	})
	if err != nil {
		respondStoreError(c, h.logger, "failed to delete farmer", err, i18n.ErrFarmerNotFound)
		return
	}

	h.logger.Info("farmer deleted", zap.Uint("farmer_id", id), zap.Bool("user_deleted", withUser))
	i18n.RespondOK(c, i18n.SuccessFarmerDeleted, nil, gin.H{"farmer_id": id, "user_deleted": withUser})
}

// Count returns population statistics for admins
func (h *Farmer) Count(c *gin.Context) {
	if _, ok := h.admin(c); !ok {
		return
	}
	counts, err := h.db.CountFarmers(c.Request.Context())
	if err != nil {
		respondStoreError(c, h.logger, "failed to count farmers", err, nil)
		return
	}
	c.JSON(http.StatusOK, counts)
}

// BulkVerify sets the verified flag on every listed farmer. Unknown ids are
// skipped and the response reports how many rows matched.
func (h *Farmer) BulkVerify(c *gin.Context) {
	admin, ok := h.admin(c)
	if !ok {
		return
	}
	var req dto.BulkVerifyRequest
	if !bindJSON(c, &req) {
		return
	}
	verified := req.IsVerified()

	span := trace.Tracer(cnst.TraceAPIServer).Start(c.Request.Context(), cnst.SpanBulkVerify)
	defer span.End()
	span.WithAttrs(attribute.Int(cnst.AttrBulkCount, len(req.FarmerIDs)))

	var updated int64
	err := h.db.Transaction(span.Ctx, func(ctx context.Context) error {
		n, err := h.db.BulkVerifyFarmers(ctx, req.FarmerIDs, verified)
		if err != nil {
			return err
		}
		updated = n
		return h.db.CreateAdminLog(ctx, adminLog(c, admin, cnst.ActionVerifyFarmers, cnst.TargetFarmer, 0,
			fmt.Sprintf("Set is_verified=%t on %d of %d farmers", verified, n, len(req.FarmerIDs))))
	})
	if err != nil {
		span.RecordError(err)
		respondStoreError(c, h.logger, "failed to bulk verify farmers", err, nil)
		return
	}
	span.WithAttrs(attribute.Int64(cnst.AttrBulkUpdate, updated))
	h.metrics.BulkVerified(verified, updated)
	clearStats(c.Request.Context(), h.stats, h.logger)

	msgID := i18n.SuccessBulkVerified
	if !verified {
		msgID = i18n.SuccessBulkUnverified
	}
	i18n.RespondOK(c, msgID, map[string]any{"Count": updated}, gin.H{
		"updated_count": updated,
		"farmer_ids":    req.FarmerIDs,
		"is_verified":   verified,
	})
}

// Search is the quick lookup by name, email or phone
func (h *Farmer) Search(c *gin.Context) {
	if _, ok := h.admin(c); !ok {
		return
	}
	query := strings.TrimSpace(c.Query("query"))
	if len([]rune(query)) < searchMinLength {
		i18n.RespondWithError(c, i18n.ErrSearchQueryTooShort)
		return
	}
	limit := searchDefaultLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > searchMaxLimit {
			badQuery(c, fmt.Errorf("limit must be between 1 and %d", searchMaxLimit))
			return
		}
		limit = n
	}

	results, err := h.db.SearchFarmers(c.Request.Context(), query, limit)
	if err != nil {
		respondStoreError(c, h.logger, "failed to search farmers", err, nil)
		return
	}
	if results == nil {
		results = []*database.FarmerSearchResult{}
	}
	c.JSON(http.StatusOK, gin.H{
		"query":         query,
		"results_count": len(results),
		"farmers":       results,
	})
}

// CreateFarm adds a farm to the caller's profile
func (h *Farmer) CreateFarm(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	var req dto.FarmRequest
	if !bindJSON(c, &req) {
		return
	}
	farm := &database.Farm{
		FarmerID:     f.ID,
		Name:         req.Name,
		Location:     req.Location,
		Capacity:     req.Capacity,
		CurrentStock: req.CurrentStock,
		FarmSize:     req.FarmSize,
		IsActive:     true,
	}
	if err := h.db.CreateFarm(c.Request.Context(), farm); err != nil {
		respondStoreError(c, h.logger, "failed to create farm", err, nil)
		return
	}
	c.JSON(http.StatusCreated, farm)
}

// ListFarms returns the caller's farms
func (h *Farmer) ListFarms(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	farms, err := h.db.ListFarms(c.Request.Context(), f.ID)
	if err != nil {
		respondStoreError(c, h.logger, "failed to list farms", err, nil)
		return
	}
	if farms == nil {
		farms = []*database.Farm{}
	}
	c.JSON(http.StatusOK, farms)
}

func (h *Farmer) GetFarm(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	farm, err := h.db.GetFarm(c.Request.Context(), id, f.ID)
	if err != nil {
		respondStoreError(c, h.logger, "failed to load farm", err, i18n.ErrFarmNotFound)
		return
	}
	c.JSON(http.StatusOK, farm)
}

func (h *Farmer) UpdateFarm(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.FarmUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	farm, err := h.db.UpdateFarm(c.Request.Context(), id, f.ID, req.Updates())
	if err != nil {
		respondStoreError(c, h.logger, "failed to update farm", err, i18n.ErrFarmNotFound)
		return
	}
	c.JSON(http.StatusOK, farm)
}

// DeleteFarm removes a farm together with its routine data
func (h *Farmer) DeleteFarm(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.db.DeleteFarm(c.Request.Context(), id, f.ID); err != nil {
		respondStoreError(c, h.logger, "failed to delete farm", err, i18n.ErrFarmNotFound)
		return
	}
	i18n.RespondOK(c, i18n.SuccessFarmDeleted, nil, nil)
}
