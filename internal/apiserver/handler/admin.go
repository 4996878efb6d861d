package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/cache"
	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/database"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/principal"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/cnst"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/dto"
	"github.com/kumar-97/kukkuta-Kendra/internal/i18n"
)

// Admin serves the dashboard, the action log and the analytics views.
// Aggregates go through the stats cache when one is configured.
type Admin struct {
	db     database.Database
	cache  *cache.Cache
	logger *zap.Logger
	now    func() time.Time
}

func NewAdmin(db database.Database, c *cache.Cache, logger *zap.Logger) *Admin {
	return &Admin{db: db, cache: c, logger: logger.Named("apiserver.handler.admin"), now: time.Now}
}

func rangeKey(name string, r database.DateRange) string {
	key := name
	for _, t := range []*time.Time{r.Start, r.End} {
		key += ":"
		if t != nil {
			key += t.UTC().Format(time.RFC3339)
		}
	}
	return key
}

func (h *Admin) admin(c *gin.Context) (*principal.Admin, bool) {
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

func (h *Admin) Dashboard(c *gin.Context) {
	if _, ok := h.admin(c); !ok {
		return
	}
	stats, err := cache.Fetch(c.Request.Context(), h.cache, "dashboard",
		func(ctx context.Context) (*database.DashboardStats, error) {
			return h.db.Dashboard(ctx, h.now().UTC())
		})
	if err != nil {
		respondStoreError(c, h.logger, "failed to build dashboard", err, nil)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Logs lists admin actions, newest first
func (h *Admin) Logs(c *gin.Context) {
	if _, ok := h.admin(c); !ok {
		return
	}
	page, err := queryPage(c)
	if err != nil {
		badQuery(c, err)
		return
	}
	userID, err := queryUint(c, "user_id")
	if err != nil {
		badQuery(c, err)
		return
	}
	logs, err := h.db.ListAdminLogs(c.Request.Context(), database.LogFilter{
		Page:   page,
		Action: c.Query("action"),
		UserID: userID,
	})
	if err != nil {
		respondStoreError(c, h.logger, "failed to list admin logs", err, nil)
		return
	}
	if logs == nil {
		logs = []*database.AdminLog{}
	}
	c.JSON(http.StatusOK, logs)
}

// CreateLog records a manual log entry on behalf of the caller
func (h *Admin) CreateLog(c *gin.Context) {
	admin, ok := h.admin(c)
	if !ok {
		return
	}
	var req dto.AdminLogRequest
	if !bindJSON(c, &req) {
		return
	}
	action := cnst.ActionManual
	if req.Action != "" {
		action = cnst.AdminAction(req.Action)
	}
	var target uint
	if req.TargetID != nil {
		target = *req.TargetID
	}

	log := adminLog(c, admin, action, req.TargetType, target, req.Description)
	if err := h.db.CreateAdminLog(c.Request.Context(), log); err != nil {
		respondStoreError(c, h.logger, "failed to create admin log", err, nil)
		return
	}
	i18n.RespondWithSuccess(c, http.StatusCreated, i18n.SuccessAdminLogCreated, nil, gin.H{"log_id": log.ID})
}

func (h *Admin) FarmerAnalytics(c *gin.Context) {
	if _, ok := h.admin(c); !ok {
		return
	}
	r, err := queryDateRange(c, "start_date", "end_date")
	if err != nil {
		badQuery(c, err)
		return
	}
	out, err := cache.Fetch(c.Request.Context(), h.cache, rangeKey("analytics:farmers", r), func(ctx context.Context) (*database.FarmerAnalytics, error) {
		return h.db.FarmerAnalytics(ctx, r)
	})
	if err != nil {
		respondStoreError(c, h.logger, "failed to compute farmer analytics", err, nil)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Admin) OrderAnalytics(c *gin.Context) {
	if _, ok := h.admin(c); !ok {
		return
	}
	r, err := queryDateRange(c, "start_date", "end_date")
	if err != nil {
		badQuery(c, err)
		return
	}
	out, err := cache.Fetch(c.Request.Context(), h.cache, rangeKey("analytics:orders", r), func(ctx context.Context) (*database.OrderAnalytics, error) {
		return h.db.OrderAnalytics(ctx, r)
	})
	if err != nil {
		respondStoreError(c, h.logger, "failed to compute order analytics", err, nil)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Admin) ProductionAnalytics(c *gin.Context) {
	if _, ok := h.admin(c); !ok {
		return
	}
	r, err := queryDateRange(c, "start_date", "end_date")
	if err != nil {
		badQuery(c, err)
		return
	}
	out, err := cache.Fetch(c.Request.Context(), h.cache, rangeKey("analytics:production", r), func(ctx context.Context) (*database.ProductionAnalytics, error) {
		return h.db.ProductionAnalytics(ctx, r)
	})
	if err != nil {
		respondStoreError(c, h.logger, "failed to compute production analytics", err, nil)
		return
	}
	c.JSON(http.StatusOK, out)
}

// SystemStats counts users, stored data and activity over the last week
func (h *Admin) SystemStats(c *gin.Context) {
	if _, ok := h.admin(c); !ok {
		return
	}
	stats, err := cache.Fetch(c.Request.Context(), h.cache, "system-stats",
		func(ctx context.Context) (*database.SystemStats, error) {
			return h.db.SystemStats(ctx, h.now().UTC())
		})
	if err != nil {
		respondStoreError(c, h.logger, "failed to compute system stats", err, nil)
		return
	}
	c.JSON(http.StatusOK, stats)
}
