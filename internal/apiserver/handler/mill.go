package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/database"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/principal"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/cnst"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/dto"
	"github.com/kumar-97/kukkuta-Kendra/internal/i18n"
)

// Mill serves mill profiles, the orders addressed to a mill and the feed catalogue
type Mill struct {
	db     database.Database
	logger *zap.Logger
	now    func() time.Time
}

func NewMill(db database.Database, logger *zap.Logger) *Mill {
	return &Mill{db: db, logger: logger.Named("apiserver.handler.mill"), now: time.Now}
}

func (h *Mill) mill(c *gin.Context) (*database.Mill, bool) {
	p, ok := currentPrincipal(c)
	if !ok {
		return nil, false
	}
	m, err := principal.RequireMill(c.Request.Context(), p, h.db)
	if err != nil {
		respondStoreError(c, h.logger, "failed to load mill profile", err, nil)
		return nil, false
	}
	return m, true
}

func (h *Mill) admin(c *gin.Context) (*principal.Admin, bool) {
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

// queryStatus reads an optional order status filter
func queryStatus(c *gin.Context) (database.OrderStatus, bool) {
	status := database.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		i18n.RespondWithError(c, i18n.ErrInvalidOrderStatus.WithParam("Status", string(status)))
		return "", false
	}
	return status, true
}

// Create attaches a mill profile to an existing mill account
func (h *Mill) Create(c *gin.Context) {
	admin, ok := h.admin(c)
	if !ok {
		return
	}
	var req dto.MillCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	user, err := h.db.GetUserByID(ctx, req.UserID)
	if err != nil {
		respondStoreError(c, h.logger, "failed to load user", err, i18n.ErrUserNotFound)
		return
	}
	if user.Role != database.RoleMill {
		i18n.RespondWithError(c, i18n.ErrUserRoleMismatch.WithParam("Role", string(database.RoleMill)))
		return
	}

	mill := &database.Mill{
		UserID:         req.UserID,
		Name:           req.Name,
		Address:        req.Address,
		Phone:          req.Phone,
		CapacityPerDay: req.CapacityPerDay,
		IsActive:       true,
	}
	err = h.db.Transaction(ctx, func(ctx context.Context) error {
		if err := h.db.CreateMill(ctx, mill); err != nil {
			return err
		}
		return h.db.CreateAdminLog(ctx, adminLog(c, admin, cnst.ActionCreateMill, cnst.TargetMill, mill.ID,
			fmt.Sprintf("Created mill %s", mill.Name)))
	})
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			i18n.RespondWithError(c, i18n.ErrMillProfileExists)
			return
		}
		respondStoreError(c, h.logger, "failed to create mill", err, nil)
		return
	}
	c.JSON(http.StatusCreated, mill)
}

func (h *Mill) Me(c *gin.Context) {
	m, ok := h.mill(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, m)
}

// UpdateMe changes the caller's own mill profile. The active flag is admin only.
func (h *Mill) UpdateMe(c *gin.Context) {
	m, ok := h.mill(c)
	if !ok {
		return
	}
	var req dto.MillUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.db.UpdateMill(c.Request.Context(), m.ID, req.Updates(false))
	if err != nil {
		respondStoreError(c, h.logger, "failed to update mill", err, i18n.ErrMillProfileMissing)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Orders lists the orders addressed to the caller, optionally by status
func (h *Mill) Orders(c *gin.Context) {
	m, ok := h.mill(c)
	if !ok {
		return
	}
	status, ok := queryStatus(c)
	if !ok {
		return
	}
	orders, err := h.db.ListMillOrders(c.Request.Context(), m.ID, status)
	if err != nil {
		respondStoreError(c, h.logger, "failed to list orders", err, nil)
		return
	}
	if orders == nil {
		orders = []*database.FeedOrder{}
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Mill) Order(c *gin.Context) {
	m, ok := h.mill(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.db.GetMillOrder(c.Request.Context(), id, m.ID)
	if err != nil {
		respondStoreError(c, h.logger, "failed to load order", err, i18n.ErrOrderNotFound)
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus moves an order along. Dispatching stamps the actual
// delivery date; delivered and cancelled orders are final.
func (h *Mill) UpdateOrderStatus(c *gin.Context) {
	m, ok := h.mill(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.OrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	update := database.OrderUpdate{
		ActualDeliveryDate: req.ActualDeliveryDate,
		Notes:              req.Notes,
		Now:                h.now().UTC(),
	}
	if req.Status != nil {
		status := database.OrderStatus(*req.Status)
		if !status.Valid() {
			i18n.RespondWithError(c, i18n.ErrInvalidOrderStatus.WithParam("Status", *req.Status))
			return
		}
		update.Status = &status
	}

	order, err := h.db.UpdateOrderStatus(c.Request.Context(), id, m.ID, update)
	if err != nil {
		respondStoreError(c, h.logger, "failed to update order status", err, i18n.ErrOrderNotFound)
		return
	}
	h.logger.Info("order status updated", zap.Uint("order_id", id), zap.String("status", string(order.Status)))
	c.JSON(http.StatusOK, order)
}

// FeedTypes lists the catalogue; only available products unless
// available_only=false.
func (h *Mill) FeedTypes(c *gin.Context) {
	availableOnly, err := queryBool(c, "available_only")
	if err != nil {
		badQuery(c, err)
		return
	}
	feedTypes, err := h.db.ListFeedTypes(c.Request.Context(), availableOnly == nil || *availableOnly)
	if err != nil {
		respondStoreError(c, h.logger, "failed to list feed types", err, nil)
		return
	}
	if feedTypes == nil {
		feedTypes = []*database.FeedType{}
	}
	c.JSON(http.StatusOK, feedTypes)
}

func (h *Mill) CreateFeedType(c *gin.Context) {
	admin, ok := h.admin(c)
	if !ok {
		return
	}
	var req dto.FeedTypeRequest
	if !bindJSON(c, &req) {
		return
	}
	ft := &database.FeedType{
		Name:        req.Name,
		Description: req.Description,
		PricePerKg:  req.PricePerKg,
		IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
	}

	ctx := c.Request.Context()
	err := h.db.Transaction(ctx, func(ctx context.Context) error {
		if err := h.db.CreateFeedType(ctx, ft); err != nil {
			return err
		}
		return h.db.CreateAdminLog(ctx, adminLog(c, admin, cnst.ActionCreateFeed, cnst.TargetFeedType, ft.ID,
			fmt.Sprintf("Created feed type %s", ft.Name)))
	})
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			i18n.RespondWithError(c, i18n.ErrFeedTypeExists)
			return
		}
		respondStoreError(c, h.logger, "failed to create feed type", err, nil)
		return
	}
	c.JSON(http.StatusCreated, ft)
}

func (h *Mill) List(c *gin.Context) {
	if _, ok := h.admin(c); !ok {
		return
	}
	page, err := queryPage(c)
	if err != nil {
		badQuery(c, err)
		return
	}
	mills, err := h.db.ListMills(c.Request.Context(), page)
	if err != nil {
		respondStoreError(c, h.logger, "failed to list mills", err, nil)
		return
	}
	if mills == nil {
		mills = []*database.Mill{}
	}
	c.JSON(http.StatusOK, mills)
}

func (h *Mill) Get(c *gin.Context) {
	if _, ok := h.admin(c); !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	mill, err := h.db.GetMill(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, h.logger, "failed to load mill", err, i18n.ErrMillNotFound)
		return
	}
	c.JSON(http.StatusOK, mill)
}

func (h *Mill) Update(c *gin.Context) {
	admin, ok := h.admin(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.MillUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	var mill *database.Mill
	ctx := c.Request.Context()
	err := h.db.Transaction(ctx, func(ctx context.Context) error {
		var err error
		if mill, err = h.db.UpdateMill(ctx, id, req.Updates(true)); err != nil {
			return err
		}
		return h.db.CreateAdminLog(ctx, adminLog(c, admin, cnst.ActionUpdateMill, cnst.TargetMill, id,
			fmt.Sprintf("Updated mill %d", id)))
	})
	if err != nil {
		respondStoreError(c, h.logger, "failed to update mill", err, i18n.ErrMillNotFound)
		return
	}
	c.JSON(http.StatusOK, mill)
}

// Delete removes a mill. A mill that already has orders is deactivated
// instead so the order history stays intact.
func (h *Mill) Delete(c *gin.Context) {
	admin, ok := h.admin(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	err := h.db.Transaction(ctx, func(ctx context.Context) error {
		if err := h.db.DeleteMill(ctx, id); err != nil {
			return err
		}
		return h.db.CreateAdminLog(ctx, adminLog(c, admin, cnst.ActionDeleteMill, cnst.TargetMill, id,
			fmt.Sprintf("Deleted mill %d", id)))
	})
	if err != nil {
		respondStoreError(c, h.logger, "failed to delete mill", err, i18n.ErrMillNotFound)
		return
	}
	i18n.RespondOK(c, i18n.SuccessMillDeleted, nil, nil)
}
