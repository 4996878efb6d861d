package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kumar-97/kukkuta-Kendra/internal/apiserver/database"
	"github.com/kumar-97/kukkuta-Kendra/internal/auth/principal"
	"github.com/kumar-97/kukkuta-Kendra/internal/common/dto"
	"github.com/kumar-97/kukkuta-Kendra/internal/i18n"
	"github.com/kumar-97/kukkuta-Kendra/pkg/metrics"
)

// numberAttempts bounds retries when a generated order or report number collides
const numberAttempts = 3

// Order serves the feed orders of the calling farmer
type Order struct {
	db      database.Database
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

func NewOrder(db database.Database, m *metrics.Metrics, logger *zap.Logger) *Order {
	return &Order{db: db, metrics: m, logger: logger.Named("apiserver.handler.order"), now: time.Now}
}

func (h *Order) farmer(c *gin.Context) (*database.Farmer, bool) {
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

// Create places an order. Prices come from the feed catalogue, never from
// the request.
func (h *Order) Create(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	var req dto.OrderCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	lines := make([]database.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, database.OrderLine{FeedTypeID: item.FeedTypeID, Quantity: item.Quantity})
	}

	var (
		order *database.FeedOrder
		err   error
	)
	for range numberAttempts {
		order = &database.FeedOrder{
			OrderNumber:          database.NewOrderNumber(h.now()),
			FarmerID:             f.ID,
			MillID:               req.MillID,
			DeliveryAddress:      req.DeliveryAddress,
			ExpectedDeliveryDate: req.ExpectedDeliveryDate,
			Notes:                req.Notes,
		}
		err = h.db.CreateOrder(c.Request.Context(), order, lines)
		if !errors.Is(err, database.ErrConflict) {
			break
		}
		h.logger.Warn("order number collision, retrying", zap.String("order_number", order.OrderNumber))
	}
	if err != nil {
		respondStoreError(c, h.logger, "failed to create order", err, i18n.ErrMillNotFound)
		return
	}

	h.metrics.OrderPlaced()
	h.logger.Info("order placed", zap.Uint("order_id", order.ID), zap.Uint("farmer_id", f.ID), zap.Uint("mill_id", order.MillID))
	c.JSON(http.StatusCreated, order)
}

func (h *Order) List(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	status, ok := queryStatus(c)
	if !ok {
		return
	}
	orders, err := h.db.ListFarmerOrders(c.Request.Context(), f.ID, status)
	if err != nil {
		respondStoreError(c, h.logger, "failed to list orders", err, nil)
		return
	}
	if orders == nil {
		orders = []*database.FeedOrder{}
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Order) Get(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.db.GetFarmerOrder(c.Request.Context(), id, f.ID)
	if err != nil {
		respondStoreError(c, h.logger, "failed to load order", err, i18n.ErrOrderNotFound)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Cancel withdraws an order that the mill has not started on
func (h *Order) Cancel(c *gin.Context) {
	f, ok := h.farmer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.db.CancelOrder(c.Request.Context(), id, f.ID)
	if err != nil {
		respondStoreError(c, h.logger, "failed to cancel order", err, i18n.ErrOrderNotFound)
		return
	}
	i18n.RespondOK(c, i18n.SuccessOrderCancelled, nil, gin.H{"order": order})
}
