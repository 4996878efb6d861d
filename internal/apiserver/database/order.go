package database

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// CreateOrder prices every line from the feed catalogue and stores the order
// with its items. The order number must already be set.
func (s *store) CreateOrder(ctx context.Context, order *FeedOrder, lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrEmptyOrder
	}
	return s.Transaction(ctx, func(ctx context.Context) error {
		mill, err := s.GetMill(ctx, order.MillID)
		if err != nil {
			return err
		}
		if !mill.IsActive {
			return ErrNotFound
		}

		var total float64
		items := make([]FeedOrderItem, 0, len(lines))
		for _, line := range lines {
			if line.Quantity <= 0 {
				return fmt.Errorf("%w: quantity must be positive", ErrInvalidArgument)
			}
			var feed FeedType
			err := s.conn(ctx).Where("id = ? AND is_available = ?", line.FeedTypeID, true).First(&feed).Error
			if err != nil {
				if errors.Is(translate(err), ErrNotFound) {
					return &FeedTypeUnavailableError{ID: line.FeedTypeID}
				}
				return err
			}
			lineTotal := roundCents(feed.PricePerKg * line.Quantity)
			items = append(items, FeedOrderItem{
				FeedTypeID: feed.ID,
				Quantity:   line.Quantity,
				UnitPrice:  feed.PricePerKg,
				TotalPrice: lineTotal,
			})
			total += lineTotal
		}

		order.Status = OrderPending
		order.TotalAmount = roundCents(total)
		order.Items = items
		return translate(s.conn(ctx).Create(order).Error)
	})
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *store) ListFarmerOrders(ctx context.Context, farmerID uint, status OrderStatus) ([]*FeedOrder, error) {
	return s.listOrders(ctx, "farmer_id", farmerID, status)
}

func (s *store) ListMillOrders(ctx context.Context, millID uint, status OrderStatus) ([]*FeedOrder, error) {
	return s.listOrders(ctx, "mill_id", millID, status)
}

func (s *store) listOrders(ctx context.Context, ownerColumn string, ownerID uint, status OrderStatus) ([]*FeedOrder, error) {
	q := s.conn(ctx).Preload("Items").Where(ownerColumn+" = ?", ownerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var orders []*FeedOrder
	if err := q.Order("created_at desc, id desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *store) GetFarmerOrder(ctx context.Context, id, farmerID uint) (*FeedOrder, error) {
	return s.getOrder(ctx, "farmer_id", id, farmerID)
}

func (s *store) GetMillOrder(ctx context.Context, id, millID uint) (*FeedOrder, error) {
	return s.getOrder(ctx, "mill_id", id, millID)
}

func (s *store) getOrder(ctx context.Context, ownerColumn string, id, ownerID uint) (*FeedOrder, error) {
	var order FeedOrder
	err := s.conn(ctx).Preload("Items").
		Where("id = ? AND "+ownerColumn+" = ?", id, ownerID).
		First(&order).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// CancelOrder moves a pending order of the farmer to cancelled
func (s *store) CancelOrder(ctx context.Context, id, farmerID uint) (*FeedOrder, error) {
	var order *FeedOrder
	err := s.Transaction(ctx, func(ctx context.Context) error {
		res := s.conn(ctx).Model(&FeedOrder{}).
			Where("id = ? AND farmer_id = ? AND status = ?", id, farmerID, OrderPending).
			Update("status", OrderCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if _, err := s.GetFarmerOrder(ctx, id, farmerID); err != nil {
				return err
			}
			return ErrOrderNotPending
		}
		var err error
		order, err = s.GetFarmerOrder(ctx, id, farmerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrderStatus applies a mill's update to one of its open orders.
// Dispatching stamps the actual delivery date unless one is supplied.
func (s *store) UpdateOrderStatus(ctx context.Context, id, millID uint, update OrderUpdate) (*FeedOrder, error) {
	if update.Status != nil && !update.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrInvalidArgument, *update.Status)
	}

	var order *FeedOrder
	err := s.Transaction(ctx, func(ctx context.Context) error {
		current, err := s.GetMillOrder(ctx, id, millID)
		if err != nil {
			return err
		}
		if current.Status.Closed() {
			return &OrderClosedError{Status: current.Status}
		}

		updates := map[string]any{}
		if update.Status != nil {
			updates["status"] = *update.Status
			if *update.Status == OrderDispatched {
				updates["actual_delivery_date"] = update.Now
			}
		}
		if update.ActualDeliveryDate != nil {
			updates["actual_delivery_date"] = *update.ActualDeliveryDate
		}
		if update.Notes != nil && *update.Notes != "" {
			updates["notes"] = *update.Notes
		}

		if len(updates) > 0 {
			res := s.conn(ctx).Model(&FeedOrder{}).
				Where("id = ? AND mill_id = ? AND status = ?", id, millID, current.Status).
				Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: order changed concurrently", ErrInvalidState)
			}
		}

		order, err = s.GetMillOrder(ctx, id, millID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
