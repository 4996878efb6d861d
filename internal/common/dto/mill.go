package dto

import "time"

// MillCreateRequest attaches a mill profile to an existing mill account
type MillCreateRequest struct {
	UserID         uint    `json:"user_id" binding:"required"`
	Name           string  `json:"name" binding:"required,max=100"`
	Address        string  `json:"address" binding:"required"`
	Phone          string  `json:"phone" binding:"required,max=15"`
	CapacityPerDay float64 `json:"capacity_per_day" binding:"required,gt=0"`
}

// MillUpdateRequest changes some fields of a mill. IsActive is only honoured
// for admins.
type MillUpdateRequest struct {
	Name           *string  `json:"name" binding:"omitempty,max=100"`
	Address        *string  `json:"address"`
	Phone          *string  `json:"phone" binding:"omitempty,max=15"`
	CapacityPerDay *float64 `json:"capacity_per_day" binding:"omitempty,gt=0"`
	IsActive       *bool    `json:"is_active"`
}

// Updates returns the columns to change
func (r *MillUpdateRequest) Updates(admin bool) map[string]any {
	u := map[string]any{}
	setIf(u, "name", r.Name)
	setIf(u, "address", r.Address)
	setIf(u, "phone", r.Phone)
	setIf(u, "capacity_per_day", r.CapacityPerDay)
	if admin {
		setIf(u, "is_active", r.IsActive)
	}
	return u
}

// FeedTypeRequest adds a product to the feed catalogue
type FeedTypeRequest struct {
	Name        string  `json:"name" binding:"required,max=50"`
	Description string  `json:"description"`
	PricePerKg  float64 `json:"price_per_kg" binding:"required,gt=0"`
	IsAvailable *bool   `json:"is_available"`
}

// OrderItemRequest is one line of a feed order
type OrderItemRequest struct {
	FeedTypeID uint    `json:"feed_type_id" binding:"required"`
	Quantity   float64 `json:"quantity" binding:"required,gt=0"`
}

// OrderCreateRequest places a feed order with one mill
type OrderCreateRequest struct {
	MillID               uint               `json:"mill_id" binding:"required"`
	DeliveryAddress      string             `json:"delivery_address" binding:"required"`
	ExpectedDeliveryDate *time.Time         `json:"expected_delivery_date"`
	Notes                string             `json:"notes"`
	Items                []OrderItemRequest `json:"items" binding:"required,dive"`
}

// OrderStatusRequest is sent by a mill to move an order along
type OrderStatusRequest struct {
	Status             *string    `json:"status"`
	ActualDeliveryDate *time.Time `json:"actual_delivery_date"`
	Notes              *string    `json:"notes"`
}
