package dto

import "time"

// RoutineRequest records one day of husbandry data for a farm
type RoutineRequest struct {
	FarmID                 uint      `json:"farm_id" binding:"required"`
	Date                   time.Time `json:"date" binding:"required"`
	MortalityCount         int       `json:"mortality_count" binding:"min=0"`
	FeedConsumptionKg      float64   `json:"feed_consumption_kg" binding:"min=0"`
	AverageBirdWeightG     float64   `json:"average_bird_weight_g" binding:"min=0"`
	WaterConsumptionLiters *float64  `json:"water_consumption_liters"`
	TemperatureCelsius     *float64  `json:"temperature_celsius"`
	HumidityPercentage     *float64  `json:"humidity_percentage" binding:"omitempty,min=0,max=100"`
	Notes                  string    `json:"notes"`
}

// RoutineUpdateRequest changes the measurements of a routine entry; farm
// and date are fixed once recorded.
type RoutineUpdateRequest struct {
	MortalityCount         *int     `json:"mortality_count" binding:"omitempty,min=0"`
	FeedConsumptionKg      *float64 `json:"feed_consumption_kg" binding:"omitempty,min=0"`
	AverageBirdWeightG     *float64 `json:"average_bird_weight_g" binding:"omitempty,min=0"`
	WaterConsumptionLiters *float64 `json:"water_consumption_liters"`
	TemperatureCelsius     *float64 `json:"temperature_celsius"`
	HumidityPercentage     *float64 `json:"humidity_percentage" binding:"omitempty,min=0,max=100"`
	Notes                  *string  `json:"notes"`
}

// Updates returns the columns to change
func (r *RoutineUpdateRequest) Updates() map[string]any {
	u := map[string]any{}
	setIf(u, "mortality_count", r.MortalityCount)
	setIf(u, "feed_consumption_kg", r.FeedConsumptionKg)
	setIf(u, "average_bird_weight_g", r.AverageBirdWeightG)
	setIf(u, "water_consumption_liters", r.WaterConsumptionLiters)
	setIf(u, "temperature_celsius", r.TemperatureCelsius)
	setIf(u, "humidity_percentage", r.HumidityPercentage)
	setIf(u, "notes", r.Notes)
	return u
}

// MortalityRequest logs deaths against a routine entry
type MortalityRequest struct {
	RoutineDataID uint   `json:"routine_data_id" binding:"required"`
	Count         int    `json:"count" binding:"required,gt=0"`
	Cause         string `json:"cause" binding:"max=100"`
	AgeDays       *int   `json:"age_days" binding:"omitempty,min=0"`
	PhotoURL      string `json:"photo_url" binding:"max=500"`
	Notes         string `json:"notes"`
}

// MortalityUpdateRequest changes some fields of a mortality record
type MortalityUpdateRequest struct {
	Count    *int    `json:"count" binding:"omitempty,gt=0"`
	Cause    *string `json:"cause" binding:"omitempty,max=100"`
	AgeDays  *int    `json:"age_days" binding:"omitempty,min=0"`
	PhotoURL *string `json:"photo_url" binding:"omitempty,max=500"`
	Notes    *string `json:"notes"`
}

// Updates returns the columns to change
func (r *MortalityUpdateRequest) Updates() map[string]any {
	u := map[string]any{}
	setIf(u, "count", r.Count)
	setIf(u, "cause", r.Cause)
	setIf(u, "age_days", r.AgeDays)
	setIf(u, "photo_url", r.PhotoURL)
	setIf(u, "notes", r.Notes)
	return u
}
