package dto

import "time"

// CostDetailRequest is one cost line of a report
type CostDetailRequest struct {
	Item     string  `json:"item" binding:"required,max=100"`
	Quantity string  `json:"quantity" binding:"max=50"`
	Rate     string  `json:"rate" binding:"max=50"`
	Amount   float64 `json:"amount"`
}

// CostDetailCreateRequest adds a cost line to an existing draft report
type CostDetailCreateRequest struct {
	ProductionReportID uint `json:"production_report_id" binding:"required"`
	CostDetailRequest
}

// ReportRequest submits a production report. It always starts as a draft.
type ReportRequest struct {
	FarmerName string    `json:"farmer_name" binding:"required,max=100"`
	Place      string    `json:"place" binding:"required,max=200"`
	HatchDate  time.Time `json:"hatch_date" binding:"required"`

	TotalMortalityPercent float64 `json:"total_mortality_percent" binding:"min=0"`
	ChicksHoused          int     `json:"chicks_housed" binding:"min=0"`
	MortalityNos          int     `json:"mortality_nos" binding:"min=0"`
	BirdLifted            int     `json:"bird_lifted" binding:"min=0"`
	Shortage              int     `json:"shortage"`
	BirdWeightKg          float64 `json:"bird_weight_kg" binding:"min=0"`

	FcrPercent     float64  `json:"fcr_percent"`
	LiftingPercent float64  `json:"lifting_percent"`
	AvgWeightKg    float64  `json:"avg_weight_kg" binding:"min=0"`
	MeanAgeDays    *int     `json:"mean_age_days"`
	FarmerProfitKg *float64 `json:"farmer_profit_kg"`
	MspKg          *float64 `json:"msp_kg"`
	LotGrade       string   `json:"lot_grade" binding:"required,max=10"`

	ProductionCostPerKg  float64  `json:"production_cost_per_kg"`
	BasicRate            float64  `json:"basic_rate"`
	PerformanceBonus     string   `json:"performance_bonus" binding:"max=100"`
	Balance              *float64 `json:"balance"`
	ShortingBirdKg       string   `json:"shorting_bird_kg" binding:"max=100"`
	ExtraMortality       string   `json:"extra_mortality" binding:"max=100"`
	MinimumGrowingCharge string   `json:"minimum_growing_charge" binding:"max=100"`
	FinalAmount          float64  `json:"final_amount"`

	CostDetails []CostDetailRequest `json:"cost_details" binding:"dive"`
}

// ReportUpdateRequest edits a draft report. Approval fields are not part of
// it; they only change through the admin transitions.
type ReportUpdateRequest struct {
	FarmerName *string    `json:"farmer_name" binding:"omitempty,max=100"`
	Place      *string    `json:"place" binding:"omitempty,max=200"`
	HatchDate  *time.Time `json:"hatch_date"`

	TotalMortalityPercent *float64 `json:"total_mortality_percent" binding:"omitempty,min=0"`
	ChicksHoused          *int     `json:"chicks_housed" binding:"omitempty,min=0"`
	MortalityNos          *int     `json:"mortality_nos" binding:"omitempty,min=0"`
	BirdLifted            *int     `json:"bird_lifted" binding:"omitempty,min=0"`
	Shortage              *int     `json:"shortage"`
	BirdWeightKg          *float64 `json:"bird_weight_kg" binding:"omitempty,min=0"`

	FcrPercent     *float64 `json:"fcr_percent"`
	LiftingPercent *float64 `json:"lifting_percent"`
	AvgWeightKg    *float64 `json:"avg_weight_kg" binding:"omitempty,min=0"`
	MeanAgeDays    *int     `json:"mean_age_days"`
	FarmerProfitKg *float64 `json:"farmer_profit_kg"`
	MspKg          *float64 `json:"msp_kg"`
	LotGrade       *string  `json:"lot_grade" binding:"omitempty,max=10"`

	ProductionCostPerKg  *float64 `json:"production_cost_per_kg"`
	BasicRate            *float64 `json:"basic_rate"`
	PerformanceBonus     *string  `json:"performance_bonus" binding:"omitempty,max=100"`
	Balance              *float64 `json:"balance"`
	ShortingBirdKg       *string  `json:"shorting_bird_kg" binding:"omitempty,max=100"`
	ExtraMortality       *string  `json:"extra_mortality" binding:"omitempty,max=100"`
	MinimumGrowingCharge *string  `json:"minimum_growing_charge" binding:"omitempty,max=100"`
	FinalAmount          *float64 `json:"final_amount"`
}

// Updates returns the columns to change
func (r *ReportUpdateRequest) Updates() map[string]any {
	u := map[string]any{}
	setIf(u, "farmer_name", r.FarmerName)
	setIf(u, "place", r.Place)
	setIf(u, "hatch_date", r.HatchDate)
	setIf(u, "total_mortality_percent", r.TotalMortalityPercent)
	setIf(u, "chicks_housed", r.ChicksHoused)
	setIf(u, "mortality_nos", r.MortalityNos)
	setIf(u, "bird_lifted", r.BirdLifted)
	setIf(u, "shortage", r.Shortage)
	setIf(u, "bird_weight_kg", r.BirdWeightKg)
	setIf(u, "fcr_percent", r.FcrPercent)
	setIf(u, "lifting_percent", r.LiftingPercent)
	setIf(u, "avg_weight_kg", r.AvgWeightKg)
	setIf(u, "mean_age_days", r.MeanAgeDays)
	setIf(u, "farmer_profit_kg", r.FarmerProfitKg)
	setIf(u, "msp_kg", r.MspKg)
	setIf(u, "lot_grade", r.LotGrade)
	setIf(u, "production_cost_per_kg", r.ProductionCostPerKg)
	setIf(u, "basic_rate", r.BasicRate)
	setIf(u, "performance_bonus", r.PerformanceBonus)
	setIf(u, "balance", r.Balance)
	setIf(u, "shorting_bird_kg", r.ShortingBirdKg)
	setIf(u, "extra_mortality", r.ExtraMortality)
	setIf(u, "minimum_growing_charge", r.MinimumGrowingCharge)
	setIf(u, "final_amount", r.FinalAmount)
	return u
}
