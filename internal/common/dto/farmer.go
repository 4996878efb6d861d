package dto

// FarmerCreateRequest attaches a farmer profile to an existing farmer account
type FarmerCreateRequest struct {
	UserID          uint   `json:"user_id" binding:"required"`
	Phone           string `json:"phone" binding:"required,max=15"`
	Address         string `json:"address" binding:"required"`
	FarmType        string `json:"farm_type" binding:"required"`
	ExperienceYears int    `json:"experience_years" binding:"min=0"`
}

// AdminFarmerCreateRequest creates the account and the profile together
type AdminFarmerCreateRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	FullName        string `json:"full_name" binding:"required"`
	Phone           string `json:"phone" binding:"required,max=15"`
	Address         string `json:"address" binding:"required"`
	FarmType        string `json:"farm_type" binding:"required"`
	ExperienceYears int    `json:"experience_years" binding:"min=0"`
	IsVerified      bool   `json:"is_verified"`
}

// FarmerUpdateRequest is the self-service profile update
type FarmerUpdateRequest struct {
	Phone           *string `json:"phone" binding:"omitempty,max=15"`
	Address         *string `json:"address"`
	FarmType        *string `json:"farm_type"`
	ExperienceYears *int    `json:"experience_years" binding:"omitempty,min=0"`
}

// Updates returns the columns to change
func (r *FarmerUpdateRequest) Updates() map[string]any {
	u := map[string]any{}
	setIf(u, "phone", r.Phone)
	setIf(u, "address", r.Address)
	setIf(u, "farm_type", r.FarmType)
	setIf(u, "experience_years", r.ExperienceYears)
	return u
}

// AdminFarmerUpdateRequest may also touch the account and the verified flag
type AdminFarmerUpdateRequest struct {
	FarmerUpdateRequest
	IsVerified *bool   `json:"is_verified"`
	FullName   *string `json:"full_name"`
	Email      *string `json:"email" binding:"omitempty,email"`
	IsActive   *bool   `json:"is_active"`
}

// Updates returns the farmer columns to change
func (r *AdminFarmerUpdateRequest) Updates() map[string]any {
	u := r.FarmerUpdateRequest.Updates()
	setIf(u, "is_verified", r.IsVerified)
	return u
}

// UserUpdates returns the account columns to change
func (r *AdminFarmerUpdateRequest) UserUpdates() map[string]any {
	u := map[string]any{}
	setIf(u, "full_name", r.FullName)
	setIf(u, "email", r.Email)
	setIf(u, "is_active", r.IsActive)
	return u
}

// BulkVerifyRequest flips the verified flag of many farmers at once
type BulkVerifyRequest struct {
	FarmerIDs []uint `json:"farmer_ids"`
	Verified  *bool  `json:"is_verified"`
}

// IsVerified defaults to true when the flag is omitted
func (r *BulkVerifyRequest) IsVerified() bool {
	return r.Verified == nil || *r.Verified
}

// FarmRequest creates a farm for the calling farmer
type FarmRequest struct {
	Name         string  `json:"name" binding:"required,max=100"`
	Location     string  `json:"location" binding:"required,max=200"`
	Capacity     int     `json:"capacity" binding:"required,gt=0"`
	CurrentStock int     `json:"current_stock" binding:"min=0"`
	FarmSize     float64 `json:"farm_size" binding:"required,gt=0"`
}

// FarmUpdateRequest changes some fields of a farm
type FarmUpdateRequest struct {
	Name         *string  `json:"name" binding:"omitempty,max=100"`
	Location     *string  `json:"location" binding:"omitempty,max=200"`
	Capacity     *int     `json:"capacity" binding:"omitempty,gt=0"`
	CurrentStock *int     `json:"current_stock" binding:"omitempty,min=0"`
	FarmSize     *float64 `json:"farm_size" binding:"omitempty,gt=0"`
	IsActive     *bool    `json:"is_active"`
}

// Updates returns the columns to change
func (r *FarmUpdateRequest) Updates() map[string]any {
	u := map[string]any{}
	setIf(u, "name", r.Name)
	setIf(u, "location", r.Location)
	setIf(u, "capacity", r.Capacity)
	setIf(u, "current_stock", r.CurrentStock)
	setIf(u, "farm_size", r.FarmSize)
	setIf(u, "is_active", r.IsActive)
	return u
}

// setIf copies *v into m when v is set
func setIf[T any](m map[string]any, column string, v *T) {
	if v != nil {
		m[column] = *v
	}
}
