package dto

// AdminLogRequest records a manual entry in the admin log. An empty action
// is stored as "manual".
type AdminLogRequest struct {
	Action      string `json:"action" binding:"max=50"`
	TargetType  string `json:"target_type" binding:"max=50"`
	TargetID    *uint  `json:"target_id"`
	Description string `json:"description" binding:"required"`
}
