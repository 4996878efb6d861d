package cnst

// AdminAction is recorded on every AdminLog row
type AdminAction string

const (
	ActionApproveReport AdminAction = "approve_report"
	ActionRejectReport  AdminAction = "reject_report"
	ActionVerifyFarmers AdminAction = "bulk_verify_farmers"
	ActionCreateFarmer  AdminAction = "create_farmer"
	ActionUpdateFarmer  AdminAction = "update_farmer"
	ActionDeleteFarmer  AdminAction = "delete_farmer"
	ActionCreateMill    AdminAction = "create_mill"
	ActionUpdateMill    AdminAction = "update_mill"
	ActionDeleteMill    AdminAction = "delete_mill"
	ActionCreateFeed    AdminAction = "create_feed_type"
	ActionManual        AdminAction = "manual"
)

// Target types for AdminLog rows
const (
	TargetFarmer   = "farmer"
	TargetMill     = "mill"
	TargetReport   = "production_report"
	TargetFeedType = "feed_type"
)
