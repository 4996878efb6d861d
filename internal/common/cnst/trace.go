package cnst

// Tracer names used across the api server
const (
	TraceAPIServer = "kukkuta/apiserver"
	TraceDatabase  = "kukkuta/database"
)

// Span names for the operations worth following end to end
const (
	SpanResolvePrincipal = "auth.resolve_principal"
	SpanReportApprove    = "report.approve"
	SpanReportReject     = "report.reject"
	SpanBulkVerify       = "farmer.bulk_verify"
	SpanPhotoUpload      = "routine.upload_photo"
	SpanReportExport     = "report.export"
)

// Attribute keys
const (
	AttrUserID     = "user.id"
	AttrUserRole   = "user.role"
	AttrReportID   = "report.id"
	AttrBulkCount  = "bulk.count"
	AttrBulkUpdate = "bulk.updated"
	AttrErrorKind  = "error.kind"
)
