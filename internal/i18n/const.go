package i18n

// Common errors
var (
	ErrUnauthenticated  = NewErrorWithCode("ErrorUnauthenticated", KindUnauthenticated)
	ErrInactiveAccount  = NewErrorWithCode("ErrorInactiveAccount", KindInactiveAccount)
	ErrPermissionDenied = NewErrorWithCode("ErrorPermissionDenied", KindPermissionDenied)
	ErrNotFound         = NewErrorWithCode("ErrorResourceNotFound", KindNotFound)
	ErrBadRequest       = NewErrorWithCode("ErrorBadRequest", KindInvalidArgument)
	ErrConflict         = NewErrorWithCode("ErrorConflict", KindConflict)
	ErrInvalidState     = NewErrorWithCode("ErrorInvalidState", KindInvalidState)
	ErrInternalServer   = NewErrorWithCode("ErrorInternalServer", KindInternal)
)

// Account errors
var (
	ErrInvalidCredentials = NewErrorWithCode("ErrorInvalidCredentials", KindUnauthenticated)
	ErrIncorrectPassword  = NewErrorWithCode("ErrorIncorrectPassword", KindInvalidArgument)
	ErrEmailExists        = NewErrorWithCode("ErrorEmailExists", KindConflict)
	ErrUserNotFound       = NewErrorWithCode("ErrorUserNotFound", KindNotFound)
	ErrUserRoleMismatch   = NewErrorWithCode("ErrorUserRoleMismatch", KindInvalidArgument)
)

// Profile errors
var (
	ErrFarmerProfileMissing = NewErrorWithCode("ErrorFarmerProfileMissing", KindProfileMissing)
	ErrMillProfileMissing   = NewErrorWithCode("ErrorMillProfileMissing", KindProfileMissing)
	ErrFarmerProfileExists  = NewErrorWithCode("ErrorFarmerProfileExists", KindConflict)
	ErrMillProfileExists    = NewErrorWithCode("ErrorMillProfileExists", KindConflict)
)

// Resource lookups; a resource owned by someone else reports the same error as a missing one
var (
	ErrFarmerNotFound    = NewErrorWithCode("ErrorFarmerNotFound", KindNotFound)
	ErrFarmNotFound      = NewErrorWithCode("ErrorFarmNotFound", KindNotFound)
	ErrMillNotFound      = NewErrorWithCode("ErrorMillNotFound", KindNotFound)
	ErrOrderNotFound     = NewErrorWithCode("ErrorOrderNotFound", KindNotFound)
	ErrRoutineNotFound   = NewErrorWithCode("ErrorRoutineNotFound", KindNotFound)
	ErrMortalityNotFound = NewErrorWithCode("ErrorMortalityNotFound", KindNotFound)
	ErrReportNotFound    = NewErrorWithCode("ErrorReportNotFound", KindNotFound)
)

// Lifecycle errors
var (
	ErrReportLocked          = NewErrorWithCode("ErrorReportLocked", KindInvalidState)
	ErrReportAlreadyApproved = NewErrorWithCode("ErrorReportAlreadyApproved", KindInvalidState)
	ErrReportNotApproved     = NewErrorWithCode("ErrorReportNotApproved", KindInvalidState)
	ErrOrderNotCancellable   = NewErrorWithCode("ErrorOrderNotCancellable", KindInvalidState)
	ErrOrderClosed           = NewErrorWithCode("ErrorOrderClosed", KindInvalidState)
)

// Input errors
var (
	ErrEmptyFarmerIDs       = NewErrorWithCode("ErrorEmptyFarmerIDs", KindInvalidArgument)
	ErrNotAnImage           = NewErrorWithCode("ErrorNotAnImage", KindInvalidArgument)
	ErrFileTooLarge         = NewErrorWithCode("ErrorFileTooLarge", KindInvalidArgument)
	ErrSearchQueryTooShort  = NewErrorWithCode("ErrorSearchQueryTooShort", KindInvalidArgument)
	ErrInvalidOrderStatus   = NewErrorWithCode("ErrorInvalidOrderStatus", KindInvalidArgument)
	ErrFeedTypeUnavailable  = NewErrorWithCode("ErrorFeedTypeUnavailable", KindInvalidArgument)
	ErrEmptyOrder           = NewErrorWithCode("ErrorEmptyOrder", KindInvalidArgument)
	ErrInvalidID            = NewErrorWithCode("ErrorInvalidID", KindInvalidArgument)
	ErrRoutineExists        = NewErrorWithCode("ErrorRoutineExists", KindConflict)
	ErrFeedTypeExists       = NewErrorWithCode("ErrorFeedTypeExists", KindConflict)
	ErrReportNumberConflict = NewErrorWithCode("ErrorReportNumberConflict", KindConflict)
)

// Success message IDs
const (
	SuccessLoggedOut        = "SuccessLoggedOut"
	SuccessPasswordChanged  = "SuccessPasswordChanged"
	SuccessBulkVerified     = "SuccessBulkVerified"
	SuccessBulkUnverified   = "SuccessBulkUnverified"
	SuccessReportDeleted    = "SuccessReportDeleted"
	SuccessFarmerDeleted    = "SuccessFarmerDeleted"
	SuccessFarmDeleted      = "SuccessFarmDeleted"
	SuccessMillDeleted      = "SuccessMillDeleted"
	SuccessRoutineDeleted   = "SuccessRoutineDeleted"
	SuccessMortalityDeleted = "SuccessMortalityDeleted"
	SuccessOrderCancelled   = "SuccessOrderCancelled"
	SuccessPhotoUploaded    = "SuccessPhotoUploaded"
	SuccessAdminLogCreated  = "SuccessAdminLogCreated"
)
