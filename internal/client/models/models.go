// Package models defines the local data model of the field-force client:
// the single-row session record, the cached dashboard projections and the
// menu permission entries.
package models

// SessionRecord is the singleton login/session row. At most one record
// exists at any time; saving always replaces it wholesale.
type SessionRecord struct {
	EmpID          string
	EmpName        string
	MobileNo       string
	PhoneNumber    string
	FCMToken       string
	PasswordDigest string
	OTP            string
	AccessToken    string
	RefreshToken   string
	IsSignedUp     bool
	IsLoggedIn     bool
	IsFirstSync    bool
	IsFirstLogin   bool
	UserRoleType   string
}

// DashboardSummary is the cached, UI-optimized dashboard projection.
// EmployeeName/EmployeeID may be empty here; readers merge in fallbacks
// from the session record at read time.
type DashboardSummary struct {
	EmployeeName       string `json:"employeeName"`
	EmployeeID         string `json:"employeeId"`
	AttendanceStatus   string `json:"attendanceStatus"`
	LastSyncTime       string `json:"lastSyncTime"`
	IsFirstSyncDone    bool   `json:"isFirstSyncDone"`
	PostOrderCount     int    `json:"postOrderCount"`
	DCRCount           int    `json:"dcrCount"`
	HasPendingApproval bool   `json:"hasPendingApproval"`
}

// AttendanceSession enumerates the attendance states of the working day.
type AttendanceSession string

const (
	SessionStage    AttendanceSession = "SESSION_STAGE"
	SessionCheckIn  AttendanceSession = "SESSION_CHECK_IN"
	SessionCheckOut AttendanceSession = "SESSION_CHECK_OUT"
)

// AttendanceModel is the cached attendance singleton.
type AttendanceModel struct {
	Session AttendanceSession `json:"session"`
}

// PostOrderInfo is the cached post-order counter singleton.
type PostOrderInfo struct {
	Count int `json:"count"`
}

// MenuPermissionEntry is one enabled dashboard menu entry. The collection
// is replaced wholesale on every sync; entries are never updated in place.
type MenuPermissionEntry struct {
	Title    string
	Sequence int
}

// Capability tags a menu entry with the dashboard feature it unlocks.
type Capability string

const (
	CapabilityStartYourDay        Capability = "START_YOUR_DAY"
	CapabilityPostOrder           Capability = "POST_ORDER"
	CapabilityPostSpecialOrder    Capability = "POST_SPECIAL_ORDER"
	CapabilityOrderHistoryUser    Capability = "ORDER_HISTORY_USER"
	CapabilityOrderHistoryManager Capability = "ORDER_HISTORY_MANAGER"
	CapabilityManagerLiveLocation Capability = "MANAGER_LIVE_LOCATION"
	CapabilityAttendanceReport    Capability = "ATTENDANCE_REPORT"
	CapabilityLeaveManagement     Capability = "LEAVE_MANAGEMENT"
	CapabilityLeave               Capability = "LEAVE"
	CapabilityDraftOrder          Capability = "DRAFT_ORDER"
	CapabilitySalesSummaryReport  Capability = "SALES_SUMMARY_REPORT"
	CapabilityProductSalesReport  Capability = "PRODUCT_SALES_REPORT"
	CapabilityChemistSalesReport  Capability = "CHEMIST_SALES_REPORT"

	// CapabilityUnmapped marks a menu title the client does not recognize.
	// It is distinct from every real capability so misclassified entries
	// stay observable instead of silently landing on an arbitrary default.
	CapabilityUnmapped Capability = "UNMAPPED"
)

// MenuItem is the derived, display-ready menu entry.
type MenuItem struct {
	Title           string
	Capability      Capability
	Sequence        int
	IsRedDotVisible bool
}

// Notice is a broadcast message shown on the dashboard.
type Notice struct {
	Title       string
	Description string
	Date        string
}
