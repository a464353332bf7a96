package api

// baseResponse is the JSON envelope every backend endpoint uses.
type baseResponse[T any] struct {
	Status     string   `json:"status"`
	StatusCode *int     `json:"statusCode"`
	Message    *string  `json:"message"`
	Error      []string `json:"error"`
	Data       *T       `json:"data"`
}

type LoginRequest struct {
	UserName string `json:"userName"`
	FCMToken string `json:"fcmToken"`
}

type LoginResponse struct {
	EmpID        string `json:"empId"`
	Name         string `json:"name"`
	MobileNo     string `json:"mobileNo"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	OTPCode      *int   `json:"otpCode"`
	IsFirstLogin bool   `json:"isFirstLogin"`
	UserRoleType string `json:"userRoleType"`
}

type otpValidationRequest struct {
	EmpID int `json:"empId"`
	OTP   int `json:"otp"`
}

type otpValidationResponse struct {
	Validated bool `json:"validated"`
}

type updateFCMTokenRequest struct {
	FCMToken string `json:"fcmToken"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshTokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type FirstSyncData struct {
	EmployeeInfo *EmployeeInfoDTO `json:"employeeInfo"`
}

type EmployeeInfoDTO struct {
	EmpID   *string `json:"empId"`
	SurName *string `json:"surName"`
}

// MenuPermissionDTO mirrors the backend's nullable menu entry. A nil
// IsEnabled means enabled; only an explicit false disables the entry.
type MenuPermissionDTO struct {
	Title     *string `json:"title"`
	Sequence  *int    `json:"sequence"`
	IsEnabled *bool   `json:"isEnable"`
}

type NoticeDTO struct {
	Title *string `json:"noticeTitle"`
	Body  *string `json:"noticeBody"`
	Date  *string `json:"noticeDate"`
}
