package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type ChangeEmailMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type AvailabilityMailEntry struct {
	ScheduleDate string `json:"scheduleDate"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
}

type AvailabilitySubmittedMailData struct {
	FullName      string                  `json:"fullName"`
	WeekStart     string                  `json:"weekStart"`
	WeekEnd       string                  `json:"weekEnd"`
	RequiredHours int                     `json:"requiredHours"`
	Entries       []AvailabilityMailEntry `json:"entries"`
}

type BookingReminderMailData struct {
	FullName    string `json:"fullName"`
	ServiceName string `json:"serviceName"`
	StaffName   string `json:"staffName"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}
