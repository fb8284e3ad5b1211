package domain

import "time"

type SubmissionMode string

const (
	ModeDraft  SubmissionMode = "draft"
	ModeSubmit SubmissionMode = "submit"
)

type ScheduleCreatedBy string

const (
	CreatedByStaff ScheduleCreatedBy = "员工"
	CreatedByAdmin ScheduleCreatedBy = "管理员"
)

type ScheduleStatus string

const (
	ScheduleStatusActive   ScheduleStatus = "有效"
	ScheduleStatusInactive ScheduleStatus = "无效"
)

type ApprovalStatus string

const (
	ApprovalStatusDraft    ApprovalStatus = "草稿"
	ApprovalStatusPending  ApprovalStatus = "待审核"
	ApprovalStatusApproved ApprovalStatus = "已通过"
)

// AvailabilityEntry 是员工提交的某一天内的一个工作时间段，
// 时间使用 "15:04" 格式的字符串表示
type AvailabilityEntry struct {
	ScheduleDate time.Time `json:"scheduleDate"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
}

// WeeklySubmission 是员工对某一周的完整的排班时间提交
type WeeklySubmission struct {
	StaffID   int64               `json:"staffID"`
	WeekStart time.Time           `json:"weekStart"`
	WeekEnd   time.Time           `json:"weekEnd"`
	Mode      SubmissionMode      `json:"mode"`
	Entries   []AvailabilityEntry `json:"entries"`
}

type ScheduleRow struct {
	ID             int64             `json:"id"`
	StaffID        int64             `json:"staffID"`
	ScheduleDate   time.Time         `json:"scheduleDate"`
	StartTime      string            `json:"startTime"`
	EndTime        string            `json:"endTime"`
	CreatedBy      ScheduleCreatedBy `json:"createdBy"`
	Status         ScheduleStatus    `json:"status"`
	ApprovalStatus ApprovalStatus    `json:"approvalStatus"`
	CreatedAt      time.Time         `json:"createdAt"`
	Version        int32             `json:"-"`
}
