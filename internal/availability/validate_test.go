package availability

import (
	"strings"
	"testing"
	"time"

	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/domain"
)

func mustLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Fatalf("无法加载时区: %v", err)
	}
	return loc
}

// newTestValidator 构造一个校验器，营业时间 10:00-19:00，
// 每周上限 40 小时，提交模式下限 12 小时、2 天，当前时间固定为 now
func newTestValidator(t *testing.T, now time.Time) *Validator {
	t.Helper()
	v, err := NewValidator(FixedClock(now), "Asia/Shanghai", "10:00", "19:00", 2400, 720, 2)
	if err != nil {
		t.Fatalf("无法创建校验器: %v", err)
	}
	return v
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, mustLocation(t))
	if err != nil {
		t.Fatalf("无法解析日期 %q: %v", s, err)
	}
	return d
}

func newSubmission(t *testing.T, from string, mode domain.SubmissionMode, entries []domain.AvailabilityEntry) *domain.WeeklySubmission {
	t.Helper()
	weekStart, weekEnd := WeekBounds(date(t, from))
	return &domain.WeeklySubmission{
		StaffID:   1,
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Mode:      mode,
		Entries:   entries,
	}
}

func TestValidate(t *testing.T) {
	// 2025-06-02 是周一，整周都在六月内
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, mustLocation(t))

	tests := []struct {
		name    string
		mode    domain.SubmissionMode
		entries []domain.AvailabilityEntry
		wantErr string
	}{
		{
			name: "提交模式下满足全部规则",
			mode: domain.ModeSubmit,
			entries: []domain.AvailabilityEntry{
				{ScheduleDate: time.Date(2025, 6, 2, 0, 0, 0, 0, mustLocation(t)), StartTime: "10:00", EndTime: "14:00"},
				{ScheduleDate: time.Date(2025, 6, 4, 0, 0, 0, 0, mustLocation(t)), StartTime: "10:00", EndTime: "18:00"},
			},
		},
		{
			name: "草稿模式不检查最少时长和最少天数",
			mode: domain.ModeDraft,
			entries: []domain.AvailabilityEntry{
				{ScheduleDate: time.Date(2025, 6, 3, 0, 0, 0, 0, mustLocation(t)), StartTime: "10:00", EndTime: "11:00"},
			},
		},
		{
			name:    "草稿模式允许空的时间段列表",
			mode:    domain.ModeDraft,
			entries: []domain.AvailabilityEntry{},
		},
		{
			name: "提交模式总时长不足被拒绝",
			mode: domain.ModeSubmit,
			entries: []domain.AvailabilityEntry{
				{ScheduleDate: time.Date(2025, 6, 2, 0, 0, 0, 0, mustLocation(t)), StartTime: "10:00", EndTime: "14:00"},
				{ScheduleDate: time.Date(2025, 6, 4, 0, 0, 0, 0, mustLocation(t)), StartTime: "10:00", EndTime: "17:00"},
			},
			wantErr: "不能少于 12 小时",
		},
		{
			name: "同一天多条记录只算一个工作日",
			mode: domain.ModeSubmit,
			entries: []domain.AvailabilityEntry{
				{ScheduleDate: time.Date(2025, 6, 2, 0, 0, 0, 0, mustLocation(t)), StartTime: "10:00", EndTime: "16:00"},
				{ScheduleDate: time.Date(2025, 6, 2, 0, 0, 0, 0, mustLocation(t)), StartTime: "16:00", EndTime: "19:00"},
			},
			wantErr: "不能少于 2 天",
		},
		{
			name: "日期不在本周内被拒绝",
			mode: domain.ModeDraft,
			entries: []domain.AvailabilityEntry{
				{ScheduleDate: time.Date(2025, 6, 9, 0, 0, 0, 0, mustLocation(t)), StartTime: "10:00", EndTime: "12:00"},
			},
			wantErr: "不在本周范围内",
		},
		{
			name: "结束时间早于开始时间被拒绝",
			mode: domain.ModeDraft,
			entries: []domain.AvailabilityEntry{
				{ScheduleDate: time.Date(2025, 6, 2, 0, 0, 0, 0, mustLocation(t)), StartTime: "14:00", EndTime: "12:00"},
			},
			wantErr: "结束时间必须晚于开始时间",
		},
		{
			name: "结束时间等于开始时间被拒绝",
			mode: domain.ModeDraft,
			entries: []domain.AvailabilityEntry{
				{ScheduleDate: time.Date(2025, 6, 2, 0, 0, 0, 0, mustLocation(t)), StartTime: "12:00", EndTime: "12:00"},
			},
			wantErr: "结束时间必须晚于开始时间",
		},
		{
			name: "刚好覆盖整个营业时间可以通过",
			mode: domain.ModeDraft,
			entries: []domain.AvailabilityEntry{
				{ScheduleDate: time.Date(2025, 6, 2, 0, 0, 0, 0, mustLocation(t)), StartTime: "10:00", EndTime: "19:00"},
			},
		},
		{
			name: "早于营业开始时间被拒绝",
			mode: domain.ModeDraft,
			entries: []domain.AvailabilityEntry{
				{ScheduleDate: time.Date(2025, 6, 2, 0, 0, 0, 0, mustLocation(t)), StartTime: "09:59", EndTime: "12:00"},
			},
			wantErr: "营业时间 10:00-19:00",
		},
		{
			name: "晚于营业结束时间被拒绝",
			mode: domain.ModeDraft,
			entries: []domain.AvailabilityEntry{
				{ScheduleDate: time.Date(2025, 6, 2, 0, 0, 0, 0, mustLocation(t)), StartTime: "18:00", EndTime: "19:01"},
			},
			wantErr: "营业时间 10:00-19:00",
		},
		{
			name: "总时长超过每周上限被拒绝",
			mode: domain.ModeDraft,
			entries: []domain.AvailabilityEntry{
				{ScheduleDate: time.Date(2025, 6, 2, 0, 0, 0, 0, mustLocation(t)), StartTime: "10:00", EndTime: "19:00"},
				{ScheduleDate: time.Date(2025, 6, 3, 0, 0, 0, 0, mustLocation(t)), StartTime: "10:00", EndTime: "19:00"},
				{ScheduleDate: time.Date(2025, 6, 4, 0, 0, 0, 0, mustLocation(t)), StartTime: "10:00", EndTime: "19:00"},
				{ScheduleDate: time.Date(2025, 6, 5, 0, 0, 0, 0, mustLocation(t)), StartTime: "10:00", EndTime: "19:00"},
				{ScheduleDate: time.Date(2025, 6, 6, 0, 0, 0, 0, mustLocation(t)), StartTime: "10:00", EndTime: "19:00"},
			},
			wantErr: "不能超过 40 小时",
		},
		{
			name: "开始时间格式错误被拒绝",
			mode: domain.ModeDraft,
			entries: []domain.AvailabilityEntry{
				{ScheduleDate: time.Date(2025, 6, 2, 0, 0, 0, 0, mustLocation(t)), StartTime: "10点", EndTime: "12:00"},
			},
			wantErr: "开始时间格式错误",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestValidator(t, now)
			submission := newSubmission(t, "2025-06-02", tt.mode, tt.entries)

			err := v.Validate(submission)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("校验不应该失败，但返回了错误: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("校验应该失败，但没有返回错误")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("错误信息应包含 %q，实际为: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateCrossMonth(t *testing.T) {
	// 2025-06-30 是周一，这一周横跨六月和七月
	now := time.Date(2025, 6, 30, 9, 0, 0, 0, mustLocation(t))
	v := newTestValidator(t, now)

	submission := newSubmission(t, "2025-06-30", domain.ModeDraft, []domain.AvailabilityEntry{
		{ScheduleDate: time.Date(2025, 7, 1, 0, 0, 0, 0, mustLocation(t)), StartTime: "10:00", EndTime: "12:00"},
	})

	err := v.Validate(submission)
	if err == nil {
		t.Fatalf("跨月的日期应该被拒绝")
	}
	if !strings.Contains(err.Error(), "不能跨月提交") {
		t.Fatalf("错误信息应提示不能跨月提交，实际为: %v", err)
	}

	// 同一周内六月的日期仍然可以提交
	submission = newSubmission(t, "2025-06-30", domain.ModeDraft, []domain.AvailabilityEntry{
		{ScheduleDate: time.Date(2025, 6, 30, 0, 0, 0, 0, mustLocation(t)), StartTime: "10:00", EndTime: "12:00"},
	})
	if err := v.Validate(submission); err != nil {
		t.Fatalf("本月内的日期不应该被拒绝: %v", err)
	}
}

func TestValidateRuleOrder(t *testing.T) {
	// 同一条记录同时违反周范围和营业时间时，应先报周范围的错误
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, mustLocation(t))
	v := newTestValidator(t, now)

	submission := newSubmission(t, "2025-06-02", domain.ModeSubmit, []domain.AvailabilityEntry{
		{ScheduleDate: time.Date(2025, 6, 15, 0, 0, 0, 0, mustLocation(t)), StartTime: "08:00", EndTime: "09:00"},
	})

	err := v.Validate(submission)
	if err == nil {
		t.Fatalf("校验应该失败，但没有返回错误")
	}
	if !strings.Contains(err.Error(), "不在本周范围内") {
		t.Fatalf("应先检查周范围，实际错误为: %v", err)
	}
}

func TestValidateEntryWindows(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, mustLocation(t))
	v := newTestValidator(t, now)

	entries := []domain.AvailabilityEntry{
		{ScheduleDate: time.Date(2025, 6, 2, 0, 0, 0, 0, mustLocation(t)), StartTime: "10:00", EndTime: "19:00"},
	}
	if err := v.ValidateEntryWindows(entries); err != nil {
		t.Fatalf("合法的时间段不应该被拒绝: %v", err)
	}

	entries[0].EndTime = "19:30"
	if err := v.ValidateEntryWindows(entries); err == nil {
		t.Fatalf("超出营业时间的时间段应该被拒绝")
	}
}
