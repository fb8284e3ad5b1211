package availability

import (
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/domain"
)

// Validator 按业务规则校验员工提交的每周排班时间，
// 校验顺序固定，返回第一条被违反的规则对应的错误
type Validator struct {
	clock            Clock
	location         *time.Location
	openMinutes      int
	closeMinutes     int
	openTime         string
	closeTime        string
	maxWeeklyMinutes int
	minWeeklyMinutes int
	minDistinctDays  int
}

func NewValidator(clock Clock, timezone string, openTime string, closeTime string, maxWeeklyMinutes int, minWeeklyMinutes int, minDistinctDays int) (*Validator, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("无法加载时区 %q: %w", timezone, err)
	}

	openMinutes, err := minutesOfDay(openTime)
	if err != nil {
		return nil, fmt.Errorf("营业开始时间错误: %w", err)
	}
	closeMinutes, err := minutesOfDay(closeTime)
	if err != nil {
		return nil, fmt.Errorf("营业结束时间错误: %w", err)
	}

	return &Validator{
		clock:            clock,
		location:         location,
		openMinutes:      openMinutes,
		closeMinutes:     closeMinutes,
		openTime:         openTime,
		closeTime:        closeTime,
		maxWeeklyMinutes: maxWeeklyMinutes,
		minWeeklyMinutes: minWeeklyMinutes,
		minDistinctDays:  minDistinctDays,
	}, nil
}

// MinWeeklyHours 返回提交模式下每周要求的最少工作小时数，用于通知邮件
func (v *Validator) MinWeeklyHours() int {
	return v.minWeeklyMinutes / 60
}

// Location 返回校验所用的时区，请求中的日期也应按该时区解析
func (v *Validator) Location() *time.Location {
	return v.location
}

// ValidateEntryWindows 只检查时间先后和营业时间，
// 用于管理员直接插入排班记录的场景
func (v *Validator) ValidateEntryWindows(entries []domain.AvailabilityEntry) error {
	for i, entry := range entries {
		start, err := minutesOfDay(entry.StartTime)
		if err != nil {
			return fmt.Errorf("第 %d 条时间段的开始时间格式错误", i+1)
		}
		end, err := minutesOfDay(entry.EndTime)
		if err != nil {
			return fmt.Errorf("第 %d 条时间段的结束时间格式错误", i+1)
		}
		if end <= start {
			return fmt.Errorf("第 %d 条时间段的结束时间必须晚于开始时间", i+1)
		}
		if start < v.openMinutes || end > v.closeMinutes {
			return fmt.Errorf("第 %d 条时间段必须在营业时间 %s-%s 内", i+1, v.openTime, v.closeTime)
		}
	}

	return nil
}

// Validate 依次检查每条时间段的周范围、月范围、时间先后、营业时间，
// 再检查每周总时长上限；仅在 mode 为提交时检查最少天数和最少时长
func (v *Validator) Validate(submission *domain.WeeklySubmission) error {
	startMinutes := make([]int, len(submission.Entries))
	endMinutes := make([]int, len(submission.Entries))

	for i, entry := range submission.Entries {
		start, err := minutesOfDay(entry.StartTime)
		if err != nil {
			return fmt.Errorf("第 %d 条时间段的开始时间格式错误", i+1)
		}
		end, err := minutesOfDay(entry.EndTime)
		if err != nil {
			return fmt.Errorf("第 %d 条时间段的结束时间格式错误", i+1)
		}
		startMinutes[i] = start
		endMinutes[i] = end
	}

	// 每一天都必须落在本周的周一到周日之间
	for i, entry := range submission.Entries {
		if entry.ScheduleDate.Before(submission.WeekStart) || entry.ScheduleDate.After(submission.WeekEnd.AddDate(0, 0, 1).Add(-time.Nanosecond)) {
			return fmt.Errorf("第 %d 条时间段的日期 %s 不在本周范围内", i+1, entry.ScheduleDate.Format("2006-01-02"))
		}
	}

	// 不允许跨月提交
	now := v.clock.Now().In(v.location)
	for i, entry := range submission.Entries {
		if entry.ScheduleDate.Year() != now.Year() || entry.ScheduleDate.Month() != now.Month() {
			return fmt.Errorf("第 %d 条时间段的日期 %s 不在本月内，不能跨月提交", i+1, entry.ScheduleDate.Format("2006-01-02"))
		}
	}

	for i := range submission.Entries {
		if endMinutes[i] <= startMinutes[i] {
			return fmt.Errorf("第 %d 条时间段的结束时间必须晚于开始时间", i+1)
		}
	}

	for i := range submission.Entries {
		if startMinutes[i] < v.openMinutes || endMinutes[i] > v.closeMinutes {
			return fmt.Errorf("第 %d 条时间段必须在营业时间 %s-%s 内", i+1, v.openTime, v.closeTime)
		}
	}

	totalMinutes := 0
	for i := range submission.Entries {
		totalMinutes += endMinutes[i] - startMinutes[i]
	}
	if totalMinutes > v.maxWeeklyMinutes {
		return fmt.Errorf("每周工作总时长不能超过 %d 小时", v.maxWeeklyMinutes/60)
	}

	if submission.Mode == domain.ModeSubmit {
		distinctDays := make(map[string]struct{})
		for _, entry := range submission.Entries {
			distinctDays[entry.ScheduleDate.Format("2006-01-02")] = struct{}{}
		}
		if len(distinctDays) < v.minDistinctDays {
			return fmt.Errorf("提交时每周工作天数不能少于 %d 天", v.minDistinctDays)
		}
		if totalMinutes < v.minWeeklyMinutes {
			return fmt.Errorf("提交时每周工作总时长不能少于 %d 小时", v.minWeeklyMinutes/60)
		}
	}

	return nil
}
