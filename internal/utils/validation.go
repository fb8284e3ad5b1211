package utils

import (
	"errors"
	"fmt"
	"time"
)

// ParseClock 把 "15:04" 格式的时间解析为当天的分钟数
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("时间 %q 的格式错误，应为 HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ComputeBookingEnd 根据项目时长推算预约的结束时间，不允许跨天
func ComputeBookingEnd(startTime string, durationMinutes int32) (string, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return "", errors.New("开始时间格式错误，应为 HH:MM")
	}

	end := start + int(durationMinutes)
	if end >= 24*60 {
		return "", errors.New("预约结束时间不能跨天")
	}

	return FormatClock(end), nil
}

// ValidateBookingInFuture 检查预约的开始时间是否晚于当前时间
func ValidateBookingInFuture(bookingDate time.Time, startTime string, now time.Time) error {
	start, err := ParseClock(startTime)
	if err != nil {
		return errors.New("开始时间格式错误，应为 HH:MM")
	}

	startAt := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), start/60, start%60, 0, 0, bookingDate.Location())
	if !startAt.After(now) {
		return errors.New("预约时间必须晚于当前时间")
	}

	return nil
}
