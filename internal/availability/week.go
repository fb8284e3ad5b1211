package availability

import (
	"fmt"
	"time"
)

// WeekBounds 返回 t 所在周的周一和周日的零点，时区与 t 保持一致。
// 同一周内的任意一天都会推导出相同的结果
func WeekBounds(t time.Time) (weekStart time.Time, weekEnd time.Time) {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		// 周日
		offset += 7
	}

	weekStart = time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
	weekEnd = weekStart.AddDate(0, 0, 6)
	return weekStart, weekEnd
}

// WeekKey 返回某一周的唯一整数标识（周一距离 Unix 纪元的天数），
// 用作 postgres 咨询锁的键
func WeekKey(t time.Time) int32 {
	weekStart, _ := WeekBounds(t)
	midnight := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, time.UTC)
	return int32(midnight.Unix() / 86400)
}

// minutesOfDay 把 "15:04" 格式的时间解析为当天的分钟数
func minutesOfDay(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("时间 %q 的格式错误，应为 HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
