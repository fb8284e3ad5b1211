package availability

import (
	"testing"
	"time"
)

func TestWeekBounds(t *testing.T) {
	loc := mustLocation(t)

	// 2025-06-02 是周一，2025-06-08 是周日
	wantStart := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)
	wantEnd := time.Date(2025, 6, 8, 0, 0, 0, 0, loc)

	// 同一周内的任意一天都应推导出相同的周一和周日
	for day := 2; day <= 8; day++ {
		got := time.Date(2025, 6, day, 15, 30, 0, 0, loc)
		weekStart, weekEnd := WeekBounds(got)
		if !weekStart.Equal(wantStart) {
			t.Fatalf("%s 所在周的周一应为 %s，实际为 %s", got.Format("2006-01-02"), wantStart.Format("2006-01-02"), weekStart.Format("2006-01-02"))
		}
		if !weekEnd.Equal(wantEnd) {
			t.Fatalf("%s 所在周的周日应为 %s，实际为 %s", got.Format("2006-01-02"), wantEnd.Format("2006-01-02"), weekEnd.Format("2006-01-02"))
		}
	}

	// 下一周的周一应推导出新的一周
	weekStart, _ := WeekBounds(time.Date(2025, 6, 9, 0, 0, 0, 0, loc))
	if !weekStart.Equal(time.Date(2025, 6, 9, 0, 0, 0, 0, loc)) {
		t.Fatalf("2025-06-09 应是新一周的周一，实际为 %s", weekStart.Format("2006-01-02"))
	}
}

func TestWeekBoundsAcrossMonth(t *testing.T) {
	loc := mustLocation(t)

	// 2025-06-30 是周一，这一周的周日落在七月
	weekStart, weekEnd := WeekBounds(time.Date(2025, 7, 3, 12, 0, 0, 0, loc))
	if !weekStart.Equal(time.Date(2025, 6, 30, 0, 0, 0, 0, loc)) {
		t.Fatalf("2025-07-03 所在周的周一应为 2025-06-30，实际为 %s", weekStart.Format("2006-01-02"))
	}
	if !weekEnd.Equal(time.Date(2025, 7, 6, 0, 0, 0, 0, loc)) {
		t.Fatalf("2025-07-03 所在周的周日应为 2025-07-06，实际为 %s", weekEnd.Format("2006-01-02"))
	}
}

func TestWeekKey(t *testing.T) {
	loc := mustLocation(t)

	// 同一周内的每一天都应得到相同的键
	monday := WeekKey(time.Date(2025, 6, 2, 0, 0, 0, 0, loc))
	for day := 3; day <= 8; day++ {
		if key := WeekKey(time.Date(2025, 6, day, 23, 59, 0, 0, loc)); key != monday {
			t.Fatalf("2025-06-%02d 的周键应为 %d，实际为 %d", day, monday, key)
		}
	}

	// 相邻两周的键应相差 7
	nextMonday := WeekKey(time.Date(2025, 6, 9, 0, 0, 0, 0, loc))
	if nextMonday != monday+7 {
		t.Fatalf("相邻两周的周键应相差 7，实际为 %d 和 %d", monday, nextMonday)
	}
}
