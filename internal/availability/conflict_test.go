package availability

import (
	"errors"
	"testing"
	"time"

	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/domain"
)

func TestFindConflict(t *testing.T) {
	loc := mustLocation(t)
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)
	otherDay := time.Date(2025, 6, 3, 0, 0, 0, 0, loc)

	existing := []*domain.ScheduleRow{
		{StaffID: 1, ScheduleDate: day, StartTime: "10:00", EndTime: "12:00"},
	}

	tests := []struct {
		name         string
		entry        domain.AvailabilityEntry
		wantConflict bool
	}{
		{
			name:         "部分重叠算冲突",
			entry:        domain.AvailabilityEntry{ScheduleDate: day, StartTime: "11:00", EndTime: "13:00"},
			wantConflict: true,
		},
		{
			name:         "完全包含算冲突",
			entry:        domain.AvailabilityEntry{ScheduleDate: day, StartTime: "09:00", EndTime: "13:00"},
			wantConflict: true,
		},
		{
			name:         "被完全包含算冲突",
			entry:        domain.AvailabilityEntry{ScheduleDate: day, StartTime: "10:30", EndTime: "11:30"},
			wantConflict: true,
		},
		{
			name:         "刚好相接不算冲突",
			entry:        domain.AvailabilityEntry{ScheduleDate: day, StartTime: "12:00", EndTime: "13:00"},
			wantConflict: false,
		},
		{
			name:         "在已有记录之前相接不算冲突",
			entry:        domain.AvailabilityEntry{ScheduleDate: day, StartTime: "09:00", EndTime: "10:00"},
			wantConflict: false,
		},
		{
			name:         "不同日期的相同时间段不算冲突",
			entry:        domain.AvailabilityEntry{ScheduleDate: otherDay, StartTime: "10:00", EndTime: "12:00"},
			wantConflict: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FindConflict(existing, []domain.AvailabilityEntry{tt.entry})
			if !tt.wantConflict {
				if err != nil {
					t.Fatalf("不应该检测到冲突，实际返回: %v", err)
				}
				return
			}

			var conflictErr *ConflictError
			if !errors.As(err, &conflictErr) {
				t.Fatalf("应该返回 ConflictError，实际返回: %v", err)
			}
			if conflictErr.StartTime != tt.entry.StartTime || conflictErr.EndTime != tt.entry.EndTime {
				t.Fatalf("冲突错误应指向新的时间段 %s-%s，实际为 %s-%s", tt.entry.StartTime, tt.entry.EndTime, conflictErr.StartTime, conflictErr.EndTime)
			}
		})
	}
}

func TestFindConflictEmptyExisting(t *testing.T) {
	loc := mustLocation(t)
	entries := []domain.AvailabilityEntry{
		{ScheduleDate: time.Date(2025, 6, 2, 0, 0, 0, 0, loc), StartTime: "10:00", EndTime: "19:00"},
	}
	if err := FindConflict(nil, entries); err != nil {
		t.Fatalf("没有已存在的记录时不应该有冲突: %v", err)
	}
}
