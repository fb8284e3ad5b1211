package availability

import (
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/domain"
)

// ConflictError 表示新的时间段与已有的排班记录重叠
type ConflictError struct {
	ScheduleDate time.Time
	StartTime    string
	EndTime      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s 的时间段 %s-%s 与已有的排班记录冲突", e.ScheduleDate.Format("2006-01-02"), e.StartTime, e.EndTime)
}

// FindConflict 用区间重叠判定检查新时间段是否与已有记录冲突：
// existing.start < new.end 且 existing.end > new.start。
// 两个刚好相接的时间段不算冲突
func FindConflict(existing []*domain.ScheduleRow, entries []domain.AvailabilityEntry) error {
	for _, entry := range entries {
		newStart, err := minutesOfDay(entry.StartTime)
		if err != nil {
			return err
		}
		newEnd, err := minutesOfDay(entry.EndTime)
		if err != nil {
			return err
		}

		for _, row := range existing {
			if !sameDate(row.ScheduleDate, entry.ScheduleDate) {
				continue
			}

			rowStart, err := minutesOfDay(row.StartTime)
			if err != nil {
				return err
			}
			rowEnd, err := minutesOfDay(row.EndTime)
			if err != nil {
				return err
			}

			if rowStart < newEnd && rowEnd > newStart {
				return &ConflictError{
					ScheduleDate: entry.ScheduleDate,
					StartTime:    entry.StartTime,
					EndTime:      entry.EndTime,
				}
			}
		}
	}

	return nil
}
