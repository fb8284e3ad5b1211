package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/availability"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/domain"
)

func (h *Handler) GetPendingSchedules(w http.ResponseWriter, r *http.Request) {
	weekStart := r.Context().Value(WeekStartCtx).(time.Time)
	weekEnd := r.Context().Value(WeekEndCtx).(time.Time)

	rows, err := h.repository.GetPendingScheduleRows(weekStart, weekEnd)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取待审核排班记录成功", rows)
}

func (h *Handler) GetStaffWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffInfoCtx).(*domain.User)
	weekStart := r.Context().Value(WeekStartCtx).(time.Time)
	weekEnd := r.Context().Value(WeekEndCtx).(time.Time)

	rows, err := h.repository.GetScheduleRowsByStaffAndWeek(staff.ID, weekStart, weekEnd)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取员工排班记录成功", rows)
}

// ApproveStaffWeek 把员工某一周所有待审核的排班记录改为已通过
func (h *Handler) ApproveStaffWeek(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffInfoCtx).(*domain.User)
	weekStart := r.Context().Value(WeekStartCtx).(time.Time)
	weekEnd := r.Context().Value(WeekEndCtx).(time.Time)

	affected, err := h.repository.ApproveWeeklySchedule(staff.ID, weekStart, weekEnd)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if affected == 0 {
		h.errorResponse(w, r, "该员工这一周没有待审核的排班记录")
		return
	}

	h.successResponse(w, r, fmt.Sprintf("已通过 %d 条排班记录", affected), nil)
}

// CreateApprovedSchedule 是管理员为员工直接录入已通过的排班记录，
// 不受跨月限制和最少时长约束，但时间段必须在营业时间内且不与已有记录冲突
func (h *Handler) CreateApprovedSchedule(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffInfoCtx).(*domain.User)
	weekStart := r.Context().Value(WeekStartCtx).(time.Time)
	weekEnd := r.Context().Value(WeekEndCtx).(time.Time)

	var req struct {
		Entries []struct {
			ScheduleDate string `json:"scheduleDate" validate:"required"`
			StartTime    string `json:"startTime" validate:"required"`
			EndTime      string `json:"endTime" validate:"required"`
		} `json:"entries" validate:"required,min=1,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	entries := make([]domain.AvailabilityEntry, len(req.Entries))
	for i, entry := range req.Entries {
		scheduleDate, err := time.ParseInLocation("2006-01-02", entry.ScheduleDate, h.location)
		if err != nil {
			h.errorResponse(w, r, fmt.Sprintf("第 %d 条时间段的日期格式错误，应为 YYYY-MM-DD", i+1))
			return
		}
		if scheduleDate.Before(weekStart) || scheduleDate.After(weekEnd) {
			h.errorResponse(w, r, fmt.Sprintf("第 %d 条时间段的日期不在指定的周范围内", i+1))
			return
		}
		entries[i] = domain.AvailabilityEntry{
			ScheduleDate: scheduleDate,
			StartTime:    entry.StartTime,
			EndTime:      entry.EndTime,
		}
	}

	if err := h.availability.ValidateEntryWindows(entries); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rows, err := h.repository.InsertApprovedScheduleRows(staff.ID, weekStart, weekEnd, entries)
	if err != nil {
		var conflictErr *availability.ConflictError
		switch {
		case errors.As(err, &conflictErr):
			h.errorResponse(w, r, conflictErr.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "录入排班记录成功", rows)
}
