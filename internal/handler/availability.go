package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/availability"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/domain"
)

// SubmitWeeklyAvailability 处理员工对某一周排班时间的提交。
// 草稿模式只做基础校验，提交模式还要求最少工作天数和最少总时长；
// 持久化是替换式的：同一周重复提交以最后一次为准
func (h *Handler) SubmitWeeklyAvailability(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	weekStart := r.Context().Value(WeekStartCtx).(time.Time)
	weekEnd := r.Context().Value(WeekEndCtx).(time.Time)

	var req struct {
		Mode    string `json:"mode" validate:"required,oneof=draft submit"`
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

	submission := &domain.WeeklySubmission{
		StaffID:   myInfo.ID,
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Mode:      domain.SubmissionMode(req.Mode),
		Entries:   make([]domain.AvailabilityEntry, len(req.Entries)),
	}

	for i, entry := range req.Entries {
		scheduleDate, err := time.ParseInLocation("2006-01-02", entry.ScheduleDate, h.location)
		if err != nil {
			h.errorResponse(w, r, fmt.Sprintf("第 %d 条时间段的日期格式错误，应为 YYYY-MM-DD", i+1))
			return
		}
		submission.Entries[i] = domain.AvailabilityEntry{
			ScheduleDate: scheduleDate,
			StartTime:    entry.StartTime,
			EndTime:      entry.EndTime,
		}
	}

	// 检查提交是否符合业务规则
	if err := h.availability.Validate(submission); err != nil {
		h.badRequest(w, r, err)
		return
	}

	rows, err := h.repository.ReplaceWeeklyAvailability(submission)
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

	// 事务提交成功后尽力而为地发送通知邮件，发送失败只记录日志，不影响本次请求
	if submission.Mode == domain.ModeSubmit {
		h.publishAvailabilitySubmittedMail(myInfo, submission)
	}

	h.successResponse(w, r, "成功提交每周排班时间", rows)
}

func (h *Handler) GetMyWeeklyAvailability(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	weekStart := r.Context().Value(WeekStartCtx).(time.Time)
	weekEnd := r.Context().Value(WeekEndCtx).(time.Time)

	rows, err := h.repository.GetScheduleRowsByStaffAndWeek(myInfo.ID, weekStart, weekEnd)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if len(rows) == 0 {
		h.successResponse(w, r, "你还没有提交过这一周的排班时间", rows)
		return
	}

	h.successResponse(w, r, "获取每周排班时间成功", rows)
}

func (h *Handler) publishAvailabilitySubmittedMail(staff *domain.User, submission *domain.WeeklySubmission) {
	mailData := domain.AvailabilitySubmittedMailData{
		FullName:      staff.FullName,
		WeekStart:     submission.WeekStart.Format("2006-01-02"),
		WeekEnd:       submission.WeekEnd.Format("2006-01-02"),
		RequiredHours: h.availability.MinWeeklyHours(),
		Entries:       make([]domain.AvailabilityMailEntry, len(submission.Entries)),
	}
	for i, entry := range submission.Entries {
		mailData.Entries[i] = domain.AvailabilityMailEntry{
			ScheduleDate: entry.ScheduleDate.Format("2006-01-02"),
			StartTime:    entry.StartTime,
			EndTime:      entry.EndTime,
		}
	}

	mailMessage := domain.MailMessage{
		Type: "availability_submitted",
		To:   staff.Email,
		Data: mailData,
	}

	body, err := json.Marshal(mailMessage)
	if err != nil {
		slog.Error("排班提交通知邮件序列化失败", "staffID", staff.ID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		slog.Error("排班提交通知邮件发送失败", "staffID", staff.ID, "error", err)
	}
}
