package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/domain"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/repository"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/utils"
)

// CreateBooking 是顾客的自助预约入口，
// 结束时间由项目时长推算，不需要顾客自己填写
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		StaffID     int64  `json:"staffID" validate:"required"`
		ServiceID   int64  `json:"serviceID" validate:"required"`
		BookingDate string `json:"bookingDate" validate:"required"`
		StartTime   string `json:"startTime" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	service, err := h.repository.GetSpaServiceByID(req.ServiceID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "项目不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	if !service.IsActive {
		h.errorResponse(w, r, "该项目已下架")
		return
	}

	staff, err := h.repository.GetUserByID(req.StaffID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "理疗师不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	if staff.Role != domain.RoleStaff {
		h.errorResponse(w, r, "该用户不是理疗师")
		return
	}
	if !staff.IsActive {
		h.errorResponse(w, r, "该理疗师已离职")
		return
	}

	bookingDate, err := time.ParseInLocation("2006-01-02", req.BookingDate, h.location)
	if err != nil {
		h.errorResponse(w, r, "日期格式错误，应为 YYYY-MM-DD")
		return
	}

	endTime, err := utils.ComputeBookingEnd(req.StartTime, service.DurationMinutes)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := utils.ValidateBookingInFuture(bookingDate, req.StartTime, time.Now().In(h.location)); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	booking := &domain.Booking{
		CustomerID:  myInfo.ID,
		StaffID:     staff.ID,
		ServiceID:   service.ID,
		BookingDate: bookingDate,
		StartTime:   req.StartTime,
		EndTime:     endTime,
	}

	if err := h.repository.CreateBooking(booking); err != nil {
		switch {
		case errors.Is(err, repository.ErrScheduleNotCovered):
			h.errorResponse(w, r, err.Error())
		case errors.Is(err, repository.ErrBookingConflict):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "预约成功", booking)
}

func (h *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	bookings, err := h.repository.GetBookingsByCustomerID(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取我的预约成功", bookings)
}

func (h *Handler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.repository.GetAllBookings()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取所有预约成功", bookings)
}

func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	booking := r.Context().Value(BookingCtx).(*domain.Booking)

	// 只有预约的顾客本人或管理员可以取消预约
	if myInfo.Role != domain.RoleAdmin && booking.CustomerID != myInfo.ID {
		h.errorResponse(w, r, "权限不足")
		return
	}

	if booking.Status != domain.BookingStatusBooked {
		h.errorResponse(w, r, "该预约无法取消")
		return
	}

	booking.Status = domain.BookingStatusCancelled
	if err := h.repository.UpdateBooking(booking); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "取消预约失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "取消预约成功", booking)
}
