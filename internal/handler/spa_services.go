package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/spa-booking/backend/internal/domain"
)

func (h *Handler) CreateSpaService(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name" validate:"required"`
		Description     string `json:"description"`
		DurationMinutes int32  `json:"durationMinutes" validate:"required,min=1"`
		Price           int64  `json:"price" validate:"required,min=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	service := &domain.SpaService{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
	}

	if err := h.repository.CreateSpaService(service); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "spa_services_name_key":
				h.errorResponse(w, r, "项目名称已存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建项目成功", service)
}

func (h *Handler) GetSpaService(w http.ResponseWriter, r *http.Request) {
	service := r.Context().Value(SpaServiceCtx).(*domain.SpaService)

	h.successResponse(w, r, "获取项目成功", service)
}

func (h *Handler) GetAllSpaServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.repository.GetAllSpaServices()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取所有项目成功", services)
}

func (h *Handler) UpdateSpaService(w http.ResponseWriter, r *http.Request) {
	service := r.Context().Value(SpaServiceCtx).(*domain.SpaService)

	var req struct {
		Name            *string `json:"name"`
		Description     *string `json:"description"`
		DurationMinutes *int32  `json:"durationMinutes" validate:"omitempty,min=1"`
		Price           *int64  `json:"price" validate:"omitempty,min=0"`
		IsActive        *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 将输入的参数解析到 service 中
	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateSpaService(service); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "spa_services_name_key":
				h.errorResponse(w, r, "项目名称已存在")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新项目成功", service)
}

func (h *Handler) DeleteSpaService(w http.ResponseWriter, r *http.Request) {
	service := r.Context().Value(SpaServiceCtx).(*domain.SpaService)

	if err := h.repository.DeleteSpaService(service.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除项目成功", nil)
}
